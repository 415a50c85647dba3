package payroll

import "github.com/shopspring/decimal"

type PayPeriodRequest struct {
	Start          string `json:"start" binding:"required"`
	End            string `json:"end" binding:"required"`
	PayDate        string `json:"pay_date" binding:"required"`
	PeriodsPerYear int    `json:"periods_per_year" binding:"required,min=1,max=53"`
}

type PensionRequest struct {
	SchemeID     string           `json:"scheme_id" binding:"required"`
	EmployeeRate *decimal.Decimal `json:"employee_rate"`
	EmployerRate *decimal.Decimal `json:"employer_rate"`
	Basis        string           `json:"basis" binding:"omitempty,oneof=gross_pay qualifying_earnings"`
}

type EmployeePayRequest struct {
	EmployeeID      string          `json:"employee_id" binding:"required"`
	FullName        string          `json:"full_name"`
	NINumber        string          `json:"ni_number"`
	TaxCode         string          `json:"tax_code" binding:"required"`
	NICategory      string          `json:"ni_category" binding:"required"`
	AnnualSalary    decimal.Decimal `json:"annual_salary"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	Pension         *PensionRequest `json:"pension"`
	StudentLoanPlan string          `json:"student_loan_plan"`
	StartDate       *string         `json:"start_date"`
	LeavingDate     *string         `json:"leaving_date"`
}

type CalculatePayslipRequest struct {
	TaxYear  string             `json:"tax_year" binding:"required"`
	Period   PayPeriodRequest   `json:"period"`
	Employee EmployeePayRequest `json:"employee"`
}

type BatchPayrollRequest struct {
	TaxYear   string               `json:"tax_year" binding:"required"`
	Period    PayPeriodRequest     `json:"period"`
	Employees []EmployeePayRequest `json:"employees" binding:"required,min=1,dive"`
}

type TaxBandsRequest struct {
	TaxYear      string          `json:"tax_year" binding:"required"`
	AnnualSalary decimal.Decimal `json:"annual_salary"`
}

type PayslipResponse struct {
	EmployeeID        string                     `json:"employee_id"`
	TaxYear           string                     `json:"tax_year"`
	PeriodStart       string                     `json:"period_start"`
	PeriodEnd         string                     `json:"period_end"`
	PayDate           string                     `json:"pay_date"`
	GrossPay          decimal.Decimal            `json:"gross_pay"`
	IncomeTax         decimal.Decimal            `json:"income_tax"`
	EmployeeNI        decimal.Decimal            `json:"employee_ni"`
	EmployerNI        decimal.Decimal            `json:"employer_ni"`
	EmployeePension   decimal.Decimal            `json:"employee_pension"`
	EmployerPension   decimal.Decimal            `json:"employer_pension"`
	StudentLoan       decimal.Decimal            `json:"student_loan"`
	NetPay            decimal.Decimal            `json:"net_pay"`
	TotalDeductions   decimal.Decimal            `json:"total_deductions"`
	EmployerTotalCost decimal.Decimal            `json:"employer_total_cost"`
	Breakdown         map[string]decimal.Decimal `json:"breakdown,omitempty"`
}

type EmployeeErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type BatchEmployeeResponse struct {
	EmployeeID string                 `json:"employee_id"`
	Status     string                 `json:"status"`
	Payslip    *PayslipResponse       `json:"payslip,omitempty"`
	Error      *EmployeeErrorResponse `json:"error,omitempty"`
}

type BatchTotalsResponse struct {
	GrossPay          decimal.Decimal `json:"gross_pay"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	EmployeeNI        decimal.Decimal `json:"employee_ni"`
	EmployerNI        decimal.Decimal `json:"employer_ni"`
	EmployeePension   decimal.Decimal `json:"employee_pension"`
	EmployerPension   decimal.Decimal `json:"employer_pension"`
	StudentLoan       decimal.Decimal `json:"student_loan"`
	NetPay            decimal.Decimal `json:"net_pay"`
	EmployerTotalCost decimal.Decimal `json:"employer_total_cost"`
}

type BatchPayrollResponse struct {
	BatchID     string                  `json:"batch_id"`
	TaxYear     string                  `json:"tax_year"`
	PeriodStart string                  `json:"period_start"`
	PeriodEnd   string                  `json:"period_end"`
	PayDate     string                  `json:"pay_date"`
	Requested   int                     `json:"requested"`
	Succeeded   int                     `json:"succeeded"`
	Failed      int                     `json:"failed"`
	Totals      BatchTotalsResponse     `json:"totals"`
	Results     []BatchEmployeeResponse `json:"results"`
}

type TaxBandResponse struct {
	Name         string           `json:"name"`
	UpperTaxable *decimal.Decimal `json:"upper_taxable,omitempty"`
	Rate         decimal.Decimal  `json:"rate"`
}

type NIThresholdsResponse struct {
	PrimaryThreshold   decimal.Decimal `json:"primary_threshold"`
	UpperEarningsLimit decimal.Decimal `json:"upper_earnings_limit"`
	SecondaryThreshold decimal.Decimal `json:"secondary_threshold"`
}

type NICategoryResponse struct {
	EmployeeMainRate       decimal.Decimal `json:"employee_main_rate"`
	EmployeeUpperRate      decimal.Decimal `json:"employee_upper_rate"`
	EmployerRate           decimal.Decimal `json:"employer_rate"`
	EmployerFromUpperLimit bool            `json:"employer_from_upper_limit"`
}

type PensionBandResponse struct {
	LowerQualifyingEarnings decimal.Decimal `json:"lower_qualifying_earnings"`
	UpperQualifyingEarnings decimal.Decimal `json:"upper_qualifying_earnings"`
}

type StudentLoanPlanResponse struct {
	AnnualThreshold decimal.Decimal `json:"annual_threshold"`
	Rate            decimal.Decimal `json:"rate"`
}

type TaxYearConfigResponse struct {
	Year              string                             `json:"year"`
	PersonalAllowance decimal.Decimal                    `json:"personal_allowance"`
	TaxBands          []TaxBandResponse                  `json:"tax_bands"`
	ScottishTaxBands  []TaxBandResponse                  `json:"scottish_tax_bands,omitempty"`
	NI                NIThresholdsResponse               `json:"ni_thresholds"`
	NICategories      map[string]NICategoryResponse      `json:"ni_categories"`
	Pension           PensionBandResponse                `json:"pension_qualifying_band"`
	StudentLoanPlans  map[string]StudentLoanPlanResponse `json:"student_loan_plans"`
}

type PensionSchemeResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	EmployeeRate decimal.Decimal `json:"employee_rate"`
	EmployerRate decimal.Decimal `json:"employer_rate"`
}

type TaxBandAmountResponse struct {
	Name    string          `json:"name"`
	Rate    decimal.Decimal `json:"rate"`
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
}

type TaxBandsResponse struct {
	TaxYear           string                  `json:"tax_year"`
	AnnualSalary      decimal.Decimal         `json:"annual_salary"`
	PersonalAllowance decimal.Decimal         `json:"personal_allowance"`
	TaxableIncome     decimal.Decimal         `json:"taxable_income"`
	TotalTax          decimal.Decimal         `json:"total_tax"`
	Bands             []TaxBandAmountResponse `json:"bands"`
}
