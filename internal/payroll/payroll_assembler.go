package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
	"github.com/kashiee/HRMS/internal/taxyear"
)

// periodGrossPay derives the period gross from whichever pay basis is
// set. Callers validate the basis first.
func periodGrossPay(in EmployeePayInputs, periods decimal.Decimal) decimal.Decimal {
	if in.AnnualSalary.IsPositive() {
		return in.AnnualSalary.Div(periods)
	}
	return in.HourlyRate.Mul(in.HoursWorked)
}

// roundMoney rounds to pennies, half away from zero.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculatePayslip runs the full deduction chain for one employee and
// one period. It is a pure function of its inputs: no clock, no
// randomness, no shared state, so the same inputs always produce the
// same payslip.
//
// Each deduction is computed exactly and rounded to pennies once, at
// the end. Net pay is the rounded gross minus the rounded deductions,
// which keeps the printed payslip internally consistent to the penny.
func CalculatePayslip(cfg *taxyear.Config, period PayPeriod, in EmployeePayInputs) (PayslipResult, error) {
	code, err := validateInputs(cfg, period, in)
	if err != nil {
		return PayslipResult{}, err
	}

	periodGross := periodGrossPay(in, period.periods())
	tax := IncomeTax(cfg, code, periodGross, period.PeriodsPerYear)
	ni, err := NationalInsurance(cfg, in.NICategory, periodGross, period.PeriodsPerYear)
	if err != nil {
		return PayslipResult{}, err
	}
	pension := PensionContributions(cfg, in.Pension, periodGross, period.PeriodsPerYear)
	loan, err := StudentLoanRepayment(cfg, in.StudentLoanPlan, periodGross, period.PeriodsPerYear)
	if err != nil {
		return PayslipResult{}, err
	}

	result := PayslipResult{
		EmployeeID:      in.EmployeeID,
		TaxYear:         cfg.Year,
		PeriodStart:     period.Start,
		PeriodEnd:       period.End,
		PayDate:         period.PayDate,
		GrossPay:        roundMoney(periodGross),
		IncomeTax:       roundMoney(tax.Period),
		EmployeeNI:      roundMoney(ni.Employee),
		EmployerNI:      roundMoney(ni.Employer),
		EmployeePension: roundMoney(pension.Employee),
		EmployerPension: roundMoney(pension.Employer),
		StudentLoan:     roundMoney(loan.Amount),
	}
	for name, amount := range map[string]decimal.Decimal{
		"gross pay":        result.GrossPay,
		"income tax":       result.IncomeTax,
		"employee ni":      result.EmployeeNI,
		"employer ni":      result.EmployerNI,
		"employee pension": result.EmployeePension,
		"employer pension": result.EmployerPension,
		"student loan":     result.StudentLoan,
	} {
		if amount.IsNegative() {
			return PayslipResult{}, payrollerrors.Calculation(fmt.Sprintf("%s is negative", name))
		}
	}
	result.NetPay = result.GrossPay.Sub(result.TotalDeductions())
	result.EmployerTotalCost = result.GrossPay.Add(result.EmployerNI).Add(result.EmployerPension)
	result.Breakdown = buildBreakdown(periodGross, tax, ni, pension, loan)
	return result, nil
}

// buildBreakdown preserves the exact, unrounded intermediates so a
// payslip query can show its working.
func buildBreakdown(periodGross decimal.Decimal, tax TaxResult, ni NIResult, pension PensionResult, loan StudentLoanResult) map[string]decimal.Decimal {
	b := map[string]decimal.Decimal{
		"period_gross":            periodGross,
		"annualised_pay":          tax.AnnualPay,
		"tax_allowance":           tax.Allowance,
		"tax_annual_taxable":      tax.AnnualTaxable,
		"tax_annual_total":        tax.Annual,
		"ni_primary_threshold":    ni.PrimaryThreshold,
		"ni_upper_earnings_limit": ni.UpperEarningsLimit,
		"ni_employer_threshold":   ni.EmployerThreshold,
		"ni_employee_main":        ni.EmployeeMain,
		"ni_employee_upper":       ni.EmployeeUpper,
		"pension_earnings":        pension.PensionableEarnings,
		"student_loan_threshold":  loan.PeriodThreshold,
	}
	for _, band := range tax.Bands {
		b["tax_band_"+band.Name+"_taxable"] = band.Taxable
		b["tax_band_"+band.Name+"_tax"] = band.Tax
	}
	return b
}
