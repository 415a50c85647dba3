package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
)

// PayPeriod is one slice of the payroll calendar. Thresholds and
// annual amounts are scaled by PeriodsPerYear, so 12 means monthly
// payroll, 52 weekly, 26 fortnightly.
type PayPeriod struct {
	Start          time.Time
	End            time.Time
	PayDate        time.Time
	PeriodsPerYear int
}

// NewPayPeriod validates the calendar slice up front so the
// calculation functions never see an inconsistent period.
func NewPayPeriod(start, end, payDate time.Time, periodsPerYear int) (PayPeriod, error) {
	if start.IsZero() || end.IsZero() || payDate.IsZero() {
		return PayPeriod{}, payrollerrors.ErrMissingPeriodDates
	}
	if end.Before(start) {
		return PayPeriod{}, payrollerrors.ErrInvalidPeriodRange
	}
	if periodsPerYear < 1 || periodsPerYear > 53 {
		return PayPeriod{}, payrollerrors.ErrInvalidPeriodsPerYear
	}
	return PayPeriod{Start: start, End: end, PayDate: payDate, PeriodsPerYear: periodsPerYear}, nil
}

func (p PayPeriod) periods() decimal.Decimal {
	return decimal.NewFromInt(int64(p.PeriodsPerYear))
}

// ContributionBasis selects which slice of pay a pension scheme
// takes its percentages from.
type ContributionBasis string

const (
	// BasisGrossPay applies the rates to the whole period gross.
	BasisGrossPay ContributionBasis = "gross_pay"
	// BasisQualifyingEarnings applies the rates only to earnings
	// inside the statutory qualifying band.
	BasisQualifyingEarnings ContributionBasis = "qualifying_earnings"
)

// PensionEnrolment is an employee's workplace pension membership.
// Rates are fractions (0.05 = 5%) and may differ from the scheme's
// defaults when the employee contributes above the minimum.
type PensionEnrolment struct {
	SchemeID     string
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
	Basis        ContributionBasis
}

// EmployeePayInputs is everything the calculator needs to know about
// one employee for one period. Exactly one pay basis must be set:
// AnnualSalary for salaried staff, HourlyRate with HoursWorked for
// hourly staff.
type EmployeePayInputs struct {
	EmployeeID      string
	FullName        string
	NINumber        string
	TaxCode         string
	NICategory      string
	AnnualSalary    decimal.Decimal
	HourlyRate      decimal.Decimal
	HoursWorked     decimal.Decimal
	Pension         *PensionEnrolment
	StudentLoanPlan string
	StartDate       *time.Time
	LeavingDate     *time.Time
}

// PayslipResult is the statutory outcome for one employee and one
// period. Monetary fields are rounded to pennies; Breakdown keeps the
// unrounded intermediates for audit.
type PayslipResult struct {
	EmployeeID        string
	TaxYear           string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	PayDate           time.Time
	GrossPay          decimal.Decimal
	IncomeTax         decimal.Decimal
	EmployeeNI        decimal.Decimal
	EmployerNI        decimal.Decimal
	EmployeePension   decimal.Decimal
	EmployerPension   decimal.Decimal
	StudentLoan       decimal.Decimal
	NetPay            decimal.Decimal
	EmployerTotalCost decimal.Decimal
	Breakdown         map[string]decimal.Decimal
}

// TotalDeductions is the sum the employee never sees in their bank
// account: tax, employee NI, employee pension and student loan.
func (p PayslipResult) TotalDeductions() decimal.Decimal {
	return p.IncomeTax.Add(p.EmployeeNI).Add(p.EmployeePension).Add(p.StudentLoan)
}
