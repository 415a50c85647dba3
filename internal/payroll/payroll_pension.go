package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/kashiee/HRMS/internal/taxyear"
)

// PensionResult carries both contributions and the earnings slice the
// rates were applied to.
type PensionResult struct {
	Employee            decimal.Decimal
	Employer            decimal.Decimal
	PensionableEarnings decimal.Decimal
}

// PensionContributions computes workplace pension deductions for one
// period. A nil enrolment or the "none" scheme contributes nothing.
// On the qualifying-earnings basis only pay between the statutory
// lower and upper limits is pensionable.
func PensionContributions(cfg *taxyear.Config, enrolment *PensionEnrolment, periodGross decimal.Decimal, periodsPerYear int) PensionResult {
	if enrolment == nil || enrolment.SchemeID == SchemeNone {
		return PensionResult{}
	}
	earnings := periodGross
	if enrolment.Basis == BasisQualifyingEarnings {
		periods := decimal.NewFromInt(int64(periodsPerYear))
		lower := cfg.Pension.LowerQualifyingEarnings.Div(periods)
		upper := cfg.Pension.UpperQualifyingEarnings.Div(periods)
		earnings = decimal.Min(periodGross, upper).Sub(lower)
		if earnings.IsNegative() {
			earnings = decimal.Zero
		}
	}
	return PensionResult{
		Employee:            earnings.Mul(enrolment.EmployeeRate),
		Employer:            earnings.Mul(enrolment.EmployerRate),
		PensionableEarnings: earnings,
	}
}
