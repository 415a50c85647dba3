package payroll

import (
	"github.com/shopspring/decimal"

	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
	"github.com/kashiee/HRMS/internal/taxyear"
)

// StudentLoanResult carries the period repayment and the plan
// parameters that produced it.
type StudentLoanResult struct {
	Plan            string
	Amount          decimal.Decimal
	PeriodThreshold decimal.Decimal
	Rate            decimal.Decimal
}

// StudentLoanRepayment computes the period repayment for a plan:
// the plan rate applied to earnings above the plan threshold scaled
// to the period. "none" or an empty plan repays nothing.
func StudentLoanRepayment(cfg *taxyear.Config, plan string, periodGross decimal.Decimal, periodsPerYear int) (StudentLoanResult, error) {
	name := normalizePlan(plan)
	if name == taxyear.PlanNone {
		return StudentLoanResult{Plan: taxyear.PlanNone}, nil
	}
	p, ok := cfg.StudentLoanPlans[name]
	if !ok {
		return StudentLoanResult{}, payrollerrors.UnknownStudentLoanPlan(plan)
	}
	threshold := p.AnnualThreshold.Div(decimal.NewFromInt(int64(periodsPerYear)))
	res := StudentLoanResult{Plan: name, PeriodThreshold: threshold, Rate: p.Rate}
	if periodGross.GreaterThan(threshold) {
		res.Amount = periodGross.Sub(threshold).Mul(p.Rate)
	}
	return res, nil
}
