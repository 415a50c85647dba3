package payroll

import (
	"strings"

	"github.com/shopspring/decimal"

	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
	"github.com/kashiee/HRMS/internal/taxyear"
)

// NIResult carries both sides of a period's National Insurance plus
// the per-period thresholds that shaped them.
type NIResult struct {
	Category           string
	Employee           decimal.Decimal
	Employer           decimal.Decimal
	EmployeeMain       decimal.Decimal
	EmployeeUpper      decimal.Decimal
	PrimaryThreshold   decimal.Decimal
	UpperEarningsLimit decimal.Decimal
	EmployerThreshold  decimal.Decimal
}

// NationalInsurance computes employee and employer Class 1 NICs for
// one period. Annual thresholds are divided by the number of periods;
// earnings at or below a threshold attract nothing. Deferred
// categories (H, M, Z) charge the employer only above the upper
// earnings limit.
func NationalInsurance(cfg *taxyear.Config, category string, periodGross decimal.Decimal, periodsPerYear int) (NIResult, error) {
	letter := strings.ToUpper(strings.TrimSpace(category))
	rates, ok := cfg.NICategories[letter]
	if !ok {
		return NIResult{}, payrollerrors.UnknownNICategory(category)
	}

	periods := decimal.NewFromInt(int64(periodsPerYear))
	pt := cfg.NI.PrimaryThreshold.Div(periods)
	uel := cfg.NI.UpperEarningsLimit.Div(periods)
	employerThreshold := cfg.NI.SecondaryThreshold.Div(periods)
	if rates.EmployerFromUpperLimit {
		employerThreshold = uel
	}

	res := NIResult{
		Category:           letter,
		PrimaryThreshold:   pt,
		UpperEarningsLimit: uel,
		EmployerThreshold:  employerThreshold,
	}
	if periodGross.GreaterThan(pt) {
		mainBand := decimal.Min(periodGross, uel).Sub(pt)
		res.EmployeeMain = mainBand.Mul(rates.EmployeeMainRate)
	}
	if periodGross.GreaterThan(uel) {
		res.EmployeeUpper = periodGross.Sub(uel).Mul(rates.EmployeeUpperRate)
	}
	res.Employee = res.EmployeeMain.Add(res.EmployeeUpper)

	if periodGross.GreaterThan(employerThreshold) {
		res.Employer = periodGross.Sub(employerThreshold).Mul(rates.EmployerRate)
	}
	return res, nil
}
