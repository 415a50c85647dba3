package taxyear

import "github.com/shopspring/decimal"

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

// Band names are stable identifiers reused in payslip breakdowns.
const (
	BandBasic      = "basic_rate"
	BandHigher     = "higher_rate"
	BandAdditional = "additional_rate"
)

// Student loan plan identifiers accepted in pay inputs.
const (
	PlanNone         = "none"
	Plan1            = "plan_1"
	Plan2            = "plan_2"
	Plan4            = "plan_4"
	Plan5            = "plan_5"
	PlanPostgraduate = "postgraduate"
)

// builtinConfigs returns the tax years shipped with the engine. Band upper
// bounds are expressed over taxable income, after the personal allowance:
// the 2024-25 basic rate limit of £50,270 gross becomes £37,700 taxable.
func builtinConfigs() []*Config {
	return []*Config{
		{
			Year:              "2024-25",
			PersonalAllowance: dec("12570"),
			TaxBands: []TaxBand{
				{Name: BandBasic, UpperTaxable: decPtr("37700"), Rate: dec("0.20")},
				{Name: BandHigher, UpperTaxable: decPtr("112570"), Rate: dec("0.40")},
				{Name: BandAdditional, Rate: dec("0.45")},
			},
			NI: NIThresholds{
				PrimaryThreshold:   dec("12570"),
				UpperEarningsLimit: dec("50270"),
				SecondaryThreshold: dec("9100"),
			},
			NICategories: map[string]NICategoryRates{
				"A": {EmployeeMainRate: dec("0.12"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.138")},
				"B": {EmployeeMainRate: dec("0.0585"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.138")},
				"C": {EmployeeMainRate: dec("0"), EmployeeUpperRate: dec("0"), EmployerRate: dec("0.138")},
				"H": {EmployeeMainRate: dec("0.12"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.138"), EmployerFromUpperLimit: true},
				"J": {EmployeeMainRate: dec("0.02"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.138")},
				"M": {EmployeeMainRate: dec("0.12"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.138"), EmployerFromUpperLimit: true},
				"X": {EmployeeMainRate: dec("0"), EmployeeUpperRate: dec("0"), EmployerRate: dec("0")},
				"Z": {EmployeeMainRate: dec("0.02"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.138"), EmployerFromUpperLimit: true},
			},
			Pension: PensionBand{
				LowerQualifyingEarnings: dec("6240"),
				UpperQualifyingEarnings: dec("50270"),
			},
			StudentLoanPlans: map[string]StudentLoanPlan{
				Plan1:            {AnnualThreshold: dec("22015"), Rate: dec("0.09")},
				Plan2:            {AnnualThreshold: dec("27295"), Rate: dec("0.09")},
				Plan4:            {AnnualThreshold: dec("27660"), Rate: dec("0.09")},
				Plan5:            {AnnualThreshold: dec("25000"), Rate: dec("0.09")},
				PlanPostgraduate: {AnnualThreshold: dec("21000"), Rate: dec("0.06")},
			},
		},
		{
			Year:              "2025-26",
			PersonalAllowance: dec("12570"),
			TaxBands: []TaxBand{
				{Name: BandBasic, UpperTaxable: decPtr("37700"), Rate: dec("0.20")},
				{Name: BandHigher, UpperTaxable: decPtr("112570"), Rate: dec("0.40")},
				{Name: BandAdditional, Rate: dec("0.45")},
			},
			NI: NIThresholds{
				PrimaryThreshold:   dec("12570"),
				UpperEarningsLimit: dec("50270"),
				SecondaryThreshold: dec("5000"),
			},
			NICategories: map[string]NICategoryRates{
				"A": {EmployeeMainRate: dec("0.08"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.15")},
				"B": {EmployeeMainRate: dec("0.0185"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.15")},
				"C": {EmployeeMainRate: dec("0"), EmployeeUpperRate: dec("0"), EmployerRate: dec("0.15")},
				"H": {EmployeeMainRate: dec("0.08"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.15"), EmployerFromUpperLimit: true},
				"J": {EmployeeMainRate: dec("0.02"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.15")},
				"M": {EmployeeMainRate: dec("0.08"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.15"), EmployerFromUpperLimit: true},
				"X": {EmployeeMainRate: dec("0"), EmployeeUpperRate: dec("0"), EmployerRate: dec("0")},
				"Z": {EmployeeMainRate: dec("0.02"), EmployeeUpperRate: dec("0.02"), EmployerRate: dec("0.15"), EmployerFromUpperLimit: true},
			},
			Pension: PensionBand{
				LowerQualifyingEarnings: dec("6240"),
				UpperQualifyingEarnings: dec("50270"),
			},
			StudentLoanPlans: map[string]StudentLoanPlan{
				Plan1:            {AnnualThreshold: dec("26065"), Rate: dec("0.09")},
				Plan2:            {AnnualThreshold: dec("28470"), Rate: dec("0.09")},
				Plan4:            {AnnualThreshold: dec("32745"), Rate: dec("0.09")},
				Plan5:            {AnnualThreshold: dec("25000"), Rate: dec("0.09")},
				PlanPostgraduate: {AnnualThreshold: dec("21000"), Rate: dec("0.06")},
			},
		},
	}
}
