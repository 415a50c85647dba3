package payroll

import "github.com/shopspring/decimal"

// SchemeNone opts the employee out of workplace pension deductions.
const SchemeNone = "none"

// PensionScheme is an entry in the approved workplace pension
// catalogue. Rates are the scheme's default contribution fractions;
// an enrolment may override them upwards.
type PensionScheme struct {
	ID           string
	Name         string
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal
}

var (
	minEmployeeRate = decimal.RequireFromString("0.05")
	minEmployerRate = decimal.RequireFromString("0.03")
)

// The statutory auto-enrolment minimum is 8% of qualifying earnings
// split 5% employee / 3% employer; every provider in the catalogue
// defaults to that split.
var pensionSchemes = []PensionScheme{
	{ID: "auto_enrolment", Name: "Auto Enrolment Workplace Pension", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "nest", Name: "NEST", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "peoples_pension", Name: "The People's Pension", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "smart_pension", Name: "Smart Pension", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "aviva_workplace", Name: "Aviva Workplace Pension", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "royal_london", Name: "Royal London", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "scottish_widows", Name: "Scottish Widows", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "legal_general", Name: "Legal & General", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "aegon", Name: "Aegon", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: "standard_life", Name: "Standard Life", EmployeeRate: minEmployeeRate, EmployerRate: minEmployerRate},
	{ID: SchemeNone, Name: "No Pension Scheme", EmployeeRate: decimal.Zero, EmployerRate: decimal.Zero},
}

// PensionSchemes returns the catalogue in its published order.
func PensionSchemes() []PensionScheme {
	out := make([]PensionScheme, len(pensionSchemes))
	copy(out, pensionSchemes)
	return out
}

// PensionSchemeByID looks a scheme up by its identifier.
func PensionSchemeByID(id string) (PensionScheme, bool) {
	for _, s := range pensionSchemes {
		if s.ID == id {
			return s, true
		}
	}
	return PensionScheme{}, false
}
