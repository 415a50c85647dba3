package payroll

import (
	"strings"

	"github.com/shopspring/decimal"

	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
	"github.com/kashiee/HRMS/internal/taxyear"
)

// Prefixes HMRC never allocates. TN was used for temporary numbers
// and is no longer valid.
var forbiddenNIPrefixes = map[string]bool{
	"BG": true, "GB": true, "NK": true, "KN": true,
	"TN": true, "NT": true, "ZZ": true,
}

// ValidateNINumber checks the shape of a national insurance number:
// two letters, six digits, one suffix letter. Spaces and case are
// ignored; an empty value is allowed because a starter may not have
// their number yet.
func ValidateNINumber(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	ni := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	if len(ni) != 9 {
		return payrollerrors.InvalidNINumber(raw)
	}
	if !isAlpha(ni[:2]) || !isDigits(ni[2:8]) || !isAlpha(ni[8:]) {
		return payrollerrors.InvalidNINumber(raw)
	}
	if forbiddenNIPrefixes[ni[:2]] {
		return payrollerrors.InvalidNINumber(raw)
	}
	return nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// validateInputs rejects inconsistent employee inputs before any
// arithmetic runs, and resolves the tax code while it is at it.
func validateInputs(cfg *taxyear.Config, period PayPeriod, in EmployeePayInputs) (ParsedTaxCode, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return ParsedTaxCode{}, payrollerrors.ErrMissingEmployeeID
	}
	if err := ValidateNINumber(in.NINumber); err != nil {
		return ParsedTaxCode{}, err
	}
	if in.AnnualSalary.IsNegative() || in.HourlyRate.IsNegative() || in.HoursWorked.IsNegative() {
		return ParsedTaxCode{}, payrollerrors.ErrNegativePay
	}
	salaried := in.AnnualSalary.IsPositive()
	hourly := in.HourlyRate.IsPositive()
	switch {
	case salaried && hourly:
		return ParsedTaxCode{}, payrollerrors.ErrAmbiguousPayBasis
	case !salaried && !hourly:
		return ParsedTaxCode{}, payrollerrors.ErrMissingPayBasis
	}

	if in.LeavingDate != nil && in.LeavingDate.Before(period.Start) {
		return ParsedTaxCode{}, payrollerrors.ErrLeftBeforePeriod
	}
	if in.StartDate != nil && in.StartDate.After(period.End) {
		return ParsedTaxCode{}, payrollerrors.ErrStartsAfterPeriod
	}

	code, err := ParseTaxCode(in.TaxCode)
	if err != nil {
		return ParsedTaxCode{}, err
	}

	letter := strings.ToUpper(strings.TrimSpace(in.NICategory))
	if _, ok := cfg.NICategories[letter]; !ok {
		return ParsedTaxCode{}, payrollerrors.UnknownNICategory(in.NICategory)
	}

	if plan := normalizePlan(in.StudentLoanPlan); plan != taxyear.PlanNone {
		if _, ok := cfg.StudentLoanPlans[plan]; !ok {
			return ParsedTaxCode{}, payrollerrors.UnknownStudentLoanPlan(in.StudentLoanPlan)
		}
	}

	if err := validateEnrolment(in.Pension); err != nil {
		return ParsedTaxCode{}, err
	}
	return code, nil
}

func validateEnrolment(enrolment *PensionEnrolment) error {
	if enrolment == nil || enrolment.SchemeID == SchemeNone {
		return nil
	}
	if _, ok := PensionSchemeByID(enrolment.SchemeID); !ok {
		return payrollerrors.UnknownPensionScheme(enrolment.SchemeID)
	}
	if !isFraction(enrolment.EmployeeRate) {
		return payrollerrors.InvalidPensionRate("employee_rate")
	}
	if !isFraction(enrolment.EmployerRate) {
		return payrollerrors.InvalidPensionRate("employer_rate")
	}
	switch enrolment.Basis {
	case BasisGrossPay, BasisQualifyingEarnings:
		return nil
	default:
		return payrollerrors.InvalidContributionBasis(string(enrolment.Basis))
	}
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

func normalizePlan(plan string) string {
	p := strings.ToLower(strings.TrimSpace(plan))
	if p == "" {
		return taxyear.PlanNone
	}
	return p
}
