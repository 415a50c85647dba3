package payrollerrors

import (
	"fmt"
	"net/http"

	"github.com/kashiee/HRMS/internal/shared/apperror"
)

var (
	ErrMissingEmployeeID = apperror.New(
		apperror.CodeValidationError,
		"employee_id is required",
		http.StatusBadRequest,
	)
	ErrMissingPayBasis = apperror.New(
		apperror.CodeValidationError,
		"either annual_salary or hourly_rate with hours_worked is required",
		http.StatusBadRequest,
	)
	ErrAmbiguousPayBasis = apperror.New(
		apperror.CodeValidationError,
		"annual_salary and hourly_rate are mutually exclusive",
		http.StatusBadRequest,
	)
	ErrNegativePay = apperror.New(
		apperror.CodeValidationError,
		"pay values cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidationError,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodRange = apperror.New(
		apperror.CodeValidationError,
		"period start must be before or equal period end",
		http.StatusBadRequest,
	)
	ErrMissingPeriodDates = apperror.New(
		apperror.CodeValidationError,
		"period start, end and pay date are required",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodsPerYear = apperror.New(
		apperror.CodeValidationError,
		"periods_per_year must be between 1 and 53",
		http.StatusBadRequest,
	)
	ErrLeftBeforePeriod = apperror.New(
		apperror.CodeValidationError,
		"employee left before the pay period starts",
		http.StatusBadRequest,
	)
	ErrStartsAfterPeriod = apperror.New(
		apperror.CodeValidationError,
		"employee starts after the pay period ends",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeValidationError,
		"annual_salary cannot be negative",
		http.StatusBadRequest,
	)
)

// InvalidTaxCode reports a tax code that matches no recognised format.
func InvalidTaxCode(code string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		fmt.Sprintf("tax code %q is not a recognised format", code),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "tax_code", "value": code})
}

// InvalidNINumber reports a malformed national insurance number.
func InvalidNINumber(ni string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		"national insurance number is not a valid format",
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "ni_number", "value": ni})
}

// UnknownNICategory reports a category letter missing from the year's table.
func UnknownNICategory(letter string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		fmt.Sprintf("national insurance category %q is not recognised", letter),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "ni_category", "value": letter})
}

// UnknownStudentLoanPlan reports a plan missing from the year's table.
func UnknownStudentLoanPlan(plan string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		fmt.Sprintf("student loan plan %q is not recognised", plan),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "student_loan_plan", "value": plan})
}

// UnknownPensionScheme reports a scheme id outside the approved catalogue.
func UnknownPensionScheme(scheme string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		fmt.Sprintf("pension scheme %q is not in the approved catalogue", scheme),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "pension_scheme", "value": scheme})
}

// InvalidPensionRate reports a contribution rate outside [0, 1].
func InvalidPensionRate(field string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		fmt.Sprintf("%s must be a fraction between 0 and 1", field),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": field})
}

// InvalidContributionBasis reports an unsupported pension basis value.
func InvalidContributionBasis(basis string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		fmt.Sprintf("pension contribution basis %q is not supported", basis),
		http.StatusBadRequest,
	).WithDetails(map[string]string{"field": "pension_basis", "value": basis})
}

// Calculation reports a broken arithmetic invariant. The employee is
// excluded from the run; other employees are unaffected.
func Calculation(reason string) *apperror.AppError {
	return apperror.New(
		apperror.CodeCalculationError,
		fmt.Sprintf("payslip calculation failed: %s", reason),
		http.StatusUnprocessableEntity,
	)
}
