package taxyearerrors

import (
	"fmt"
	"net/http"

	"github.com/kashiee/HRMS/internal/shared/apperror"
)

// UnknownTaxYear reports a request against a year the registry does not
// hold. A batch run cannot proceed without a rate table, so callers treat
// this as fatal.
func UnknownTaxYear(year string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConfigError,
		fmt.Sprintf("tax year %q is not configured", year),
		http.StatusNotFound,
	)
}

// InvalidConfig reports a malformed rate table at construction time.
func InvalidConfig(reason string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConfigError,
		fmt.Sprintf("invalid tax year config: %s", reason),
		http.StatusInternalServerError,
	)
}

// InvalidConfigValue reports a config field that could not be parsed.
func InvalidConfigValue(field, value string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConfigError,
		fmt.Sprintf("invalid tax year config: %s has malformed value %q", field, value),
		http.StatusInternalServerError,
	)
}
