package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// tax_code -> tax code
	s = strings.ReplaceAll(s, "_", " ")

	// tax code -> Tax Code
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts the first binding failure into a field-named
// AppError. Field names come from the json tags registered in Init().
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		e := errs[0]

		fieldName := e.Field()
		humanReadableField := formatFieldName(fieldName)

		switch e.Tag() {
		case "required":
			// Message becomes: "Tax Code is required"
			return RequiredField(humanReadableField)
		default:
			// Message becomes: "Tax Code is invalid"
			return InvalidField(humanReadableField)
		}
	}

	return New(
		CodeValidationError,
		"Invalid input",
		http.StatusBadRequest,
	)
}
