package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kashiee/HRMS/internal/payroll"
	"github.com/kashiee/HRMS/internal/shared/apperror"
)

func TestParseTaxCode_StandardCodes(t *testing.T) {
	tests := []struct {
		code          string
		wantAllowance string
		wantScottish  bool
	}{
		{"1257L", "12570", false},
		{"647L", "6470", false},
		{"0T", "0", false},
		{"s1257l", "12570", true},
		{"S0T", "0", true},
		{" 1257L ", "12570", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := payroll.ParseTaxCode(tt.code)

			assert.NoError(t, err)
			assert.True(t, got.Allowance.Equal(d(tt.wantAllowance)), "allowance %s", got.Allowance)
			assert.Equal(t, tt.wantScottish, got.Scottish())
		})
	}
}

func TestParseTaxCode_FixedRateCodes(t *testing.T) {
	tests := []struct {
		code     string
		wantRate string
	}{
		{"BR", "0.20"},
		{"br", "0.20"},
		{"D0", "0.40"},
		{"D1", "0.45"},
		{"SBR", "0.20"},
		{"SD0", "0.40"},
		{"SD1", "0.45"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := payroll.ParseTaxCode(tt.code)

			assert.NoError(t, err)
			assert.Equal(t, payroll.TaxCodeFixedRate, got.Kind)
			assert.True(t, got.Rate.Equal(d(tt.wantRate)))
		})
	}
}

func TestParseTaxCode_NoTax(t *testing.T) {
	for _, code := range []string{"NT", "nt", "SNT"} {
		got, err := payroll.ParseTaxCode(code)

		assert.NoError(t, err)
		assert.Equal(t, payroll.TaxCodeNoTax, got.Kind)
	}
}

func TestParseTaxCode_Invalid(t *testing.T) {
	for _, code := range []string{"", "S", "L", "1257", "12570L", "K475", "12A7L", "BRX"} {
		_, err := payroll.ParseTaxCode(code)

		assert.Error(t, err, "code %q", code)
		assert.True(t, apperror.HasCode(err, apperror.CodeValidationError))
	}
}
