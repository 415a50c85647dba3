package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kashiee/HRMS/internal/payroll"
)

func TestValidateNINumber_Valid(t *testing.T) {
	tests := []string{
		"QQ123456C",
		"ab123456d",
		"QQ 12 34 56 C",
		"",
		"   ",
	}

	for _, ni := range tests {
		assert.NoError(t, payroll.ValidateNINumber(ni), "ni %q", ni)
	}
}

func TestValidateNINumber_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ni   string
	}{
		{"too short", "QQ12345C"},
		{"too long", "QQ1234567C"},
		{"digits in prefix", "Q1123456C"},
		{"letter in number", "QQ12E456C"},
		{"digit suffix", "QQ1234567"},
		{"forbidden prefix BG", "BG123456C"},
		{"forbidden prefix NT", "NT123456C"},
		{"forbidden prefix ZZ", "ZZ123456C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := payroll.ValidateNINumber(tt.ni)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "national insurance number")
		})
	}
}
