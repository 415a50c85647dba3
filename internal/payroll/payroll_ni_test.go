package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kashiee/HRMS/internal/payroll"
	"github.com/kashiee/HRMS/internal/shared/apperror"
)

func TestNationalInsurance_CategoryA(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	got, err := payroll.NationalInsurance(cfg, "A", d("3000"), 12)

	assert.NoError(t, err)
	assert.True(t, got.PrimaryThreshold.Equal(d("1047.5")))
	assert.Equal(t, "234.30", got.Employee.StringFixed(2))
	assert.Equal(t, "309.35", got.Employer.StringFixed(2))
	assert.True(t, got.EmployeeUpper.IsZero())
}

func TestNationalInsurance_AtThresholds(t *testing.T) {
	cfg := testConfig(t, "2024-25")
	periods := decimal.NewFromInt(12)

	// exactly at the primary threshold: nothing due from the employee
	got, err := payroll.NationalInsurance(cfg, "A", d("12570").Div(periods), 12)
	assert.NoError(t, err)
	assert.True(t, got.Employee.IsZero())
	assert.True(t, got.Employer.IsPositive())

	// exactly at the upper earnings limit: full main band, no upper band
	got, err = payroll.NationalInsurance(cfg, "A", d("50270").Div(periods), 12)
	assert.NoError(t, err)
	assert.Equal(t, "377.00", got.Employee.StringFixed(2))
	assert.True(t, got.EmployeeUpper.IsZero())
}

func TestNationalInsurance_AboveUpperLimit(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	got, err := payroll.NationalInsurance(cfg, "A", d("10000"), 12)

	assert.NoError(t, err)
	assert.Equal(t, "377.00", got.EmployeeMain.StringFixed(2))
	assert.Equal(t, "116.22", got.EmployeeUpper.StringFixed(2))
	assert.Equal(t, "493.22", got.Employee.StringFixed(2))
}

func TestNationalInsurance_Categories(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	tests := []struct {
		category     string
		wantEmployee string
		wantEmployer string
	}{
		{"A", "234.30", "309.35"},
		{"B", "114.22", "309.35"},
		{"C", "0.00", "309.35"},
		{"H", "234.30", "0.00"},
		{"J", "39.05", "309.35"},
		{"M", "234.30", "0.00"},
		{"X", "0.00", "0.00"},
		{"Z", "39.05", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, err := payroll.NationalInsurance(cfg, tt.category, d("3000"), 12)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantEmployee, got.Employee.StringFixed(2))
			assert.Equal(t, tt.wantEmployer, got.Employer.StringFixed(2))
		})
	}
}

func TestNationalInsurance_DeferredEmployerAboveUpperLimit(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	// apprentice category: employer pays only on the slice above the
	// upper earnings limit
	got, err := payroll.NationalInsurance(cfg, "H", d("10000"), 12)

	assert.NoError(t, err)
	assert.True(t, got.EmployerThreshold.Equal(got.UpperEarningsLimit))
	assert.Equal(t, "801.90", got.Employer.StringFixed(2))
}

func TestNationalInsurance_2025Rates(t *testing.T) {
	cfg := testConfig(t, "2025-26")

	got, err := payroll.NationalInsurance(cfg, "A", d("3000"), 12)

	assert.NoError(t, err)
	assert.Equal(t, "156.20", got.Employee.StringFixed(2))
	assert.Equal(t, "387.50", got.Employer.StringFixed(2))
}

func TestNationalInsurance_CaseInsensitiveCategory(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	upper, err := payroll.NationalInsurance(cfg, "A", d("3000"), 12)
	assert.NoError(t, err)
	lower, err := payroll.NationalInsurance(cfg, " a ", d("3000"), 12)
	assert.NoError(t, err)

	assert.True(t, upper.Employee.Equal(lower.Employee))
}

func TestNationalInsurance_UnknownCategory(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	_, err := payroll.NationalInsurance(cfg, "Q", d("3000"), 12)

	assert.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidationError))
}

func TestNationalInsurance_EmployeeMonotonicInGross(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	prev := decimal.Zero
	for gross := int64(500); gross <= 20000; gross += 500 {
		got, err := payroll.NationalInsurance(cfg, "A", decimal.NewFromInt(gross), 12)

		assert.NoError(t, err)
		assert.True(t, got.Employee.GreaterThanOrEqual(prev),
			"employee NI decreased at gross %d: %s -> %s", gross, prev, got.Employee)
		prev = got.Employee
	}
}
