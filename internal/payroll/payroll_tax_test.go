package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kashiee/HRMS/internal/payroll"
	"github.com/kashiee/HRMS/internal/taxyear"
)

func mustParse(t *testing.T, code string) payroll.ParsedTaxCode {
	t.Helper()
	parsed, err := payroll.ParseTaxCode(code)
	assert.NoError(t, err)
	return parsed
}

func dp(v string) *decimal.Decimal {
	dec := d(v)
	return &dec
}

func TestIncomeTax_BasicRateOnly(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	got := payroll.IncomeTax(cfg, mustParse(t, "1257L"), d("3000"), 12)

	assert.True(t, got.Period.Equal(d("390.5")), "period %s", got.Period)
	assert.True(t, got.Annual.Equal(d("4686")))
	assert.True(t, got.AnnualTaxable.Equal(d("23430")))
	assert.Equal(t, 3, len(got.Bands))
	assert.Equal(t, taxyear.BandBasic, got.Bands[0].Name)
	assert.True(t, got.Bands[0].Taxable.Equal(d("23430")))
	assert.True(t, got.Bands[0].Tax.Equal(d("4686")))
	assert.True(t, got.Bands[1].Tax.IsZero())
	assert.True(t, got.Bands[2].Tax.IsZero())
}

func TestIncomeTax_SpansAllBands(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	// 150,000 a year: taxable 137,430 fills the 37,700 basic band,
	// the 74,870 higher band and leaves 24,860 at the additional rate.
	got := payroll.IncomeTax(cfg, mustParse(t, "1257L"), d("12500"), 12)

	assert.True(t, got.Bands[0].Taxable.Equal(d("37700")))
	assert.True(t, got.Bands[0].Tax.Equal(d("7540")))
	assert.True(t, got.Bands[1].Taxable.Equal(d("74870")))
	assert.True(t, got.Bands[1].Tax.Equal(d("29948")))
	assert.True(t, got.Bands[2].Taxable.Equal(d("24860")))
	assert.True(t, got.Bands[2].Tax.Equal(d("11187")))
	assert.True(t, got.Annual.Equal(d("48675")))
	assert.True(t, got.Period.Equal(d("4056.25")))
}

func TestIncomeTax_AtBandEdge(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	// 50,270 a year is exactly the top of the basic band once the
	// allowance is taken off; the higher band must stay empty.
	got := payroll.IncomeTax(cfg, mustParse(t, "1257L"), d("50270").Div(decimal.NewFromInt(12)), 12)

	assert.Equal(t, "37700.00", got.AnnualTaxable.StringFixed(2))
	assert.Equal(t, "7540.00", got.Bands[0].Tax.StringFixed(2))
	assert.True(t, got.Bands[1].Tax.IsZero())
	assert.True(t, got.Bands[2].Tax.IsZero())
}

func TestIncomeTax_UnderAllowance(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	got := payroll.IncomeTax(cfg, mustParse(t, "1257L"), d("1000"), 12)

	assert.True(t, got.Period.IsZero())
	assert.True(t, got.AnnualTaxable.IsZero())
	for _, band := range got.Bands {
		assert.True(t, band.Tax.IsZero())
	}
}

func TestIncomeTax_FixedRateCodes(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	tests := []struct {
		code string
		want string
	}{
		{"BR", "600"},
		{"D0", "1200"},
		{"D1", "1350"},
		{"NT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := payroll.IncomeTax(cfg, mustParse(t, tt.code), d("3000"), 12)

			assert.True(t, got.Period.Equal(d(tt.want)), "period %s", got.Period)
			assert.Empty(t, got.Bands)
		})
	}
}

func TestIncomeTax_ScottishFallsBackToMainBands(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	ruk := payroll.IncomeTax(cfg, mustParse(t, "1257L"), d("3000"), 12)
	scottish := payroll.IncomeTax(cfg, mustParse(t, "S1257L"), d("3000"), 12)

	assert.True(t, ruk.Period.Equal(scottish.Period))
}

func TestIncomeTax_ScottishBandsWhenConfigured(t *testing.T) {
	cfg := testConfig(t, "2024-25")
	custom := *cfg
	custom.ScottishTaxBands = []taxyear.TaxBand{
		{Name: "starter_rate", UpperTaxable: dp("2306"), Rate: d("0.19")},
		{Name: "top_rate", Rate: d("0.48")},
	}

	got := payroll.IncomeTax(&custom, mustParse(t, "S1257L"), d("3000"), 12)

	// taxable 23,430: 2,306 at 19% then 21,124 at 48%
	assert.True(t, got.Annual.Equal(d("10577.66")), "annual %s", got.Annual)
	assert.Equal(t, "starter_rate", got.Bands[0].Name)
}

func TestIncomeTax_WeeklyPeriods(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	// 36,000 a year paid weekly: the annual tax is unchanged, the
	// period deduction is a 52nd of it.
	got := payroll.IncomeTax(cfg, mustParse(t, "1257L"), d("36000").Div(d("52")), 52)

	assert.True(t, got.Annual.Round(2).Equal(d("4686")), "annual %s", got.Annual)
	assert.Equal(t, "90.12", got.Period.Round(2).StringFixed(2))
}

func TestTaxBandsForSalary(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	got := payroll.TaxBandsForSalary(cfg, d("60000"))

	assert.True(t, got.PersonalAllowance.Equal(d("12570")))
	assert.True(t, got.TaxableIncome.Equal(d("47430")))
	assert.True(t, got.Bands[0].Tax.Equal(d("7540")))
	assert.True(t, got.Bands[1].Taxable.Equal(d("9730")))
	assert.True(t, got.Bands[1].Tax.Equal(d("3892")))
	assert.True(t, got.TotalTax.Equal(d("11432")))
}

func TestTaxBandsForSalary_UnderAllowance(t *testing.T) {
	cfg := testConfig(t, "2024-25")

	got := payroll.TaxBandsForSalary(cfg, d("9000"))

	assert.True(t, got.TaxableIncome.IsZero())
	assert.True(t, got.TotalTax.IsZero())
}
