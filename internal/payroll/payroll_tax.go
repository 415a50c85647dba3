package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/kashiee/HRMS/internal/taxyear"
)

// TaxBandAmount records how much annual taxable income landed in one
// band and the tax it produced.
type TaxBandAmount struct {
	Name    string
	Rate    decimal.Decimal
	Taxable decimal.Decimal
	Tax     decimal.Decimal
}

// TaxResult carries the period deduction plus the annual working that
// produced it.
type TaxResult struct {
	Period        decimal.Decimal
	Annual        decimal.Decimal
	AnnualPay     decimal.Decimal
	Allowance     decimal.Decimal
	AnnualTaxable decimal.Decimal
	Bands         []TaxBandAmount
}

// IncomeTax computes PAYE for one period. Standard codes annualise
// the period gross, subtract the code's allowance and fill the bands
// bottom up; the annual tax is then divided back across the year's
// periods. Fixed-rate codes tax the period gross directly.
func IncomeTax(cfg *taxyear.Config, code ParsedTaxCode, periodGross decimal.Decimal, periodsPerYear int) TaxResult {
	periods := decimal.NewFromInt(int64(periodsPerYear))
	switch code.Kind {
	case TaxCodeNoTax:
		return TaxResult{Period: decimal.Zero, AnnualPay: periodGross.Mul(periods)}
	case TaxCodeFixedRate:
		return TaxResult{
			Period:    periodGross.Mul(code.Rate),
			Annual:    periodGross.Mul(code.Rate).Mul(periods),
			AnnualPay: periodGross.Mul(periods),
		}
	}

	annualPay := periodGross.Mul(periods)
	taxable := annualPay.Sub(code.Allowance)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	bands := fillBands(cfg.BandsFor(code.Scottish()), taxable)

	annual := decimal.Zero
	for _, b := range bands {
		annual = annual.Add(b.Tax)
	}
	return TaxResult{
		Period:        annual.Div(periods),
		Annual:        annual,
		AnnualPay:     annualPay,
		Allowance:     code.Allowance,
		AnnualTaxable: taxable,
		Bands:         bands,
	}
}

// fillBands distributes taxable income across the band table from the
// bottom. Bands above the income get a zero slice.
func fillBands(table []taxyear.TaxBand, taxable decimal.Decimal) []TaxBandAmount {
	out := make([]TaxBandAmount, 0, len(table))
	lower := decimal.Zero
	for _, band := range table {
		slice := taxable.Sub(lower)
		if band.UpperTaxable != nil {
			slice = decimal.Min(taxable, *band.UpperTaxable).Sub(lower)
		}
		if slice.IsNegative() {
			slice = decimal.Zero
		}
		out = append(out, TaxBandAmount{
			Name:    band.Name,
			Rate:    band.Rate,
			Taxable: slice,
			Tax:     slice.Mul(band.Rate),
		})
		if band.UpperTaxable != nil {
			lower = *band.UpperTaxable
		}
	}
	return out
}

// TaxBandOccupancy shows how an annual salary spreads over the year's
// bands after the personal allowance; it backs the what-if endpoint
// and ignores tax codes.
type TaxBandOccupancy struct {
	PersonalAllowance decimal.Decimal
	TaxableIncome     decimal.Decimal
	Bands             []TaxBandAmount
	TotalTax          decimal.Decimal
}

// TaxBandsForSalary computes the band occupancy of an annual salary
// using the year's personal allowance and rUK bands.
func TaxBandsForSalary(cfg *taxyear.Config, annualSalary decimal.Decimal) TaxBandOccupancy {
	taxable := annualSalary.Sub(cfg.PersonalAllowance)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	bands := fillBands(cfg.TaxBands, taxable)
	total := decimal.Zero
	for _, b := range bands {
		total = total.Add(b.Tax)
	}
	return TaxBandOccupancy{
		PersonalAllowance: cfg.PersonalAllowance,
		TaxableIncome:     taxable,
		Bands:             bands,
		TotalTax:          total,
	}
}
