package taxyear

import (
	"fmt"

	"github.com/shopspring/decimal"

	taxyearerrors "github.com/kashiee/HRMS/internal/taxyear/errors"
)

// TaxBand is one slice of the income tax table. UpperTaxable is the
// cumulative taxable-income ceiling the band runs to; nil marks the
// open-ended top band.
type TaxBand struct {
	Name         string
	UpperTaxable *decimal.Decimal
	Rate         decimal.Decimal
}

// NIThresholds are the annual National Insurance earnings limits.
type NIThresholds struct {
	PrimaryThreshold   decimal.Decimal
	UpperEarningsLimit decimal.Decimal
	SecondaryThreshold decimal.Decimal
}

// NICategoryRates holds the contribution rates behind one category letter.
type NICategoryRates struct {
	EmployeeMainRate  decimal.Decimal // between primary threshold and upper earnings limit
	EmployeeUpperRate decimal.Decimal // above upper earnings limit
	EmployerRate      decimal.Decimal // above the employer threshold

	// EmployerFromUpperLimit delays employer contributions until the upper
	// earnings limit. Used by the under-21 and apprentice categories.
	EmployerFromUpperLimit bool
}

// PensionBand is the auto-enrolment qualifying earnings band.
type PensionBand struct {
	LowerQualifyingEarnings decimal.Decimal
	UpperQualifyingEarnings decimal.Decimal
}

// StudentLoanPlan holds one repayment plan's annual threshold and rate.
type StudentLoanPlan struct {
	AnnualThreshold decimal.Decimal
	Rate            decimal.Decimal
}

// Config is the frozen rate table for one tax year. A Config is built once,
// validated, and never mutated afterwards; calculations receive it
// explicitly instead of reading shared state.
type Config struct {
	Year              string
	PersonalAllowance decimal.Decimal
	TaxBands          []TaxBand
	ScottishTaxBands  []TaxBand // empty: Scottish codes fall back to TaxBands
	NI                NIThresholds
	NICategories      map[string]NICategoryRates
	Pension           PensionBand
	StudentLoanPlans  map[string]StudentLoanPlan
}

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
)

// Validate checks the structural invariants of the rate table. A table that
// fails here is a deployment defect, not a caller mistake.
func (c *Config) Validate() error {
	if c.Year == "" {
		return taxyearerrors.InvalidConfig("year is required")
	}
	if c.PersonalAllowance.IsNegative() {
		return taxyearerrors.InvalidConfig("personal allowance cannot be negative")
	}

	if err := validateBands("tax_bands", c.TaxBands); err != nil {
		return err
	}
	if len(c.ScottishTaxBands) > 0 {
		if err := validateBands("scottish_tax_bands", c.ScottishTaxBands); err != nil {
			return err
		}
	}

	if c.NI.PrimaryThreshold.IsNegative() || c.NI.SecondaryThreshold.IsNegative() {
		return taxyearerrors.InvalidConfig("national insurance thresholds cannot be negative")
	}
	if c.NI.UpperEarningsLimit.LessThan(c.NI.PrimaryThreshold) {
		return taxyearerrors.InvalidConfig("upper earnings limit is below the primary threshold")
	}

	if len(c.NICategories) == 0 {
		return taxyearerrors.InvalidConfig("at least one national insurance category is required")
	}
	for letter, rates := range c.NICategories {
		if !isRate(rates.EmployeeMainRate) || !isRate(rates.EmployeeUpperRate) || !isRate(rates.EmployerRate) {
			return taxyearerrors.InvalidConfig(fmt.Sprintf("ni category %q has a rate outside [0, 1]", letter))
		}
	}

	if c.Pension.UpperQualifyingEarnings.LessThan(c.Pension.LowerQualifyingEarnings) {
		return taxyearerrors.InvalidConfig("pension qualifying band is inverted")
	}

	for plan, p := range c.StudentLoanPlans {
		if p.AnnualThreshold.IsNegative() {
			return taxyearerrors.InvalidConfig(fmt.Sprintf("student loan plan %q has a negative threshold", plan))
		}
		if !isRate(p.Rate) {
			return taxyearerrors.InvalidConfig(fmt.Sprintf("student loan plan %q has a rate outside [0, 1]", plan))
		}
	}

	return nil
}

// BandsFor returns the band table used by the given jurisdiction. Scottish
// rates may be absent from a year's table, in which case the rUK bands
// apply.
func (c *Config) BandsFor(scottish bool) []TaxBand {
	if scottish && len(c.ScottishTaxBands) > 0 {
		return c.ScottishTaxBands
	}
	return c.TaxBands
}

func validateBands(name string, bands []TaxBand) error {
	if len(bands) == 0 {
		return taxyearerrors.InvalidConfig(name + " must not be empty")
	}

	prev := zero
	for i, b := range bands {
		if !isRate(b.Rate) {
			return taxyearerrors.InvalidConfig(fmt.Sprintf("%s[%d] rate is outside [0, 1]", name, i))
		}
		if b.UpperTaxable == nil {
			if i != len(bands)-1 {
				return taxyearerrors.InvalidConfig(fmt.Sprintf("%s[%d] is unbounded but not the top band", name, i))
			}
			continue
		}
		if !b.UpperTaxable.GreaterThan(prev) {
			return taxyearerrors.InvalidConfig(fmt.Sprintf("%s[%d] upper bound does not ascend", name, i))
		}
		prev = *b.UpperTaxable
	}

	return nil
}

func isRate(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(one)
}
