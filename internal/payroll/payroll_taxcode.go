package payroll

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	payrollerrors "github.com/kashiee/HRMS/internal/payroll/errors"
)

// TaxCodeKind classifies how a tax code drives the calculation.
type TaxCodeKind int

const (
	// TaxCodeStandard codes (1257L, 0T) carry an allowance and use
	// the rUK band table.
	TaxCodeStandard TaxCodeKind = iota
	// TaxCodeScottishStandard codes (S1257L, S0T) carry an allowance
	// and use the Scottish band table when the year defines one.
	TaxCodeScottishStandard
	// TaxCodeFixedRate codes (BR, D0, D1 and Scottish variants) tax
	// the whole period gross at a single rate with no allowance.
	TaxCodeFixedRate
	// TaxCodeNoTax (NT) deducts nothing.
	TaxCodeNoTax
)

var (
	basicFixedRate      = decimal.RequireFromString("0.20")
	higherFixedRate     = decimal.RequireFromString("0.40")
	additionalFixedRate = decimal.RequireFromString("0.45")
)

var fixedRateCodes = map[string]decimal.Decimal{
	"BR":  basicFixedRate,
	"D0":  higherFixedRate,
	"D1":  additionalFixedRate,
	"SBR": basicFixedRate,
	"SD0": higherFixedRate,
	"SD1": additionalFixedRate,
}

// ParsedTaxCode is the normalised form of an HMRC tax code.
type ParsedTaxCode struct {
	Code      string
	Kind      TaxCodeKind
	Allowance decimal.Decimal
	Rate      decimal.Decimal
}

// Scottish reports whether the Scottish band table applies.
func (p ParsedTaxCode) Scottish() bool {
	return p.Kind == TaxCodeScottishStandard
}

// ParseTaxCode normalises and classifies a tax code. Numeric codes
// encode the annual allowance as digits x 10, so 1257L means 12,570.
func ParseTaxCode(raw string) (ParsedTaxCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return ParsedTaxCode{}, payrollerrors.InvalidTaxCode(raw)
	}
	if code == "NT" || code == "SNT" {
		return ParsedTaxCode{Code: code, Kind: TaxCodeNoTax}, nil
	}
	if rate, ok := fixedRateCodes[code]; ok {
		return ParsedTaxCode{Code: code, Kind: TaxCodeFixedRate, Rate: rate}, nil
	}

	kind := TaxCodeStandard
	rest := code
	if strings.HasPrefix(rest, "S") {
		kind = TaxCodeScottishStandard
		rest = rest[1:]
	}
	if rest == "0T" {
		return ParsedTaxCode{Code: code, Kind: kind}, nil
	}
	digits, ok := strings.CutSuffix(rest, "L")
	if !ok || digits == "" || len(digits) > 4 || !isDigits(digits) {
		return ParsedTaxCode{}, payrollerrors.InvalidTaxCode(raw)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return ParsedTaxCode{}, payrollerrors.InvalidTaxCode(raw)
	}
	return ParsedTaxCode{
		Code:      code,
		Kind:      kind,
		Allowance: decimal.NewFromInt(int64(n) * 10),
	}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
