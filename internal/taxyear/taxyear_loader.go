package taxyear

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	taxyearerrors "github.com/kashiee/HRMS/internal/taxyear/errors"
)

// YAML shapes mirror Config but carry money and rates as strings so values
// like "0.0585" survive the trip without float intermediates.

type yamlTaxBand struct {
	Name         string `yaml:"name"`
	UpperTaxable string `yaml:"upper_taxable"`
	Rate         string `yaml:"rate"`
}

type yamlNIThresholds struct {
	PrimaryThreshold   string `yaml:"primary_threshold"`
	UpperEarningsLimit string `yaml:"upper_earnings_limit"`
	SecondaryThreshold string `yaml:"secondary_threshold"`
}

type yamlNICategory struct {
	EmployeeMainRate       string `yaml:"employee_main_rate"`
	EmployeeUpperRate      string `yaml:"employee_upper_rate"`
	EmployerRate           string `yaml:"employer_rate"`
	EmployerFromUpperLimit bool   `yaml:"employer_from_upper_limit"`
}

type yamlPensionBand struct {
	LowerQualifyingEarnings string `yaml:"lower_qualifying_earnings"`
	UpperQualifyingEarnings string `yaml:"upper_qualifying_earnings"`
}

type yamlStudentLoanPlan struct {
	AnnualThreshold string `yaml:"annual_threshold"`
	Rate            string `yaml:"rate"`
}

type yamlConfig struct {
	Year              string                         `yaml:"year"`
	PersonalAllowance string                         `yaml:"personal_allowance"`
	TaxBands          []yamlTaxBand                  `yaml:"tax_bands"`
	ScottishTaxBands  []yamlTaxBand                  `yaml:"scottish_tax_bands"`
	NI                yamlNIThresholds               `yaml:"national_insurance"`
	NICategories      map[string]yamlNICategory      `yaml:"ni_categories"`
	Pension           yamlPensionBand                `yaml:"pension"`
	StudentLoanPlans  map[string]yamlStudentLoanPlan `yaml:"student_loan_plans"`
}

// LoadFile parses one tax year table from YAML and validates it.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var src yamlConfig
	if err := yaml.Unmarshal(raw, &src); err != nil {
		return nil, taxyearerrors.InvalidConfig(fmt.Sprintf("%s: %v", filepath.Base(path), err))
	}

	cfg, err := src.toConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDir loads every *.yaml / *.yml table in dir, sorted by file name so
// later files win when years collide.
func LoadDir(dir string) ([]*Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	configs := make([]*Config, 0, len(names))
	for _, name := range names {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (y yamlConfig) toConfig() (*Config, error) {
	cfg := &Config{
		Year:         y.Year,
		NICategories: make(map[string]NICategoryRates, len(y.NICategories)),
	}

	var err error
	if cfg.PersonalAllowance, err = parseAmount("personal_allowance", y.PersonalAllowance); err != nil {
		return nil, err
	}

	if cfg.TaxBands, err = parseBands("tax_bands", y.TaxBands); err != nil {
		return nil, err
	}
	if len(y.ScottishTaxBands) > 0 {
		if cfg.ScottishTaxBands, err = parseBands("scottish_tax_bands", y.ScottishTaxBands); err != nil {
			return nil, err
		}
	}

	if cfg.NI.PrimaryThreshold, err = parseAmount("national_insurance.primary_threshold", y.NI.PrimaryThreshold); err != nil {
		return nil, err
	}
	if cfg.NI.UpperEarningsLimit, err = parseAmount("national_insurance.upper_earnings_limit", y.NI.UpperEarningsLimit); err != nil {
		return nil, err
	}
	if cfg.NI.SecondaryThreshold, err = parseAmount("national_insurance.secondary_threshold", y.NI.SecondaryThreshold); err != nil {
		return nil, err
	}

	for letter, src := range y.NICategories {
		var rates NICategoryRates
		if rates.EmployeeMainRate, err = parseAmount("ni_categories."+letter+".employee_main_rate", src.EmployeeMainRate); err != nil {
			return nil, err
		}
		if rates.EmployeeUpperRate, err = parseAmount("ni_categories."+letter+".employee_upper_rate", src.EmployeeUpperRate); err != nil {
			return nil, err
		}
		if rates.EmployerRate, err = parseAmount("ni_categories."+letter+".employer_rate", src.EmployerRate); err != nil {
			return nil, err
		}
		rates.EmployerFromUpperLimit = src.EmployerFromUpperLimit
		cfg.NICategories[strings.ToUpper(letter)] = rates
	}

	if cfg.Pension.LowerQualifyingEarnings, err = parseAmount("pension.lower_qualifying_earnings", y.Pension.LowerQualifyingEarnings); err != nil {
		return nil, err
	}
	if cfg.Pension.UpperQualifyingEarnings, err = parseAmount("pension.upper_qualifying_earnings", y.Pension.UpperQualifyingEarnings); err != nil {
		return nil, err
	}

	if len(y.StudentLoanPlans) > 0 {
		cfg.StudentLoanPlans = make(map[string]StudentLoanPlan, len(y.StudentLoanPlans))
		for plan, src := range y.StudentLoanPlans {
			var p StudentLoanPlan
			if p.AnnualThreshold, err = parseAmount("student_loan_plans."+plan+".annual_threshold", src.AnnualThreshold); err != nil {
				return nil, err
			}
			if p.Rate, err = parseAmount("student_loan_plans."+plan+".rate", src.Rate); err != nil {
				return nil, err
			}
			cfg.StudentLoanPlans[strings.ToLower(plan)] = p
		}
	}

	return cfg, nil
}

func parseBands(name string, src []yamlTaxBand) ([]TaxBand, error) {
	bands := make([]TaxBand, 0, len(src))
	for i, b := range src {
		band := TaxBand{Name: b.Name}

		rate, err := parseAmount(fmt.Sprintf("%s[%d].rate", name, i), b.Rate)
		if err != nil {
			return nil, err
		}
		band.Rate = rate

		// An empty upper bound marks the open-ended top band.
		if b.UpperTaxable != "" {
			upper, err := parseAmount(fmt.Sprintf("%s[%d].upper_taxable", name, i), b.UpperTaxable)
			if err != nil {
				return nil, err
			}
			band.UpperTaxable = &upper
		}

		bands = append(bands, band)
	}
	return bands, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, taxyearerrors.InvalidConfigValue(field, value)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, taxyearerrors.InvalidConfigValue(field, value)
	}
	return d, nil
}
