/*
Package factory provides JSON to Go company-policy conversion.

PURPOSE:
  Converts JSON company policy definitions into engine.CompanyPolicy values.
  Payroll administrators configure split modes, meal benefit and deduction
  rates as JSON, and the factory turns them into validated Go structs the
  calculations can read.

JSON SCHEMA:
  {
    "company_id": "acme",
    "local_currency": "VES",
    "reference_currency": "USD",
    "split": {
      "mode": "percentage",
      "parameter": "30",
      "minimum_base": "130"
    },
    "meal_benefit_reference": "40",
    "deductions": {
      "pension": "0.04",
      "housing": "0.01",
      "unemployment": "0.005"
    },
    "profit_sharing_days": 30,
    "vacation_bonus_days": 15,
    "version": 1
  }

  Decimals may be written as JSON strings or numbers; ToJSON always writes
  strings so values round-trip exactly.

KEY FEATURES:
  - Validates split mode, parameter range and deduction rates
  - Fills missing currencies, day counts and rates with statutory defaults
  - Produces the Venezuelan default preset

USAGE:
  factory := NewPolicyFactory()

  policy, err := factory.ParsePolicy(jsonString)

  // From the statutory preset
  policy, err := factory.ParsePolicy(factory.VenezuelaDefaultJSON("acme"))

SEE ALSO:
  - engine/policy.go: CompanyPolicy type definition
  - store/sqlite/sqlite.go: Persists policies as JSON
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CompanyPolicyJSON is the JSON representation of a company policy.
type CompanyPolicyJSON struct {
	CompanyID            string              `json:"company_id"`
	LocalCurrency        string              `json:"local_currency,omitempty"`
	ReferenceCurrency    string              `json:"reference_currency,omitempty"`
	Split                SplitJSON           `json:"split"`
	MealBenefitReference decimal.Decimal     `json:"meal_benefit_reference"`
	Deductions           *DeductionRatesJSON `json:"deductions,omitempty"`
	ProfitSharingDays    int                 `json:"profit_sharing_days,omitempty"`
	VacationBonusDays    int                 `json:"vacation_bonus_days,omitempty"`
	Version              int                 `json:"version,omitempty"`
}

// SplitJSON represents the package split configuration.
type SplitJSON struct {
	Mode        string          `json:"mode"` // percentage, fixed_base, fixed_bonus
	Parameter   decimal.Decimal `json:"parameter"`
	MinimumBase decimal.Decimal `json:"minimum_base"` // local currency
}

// DeductionRatesJSON represents statutory deduction fractions.
type DeductionRatesJSON struct {
	Pension      decimal.Decimal `json:"pension"`
	Housing      decimal.Decimal `json:"housing"`
	Unemployment decimal.Decimal `json:"unemployment"`
}

// Statutory deduction defaults (IVSS, FAOV, RPE).
var (
	DefaultPensionRate      = decimal.RequireFromString("0.04")
	DefaultHousingRate      = decimal.RequireFromString("0.01")
	DefaultUnemploymentRate = decimal.RequireFromString("0.005")
)

// DefaultRates returns the statutory deduction rates.
func DefaultRates() engine.DeductionRates {
	return engine.DeductionRates{
		Pension:      DefaultPensionRate,
		Housing:      DefaultHousingRate,
		Unemployment: DefaultUnemploymentRate,
	}
}

// =============================================================================
// POLICY FACTORY
// =============================================================================

// PolicyFactory converts JSON policies to Go structs.
type PolicyFactory struct{}

func NewPolicyFactory() *PolicyFactory {
	return &PolicyFactory{}
}

// ParsePolicy parses a JSON string into a CompanyPolicy.
func (f *PolicyFactory) ParsePolicy(jsonStr string) (*engine.CompanyPolicy, error) {
	var pj CompanyPolicyJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return nil, fmt.Errorf("failed to parse policy JSON: %w", err)
	}
	return f.FromJSON(pj)
}

// FromJSON validates pj and converts it to a CompanyPolicy.
func (f *PolicyFactory) FromJSON(pj CompanyPolicyJSON) (*engine.CompanyPolicy, error) {
	if pj.CompanyID == "" {
		return nil, fmt.Errorf("company_id is required")
	}

	policy := &engine.CompanyPolicy{
		CompanyID:            pj.CompanyID,
		LocalCurrency:        parseCurrency(pj.LocalCurrency, engine.LocalCurrency),
		ReferenceCurrency:    parseCurrency(pj.ReferenceCurrency, engine.ReferenceCurrency),
		MealBenefitReference: pj.MealBenefitReference,
		Deductions:           DefaultRates(),
		ProfitSharingDays:    pj.ProfitSharingDays,
		VacationBonusDays:    pj.VacationBonusDays,
		Version:              pj.Version,
	}
	if policy.LocalCurrency == policy.ReferenceCurrency {
		return nil, fmt.Errorf("local and reference currency are both %s", policy.LocalCurrency)
	}
	if policy.MealBenefitReference.IsNegative() {
		return nil, fmt.Errorf("meal_benefit_reference must not be negative")
	}

	split, err := parseSplit(pj.Split)
	if err != nil {
		return nil, err
	}
	policy.Split = split

	if pj.Deductions != nil {
		rates, err := parseRates(*pj.Deductions)
		if err != nil {
			return nil, err
		}
		policy.Deductions = rates
	}

	if policy.ProfitSharingDays < 0 || policy.VacationBonusDays < 0 {
		return nil, fmt.Errorf("day counts must not be negative")
	}
	if policy.Version == 0 {
		policy.Version = 1
	}

	return policy, nil
}

// ToJSON converts a CompanyPolicy to CompanyPolicyJSON.
func (f *PolicyFactory) ToJSON(policy *engine.CompanyPolicy) CompanyPolicyJSON {
	return CompanyPolicyJSON{
		CompanyID:         policy.CompanyID,
		LocalCurrency:     string(policy.LocalCurrency),
		ReferenceCurrency: string(policy.ReferenceCurrency),
		Split: SplitJSON{
			Mode:        string(policy.Split.Mode),
			Parameter:   policy.Split.Parameter,
			MinimumBase: policy.Split.MinimumBase,
		},
		MealBenefitReference: policy.MealBenefitReference,
		Deductions: &DeductionRatesJSON{
			Pension:      policy.Deductions.Pension,
			Housing:      policy.Deductions.Housing,
			Unemployment: policy.Deductions.Unemployment,
		},
		ProfitSharingDays: policy.ProfitSharingDays,
		VacationBonusDays: policy.VacationBonusDays,
		Version:           policy.Version,
	}
}

// Marshal encodes a CompanyPolicy as a JSON string.
func (f *PolicyFactory) Marshal(policy *engine.CompanyPolicy) (string, error) {
	data, err := json.Marshal(f.ToJSON(policy))
	if err != nil {
		return "", fmt.Errorf("failed to encode policy: %w", err)
	}
	return string(data), nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseCurrency(s string, fallback engine.Currency) engine.Currency {
	if s == "" {
		return fallback
	}
	return engine.Currency(s)
}

func parseSplit(sj SplitJSON) (engine.SplitPolicy, error) {
	mode := engine.SplitMode(sj.Mode)
	if sj.Mode == "" {
		mode = engine.SplitPercentage
	}
	if !mode.Valid() {
		return engine.SplitPolicy{}, fmt.Errorf("unknown split mode: %s", sj.Mode)
	}
	if sj.Parameter.IsNegative() {
		return engine.SplitPolicy{}, fmt.Errorf("split parameter must not be negative")
	}
	if mode == engine.SplitPercentage && sj.Parameter.GreaterThan(decimal.NewFromInt(100)) {
		return engine.SplitPolicy{}, fmt.Errorf("split percentage %s exceeds 100", sj.Parameter)
	}
	if sj.MinimumBase.IsNegative() {
		return engine.SplitPolicy{}, fmt.Errorf("minimum_base must not be negative")
	}
	return engine.SplitPolicy{
		Mode:        mode,
		Parameter:   sj.Parameter,
		MinimumBase: sj.MinimumBase,
	}, nil
}

func parseRates(rj DeductionRatesJSON) (engine.DeductionRates, error) {
	one := decimal.NewFromInt(1)
	for name, r := range map[string]decimal.Decimal{
		"pension":      rj.Pension,
		"housing":      rj.Housing,
		"unemployment": rj.Unemployment,
	} {
		if r.IsNegative() || r.GreaterThan(one) {
			return engine.DeductionRates{}, fmt.Errorf("%s rate %s must be between 0 and 1", name, r)
		}
	}
	return engine.DeductionRates{
		Pension:      rj.Pension,
		Housing:      rj.Housing,
		Unemployment: rj.Unemployment,
	}, nil
}

// =============================================================================
// PRESET POLICIES
// =============================================================================

// VenezuelaDefaultJSON returns the statutory preset: 30% of the package as
// base salary with a 130 VES floor, a 40 USD meal benefit, IVSS/FAOV/RPE at
// 4%, 1% and 0.5%, and the minimum profit-sharing and vacation-bonus days.
func VenezuelaDefaultJSON(companyID string) string {
	return fmt.Sprintf(`{
  "company_id": %q,
  "local_currency": "VES",
  "reference_currency": "USD",
  "split": {"mode": "percentage", "parameter": "30", "minimum_base": "130"},
  "meal_benefit_reference": "40",
  "deductions": {"pension": "0.04", "housing": "0.01", "unemployment": "0.005"},
  "profit_sharing_days": 30,
  "vacation_bonus_days": 15,
  "version": 1
}`, companyID)
}
