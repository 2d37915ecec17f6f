/*
policy.go - Company compensation policy

PURPOSE:
  Defines the company-configured rules the calculations read but never
  compute: how a total package splits into base salary and bonus, the
  statutory meal-benefit reference amount, and the statutory deduction
  rates. A CompanyPolicy is supplied per call by a policy provider.

SPLIT MODES:
  percentage:
    - Base salary is a percentage of the total package
    - Example: 30% of 500 USD at 60 VES/USD = 9000 VES base

  fixed_base:
    - Base salary is a fixed reference-currency amount
    - Example: 150 USD at 60 VES/USD = 9000 VES base

  fixed_bonus:
    - The bonus is fixed; base salary is what remains
    - A negative remainder is floored at MinimumBase (local currency)

DEDUCTION RATES:
  Fractions of gross local salary:
    Pension      (IVSS)  e.g. 0.04
    Housing      (FAOV)  e.g. 0.01
    Unemployment (RPE)   e.g. 0.005

SEE ALSO:
  - factory/policy.go: JSON configuration for policies
  - payroll/splitter.go: Applies SplitPolicy
  - payroll/deductions.go: Applies DeductionRates
*/
package engine

import "github.com/shopspring/decimal"

// SplitMode selects how a total package is decomposed.
type SplitMode string

const (
	SplitPercentage SplitMode = "percentage"
	SplitFixedBase  SplitMode = "fixed_base"
	SplitFixedBonus SplitMode = "fixed_bonus"
)

func (m SplitMode) Valid() bool {
	switch m {
	case SplitPercentage, SplitFixedBase, SplitFixedBonus:
		return true
	}
	return false
}

// SplitPolicy configures the package splitter.
type SplitPolicy struct {
	Mode SplitMode

	// Parameter is a percentage (0-100) in percentage mode, otherwise a
	// reference-currency amount.
	Parameter decimal.Decimal

	// MinimumBase is the local-currency floor applied when fixed_bonus
	// leaves a negative base salary (typically the statutory minimum wage).
	MinimumBase decimal.Decimal
}

// DeductionRates are the statutory deduction fractions.
type DeductionRates struct {
	Pension      decimal.Decimal
	Housing      decimal.Decimal
	Unemployment decimal.Decimal
}

// CompanyPolicy bundles everything a company configures for the engine.
type CompanyPolicy struct {
	CompanyID         string
	LocalCurrency     Currency
	ReferenceCurrency Currency

	Split SplitPolicy

	// MealBenefitReference is the monthly meal benefit (cestaticket) in
	// ReferenceCurrency.
	MealBenefitReference decimal.Decimal

	Deductions DeductionRates

	// Profit-sharing and vacation-bonus days feed the integral salary used
	// for severance.
	ProfitSharingDays int
	VacationBonusDays int

	Version int
}

// MealBenefit returns the meal benefit as a reference-currency Amount.
func (p CompanyPolicy) MealBenefit() Amount {
	return Amount{Value: p.MealBenefitReference, Currency: p.ReferenceCurrency}
}
