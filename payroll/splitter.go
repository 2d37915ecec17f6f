/*
Package payroll implements the monthly compensation arithmetic: splitting a
contracted total package into its legally distinct components, and applying
statutory deductions to a gross local-currency salary.

SPLIT ALGORITHM:
  Given a total package T (reference currency), rate R (local per reference)
  and meal-benefit reference amount M:

    total_local = T * R
    meal_local  = M * R
    base_local  = by mode (percentage, fixed_base, fixed_bonus)
    bonus_local = total_local - base_local - meal_local   (>= 0)

  Only base_local is salary. The meal benefit and the bonus are non-salary
  and do not affect severance or deductions.

ROUNDING:
  total, meal and base are rounded to cents; the bonus is the exact
  residual, so base + meal + bonus == total_local to the cent unless a
  floor protection (see Package.Clamped) kicked in.

SEE ALSO:
  - engine/policy.go: SplitPolicy and DeductionRates
  - deductions.go: Statutory deductions
  - severance/integral.go: Turns the base salary into an integral daily salary
*/
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

var hundred = decimal.NewFromInt(100)

// Package is a decomposed compensation package. All *Local amounts are in
// the rate's quote currency.
type Package struct {
	Total                engine.Amount
	MealBenefitReference engine.Amount
	Rate                 engine.ExchangeRate
	Split                engine.SplitPolicy

	TotalLocal       engine.Amount
	MealBenefitLocal engine.Amount
	BaseLocal        engine.Amount
	BonusLocal       engine.Amount

	// BaseFloored is set when fixed_bonus left a negative base salary and
	// the configured minimum base was used instead.
	BaseFloored bool

	// BonusClamped is set when base and meal benefit exceeded the total and
	// the bonus was reduced to zero.
	BonusClamped bool
}

// Clamped reports that a floor protection applied. The components may then
// add up to more than TotalLocal; this is intentional, not a rounding error.
func (p *Package) Clamped() bool { return p.BaseFloored || p.BonusClamped }

// Sum is base + meal + bonus.
func (p *Package) Sum() engine.Amount {
	return p.BaseLocal.Add(p.MealBenefitLocal).Add(p.BonusLocal)
}

// Excess is how much Sum exceeds TotalLocal because of clamping.
func (p *Package) Excess() engine.Amount {
	excess := p.Sum().Sub(p.TotalLocal)
	if excess.IsNegative() {
		return excess.Zero()
	}
	return excess
}

// SplitPackage decomposes total into base salary, meal benefit and bonus.
//
// Errors:
//   - *engine.InvalidRateError when the rate is not positive
//   - *engine.InvalidPackageError for a negative total, an unknown mode or
//     an out-of-range parameter
//   - *engine.CurrencyMismatchError when total or meal benefit is not in
//     the rate's base currency
func SplitPackage(total engine.Amount, rate engine.ExchangeRate, split engine.SplitPolicy, mealReference engine.Amount) (*Package, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if total.IsNegative() {
		return nil, &engine.InvalidPackageError{Total: total.Value, Reason: "total amount must not be negative"}
	}
	if err := checkReferenceCurrency("total_amount", total, rate); err != nil {
		return nil, err
	}
	if err := checkReferenceCurrency("meal_benefit_reference_amount", mealReference, rate); err != nil {
		return nil, err
	}
	if mealReference.IsNegative() {
		return nil, &engine.InvalidPackageError{Total: total.Value, Reason: "meal benefit must not be negative"}
	}
	if err := validateSplit(total, split); err != nil {
		return nil, err
	}

	local := rate.Quote
	if local == "" {
		local = engine.LocalCurrency
	}
	toLocal := func(a engine.Amount) engine.Amount {
		return a.Mul(rate.Rate).In(local).Round()
	}

	p := &Package{
		Total:                total,
		MealBenefitReference: mealReference,
		Rate:                 rate,
		Split:                split,
		TotalLocal:           toLocal(total),
		MealBenefitLocal:     toLocal(mealReference),
	}

	param := engine.Amount{Value: split.Parameter, Currency: total.Currency}
	switch split.Mode {
	case engine.SplitPercentage:
		p.BaseLocal = p.TotalLocal.Mul(split.Parameter.Div(hundred)).Round()
	case engine.SplitFixedBase:
		p.BaseLocal = toLocal(param)
	case engine.SplitFixedBonus:
		p.BaseLocal = p.TotalLocal.Sub(toLocal(param))
		if p.BaseLocal.IsNegative() {
			p.BaseLocal = engine.Amount{Value: split.MinimumBase, Currency: local}.Round()
			p.BaseFloored = true
		}
	}

	p.BonusLocal = p.TotalLocal.Sub(p.BaseLocal).Sub(p.MealBenefitLocal)
	if p.BonusLocal.IsNegative() {
		p.BonusLocal = p.BonusLocal.Zero()
		p.BonusClamped = true
	}

	return p, nil
}

// SplitForPolicy splits total with the company's configured split and meal
// benefit.
func SplitForPolicy(total engine.Amount, rate engine.ExchangeRate, policy engine.CompanyPolicy) (*Package, error) {
	return SplitPackage(total, rate, policy.Split, policy.MealBenefit())
}

func checkReferenceCurrency(field string, a engine.Amount, rate engine.ExchangeRate) error {
	if rate.Base != "" && a.Currency != rate.Base {
		return &engine.CurrencyMismatchError{Field: field, Expected: rate.Base, Got: a.Currency}
	}
	return nil
}

func validateSplit(total engine.Amount, split engine.SplitPolicy) error {
	if !split.Mode.Valid() {
		return &engine.InvalidPackageError{Total: total.Value, Reason: "unknown split mode " + string(split.Mode)}
	}
	if split.Parameter.IsNegative() {
		return &engine.InvalidPackageError{Total: total.Value, Reason: "split parameter must not be negative"}
	}
	if split.Mode == engine.SplitPercentage && split.Parameter.GreaterThan(hundred) {
		return &engine.InvalidPackageError{Total: total.Value, Reason: "split percentage must be at most 100"}
	}
	if split.MinimumBase.IsNegative() {
		return &engine.InvalidPackageError{Total: total.Value, Reason: "minimum base must not be negative"}
	}
	return nil
}
