package payroll

import (
	"github.com/T3Cread18/Nominix-sub001/engine"
)

// =============================================================================
// STATUTORY DEDUCTIONS - IVSS, FAOV, RPE
// =============================================================================

// DeductionSet holds statutory deductions. Every amount is locked to the
// local currency and must be shown as-is on legal documents.
type DeductionSet struct {
	Gross        engine.LockedAmount
	Pension      engine.LockedAmount
	Housing      engine.LockedAmount
	Unemployment engine.LockedAmount
	Total        engine.LockedAmount
	Rates        engine.DeductionRates
}

// Net is gross minus total deductions, still locked.
func (d *DeductionSet) Net() engine.LockedAmount {
	return engine.Lock(d.Gross.Money().Sub(d.Total.Money()))
}

// ComputeDeductions applies each rate to the gross local salary. Components
// are rounded to cents and Total is the sum of the rounded components.
//
// The gross must already be in engine.LocalCurrency; converting it is the
// caller's job and converting the result is never allowed.
func ComputeDeductions(gross engine.Amount, rates engine.DeductionRates) (*DeductionSet, error) {
	if gross.Currency != engine.LocalCurrency {
		return nil, &engine.CurrencyMismatchError{Field: "gross_local_amount", Expected: engine.LocalCurrency, Got: gross.Currency}
	}
	if gross.IsNegative() {
		return nil, &engine.NegativeAmountError{Field: "gross_local_amount", Amount: gross}
	}

	pension := gross.Mul(rates.Pension).Round()
	housing := gross.Mul(rates.Housing).Round()
	unemployment := gross.Mul(rates.Unemployment).Round()

	return &DeductionSet{
		Gross:        engine.Lock(gross),
		Pension:      engine.Lock(pension),
		Housing:      engine.Lock(housing),
		Unemployment: engine.Lock(unemployment),
		Total:        engine.Lock(pension.Add(housing).Add(unemployment)),
		Rates:        rates,
	}, nil
}
