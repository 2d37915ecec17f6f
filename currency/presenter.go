// Package currency converts monetary values between the computation currency
// and a presentation currency using a point-in-time exchange rate.
//
// Statutory deductions are engine.LockedAmount values. Convert does not
// accept them at all, and Present hands them back unchanged with a warning,
// so legal documents always show deductions in the mandated currency.
package currency

import (
	"fmt"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

// Convert converts amount to the target currency with rate. Same-currency
// conversion is the identity. Base→Quote multiplies, Quote→Base divides.
// The result is rounded to cents.
func Convert(amount engine.Amount, to engine.Currency, rate engine.ExchangeRate) (engine.Amount, error) {
	if amount.Currency == to {
		return amount, nil
	}
	if err := rate.Validate(); err != nil {
		return engine.Amount{}, err
	}

	switch {
	case amount.Currency == rate.Base && to == rate.Quote:
		return amount.Mul(rate.Rate).In(to).Round(), nil
	case amount.Currency == rate.Quote && to == rate.Base:
		return amount.Div(rate.Rate).In(to).Round(), nil
	default:
		return engine.Amount{}, &engine.UnsupportedConversionError{From: amount.Currency, To: to, Rate: rate}
	}
}

// =============================================================================
// PRESENTATION
// =============================================================================

type WarningCode string

const WarnCurrencyLocked WarningCode = "currency_locked"

type Warning struct {
	Code    WarningCode
	Message string
}

// Presentation is a value ready to be shown.
type Presentation struct {
	Amount    engine.Amount
	Original  engine.Amount
	Converted bool
	Locked    bool
	Warning   *Warning
}

// Present shows value in the target currency. Locked values are returned
// unchanged and carry a currency_locked warning instead of an error.
func Present(value engine.Presentable, to engine.Currency, rate engine.ExchangeRate) (Presentation, error) {
	original := value.Money()
	if value.CurrencyLocked() {
		p := Presentation{Amount: original, Original: original, Locked: true}
		if original.Currency != to {
			p.Warning = &Warning{
				Code:    WarnCurrencyLocked,
				Message: fmt.Sprintf("%s is a statutory amount and is shown in %s, not %s", original, original.Currency, to),
			}
		}
		return p, nil
	}

	converted, err := Convert(original, to, rate)
	if err != nil {
		return Presentation{}, err
	}
	return Presentation{
		Amount:    converted,
		Original:  original,
		Converted: original.Currency != to,
	}, nil
}

// Presenter presents many values with one target currency and rate and
// collects the warnings raised along the way.
type Presenter struct {
	To       engine.Currency
	Rate     engine.ExchangeRate
	Warnings []Warning
}

func NewPresenter(to engine.Currency, rate engine.ExchangeRate) *Presenter {
	return &Presenter{To: to, Rate: rate}
}

func (p *Presenter) Present(value engine.Presentable) (Presentation, error) {
	out, err := Present(value, p.To, p.Rate)
	if err != nil {
		return Presentation{}, err
	}
	if out.Warning != nil {
		p.Warnings = append(p.Warnings, *out.Warning)
	}
	return out, nil
}
