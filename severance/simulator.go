/*
Package severance simulates the settlement owed at termination.

PURPOSE:
  Two legally independent estimates are computed over the same service
  period and the larger one is paid:

  Guarantee method:
    - Quarterly guarantee deposits already accrued in the ledger
    - Plus the amount of accumulated additional (seniority) days
    - Both are inputs; the accrual schedule lives in the payroll ledger

  Retroactive method:
    - 30 days of final integral daily salary per completed year
    - Plus 30 more days when the remaining fraction exceeds half a year

SELECTION:
  The settlement is max(guarantee, retroactive). A tie goes to the
  guarantee method. The comparison is always performed here on the two
  computed amounts; it is not configurable.

PARTIAL RESULTS:
  Without a final integral daily salary the retroactive branch cannot be
  computed. Simulate then returns the guarantee branch with Partial set,
  together with an *engine.InsufficientDataError.

SEE ALSO:
  - integral.go: Integral daily salary from a monthly base salary
  - engine/period.go: ServicePeriod and years of service
*/
package severance

import (
	"github.com/shopspring/decimal"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

// Method identifies which estimate won.
type Method string

const (
	MethodGuarantee   Method = "guarantee"
	MethodRetroactive Method = "retroactive"

	// MethodUndetermined is reported on partial results.
	MethodUndetermined Method = ""
)

const daysPerBlock = 30

var half = decimal.NewFromFloat(0.5)

// Inputs to a settlement simulation. All amounts share one currency.
type Inputs struct {
	HireDate        engine.Date
	TerminationDate engine.Date

	// GuaranteeBalance is the quarterly guarantee ledger balance.
	GuaranteeBalance engine.Amount

	// AdditionalDaysAmount is the money value of accumulated additional days.
	AdditionalDaysAmount engine.Amount

	// FinalIntegralDailySalary may be nil when unknown.
	FinalIntegralDailySalary *engine.Amount
}

// Result of a settlement simulation.
type Result struct {
	ServiceDays    int
	YearsOfService decimal.Decimal

	GuaranteeAmount   engine.Amount
	RetroactiveDays   int
	RetroactiveAmount engine.Amount

	ChosenMethod     Method
	SettlementAmount engine.Amount

	// Partial is set when the retroactive branch could not be computed.
	// ChosenMethod is then undetermined and SettlementAmount is zero.
	Partial bool
}

// Simulate runs both estimates and selects the most favorable to the worker.
func Simulate(in Inputs) (*Result, error) {
	period := engine.ServicePeriod{Hire: in.HireDate, Termination: in.TerminationDate}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	currency := in.GuaranteeBalance.Currency
	if in.AdditionalDaysAmount.Currency != currency {
		return nil, &engine.CurrencyMismatchError{Field: "accumulated_additional_days_amount", Expected: currency, Got: in.AdditionalDaysAmount.Currency}
	}

	res := &Result{
		ServiceDays:     period.Days(),
		YearsOfService:  period.YearsOfService(),
		GuaranteeAmount: GuaranteeAmount(in.GuaranteeBalance, in.AdditionalDaysAmount),
	}

	if in.FinalIntegralDailySalary == nil {
		res.Partial = true
		res.ChosenMethod = MethodUndetermined
		res.RetroactiveAmount = engine.ZeroAmount(currency)
		res.SettlementAmount = engine.ZeroAmount(currency)
		return res, &engine.InsufficientDataError{Field: "final_integral_daily_salary", Branch: string(MethodRetroactive)}
	}

	salary := *in.FinalIntegralDailySalary
	if salary.Currency != currency {
		return nil, &engine.CurrencyMismatchError{Field: "final_integral_daily_salary", Expected: currency, Got: salary.Currency}
	}
	if salary.IsNegative() {
		return nil, &engine.NegativeAmountError{Field: "final_integral_daily_salary", Amount: salary}
	}

	res.RetroactiveDays = RetroactiveDays(res.YearsOfService)
	res.RetroactiveAmount = salary.Mul(decimal.NewFromInt(int64(res.RetroactiveDays))).Round()
	res.ChosenMethod, res.SettlementAmount = MostFavorable(res.GuaranteeAmount, res.RetroactiveAmount)

	return res, nil
}

// GuaranteeAmount is the net guarantee: ledger balance plus additional days.
func GuaranteeAmount(ledgerBalance, additionalDays engine.Amount) engine.Amount {
	return ledgerBalance.Add(additionalDays).Round()
}

// RetroactiveDays is 30 days per completed year plus one more 30-day block
// when the fractional year is strictly greater than one half.
func RetroactiveDays(yearsOfService decimal.Decimal) int {
	if !yearsOfService.IsPositive() {
		return 0
	}
	completed := yearsOfService.Floor()
	days := int(completed.IntPart()) * daysPerBlock
	if yearsOfService.Sub(completed).GreaterThan(half) {
		days += daysPerBlock
	}
	return days
}

// MostFavorable returns the larger amount and the method that produced it.
// Ties go to the guarantee method.
func MostFavorable(guarantee, retroactive engine.Amount) (Method, engine.Amount) {
	if guarantee.GreaterThanOrEqual(retroactive) {
		return MethodGuarantee, guarantee
	}
	return MethodRetroactive, retroactive
}
