package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T3Cread18/Nominix-sub001/engine"
	"github.com/T3Cread18/Nominix-sub001/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func usd(s string) engine.Amount { return engine.MustAmount(s, engine.CurrencyUSD) }
func ves(s string) engine.Amount { return engine.MustAmount(s, engine.CurrencyVES) }
func dec(s string) decimal.Decimal { return engine.MustParseDecimal(s) }

func rate(s string) engine.ExchangeRate {
	return engine.NewExchangeRate(engine.NewDate(2024, time.January, 15), dec(s))
}

func assertAmount(t *testing.T, want engine.Amount, got engine.Amount, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, want.Equal(got), "expected %s, got %s %v", want, got, msgAndArgs)
}

// =============================================================================
// SPLIT MODES
// =============================================================================

func TestSplitPackage_Percentage(t *testing.T) {
	// GIVEN: 500 USD at 60 VES/USD, 30% base, 40 USD meal benefit
	// THEN: total 30000, meal 2400, base 9000, bonus 18600
	p, err := payroll.SplitPackage(usd("500"), rate("60"),
		engine.SplitPolicy{Mode: engine.SplitPercentage, Parameter: dec("30")}, usd("40"))
	require.NoError(t, err)

	assertAmount(t, ves("30000"), p.TotalLocal)
	assertAmount(t, ves("2400"), p.MealBenefitLocal)
	assertAmount(t, ves("9000"), p.BaseLocal)
	assertAmount(t, ves("18600"), p.BonusLocal)
	assertAmount(t, p.TotalLocal, p.Sum())
	assert.False(t, p.Clamped())
}

func TestSplitPackage_FixedBase(t *testing.T) {
	p, err := payroll.SplitPackage(usd("500"), rate("60"),
		engine.SplitPolicy{Mode: engine.SplitFixedBase, Parameter: dec("150")}, usd("40"))
	require.NoError(t, err)

	assertAmount(t, ves("9000"), p.BaseLocal)
	assertAmount(t, ves("18600"), p.BonusLocal)
	assert.False(t, p.Clamped())
}

func TestSplitPackage_FixedBonus(t *testing.T) {
	// base = 30000 - 300*60 = 12000; bonus residual = 30000 - 12000 - 2400
	p, err := payroll.SplitPackage(usd("500"), rate("60"),
		engine.SplitPolicy{Mode: engine.SplitFixedBonus, Parameter: dec("300")}, usd("40"))
	require.NoError(t, err)

	assertAmount(t, ves("12000"), p.BaseLocal)
	assertAmount(t, ves("15600"), p.BonusLocal)
	assertAmount(t, p.TotalLocal, p.Sum())
}

func TestSplitPackage_FixedBonusNegativeBaseUsesConfiguredFloor(t *testing.T) {
	// GIVEN: fixed bonus (150 USD) larger than the whole package (100 USD)
	// THEN: base is floored at the configured minimum, not a literal
	p, err := payroll.SplitPackage(usd("100"), rate("60"), engine.SplitPolicy{
		Mode:        engine.SplitFixedBonus,
		Parameter:   dec("150"),
		MinimumBase: dec("130"),
	}, usd("40"))
	require.NoError(t, err)

	assert.True(t, p.BaseFloored)
	assert.True(t, p.Clamped())
	assertAmount(t, ves("130"), p.BaseLocal)
	assertAmount(t, ves("3470"), p.BonusLocal)
}

func TestSplitPackage_OverAllocationClampsBonusToZero(t *testing.T) {
	// GIVEN: 100% base plus a meal benefit
	// THEN: bonus is zero and the components exceed the total by the meal benefit
	p, err := payroll.SplitPackage(usd("50"), rate("60"),
		engine.SplitPolicy{Mode: engine.SplitPercentage, Parameter: dec("100")}, usd("40"))
	require.NoError(t, err)

	assert.True(t, p.BonusClamped)
	assert.True(t, p.BonusLocal.IsZero())
	assertAmount(t, ves("5400"), p.Sum())
	assertAmount(t, ves("2400"), p.Excess())
}

func TestSplitPackage_RoundsToCentsAndKeepsSum(t *testing.T) {
	p, err := payroll.SplitPackage(usd("333.33"), rate("36.5721"),
		engine.SplitPolicy{Mode: engine.SplitPercentage, Parameter: dec("33.33")}, usd("40"))
	require.NoError(t, err)

	assertAmount(t, ves("12190.58"), p.TotalLocal)
	assertAmount(t, ves("1462.88"), p.MealBenefitLocal)
	assertAmount(t, ves("4063.12"), p.BaseLocal)
	assertAmount(t, ves("6664.58"), p.BonusLocal)
	assertAmount(t, p.TotalLocal, p.Sum())
}

func TestSplitPackage_PercentageSumInvariant(t *testing.T) {
	totals := []string{"120", "250.5", "500", "777.77", "1999.99"}
	rates := []string{"36.06", "40.1234", "60"}

	for _, total := range totals {
		for _, r := range rates {
			for pct := 0; pct <= 60; pct += 5 {
				p, err := payroll.SplitPackage(usd(total), rate(r),
					engine.SplitPolicy{Mode: engine.SplitPercentage, Parameter: decimal.NewFromInt(int64(pct))}, usd("40"))
				require.NoError(t, err)
				if p.Clamped() {
					continue
				}
				require.True(t, p.Sum().Equal(p.TotalLocal), "total %s rate %s pct %d: %s != %s", total, r, pct, p.Sum(), p.TotalLocal)
				require.False(t, p.BonusLocal.IsNegative())
			}
		}
	}
}

func TestSplitForPolicy(t *testing.T) {
	policy := engine.CompanyPolicy{
		ReferenceCurrency:    engine.CurrencyUSD,
		LocalCurrency:        engine.CurrencyVES,
		Split:                engine.SplitPolicy{Mode: engine.SplitPercentage, Parameter: dec("30")},
		MealBenefitReference: dec("40"),
	}

	p, err := payroll.SplitForPolicy(usd("500"), rate("60"), policy)
	require.NoError(t, err)
	assertAmount(t, ves("18600"), p.BonusLocal)
}

// =============================================================================
// FAILURES
// =============================================================================

func TestSplitPackage_Errors(t *testing.T) {
	pct := engine.SplitPolicy{Mode: engine.SplitPercentage, Parameter: dec("30")}

	tests := []struct {
		name  string
		total engine.Amount
		rate  engine.ExchangeRate
		split engine.SplitPolicy
		meal  engine.Amount
		want  error
	}{
		{"zero rate", usd("500"), rate("0"), pct, usd("40"), engine.ErrInvalidRate},
		{"negative rate", usd("500"), rate("-60"), pct, usd("40"), engine.ErrInvalidRate},
		{"negative total", usd("-1"), rate("60"), pct, usd("40"), engine.ErrInvalidPackage},
		{"unknown mode", usd("500"), rate("60"), engine.SplitPolicy{Mode: "half"}, usd("40"), engine.ErrInvalidPackage},
		{"percentage above 100", usd("500"), rate("60"), engine.SplitPolicy{Mode: engine.SplitPercentage, Parameter: dec("120")}, usd("40"), engine.ErrInvalidPackage},
		{"negative parameter", usd("500"), rate("60"), engine.SplitPolicy{Mode: engine.SplitFixedBase, Parameter: dec("-5")}, usd("40"), engine.ErrInvalidPackage},
		{"total in local currency", ves("500"), rate("60"), pct, usd("40"), engine.ErrCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := payroll.SplitPackage(tt.total, tt.rate, tt.split, tt.meal)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
