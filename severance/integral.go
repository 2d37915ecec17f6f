package severance

import (
	"github.com/shopspring/decimal"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

var (
	daysPerMonth = decimal.NewFromInt(30)
	daysPerYear  = decimal.NewFromInt(360)
)

// Statutory minimums used when a company configures none.
const (
	MinProfitSharingDays = 30
	MinVacationBonusDays = 15
)

// IntegralDailySalary adds the daily share of profit sharing and vacation
// bonus to the normal daily salary:
//
//	daily    = monthly / 30
//	integral = daily + daily*profitSharingDays/360 + daily*vacationBonusDays/360
//
// Day counts below the statutory minimums are raised to them. Only base
// salary belongs in monthlySalary; bonus and meal benefit are non-salary.
func IntegralDailySalary(monthlySalary engine.Amount, profitSharingDays, vacationBonusDays int) (engine.Amount, error) {
	if monthlySalary.IsNegative() {
		return engine.Amount{}, &engine.NegativeAmountError{Field: "monthly_salary", Amount: monthlySalary}
	}
	profitSharingDays = max(profitSharingDays, MinProfitSharingDays)
	vacationBonusDays = max(vacationBonusDays, MinVacationBonusDays)

	daily := monthlySalary.Div(daysPerMonth)
	profitShare := daily.Mul(decimal.NewFromInt(int64(profitSharingDays))).Div(daysPerYear)
	bonusShare := daily.Mul(decimal.NewFromInt(int64(vacationBonusDays))).Div(daysPerYear)

	return daily.Add(profitShare).Add(bonusShare).Round(), nil
}

// IntegralDailySalaryForPolicy uses the company's configured day counts.
func IntegralDailySalaryForPolicy(monthlySalary engine.Amount, policy engine.CompanyPolicy) (engine.Amount, error) {
	return IntegralDailySalary(monthlySalary, policy.ProfitSharingDays, policy.VacationBonusDays)
}
