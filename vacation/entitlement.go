package vacation

import "github.com/T3Cread18/Nominix-sub001/engine"

// =============================================================================
// ENTITLEMENT - Statutory vacation days by seniority
// =============================================================================

const (
	baseVacationDays     = 15
	maxExtraVacationDays = 15
	baseBonusDays        = 15
	maxBonusDays         = 30
)

// Entitlement is what an employee has earned for the current service year.
type Entitlement struct {
	CompletedYears int

	// VacationDays are working days of paid rest: 15 after the first year
	// plus one per additional year, at most 15 extra.
	VacationDays int

	// BonusDays are salary days paid as vacation bonus: 15 plus one per
	// additional year, at most 30.
	BonusDays int
}

// EntitlementAt computes the entitlement on asOf for an employee hired on
// hire. Before the first anniversary nothing is owed.
func EntitlementAt(hire, asOf engine.Date) Entitlement {
	years := engine.ServicePeriod{Hire: hire, Termination: asOf}.CompletedYears()
	if years < 1 {
		return Entitlement{CompletedYears: years}
	}

	extra := years - 1
	return Entitlement{
		CompletedYears: years,
		VacationDays:   baseVacationDays + min(extra, maxExtraVacationDays),
		BonusDays:      min(baseBonusDays+extra, maxBonusDays),
	}
}
