/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	collaborator data: a company policy, published exchange rates and the
	holiday calendar. Each scenario shows one behavior of the engine.

AVAILABLE SCENARIOS:

	statutory-default: 30% base split, 40 USD meal benefit, national holidays
	fixed-base:        Base salary fixed at 150 USD
	fixed-bonus-floor: Fixed 350 USD bonus on a small package, base floored
	holiday-heavy:     Company holidays around Carnival and Holy Week

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create the company policy via factory
 3. Publish exchange rates
 4. Seed national and company holidays

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "fixed-bonus-floor"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Collaborator endpoints
  - factory/policy.go: Policy JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/T3Cread18/Nominix-sub001/engine"
	"github.com/T3Cread18/Nominix-sub001/factory"
)

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CompanyID   string `json:"company_id"`
}

// DemoCompanyID is the company every scenario configures.
const DemoCompanyID = "demo"

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "statutory-default",
		Name:        "Statutory Default",
		Description: "30% base salary split, 40 USD meal benefit, IVSS/FAOV/RPE at 4/1/0.5%",
		CompanyID:   DemoCompanyID,
	},
	{
		ID:          "fixed-base",
		Name:        "Fixed Base Salary",
		Description: "Base salary fixed at 150 USD; the bonus absorbs rate changes",
		CompanyID:   DemoCompanyID,
	},
	{
		ID:          "fixed-bonus-floor",
		Name:        "Fixed Bonus With Floor",
		Description: "Fixed 350 USD bonus; small packages fall back to the 130 VES minimum base",
		CompanyID:   DemoCompanyID,
	},
	{
		ID:          "holiday-heavy",
		Name:        "Holiday-Heavy Calendar",
		Description: "Carnival and Holy Week company holidays stretch vacation windows",
		CompanyID:   DemoCompanyID,
	},
}

// Rates published by every scenario (VES per USD).
var scenarioRates = []struct {
	asOf engine.Date
	rate string
}{
	{engine.NewDate(2024, time.January, 15), "36.5721"},
	{engine.NewDate(2024, time.June, 3), "36.4420"},
	{engine.NewDate(2025, time.January, 6), "52.0200"},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var policyJSON string
	var companyHolidays []engine.Holiday
	switch req.ScenarioID {
	case "statutory-default":
		policyJSON = factory.VenezuelaDefaultJSON(DemoCompanyID)
	case "fixed-base":
		policyJSON = splitPolicyJSON("fixed_base", "150")
	case "fixed-bonus-floor":
		policyJSON = splitPolicyJSON("fixed_bonus", "350")
	case "holiday-heavy":
		policyJSON = factory.VenezuelaDefaultJSON(DemoCompanyID)
		companyHolidays = holidayHeavyCalendar()
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentScenario = ""

	if err := h.Store.Reset(ctx); err != nil {
		h.writeEngineError(w, r, "Failed to reset database", err)
		return
	}
	if err := h.loadScenario(ctx, policyJSON, companyHolidays); err != nil {
		h.writeEngineError(w, r, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadScenario(ctx context.Context, policyJSON string, companyHolidays []engine.Holiday) error {
	policy, err := h.PolicyFactory.ParsePolicy(policyJSON)
	if err != nil {
		return err
	}
	if _, err := h.Store.SavePolicy(ctx, policy); err != nil {
		return err
	}

	for _, sr := range scenarioRates {
		if err := h.Store.SaveRate(ctx, engine.NewExchangeRate(sr.asOf, engine.MustParseDecimal(sr.rate))); err != nil {
			return err
		}
	}

	if _, err := h.Store.SeedNationalHolidays(ctx); err != nil {
		return err
	}
	for _, hol := range companyHolidays {
		if _, err := h.Store.SaveHoliday(ctx, hol); err != nil {
			return err
		}
	}
	return nil
}

// splitPolicyJSON is the statutory preset with a different split.
func splitPolicyJSON(mode, parameter string) string {
	return fmt.Sprintf(`{
  "company_id": %q,
  "split": {"mode": %q, "parameter": %q, "minimum_base": "130"},
  "meal_benefit_reference": "40",
  "profit_sharing_days": 30,
  "vacation_bonus_days": 15
}`, DemoCompanyID, mode, parameter)
}

func holidayHeavyCalendar() []engine.Holiday {
	days := []struct {
		date engine.Date
		name string
	}{
		{engine.NewDate(2024, time.February, 12), "Carnival Monday"},
		{engine.NewDate(2024, time.February, 13), "Carnival Tuesday"},
		{engine.NewDate(2024, time.March, 28), "Holy Thursday"},
		{engine.NewDate(2024, time.March, 29), "Good Friday"},
		{engine.NewDate(2025, time.March, 3), "Carnival Monday"},
		{engine.NewDate(2025, time.March, 4), "Carnival Tuesday"},
		{engine.NewDate(2025, time.April, 17), "Holy Thursday"},
		{engine.NewDate(2025, time.April, 18), "Good Friday"},
	}

	out := make([]engine.Holiday, 0, len(days))
	for _, d := range days {
		out = append(out, engine.Holiday{CompanyID: DemoCompanyID, Date: d.date, Name: d.name})
	}
	return out
}
