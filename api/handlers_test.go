/*
handlers_test.go - HTTP tests for the API handlers

Tests for:
- Calculation endpoints (vacations, calendar, split, deductions, severance,
  presentation)
- Error status mapping
- Collaborator endpoints (holidays, rates, policies)
*/
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T3Cread18/Nominix-sub001/engine"
	"github.com/T3Cread18/Nominix-sub001/factory"
	"github.com/T3Cread18/Nominix-sub001/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := NewHandler(store, logger, "acme")
	return h, NewRouter(h, RouterOptions{AllowedOrigins: []string{"*"}, LogLevel: slog.LevelInfo})
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func money(v any) string {
	return v.(map[string]any)["amount"].(string)
}

// =============================================================================
// VACATIONS AND CALENDAR
// =============================================================================

func TestReady(t *testing.T) {
	h, router := newTestServer(t)

	rec := do(t, router, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode(t, rec)["status"])

	// GIVEN: the database is gone
	require.NoError(t, h.Store.Close())

	// THEN: readiness fails while the heartbeat stays up
	rec = do(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", nil).Code)
}

func TestScheduleVacation_NoHolidays(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/vacations/schedule", `{"start_date": "2024-01-15", "working_days": 5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "2024-01-19", body["last_vacation_day"])
	assert.Equal(t, "2024-01-22", body["return_to_work_date"])
	assert.EqualValues(t, 5, body["calendar_days_span"])
	assert.NotEmpty(t, body["calculation_id"])
}

func TestScheduleVacation_AcrossYearEndWithNationalHolidays(t *testing.T) {
	// GIVEN: national holidays (Dec 24, 25, 31 and Jan 1)
	_, router := newTestServer(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/holidays/defaults", nil).Code)

	// WHEN: 5 working days from Monday 2024-12-23
	rec := do(t, router, http.MethodPost, "/api/vacations/schedule", ScheduleVacationRequest{
		StartDate:   engine.MustParseDate("2024-12-23"),
		WorkingDays: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: 23, 26, 27, 30 Dec and 2 Jan are taken
	body := decode(t, rec)
	assert.Equal(t, "2025-01-02", body["last_vacation_day"])
	assert.Equal(t, "2025-01-03", body["return_to_work_date"])
	assert.EqualValues(t, 11, body["calendar_days_span"])
	assert.Len(t, body["non_working_days"], 6)
}

func TestScheduleVacation_RejectsNonPositiveDays(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/vacations/schedule", `{"start_date": "2024-01-15", "working_days": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleVacation_RejectsTooManyDays(t *testing.T) {
	h, router := newTestServer(t)

	// GIVEN: a request far above the configured cap
	rec := do(t, router, http.MethodPost, "/api/vacations/schedule", `{"start_date": "2024-01-15", "working_days": 2000000}`)

	// THEN: rejected before any holiday lookup or stepping
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "365")

	// The cap itself is accepted, and it follows the handler setting
	rec = do(t, router, http.MethodPost, "/api/vacations/schedule", `{"start_date": "2024-01-15", "working_days": 365}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	h.MaxVacationDays = 30
	rec = do(t, router, http.MethodPost, "/api/vacations/schedule", `{"start_date": "2024-01-15", "working_days": 31}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyDay(t *testing.T) {
	_, router := newTestServer(t)
	do(t, router, http.MethodPost, "/api/holidays/defaults", nil)

	tests := []struct {
		date    string
		class   string
		working bool
	}{
		{"2024-01-01", "holiday", false},
		{"2024-01-13", "weekend", false},
		{"2024-01-15", "working", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, "/api/calendar/"+tt.date, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, tt.class, body["class"])
			assert.Equal(t, tt.working, body["working"])
		})
	}

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/calendar/15-01-2024", nil).Code)
}

func TestGetEntitlement(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodGet, "/api/vacations/entitlement?hire_date=2020-03-01&as_of=2024-03-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.EqualValues(t, 4, body["completed_years"])
	assert.EqualValues(t, 18, body["vacation_days"])
	assert.EqualValues(t, 18, body["bonus_days"])
}

// =============================================================================
// PAYROLL
// =============================================================================

func TestSplitPackage_ExplicitRateAndSplit(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/packages/split", `{
		"total": {"amount": "500", "currency": "USD"},
		"split": {"mode": "percentage", "parameter": "30"},
		"meal_benefit_reference": "40",
		"rate": "60",
		"rate_date": "2024-01-15"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "30000.00", money(body["total_local"]))
	assert.Equal(t, "2400.00", money(body["meal_benefit_local"]))
	assert.Equal(t, "9000.00", money(body["base_salary_local"]))
	assert.Equal(t, "18600.00", money(body["bonus_local"]))
	assert.Equal(t, false, body["base_floored"])
	assert.Equal(t, "337.50", money(body["integral_daily_salary"]))
}

func TestSplitPackage_PolicyAndPublishedRate(t *testing.T) {
	// GIVEN: fixed 350 USD bonus with a 130 VES floor and the 36.5721 rate
	_, router := newTestServer(t)
	rec := do(t, router, http.MethodPost, "/api/scenarios/load", `{"scenario_id": "fixed-bonus-floor"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// WHEN: a 100 USD package is split on 2024-02-01
	rec = do(t, router, http.MethodPost, "/api/packages/split", `{
		"company_id": "demo",
		"total": {"amount": "100"},
		"rate_date": "2024-02-01"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: base salary falls back to the configured floor
	body := decode(t, rec)
	assert.Equal(t, "3657.21", money(body["total_local"]))
	assert.Equal(t, "130.00", money(body["base_salary_local"]))
	assert.Equal(t, "2064.33", money(body["bonus_local"]))
	assert.Equal(t, true, body["base_floored"])
	assert.Len(t, body["warnings"], 1)
}

func TestSplitPackage_ErrorStatus(t *testing.T) {
	_, router := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			name:   "no policy and no split",
			body:   `{"total": {"amount": "500"}, "rate": "60"}`,
			status: http.StatusNotFound,
			code:   "policy_not_found",
		},
		{
			name:   "zero rate",
			body:   `{"total": {"amount": "500"}, "split": {"parameter": "30"}, "rate": "0"}`,
			status: http.StatusBadRequest,
			code:   "invalid_rate",
		},
		{
			name:   "no published rate",
			body:   `{"total": {"amount": "500"}, "split": {"parameter": "30"}}`,
			status: http.StatusNotFound,
			code:   "rate_not_found",
		},
		{
			name:   "percentage over 100",
			body:   `{"total": {"amount": "500"}, "split": {"parameter": "101"}, "rate": "60"}`,
			status: http.StatusBadRequest,
			code:   "invalid_package",
		},
		{
			name:   "malformed",
			body:   `{"total": `,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/packages/split", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decode(t, rec)["code"])
			}
		})
	}
}

func TestComputeDeductions_DefaultRates(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/deductions", `{"gross": {"amount": "9000", "currency": "VES"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "360.00", money(body["pension"]))
	assert.Equal(t, "90.00", money(body["housing"]))
	assert.Equal(t, "45.00", money(body["unemployment"]))
	assert.Equal(t, "495.00", money(body["total"]))
	assert.Equal(t, "8505.00", money(body["net"]))
	assert.Equal(t, true, body["currency_locked"])
}

func TestComputeDeductions_RejectsReferenceCurrency(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/deductions", `{"gross": {"amount": "150", "currency": "USD"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "currency_mismatch", decode(t, rec)["code"])
}

// =============================================================================
// SEVERANCE
// =============================================================================

func TestSimulateSeverance_RetroactiveWins(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/severance/simulate", `{
		"hire_date": "2023-01-01",
		"termination_date": "2024-01-01",
		"guarantee_balance": {"amount": "10000"},
		"additional_days_amount": {"amount": "2000"},
		"final_integral_daily_salary": {"amount": "500"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "12000.00", money(body["guarantee_amount"]))
	assert.Equal(t, "15000.00", money(body["retroactive_amount"]))
	assert.Equal(t, "retroactive", body["chosen_method"])
	assert.Equal(t, "15000.00", money(body["settlement_amount"]))
}

func TestSimulateSeverance_DerivesIntegralSalaryFromMonthly(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/severance/simulate", `{
		"hire_date": "2018-01-01",
		"termination_date": "2024-01-01",
		"guarantee_balance": {"amount": "0"},
		"additional_days_amount": {"amount": "0"},
		"monthly_salary": {"amount": "9000"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "337.50", money(body["final_integral_daily_salary"]))
	assert.EqualValues(t, 180, body["retroactive_days"])
	assert.Equal(t, "60750.00", money(body["settlement_amount"]))
}

func TestSimulateSeverance_PartialResult(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/severance/simulate", `{
		"hire_date": "2020-01-01",
		"termination_date": "2024-01-01",
		"guarantee_balance": {"amount": "8000"},
		"additional_days_amount": {"amount": "500"}
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "insufficient_data", body["code"])
	result := body["result"].(map[string]any)
	assert.Equal(t, true, result["partial"])
	assert.Equal(t, "8500.00", money(result["guarantee_amount"]))
	assert.Nil(t, result["settlement_amount"])
}

func TestSimulateSeverance_TerminationBeforeHire(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/severance/simulate", `{
		"hire_date": "2024-01-02",
		"termination_date": "2024-01-01",
		"guarantee_balance": {"amount": "1"},
		"additional_days_amount": {"amount": "0"},
		"final_integral_daily_salary": {"amount": "500"}
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_service_period", decode(t, rec)["code"])
}

// =============================================================================
// PRESENTATION
// =============================================================================

func TestPresent_LockedItemsStayInLocalCurrency(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/present", `{
		"to": "USD",
		"rate": "60",
		"items": [
			{"label": "bonus", "amount": {"amount": "18600", "currency": "VES"}},
			{"label": "pension", "amount": {"amount": "360", "currency": "VES"}, "locked": true}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 2)

	bonus := items[0].(map[string]any)
	assert.Equal(t, "310.00", money(bonus["presented"]))
	assert.Equal(t, true, bonus["converted"])
	assert.Nil(t, bonus["warning"])

	pension := items[1].(map[string]any)
	assert.Equal(t, "360.00", money(pension["presented"]))
	assert.Equal(t, "VES", pension["presented"].(map[string]any)["currency"])
	assert.Equal(t, "currency_locked", pension["warning"].(map[string]any)["code"])

	// The response also lists every warning raised across items
	assert.Len(t, decode(t, rec)["warnings"], 1)
}

func TestPresent_UnsupportedPair(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/present", `{
		"to": "VES",
		"rate": "60",
		"items": [{"label": "x", "amount": {"amount": "10", "currency": "EUR"}}]
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unsupported_conversion", decode(t, rec)["code"])
}

// =============================================================================
// COLLABORATOR ENDPOINTS
// =============================================================================

func TestHolidayEndpoints(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/holidays", `{"company_id": "acme", "date": "2024-03-08", "name": "Founders day"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode(t, rec)["id"].(string)
	assert.NotEmpty(t, id)

	rec = do(t, router, http.MethodGet, "/api/holidays?company_id=acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["holidays"], 1)

	rec = do(t, router, http.MethodGet, "/api/calendar/2024-03-08", nil)
	assert.Equal(t, "holiday", decode(t, rec)["class"])

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/api/holidays/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/api/holidays/"+id, nil).Code)

	rec = do(t, router, http.MethodPost, "/api/holidays", `{"date": "2024-03-08"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateEndpoints(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/rates", `{"as_of": "2024-01-15", "rate": "36.5721"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "USD", created["base"])
	assert.Equal(t, "VES", created["quote"])

	rec = do(t, router, http.MethodPost, "/api/rates", `{"as_of": "2024-01-16", "rate": "-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/rates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rates := decode(t, rec)["rates"].([]any)
	require.Len(t, rates, 1)
	assert.Equal(t, "36.5721", rates[0].(map[string]any)["rate"])
}

func TestPolicyEndpoints(t *testing.T) {
	_, router := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/policies/acme", nil).Code)

	rec := do(t, router, http.MethodPut, "/api/policies/acme", factory.VenezuelaDefaultJSON("ignored"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decode(t, rec)["version"])

	rec = do(t, router, http.MethodPut, "/api/policies/acme", factory.VenezuelaDefaultJSON("acme"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["version"])

	rec = do(t, router, http.MethodGet, "/api/policies/acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "acme", body["company_id"])
	config := body["config"].(map[string]any)
	assert.Equal(t, "percentage", config["split"].(map[string]any)["mode"])

	rec = do(t, router, http.MethodPut, "/api/policies/acme", `{"split": {"mode": "half"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the stored policy now drives the split
	rec = do(t, router, http.MethodPost, "/api/packages/split", `{"total": {"amount": "500"}, "rate": "60"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "9000.00", money(decode(t, rec)["base_salary_local"]))
}
