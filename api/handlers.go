/*
handlers.go - HTTP API handlers for the compensation engine

PURPOSE:
  Exposes the calculation engine via REST API. Handles HTTP request and
  response, JSON serialization, looks up collaborator data (holidays,
  rates, company policy) and delegates to the pure engine packages.

ENDPOINTS:
  Calculations (calculations.go):
    POST   /api/vacations/schedule     Vacation window for N working days
    GET    /api/vacations/entitlement  Statutory days at a date
    GET    /api/calendar/{date}        Classify one day
    POST   /api/packages/split         Split a total package
    POST   /api/deductions             Statutory deductions
    POST   /api/severance/simulate     Guarantee vs retroactive severance
    POST   /api/present                Convert values for display

  Holidays:
    GET    /api/holidays               List holidays
    POST   /api/holidays               Create holiday
    POST   /api/holidays/defaults      Add national holidays
    DELETE /api/holidays/{id}          Delete holiday

  Rates:
    GET    /api/rates                  List exchange rates
    POST   /api/rates                  Publish an exchange rate

  Policies:
    GET    /api/policies/{companyID}   Get company policy
    PUT    /api/policies/{companyID}   Create or replace company policy

  Scenarios (scenarios.go):
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Collaborator data (holidays, rates, policies)
  - PolicyFactory: JSON to CompanyPolicy conversion
  - Logger: Structured logger for warnings and failures

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, engine precondition failures
  - 404: Policy, rate or holiday not found
  - 422: Severance could only be partially computed (result included)
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/T3Cread18/Nominix-sub001/engine"
	"github.com/T3Cread18/Nominix-sub001/factory"
	"github.com/T3Cread18/Nominix-sub001/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store         *sqlite.Store
	PolicyFactory *factory.PolicyFactory
	Logger        *slog.Logger

	// DefaultCompanyID is used when a request names no company.
	DefaultCompanyID string

	// MaxVacationDays caps working_days on vacation schedule requests.
	MaxVacationDays int

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *slog.Logger, defaultCompanyID string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:            store,
		PolicyFactory:    factory.NewPolicyFactory(),
		Logger:           logger,
		DefaultCompanyID: defaultCompanyID,
		MaxVacationDays:  DefaultMaxVacationDays,
	}
}

// DefaultMaxVacationDays is one year of working days, well above the
// statutory 30-day entitlement cap.
const DefaultMaxVacationDays = 365

// Ready reports whether the database answers.
// GET /ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		h.Logger.ErrorContext(ctx, "database not reachable", slog.Any("error", err))
		writeError(w, http.StatusServiceUnavailable, "Database not reachable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) companyID(requested string) string {
	if requested != "" {
		return requested
	}
	return h.DefaultCompanyID
}

// resolveRate returns the explicit rate when given, otherwise the latest
// published reference→local rate on or before the requested date.
func (h *Handler) resolveRate(ctx context.Context, sel RateSelector) (engine.ExchangeRate, error) {
	asOf := engine.Today()
	if sel.AsOf != nil {
		asOf = *sel.AsOf
	}
	if sel.Rate != nil {
		return engine.NewExchangeRate(asOf, *sel.Rate), nil
	}
	return h.Store.RateAt(ctx, engine.ReferenceCurrency, engine.LocalCurrency, asOf)
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns all holidays.
// GET /api/holidays?company_id=
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")

	holidays, err := h.Store.GetAllHolidays(r.Context(), companyID)
	if err != nil {
		h.writeEngineError(w, r, "Failed to get holidays", err)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}

	writeJSON(w, http.StatusOK, map[string]any{"holidays": dtos})
}

// CreateHoliday creates a new holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Date.IsZero() || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Date and name are required", nil)
		return
	}

	holiday, err := h.Store.SaveHoliday(r.Context(), engine.Holiday{
		ID:        req.ID,
		CompanyID: req.CompanyID,
		Date:      req.Date,
		Name:      req.Name,
		Recurring: req.Recurring,
	})
	if err != nil {
		h.writeEngineError(w, r, "Failed to create holiday", err)
		return
	}

	writeJSON(w, http.StatusCreated, toHolidayDTO(holiday))
}

// DeleteHoliday deletes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		h.writeEngineError(w, r, "Failed to delete holiday", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// AddDefaultHolidays adds the recurring national holidays.
// POST /api/holidays/defaults
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	added, err := h.Store.SeedNationalHolidays(r.Context())
	if err != nil {
		h.writeEngineError(w, r, "Failed to add default holidays", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "created",
		"added":  added,
	})
}

// =============================================================================
// RATE ENDPOINTS
// =============================================================================

// ListRates returns all published exchange rates.
// GET /api/rates
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Store.ListRates(r.Context())
	if err != nil {
		h.writeEngineError(w, r, "Failed to list rates", err)
		return
	}

	dtos := make([]RateDTO, 0, len(rates))
	for _, rate := range rates {
		dtos = append(dtos, toRateDTO(rate))
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": dtos})
}

// CreateRate publishes an exchange rate. Base and quote default to the
// reference and local currencies.
// POST /api/rates
func (h *Handler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var req RateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.AsOf.IsZero() {
		writeError(w, http.StatusBadRequest, "as_of is required", nil)
		return
	}

	rate := engine.NewExchangeRate(req.AsOf, req.Rate)
	if req.Base != "" {
		rate.Base = engine.Currency(req.Base)
	}
	if req.Quote != "" {
		rate.Quote = engine.Currency(req.Quote)
	}

	if err := h.Store.SaveRate(r.Context(), rate); err != nil {
		h.writeEngineError(w, r, "Failed to save rate", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRateDTO(rate))
}

// =============================================================================
// POLICY ENDPOINTS
// =============================================================================

// GetPolicy returns a company's policy.
// GET /api/policies/{companyID}
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	rec, err := h.Store.GetPolicy(r.Context(), companyID)
	if err != nil {
		h.writeEngineError(w, r, "Failed to get policy", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Policy not found", engine.ErrPolicyNotFound)
		return
	}

	policy, err := h.PolicyFactory.ParsePolicy(rec.ConfigJSON)
	if err != nil {
		h.writeEngineError(w, r, "Stored policy is invalid", err)
		return
	}
	policy.Version = rec.Version

	writeJSON(w, http.StatusOK, PolicyDTO{
		CompanyID: rec.CompanyID,
		Config:    h.PolicyFactory.ToJSON(policy),
		Version:   rec.Version,
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	})
}

// PutPolicy creates or replaces a company's policy.
// PUT /api/policies/{companyID}
func (h *Handler) PutPolicy(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var pj factory.CompanyPolicyJSON
	if err := json.NewDecoder(r.Body).Decode(&pj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policy JSON", err)
		return
	}
	pj.CompanyID = companyID

	policy, err := h.PolicyFactory.FromJSON(pj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policy", err)
		return
	}

	rec, err := h.Store.SavePolicy(r.Context(), policy)
	if err != nil {
		h.writeEngineError(w, r, "Failed to save policy", err)
		return
	}
	policy.Version = rec.Version

	h.Logger.InfoContext(r.Context(), "company policy saved",
		slog.String("company_id", companyID),
		slog.Int("version", rec.Version),
	)

	writeJSON(w, http.StatusOK, PolicyDTO{
		CompanyID: companyID,
		Config:    h.PolicyFactory.ToJSON(policy),
		Version:   rec.Version,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message, Code: errorCode(err)}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine and store errors to HTTP status codes.
func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.ErrorContext(r.Context(), message, slog.Any("error", err))
	}
	writeError(w, status, message, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case engine.IsClientError(err):
		return http.StatusBadRequest
	case engine.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	codes := []struct {
		target error
		code   string
	}{
		{engine.ErrInvalidRate, "invalid_rate"},
		{engine.ErrInvalidPackage, "invalid_package"},
		{engine.ErrInvalidServicePeriod, "invalid_service_period"},
		{engine.ErrInsufficientData, "insufficient_data"},
		{engine.ErrNegativeAmount, "negative_amount"},
		{engine.ErrCurrencyMismatch, "currency_mismatch"},
		{engine.ErrUnsupportedConversion, "unsupported_conversion"},
		{engine.ErrPolicyNotFound, "policy_not_found"},
		{engine.ErrRateNotFound, "rate_not_found"},
		{engine.ErrHolidayNotFound, "holiday_not_found"},
	}
	for _, c := range codes {
		if errors.Is(err, c.target) {
			return c.code
		}
	}
	return ""
}

func newCalculationID() string {
	return uuid.NewString()
}
