package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v3"

	"github.com/T3Cread18/Nominix-sub001/currency"
	"github.com/T3Cread18/Nominix-sub001/engine"
	"github.com/T3Cread18/Nominix-sub001/factory"
	"github.com/T3Cread18/Nominix-sub001/payroll"
	"github.com/T3Cread18/Nominix-sub001/severance"
	"github.com/T3Cread18/Nominix-sub001/vacation"
)

// Working days per calendar year, rounded down. Used to decide how many
// years of holidays a long vacation window needs.
const minWorkingDaysPerYear = 200

// =============================================================================
// CALENDAR AND VACATIONS
// =============================================================================

// ScheduleVacation computes a vacation window.
// POST /api/vacations/schedule
func (h *Handler) ScheduleVacation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScheduleVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.StartDate.IsZero() || req.WorkingDays <= 0 {
		writeError(w, http.StatusBadRequest, "start_date and a positive working_days are required", nil)
		return
	}
	if req.WorkingDays > h.MaxVacationDays {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("working_days must not exceed %d", h.MaxVacationDays), nil)
		return
	}

	first := req.StartDate.Year()
	last := first + 1 + req.WorkingDays/minWorkingDaysPerYear
	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}

	holidays, err := engine.LoadHolidaySet(ctx, h.Store, h.companyID(req.CompanyID), years...)
	if err != nil {
		h.writeEngineError(w, r, "Failed to load holidays", err)
		return
	}

	schedule := vacation.ScheduleVacation(req.StartDate, req.WorkingDays, holidays)
	if schedule == nil {
		writeError(w, http.StatusUnprocessableEntity, "No working day found for this request", nil)
		return
	}

	id := newCalculationID()
	httplog.SetAttrs(ctx, slog.String("calculation_id", id))
	writeJSON(w, http.StatusOK, toScheduleDTO(id, schedule))
}

// GetEntitlement returns the statutory vacation entitlement.
// GET /api/vacations/entitlement?hire_date=&as_of=
func (h *Handler) GetEntitlement(w http.ResponseWriter, r *http.Request) {
	hire, err := engine.ParseDate(r.URL.Query().Get("hire_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date (use YYYY-MM-DD)", err)
		return
	}
	asOf := engine.Today()
	if s := r.URL.Query().Get("as_of"); s != "" {
		if asOf, err = engine.ParseDate(s); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of (use YYYY-MM-DD)", err)
			return
		}
	}

	e := vacation.EntitlementAt(hire, asOf)
	writeJSON(w, http.StatusOK, EntitlementDTO{
		CompletedYears: e.CompletedYears,
		VacationDays:   e.VacationDays,
		BonusDays:      e.BonusDays,
	})
}

// ClassifyDay reports whether a date is a working day.
// GET /api/calendar/{date}?company_id=
func (h *Handler) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	day, err := engine.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	companyID := h.companyID(r.URL.Query().Get("company_id"))
	holidays, err := engine.LoadHolidaySet(r.Context(), h.Store, companyID, day.Year())
	if err != nil {
		h.writeEngineError(w, r, "Failed to load holidays", err)
		return
	}

	class := engine.ClassifyDay(day, holidays)
	writeJSON(w, http.StatusOK, DayDTO{
		Date:    day,
		Class:   class,
		Working: class == engine.DayWorking,
	})
}

// =============================================================================
// PAYROLL
// =============================================================================

// SplitPackage splits a total compensation package.
// POST /api/packages/split
func (h *Handler) SplitPackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SplitPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	companyID := h.companyID(req.CompanyID)

	policy, err := h.Store.CompanyPolicy(ctx, companyID)
	switch {
	case errors.Is(err, engine.ErrPolicyNotFound) && req.Split != nil:
		policy = &engine.CompanyPolicy{
			CompanyID:         companyID,
			LocalCurrency:     engine.LocalCurrency,
			ReferenceCurrency: engine.ReferenceCurrency,
		}
	case err != nil:
		h.writeEngineError(w, r, "Failed to load company policy", err)
		return
	}
	if req.Split != nil {
		policy.Split = splitFromJSON(*req.Split)
	}
	if req.MealBenefitReference != nil {
		policy.MealBenefitReference = *req.MealBenefitReference
	}

	rate, err := h.resolveRate(ctx, req.RateSelector)
	if err != nil {
		h.writeEngineError(w, r, "Failed to resolve exchange rate", err)
		return
	}

	total := req.Total.toAmount(policy.ReferenceCurrency)
	pkg, err := payroll.SplitForPolicy(total, rate, *policy)
	if err != nil {
		h.writeEngineError(w, r, "Failed to split package", err)
		return
	}

	id := newCalculationID()
	httplog.SetAttrs(ctx, slog.String("calculation_id", id))
	dto := toPackageDTO(id, pkg)

	if integral, err := severance.IntegralDailySalaryForPolicy(pkg.BaseLocal, *policy); err == nil {
		m := toMoneyDTO(integral)
		dto.IntegralDailySalary = &m
	}

	if pkg.Clamped() {
		h.Logger.WarnContext(ctx, "package floor protection applied",
			slog.String("calculation_id", id),
			slog.String("company_id", companyID),
			slog.Bool("base_floored", pkg.BaseFloored),
			slog.Bool("bonus_clamped", pkg.BonusClamped),
			slog.String("excess", pkg.Excess().String()),
		)
		dto.Warnings = append(dto.Warnings, WarningDTO{
			Code:    "floor_applied",
			Message: "floor protection applied; components exceed the package total by " + pkg.Excess().String(),
		})
	}

	writeJSON(w, http.StatusOK, dto)
}

func splitFromJSON(sj factory.SplitJSON) engine.SplitPolicy {
	mode := engine.SplitMode(sj.Mode)
	if mode == "" {
		mode = engine.SplitPercentage
	}
	return engine.SplitPolicy{Mode: mode, Parameter: sj.Parameter, MinimumBase: sj.MinimumBase}
}

// ComputeDeductions computes statutory deductions.
// POST /api/deductions
func (h *Handler) ComputeDeductions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DeductionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rates := factory.DefaultRates()
	policy, err := h.Store.CompanyPolicy(ctx, h.companyID(req.CompanyID))
	switch {
	case err == nil:
		rates = policy.Deductions
	case !errors.Is(err, engine.ErrPolicyNotFound):
		h.writeEngineError(w, r, "Failed to load company policy", err)
		return
	}

	set, err := payroll.ComputeDeductions(req.Gross.toAmount(engine.LocalCurrency), rates)
	if err != nil {
		h.writeEngineError(w, r, "Failed to compute deductions", err)
		return
	}

	id := newCalculationID()
	httplog.SetAttrs(ctx, slog.String("calculation_id", id))
	writeJSON(w, http.StatusOK, toDeductionsDTO(id, set))
}

// =============================================================================
// SEVERANCE
// =============================================================================

// SimulateSeverance compares guarantee and retroactive severance.
// POST /api/severance/simulate
func (h *Handler) SimulateSeverance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SimulateSeveranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.HireDate.IsZero() || req.TerminationDate.IsZero() {
		writeError(w, http.StatusBadRequest, "hire_date and termination_date are required", nil)
		return
	}

	in := severance.Inputs{
		HireDate:             req.HireDate,
		TerminationDate:      req.TerminationDate,
		GuaranteeBalance:     req.GuaranteeBalance.toAmount(engine.LocalCurrency),
		AdditionalDaysAmount: req.AdditionalDaysAmount.toAmount(engine.LocalCurrency),
	}

	switch {
	case req.FinalIntegralDailySalary != nil:
		salary := req.FinalIntegralDailySalary.toAmount(engine.LocalCurrency)
		in.FinalIntegralDailySalary = &salary
	case req.MonthlySalary != nil:
		policy := engine.CompanyPolicy{}
		p, err := h.Store.CompanyPolicy(ctx, h.companyID(req.CompanyID))
		switch {
		case err == nil:
			policy = *p
		case !errors.Is(err, engine.ErrPolicyNotFound):
			h.writeEngineError(w, r, "Failed to load company policy", err)
			return
		}
		salary, err := severance.IntegralDailySalaryForPolicy(req.MonthlySalary.toAmount(engine.LocalCurrency), policy)
		if err != nil {
			h.writeEngineError(w, r, "Failed to derive integral daily salary", err)
			return
		}
		in.FinalIntegralDailySalary = &salary
	}

	result, err := severance.Simulate(in)
	id := newCalculationID()
	httplog.SetAttrs(ctx, slog.String("calculation_id", id))

	if err != nil {
		if result != nil {
			// Partial result: guarantee branch only.
			writeJSON(w, statusFor(err), map[string]any{
				"error":  "Severance could only be partially computed",
				"code":   errorCode(err),
				"result": toSeveranceDTO(id, result, in.FinalIntegralDailySalary),
			})
			return
		}
		h.writeEngineError(w, r, "Failed to simulate severance", err)
		return
	}

	writeJSON(w, http.StatusOK, toSeveranceDTO(id, result, in.FinalIntegralDailySalary))
}

// =============================================================================
// PRESENTATION
// =============================================================================

// Present converts values into a display currency. Locked values are
// returned unchanged with a warning.
// POST /api/present
func (h *Handler) Present(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PresentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	to := engine.Currency(req.To)
	if to == "" {
		to = engine.ReferenceCurrency
	}

	rate, err := h.resolveRate(ctx, req.RateSelector)
	if err != nil {
		h.writeEngineError(w, r, "Failed to resolve exchange rate", err)
		return
	}

	id := newCalculationID()
	resp := PresentResponse{
		CalculationID: id,
		Rate:          toRateDTO(rate),
		Items:         make([]PresentedItemDTO, 0, len(req.Items)),
		Warnings:      []WarningDTO{},
	}
	presenter := currency.NewPresenter(to, rate)

	for i, item := range req.Items {
		amount := item.Amount.toAmount(engine.LocalCurrency)
		var value engine.Presentable = amount
		if item.Locked {
			value = engine.Lock(amount)
		}

		p, err := presenter.Present(value)
		if err != nil {
			h.writeEngineError(w, r, "Failed to present item "+strconv.Itoa(i), err)
			return
		}
		if p.Warning != nil {
			h.Logger.WarnContext(ctx, "locked amount not converted",
				slog.String("calculation_id", id),
				slog.String("label", item.Label),
				slog.String("amount", p.Original.String()),
				slog.String("requested", string(to)),
			)
		}
		resp.Items = append(resp.Items, toPresentedItemDTO(item.Label, p))
	}
	for _, warning := range presenter.Warnings {
		resp.Warnings = append(resp.Warnings, WarningDTO{Code: string(warning.Code), Message: warning.Message})
	}

	httplog.SetAttrs(ctx, slog.String("calculation_id", id))
	writeJSON(w, http.StatusOK, resp)
}
