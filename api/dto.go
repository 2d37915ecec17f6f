/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's value types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY ON THE WIRE:
  Money is {"amount": "9000.00", "currency": "VES"}. Amounts are strings so
  no client ever parses them as binary floats. Requests may send amounts as
  strings or JSON numbers.

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/policy.go: CompanyPolicyJSON type
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/T3Cread18/Nominix-sub001/currency"
	"github.com/T3Cread18/Nominix-sub001/engine"
	"github.com/T3Cread18/Nominix-sub001/factory"
	"github.com/T3Cread18/Nominix-sub001/payroll"
	"github.com/T3Cread18/Nominix-sub001/severance"
	"github.com/T3Cread18/Nominix-sub001/vacation"
)

// =============================================================================
// MONEY
// =============================================================================

// MoneyDTO is an amount with its currency.
type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MoneyInput is an amount sent by a client.
type MoneyInput struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m MoneyInput) toAmount(fallback engine.Currency) engine.Amount {
	c := engine.Currency(m.Currency)
	if c == "" {
		c = fallback
	}
	return engine.NewAmountFromDecimal(m.Amount, c)
}

func toMoneyDTO(a engine.Amount) MoneyDTO {
	return MoneyDTO{Amount: a.Value.StringFixed(engine.CentPlaces), Currency: string(a.Currency)}
}

func lockedMoneyDTO(l engine.LockedAmount) MoneyDTO {
	return toMoneyDTO(l.Money())
}

// RateDTO is an exchange rate in API requests and responses.
type RateDTO struct {
	AsOf  engine.Date     `json:"as_of"`
	Base  string          `json:"base"`
	Quote string          `json:"quote"`
	Rate  decimal.Decimal `json:"rate"`
}

func toRateDTO(r engine.ExchangeRate) RateDTO {
	return RateDTO{AsOf: r.AsOf, Base: string(r.Base), Quote: string(r.Quote), Rate: r.Rate}
}

// RateSelector picks the exchange rate for a calculation. An explicit Rate
// wins; otherwise the latest published rate on or before AsOf (default
// today) is used.
type RateSelector struct {
	Rate *decimal.Decimal `json:"rate,omitempty"`
	AsOf *engine.Date     `json:"rate_date,omitempty"`
}

// WarningDTO is an informational message attached to a result.
type WarningDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// VACATIONS AND CALENDAR
// =============================================================================

// ScheduleVacationRequest asks for a vacation window.
type ScheduleVacationRequest struct {
	CompanyID   string      `json:"company_id"`
	StartDate   engine.Date `json:"start_date"`
	WorkingDays int         `json:"working_days"`
}

// SkippedDayDTO is a non-working day inside a vacation window.
type SkippedDayDTO struct {
	Date  engine.Date     `json:"date"`
	Class engine.DayClass `json:"class"`
}

// ScheduleDTO represents a vacation schedule in API responses.
type ScheduleDTO struct {
	CalculationID    string          `json:"calculation_id"`
	StartDate        engine.Date     `json:"start_date"`
	LastVacationDay  engine.Date     `json:"last_vacation_day"`
	ReturnToWorkDate engine.Date     `json:"return_to_work_date"`
	WorkingDays      int             `json:"working_days"`
	CalendarDaysSpan int             `json:"calendar_days_span"`
	StartDayClass    engine.DayClass `json:"start_day_class"`
	NonWorkingDays   []SkippedDayDTO `json:"non_working_days"`
	Warnings         []WarningDTO    `json:"warnings"`
}

func toScheduleDTO(id string, s *vacation.Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		CalculationID:    id,
		StartDate:        s.StartDate,
		LastVacationDay:  s.LastVacationDay,
		ReturnToWorkDate: s.ReturnToWorkDate,
		WorkingDays:      s.WorkingDays,
		CalendarDaysSpan: s.CalendarDaysSpan,
		StartDayClass:    s.StartDayClass,
		NonWorkingDays:   make([]SkippedDayDTO, 0, len(s.NonWorkingDays)),
		Warnings:         make([]WarningDTO, 0, len(s.Warnings)),
	}
	for _, d := range s.NonWorkingDays {
		dto.NonWorkingDays = append(dto.NonWorkingDays, SkippedDayDTO{Date: d.Date, Class: d.Class})
	}
	for _, w := range s.Warnings {
		dto.Warnings = append(dto.Warnings, WarningDTO{Code: string(w.Code), Message: w.Message})
	}
	return dto
}

// DayDTO classifies one calendar day.
type DayDTO struct {
	Date    engine.Date     `json:"date"`
	Class   engine.DayClass `json:"class"`
	Working bool            `json:"working"`
}

// EntitlementDTO is the statutory vacation entitlement at a date.
type EntitlementDTO struct {
	CompletedYears int `json:"completed_years"`
	VacationDays   int `json:"vacation_days"`
	BonusDays      int `json:"bonus_days"`
}

// =============================================================================
// PAYROLL
// =============================================================================

// SplitPackageRequest splits a total package. Split and meal benefit
// override the company policy when given.
type SplitPackageRequest struct {
	CompanyID            string             `json:"company_id"`
	Total                MoneyInput         `json:"total"`
	Split                *factory.SplitJSON `json:"split,omitempty"`
	MealBenefitReference *decimal.Decimal   `json:"meal_benefit_reference,omitempty"`
	RateSelector
}

// PackageDTO represents a split package in API responses.
type PackageDTO struct {
	CalculationID        string       `json:"calculation_id"`
	Total                MoneyDTO     `json:"total"`
	Rate                 RateDTO      `json:"rate"`
	Mode                 string       `json:"mode"`
	Parameter            string       `json:"parameter"`
	TotalLocal           MoneyDTO     `json:"total_local"`
	MealBenefitLocal     MoneyDTO     `json:"meal_benefit_local"`
	BaseSalaryLocal      MoneyDTO     `json:"base_salary_local"`
	BonusLocal           MoneyDTO     `json:"bonus_local"`
	BaseFloored          bool         `json:"base_floored"`
	BonusClamped         bool         `json:"bonus_clamped"`
	IntegralDailySalary  *MoneyDTO    `json:"integral_daily_salary,omitempty"`
	Warnings             []WarningDTO `json:"warnings"`
}

func toPackageDTO(id string, p *payroll.Package) PackageDTO {
	return PackageDTO{
		CalculationID:    id,
		Total:            toMoneyDTO(p.Total),
		Rate:             toRateDTO(p.Rate),
		Mode:             string(p.Split.Mode),
		Parameter:        p.Split.Parameter.String(),
		TotalLocal:       toMoneyDTO(p.TotalLocal),
		MealBenefitLocal: toMoneyDTO(p.MealBenefitLocal),
		BaseSalaryLocal:  toMoneyDTO(p.BaseLocal),
		BonusLocal:       toMoneyDTO(p.BonusLocal),
		BaseFloored:      p.BaseFloored,
		BonusClamped:     p.BonusClamped,
		Warnings:         []WarningDTO{},
	}
}

// DeductionsRequest computes statutory deductions for a gross salary.
type DeductionsRequest struct {
	CompanyID string     `json:"company_id"`
	Gross     MoneyInput `json:"gross"`
}

// DeductionsDTO represents a deduction set in API responses. Every amount
// is in the local currency.
type DeductionsDTO struct {
	CalculationID string   `json:"calculation_id"`
	Gross         MoneyDTO `json:"gross"`
	Pension       MoneyDTO `json:"pension"`
	Housing       MoneyDTO `json:"housing"`
	Unemployment  MoneyDTO `json:"unemployment"`
	Total         MoneyDTO `json:"total"`
	Net           MoneyDTO `json:"net"`
	CurrencyLock  bool     `json:"currency_locked"`
}

func toDeductionsDTO(id string, d *payroll.DeductionSet) DeductionsDTO {
	return DeductionsDTO{
		CalculationID: id,
		Gross:         lockedMoneyDTO(d.Gross),
		Pension:       lockedMoneyDTO(d.Pension),
		Housing:       lockedMoneyDTO(d.Housing),
		Unemployment:  lockedMoneyDTO(d.Unemployment),
		Total:         lockedMoneyDTO(d.Total),
		Net:           lockedMoneyDTO(d.Net()),
		CurrencyLock:  true,
	}
}

// =============================================================================
// SEVERANCE
// =============================================================================

// SimulateSeveranceRequest runs the severance comparison. When
// final_integral_daily_salary is missing but monthly_salary is given, the
// integral salary is derived from it with the company's day counts.
type SimulateSeveranceRequest struct {
	CompanyID                string      `json:"company_id"`
	HireDate                 engine.Date `json:"hire_date"`
	TerminationDate          engine.Date `json:"termination_date"`
	GuaranteeBalance         MoneyInput  `json:"guarantee_balance"`
	AdditionalDaysAmount     MoneyInput  `json:"additional_days_amount"`
	FinalIntegralDailySalary *MoneyInput `json:"final_integral_daily_salary,omitempty"`
	MonthlySalary            *MoneyInput `json:"monthly_salary,omitempty"`
}

// SeveranceDTO represents a severance result in API responses.
type SeveranceDTO struct {
	CalculationID            string    `json:"calculation_id"`
	ServiceDays              int       `json:"service_days"`
	YearsOfService           string    `json:"years_of_service"`
	GuaranteeAmount          MoneyDTO  `json:"guarantee_amount"`
	RetroactiveDays          int       `json:"retroactive_days"`
	RetroactiveAmount        *MoneyDTO `json:"retroactive_amount,omitempty"`
	FinalIntegralDailySalary *MoneyDTO `json:"final_integral_daily_salary,omitempty"`
	ChosenMethod             string    `json:"chosen_method,omitempty"`
	SettlementAmount         *MoneyDTO `json:"settlement_amount,omitempty"`
	Partial                  bool      `json:"partial"`
}

func toSeveranceDTO(id string, r *severance.Result, salary *engine.Amount) SeveranceDTO {
	dto := SeveranceDTO{
		CalculationID:   id,
		ServiceDays:     r.ServiceDays,
		YearsOfService:  r.YearsOfService.StringFixed(4),
		GuaranteeAmount: toMoneyDTO(r.GuaranteeAmount),
		RetroactiveDays: r.RetroactiveDays,
		ChosenMethod:    string(r.ChosenMethod),
		Partial:         r.Partial,
	}
	if salary != nil {
		s := toMoneyDTO(*salary)
		dto.FinalIntegralDailySalary = &s
	}
	if !r.Partial {
		retro := toMoneyDTO(r.RetroactiveAmount)
		settlement := toMoneyDTO(r.SettlementAmount)
		dto.RetroactiveAmount = &retro
		dto.SettlementAmount = &settlement
	}
	return dto
}

// =============================================================================
// PRESENTATION
// =============================================================================

// PresentItem is one value to present. Locked items are statutory amounts
// that must stay in their own currency.
type PresentItem struct {
	Label  string     `json:"label"`
	Amount MoneyInput `json:"amount"`
	Locked bool       `json:"locked"`
}

// PresentRequest converts a list of values for display.
type PresentRequest struct {
	To    string        `json:"to"`
	Items []PresentItem `json:"items"`
	RateSelector
}

// PresentedItemDTO is one presented value.
type PresentedItemDTO struct {
	Label     string      `json:"label"`
	Original  MoneyDTO    `json:"original"`
	Presented MoneyDTO    `json:"presented"`
	Converted bool        `json:"converted"`
	Locked    bool        `json:"locked"`
	Warning   *WarningDTO `json:"warning,omitempty"`
}

// PresentResponse wraps presented values.
type PresentResponse struct {
	CalculationID string             `json:"calculation_id"`
	Rate          RateDTO            `json:"rate"`
	Items         []PresentedItemDTO `json:"items"`
	Warnings      []WarningDTO       `json:"warnings"`
}

func toPresentedItemDTO(label string, p currency.Presentation) PresentedItemDTO {
	dto := PresentedItemDTO{
		Label:     label,
		Original:  toMoneyDTO(p.Original),
		Presented: toMoneyDTO(p.Amount),
		Converted: p.Converted,
		Locked:    p.Locked,
	}
	if p.Warning != nil {
		dto.Warning = &WarningDTO{Code: string(p.Warning.Code), Message: p.Warning.Message}
	}
	return dto
}

// =============================================================================
// COLLABORATOR DATA
// =============================================================================

// HolidayDTO represents a holiday in API requests and responses.
type HolidayDTO struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	Date      engine.Date `json:"date"`
	Name      string      `json:"name"`
	Recurring bool        `json:"recurring"`
}

func toHolidayDTO(h engine.Holiday) HolidayDTO {
	return HolidayDTO{ID: h.ID, CompanyID: h.CompanyID, Date: h.Date, Name: h.Name, Recurring: h.Recurring}
}

// PolicyDTO represents a company policy in API responses.
type PolicyDTO struct {
	CompanyID string                    `json:"company_id"`
	Config    factory.CompanyPolicyJSON `json:"config"`
	Version   int                       `json:"version"`
	UpdatedAt string                    `json:"updated_at,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
