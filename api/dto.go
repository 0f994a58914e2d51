/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Dates travel as ISO
  strings ("2006-01-02"); fractional ages travel both as exact decimal
  strings and as float64 for clients that only need an approximation.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Calendar:
    AgeDTO, ElapsedDTO, AddYearsDTO

  Schedules:
    ScheduleDTO, LookupDTO (requests use factory.ScheduleJSON)

  Plans:
    PlanDTO, PaymentDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

SEE ALSO:
  - handlers.go: Uses these types
  - factory/schedule.go: ScheduleJSON type
*/
package api

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/date-engine/actuarial"
	"github.com/warp/date-engine/generic"
)

// =============================================================================
// CALENDAR
// =============================================================================

// AgeDTO is the age between two dates.
type AgeDTO struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	ExactAge        string  `json:"exact_age"`
	ExactAgeFloat   float64 `json:"exact_age_float"`
	LastBirthday    int     `json:"age_last_birthday"`
	NearestBirthday int     `json:"age_nearest_birthday"`
	CompleteMonths  int     `json:"complete_months"`
}

// ElapsedDTO is the elapsed fraction of the year at Date, plus the
// difference to Other when requested.
type ElapsedDTO struct {
	Date       string  `json:"date"`
	Elapsed    string  `json:"elapsed"`
	Other      string  `json:"other,omitempty"`
	Difference *string `json:"difference,omitempty"`
}

// AddYearsDTO is the result of adding fractional years to a date.
type AddYearsDTO struct {
	Date   string `json:"date"`
	Years  string `json:"years"`
	Result string `json:"result"`
}

// =============================================================================
// SCHEDULES
// =============================================================================

// ScheduleDTO represents a generated or saved schedule.
type ScheduleDTO struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name,omitempty"`
	Kind            string   `json:"kind"`
	CalculationDate string   `json:"calculation_date"`
	LastDate        string   `json:"last_date"`
	Dates           []string `json:"dates"`
	Count           int      `json:"count"`
	Hash            string   `json:"hash"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

// LookupDTO answers "which schedule date covers Date". Index is -1 and
// ScheduleDate is empty when Date precedes the schedule.
type LookupDTO struct {
	Date         string `json:"date"`
	Index        int    `json:"index"`
	ScheduleDate string `json:"schedule_date,omitempty"`
	Exact        bool   `json:"exact"`
}

// =============================================================================
// PLANS
// =============================================================================

// PaymentDTO is one row of a payment plan.
type PaymentDTO struct {
	Index        int    `json:"index"`
	Date         string `json:"date"`
	ExactAge     string `json:"exact_age"`
	Age          int    `json:"age"`
	YearFraction string `json:"year_fraction"`
}

// PlanDTO is a payment plan for one life.
type PlanDTO struct {
	Name      string       `json:"name,omitempty"`
	Kind      string       `json:"kind"`
	BirthDate string       `json:"birth_date"`
	AgeBasis  string       `json:"age_basis"`
	Payments  []PaymentDTO `json:"payments"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a sample schedule that can be loaded.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest is the request body for loading a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toScheduleDTO(s generic.SavedSchedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:              string(s.ID),
		Name:            s.Name,
		Kind:            string(s.Kind),
		CalculationDate: s.CalculationDate.String(),
		LastDate:        s.LastDate.String(),
		Dates:           dateStrings(s.Dates),
		Count:           s.Dates.Len(),
		Hash:            hashString(s.Dates),
	}
	if !s.CreatedAt.IsZero() {
		dto.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toPlanDTO(name string, kind generic.ScheduleKind, plan *actuarial.Plan) PlanDTO {
	payments := plan.Payments()
	dto := PlanDTO{
		Name:      name,
		Kind:      string(kind),
		BirthDate: plan.BirthDate.String(),
		AgeBasis:  string(plan.Basis),
		Payments:  make([]PaymentDTO, len(payments)),
	}
	for i, p := range payments {
		dto.Payments[i] = PaymentDTO{
			Index:        p.Index,
			Date:         p.Date.String(),
			ExactAge:     formatFraction(p.ExactAge),
			Age:          p.Age,
			YearFraction: formatFraction(p.YearFraction),
		}
	}
	return dto
}

func dateStrings(dates *generic.OrderedDates) []string {
	out := make([]string, 0, dates.Len())
	for d := range dates.Values() {
		out = append(out, d.String())
	}
	return out
}

func hashString(dates *generic.OrderedDates) string {
	return strconv.FormatUint(dates.Hash(), 16)
}

// formatFraction rounds to 10 places; 1/3 would otherwise print with the
// full division precision.
func formatFraction(d decimal.Decimal) string {
	return d.Round(10).String()
}
