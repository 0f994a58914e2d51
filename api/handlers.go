/*
handlers.go - HTTP API handlers for the date engine

PURPOSE:
  Exposes calendar arithmetic, schedule generation, saved schedules and
  payment plans via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to the generic and actuarial packages.

ENDPOINTS:
  Calendar:
    GET    /api/age?from=&to=                  Exact and integer ages
    GET    /api/elapsed?date=&other=           Elapsed fraction of year
    GET    /api/add-years?date=&years=         Add fractional years

  Schedules:
    POST   /api/schedules/preview              Generate without saving
    POST   /api/schedules                      Generate and save
    GET    /api/schedules                      List saved schedules
    GET    /api/schedules/{id}                 Get saved schedule
    DELETE /api/schedules/{id}                 Delete saved schedule
    GET    /api/schedules/{id}/lookup?date=    Schedule date on or before date

  Plans:
    POST   /api/plans                          Payment plan for one life

  Scenarios:
    GET    /api/scenarios                      List sample schedules
    POST   /api/scenarios/load                 Save a sample schedule

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Saved schedules
  - Factory: JSON to schedule definition conversion
  - Metrics: Prometheus collectors
  - previews: go-cache of generated OrderedDates keyed by (kind, dates)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid argument (bad dates, unknown kind, empty range)
  - 404: Schedule not found
  - 409: Duplicate schedule ID
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Sample schedules
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/date-engine/factory"
	"github.com/warp/date-engine/generic"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// DefaultCacheTTL is how long a generated preview stays cached.
const DefaultCacheTTL = 10 * time.Minute

// maxYearsOffset bounds add-years requests to the span of the calendar.
var maxYearsOffset = decimal.NewFromInt(generic.MaxYear)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	Store   generic.ScheduleStore
	Factory *factory.ScheduleFactory
	Metrics *Metrics
	Log     logrus.FieldLogger

	previews *cache.Cache
	now      func() time.Time
	newID    func() generic.ScheduleID
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(h *Handler) { h.Log = log }
}

// WithCacheTTL sets the preview cache expiration.
func WithCacheTTL(ttl time.Duration) Option {
	return func(h *Handler) { h.previews = cache.New(ttl, 2*ttl) }
}

// WithClock sets the clock used for CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates a new handler.
func NewHandler(store generic.ScheduleStore, opts ...Option) *Handler {
	h := &Handler{
		Store:    store,
		Factory:  factory.NewScheduleFactory(),
		Metrics:  NewMetrics(),
		Log:      logrus.StandardLogger(),
		previews: cache.New(DefaultCacheTTL, 2*DefaultCacheTTL),
		now:      time.Now,
		newID:    func() generic.ScheduleID { return generic.ScheduleID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

// GetAge returns the exact and integer ages between two dates.
func (h *Handler) GetAge(w http.ResponseWriter, r *http.Request) {
	from, err := dateParam(r, "from")
	if err != nil {
		h.respondError(w, "Invalid from date", err)
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		h.respondError(w, "Invalid to date", err)
		return
	}

	writeJSON(w, http.StatusOK, AgeDTO{
		From:            from.String(),
		To:              to.String(),
		ExactAge:        formatFraction(generic.ExactAge(generic.Decimal, from, to)),
		ExactAgeFloat:   generic.ExactAge(generic.Float64, from, to),
		LastBirthday:    generic.AgeLastBirthday(from, to),
		NearestBirthday: generic.AgeNearestBirthday(from, to),
		CompleteMonths:  generic.CompleteMonthsBetween(generic.FirstOf(from, to), generic.LastOf(from, to)),
	})
}

// GetElapsed returns the elapsed fraction of date's year, and the difference
// of elapsed fractions to other when given.
func (h *Handler) GetElapsed(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		h.respondError(w, "Invalid date", err)
		return
	}

	dto := ElapsedDTO{
		Date:    date.String(),
		Elapsed: formatFraction(generic.ElapsedFractionOfYear(generic.Decimal, date)),
	}
	if r.URL.Query().Get("other") != "" {
		other, err := dateParam(r, "other")
		if err != nil {
			h.respondError(w, "Invalid other date", err)
			return
		}
		diff := formatFraction(generic.DifferenceOfElapsedFraction(generic.Decimal, date, other))
		dto.Other = other.String()
		dto.Difference = &diff
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetAddYears adds a (possibly fractional, possibly negative) number of
// years to a date.
func (h *Handler) GetAddYears(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		h.respondError(w, "Invalid date", err)
		return
	}
	raw := r.URL.Query().Get("years")
	years, err := decimal.NewFromString(raw)
	if err != nil {
		h.respondError(w, "Invalid years", fmt.Errorf("%w: years %q is not a number", generic.ErrInvalidArgument, raw))
		return
	}
	if years.Abs().GreaterThan(maxYearsOffset) {
		h.respondError(w, "Invalid years", fmt.Errorf("%w: years %s exceeds %s in magnitude", generic.ErrInvalidArgument, years, maxYearsOffset))
		return
	}

	writeJSON(w, http.StatusOK, AddYearsDTO{
		Date:   date.String(),
		Years:  years.String(),
		Result: generic.AddFractionalYears(generic.Decimal, date, years).String(),
	})
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

// PreviewSchedule generates a schedule without saving it.
func (h *Handler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	def, ok := h.decodeDefinition(w, r)
	if !ok {
		return
	}
	dates, err := h.generate(def)
	if err != nil {
		h.respondError(w, "Failed to generate schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(generic.SavedSchedule{
		Name:            def.Name,
		Kind:            def.Kind,
		CalculationDate: def.CalculationDate,
		LastDate:        def.LastDate,
		Dates:           dates,
	}))
}

// CreateSchedule generates a schedule and saves it under a new ID.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	def, ok := h.decodeDefinition(w, r)
	if !ok {
		return
	}
	sched, err := h.saveDefinition(r, def)
	if err != nil {
		h.respondError(w, "Failed to create schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(sched))
}

// ListSchedules returns every saved schedule, oldest first.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Store.ListSchedules(r.Context())
	if err != nil {
		h.respondError(w, "Failed to list schedules", err)
		return
	}

	dtos := make([]ScheduleDTO, len(schedules))
	for i, s := range schedules {
		dtos[i] = toScheduleDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSchedule returns one saved schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Store.GetSchedule(r.Context(), generic.ScheduleID(chi.URLParam(r, "id")))
	if err != nil {
		h.respondError(w, "Failed to get schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(sched))
}

// DeleteSchedule removes one saved schedule.
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := generic.ScheduleID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteSchedule(r.Context(), id); err != nil {
		h.respondError(w, "Failed to delete schedule", err)
		return
	}
	h.Log.WithField("schedule_id", id).Info("schedule deleted")
	w.WriteHeader(http.StatusNoContent)
}

// LookupSchedule finds the schedule date on or before the date parameter.
func (h *Handler) LookupSchedule(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		h.respondError(w, "Invalid date", err)
		return
	}
	sched, err := h.Store.GetSchedule(r.Context(), generic.ScheduleID(chi.URLParam(r, "id")))
	if err != nil {
		h.respondError(w, "Failed to get schedule", err)
		return
	}

	dto := LookupDTO{Date: date.String(), Index: sched.Dates.IndexOfOrPreviousElement(date)}
	if dto.Index >= 0 {
		found := sched.Dates.At(dto.Index)
		dto.ScheduleDate = found.String()
		dto.Exact = found == date
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// PLAN ENDPOINTS
// =============================================================================

// CreatePlan builds a payment plan for one life. Plans are not saved.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	def, ok := h.decodeDefinition(w, r)
	if !ok {
		return
	}
	plan, err := def.Plan()
	if err != nil {
		h.respondError(w, "Failed to build plan", err)
		return
	}
	h.Metrics.observeSchedule(string(def.Kind), plan.Schedule.Len())
	writeJSON(w, http.StatusOK, toPlanDTO(def.Name, def.Kind, plan))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) decodeDefinition(w http.ResponseWriter, r *http.Request) (*factory.ScheduleDefinition, bool) {
	var req factory.ScheduleJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	def, err := h.Factory.FromJSON(req)
	if err != nil {
		h.respondError(w, "Invalid schedule definition", err)
		return nil, false
	}
	return def, true
}

// generate builds def's dates, reusing a cached result for the same kind
// and date range. OrderedDates is immutable so cached values are shared.
func (h *Handler) generate(def *factory.ScheduleDefinition) (*generic.OrderedDates, error) {
	key := fmt.Sprintf("%s|%s|%s", def.Kind, def.CalculationDate, def.LastDate)
	if cached, found := h.previews.Get(key); found {
		h.Metrics.observeCache(true)
		return cached.(*generic.OrderedDates), nil
	}
	h.Metrics.observeCache(false)

	dates, err := def.Build()
	if err != nil {
		return nil, err
	}
	h.Metrics.observeSchedule(string(def.Kind), dates.Len())
	h.previews.SetDefault(key, dates)
	return dates, nil
}

func (h *Handler) saveDefinition(r *http.Request, def *factory.ScheduleDefinition) (generic.SavedSchedule, error) {
	dates, err := h.generate(def)
	if err != nil {
		return generic.SavedSchedule{}, err
	}
	sched := generic.SavedSchedule{
		ID:              h.newID(),
		Name:            def.Name,
		Kind:            def.Kind,
		CalculationDate: def.CalculationDate,
		LastDate:        def.LastDate,
		Dates:           dates,
		CreatedAt:       h.now().UTC(),
	}
	if err := h.Store.SaveSchedule(r.Context(), sched); err != nil {
		return generic.SavedSchedule{}, err
	}

	h.Log.WithFields(logrus.Fields{
		"schedule_id": sched.ID,
		"kind":        sched.Kind,
		"dates":       dates.Len(),
	}).Info("schedule saved")
	return sched, nil
}

func dateParam(r *http.Request, name string) (generic.Date, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return generic.Date{}, fmt.Errorf("%w: %s is required", generic.ErrInvalidArgument, name)
	}
	return generic.ParseDate(value)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generic.ErrDuplicateSchedule):
		return http.StatusConflict
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case generic.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.WithError(err).Error(message)
	}
	writeError(w, status, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
