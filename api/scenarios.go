/*
scenarios.go - Sample schedules for demonstrations

PURPOSE:

	Provides pre-built schedule definitions that exercise the interesting
	corners of the engine: month-end calculation dates, leap-day lives and
	multi-decade yearly schedules.

AVAILABLE SCENARIOS:

	monthly-annuity:  Monthly payments, calculation date mid-month
	yearly-premium:   Yearly premiums over twelve years
	leap-day-life:    Monthly plan for a life born on February 29
	single-payment:   Range holding exactly one period boundary

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "monthly-annuity"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description and definition

NOTE:

	Loading saves a new schedule each time; nothing is reset.

SEE ALSO:
  - handlers.go: Schedule endpoints
  - factory/schedule.go: Schedule JSON definitions
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/date-engine/factory"
	"github.com/warp/date-engine/generic"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ScenarioDTO
	definition factory.ScheduleJSON
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "monthly-annuity",
			Name:        "Monthly Annuity",
			Description: "Monthly first-day payments from mid-February to the end of next February",
		},
		definition: factory.ScheduleJSON{
			Name:            "Monthly Annuity",
			Kind:            string(generic.ScheduleMonthlyFirstDay),
			CalculationDate: "2022-02-15",
			LastDate:        "2023-02-28",
			BirthDate:       "1957-06-30",
			AgeBasis:        "nearest_birthday",
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "yearly-premium",
			Name:        "Yearly Premium",
			Description: "January 1 premiums over twelve years",
		},
		definition: factory.ScheduleJSON{
			Name:            "Yearly Premium",
			Kind:            string(generic.ScheduleYearlyFirstDay),
			CalculationDate: "2022-02-15",
			LastDate:        "2034-02-28",
			BirthDate:       "1980-05-17",
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "leap-day-life",
			Name:        "Leap Day Life",
			Description: "Monthly plan for a life born on February 29",
		},
		definition: factory.ScheduleJSON{
			Name:            "Leap Day Life",
			Kind:            string(generic.ScheduleMonthlyFirstDay),
			CalculationDate: "2020-02-29",
			LastDate:        "2021-03-31",
			BirthDate:       "2000-02-29",
			AgeBasis:        "last_birthday",
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "single-payment",
			Name:        "Single Payment",
			Description: "A range that holds exactly one first-of-month",
		},
		definition: factory.ScheduleJSON{
			Name:            "Single Payment",
			Kind:            string(generic.ScheduleMonthlyFirstDay),
			CalculationDate: "2022-02-15",
			LastDate:        "2022-03-01",
		},
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadScenario saves the scenario's schedule and returns it.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	s, ok := findScenario(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", fmt.Errorf("scenario %q not found", req.ScenarioID))
		return
	}

	def, err := h.Factory.FromJSON(s.definition)
	if err != nil {
		h.respondError(w, "Invalid scenario definition", err)
		return
	}
	sched, err := h.saveDefinition(r, def)
	if err != nil {
		h.respondError(w, "Failed to load scenario", err)
		return
	}

	h.Log.WithField("scenario", s.ID).Info("scenario loaded")
	writeJSON(w, http.StatusCreated, toScheduleDTO(sched))
}
