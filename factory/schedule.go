/*
Package factory provides JSON to Go schedule conversion.

PURPOSE:
  Converts JSON schedule definitions into validated ScheduleDefinitions that
  build OrderedDates or actuarial Plans. This is how the API and CLI accept
  schedules without knowing the strategy types.

JSON SCHEMA:
  {
    "name": "Annuity payments",
    "kind": "monthly_first_day",
    "calculation_date": "2022-02-15",
    "last_date": "2023-02-28",
    "birth_date": "1957-06-30",
    "age_basis": "nearest_birthday"
  }

  birth_date and age_basis are only needed for plans.

KEY FEATURES:
  - Validates kind and dates (strict ISO dates, real calendar days)
  - Rejects ranges with no schedule before building anything
  - Defaults age_basis to last_birthday

USAGE:
  f := NewScheduleFactory()
  def, err := f.ParseSchedule(jsonString)
  dates, err := def.Build()
  plan, err := def.Plan()

SEE ALSO:
  - generic/schedule.go: Schedule kinds
  - actuarial/plan.go: Plans
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/date-engine/actuarial"
	"github.com/warp/date-engine/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ScheduleJSON is the JSON representation of a schedule definition.
type ScheduleJSON struct {
	Name            string `json:"name,omitempty"`
	Kind            string `json:"kind"`
	CalculationDate string `json:"calculation_date"`
	LastDate        string `json:"last_date"`
	BirthDate       string `json:"birth_date,omitempty"`
	AgeBasis        string `json:"age_basis,omitempty"`
}

// ScheduleDefinition is a validated schedule definition.
type ScheduleDefinition struct {
	Name            string
	Kind            generic.ScheduleKind
	CalculationDate generic.Date
	LastDate        generic.Date
	BirthDate       *generic.Date
	AgeBasis        actuarial.AgeBasis
}

// =============================================================================
// SCHEDULE FACTORY
// =============================================================================

// ScheduleFactory converts JSON schedules to Go structs.
type ScheduleFactory struct{}

// NewScheduleFactory creates a new schedule factory.
func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{}
}

// ParseSchedule parses a JSON string into a ScheduleDefinition.
func (f *ScheduleFactory) ParseSchedule(jsonStr string) (*ScheduleDefinition, error) {
	var sj ScheduleJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse schedule JSON: %v", generic.ErrInvalidArgument, err)
	}
	return f.FromJSON(sj)
}

// FromJSON validates a ScheduleJSON.
func (f *ScheduleFactory) FromJSON(sj ScheduleJSON) (*ScheduleDefinition, error) {
	kind, err := generic.ParseScheduleKind(sj.Kind)
	if err != nil {
		return nil, err
	}
	calculationDate, err := parseDate("calculation_date", sj.CalculationDate)
	if err != nil {
		return nil, err
	}
	lastDate, err := parseDate("last_date", sj.LastDate)
	if err != nil {
		return nil, err
	}
	if err := kind.Validate(calculationDate, lastDate); err != nil {
		return nil, err
	}

	basis, err := actuarial.ParseAgeBasis(sj.AgeBasis)
	if err != nil {
		return nil, err
	}

	def := &ScheduleDefinition{
		Name:            sj.Name,
		Kind:            kind,
		CalculationDate: calculationDate,
		LastDate:        lastDate,
		AgeBasis:        basis,
	}
	if sj.BirthDate != "" {
		birth, err := parseDate("birth_date", sj.BirthDate)
		if err != nil {
			return nil, err
		}
		def.BirthDate = &birth
	}
	return def, nil
}

// ToJSON converts a definition back to its JSON form.
func (f *ScheduleFactory) ToJSON(def *ScheduleDefinition) ScheduleJSON {
	sj := ScheduleJSON{
		Name:            def.Name,
		Kind:            string(def.Kind),
		CalculationDate: def.CalculationDate.String(),
		LastDate:        def.LastDate.String(),
		AgeBasis:        string(def.AgeBasis),
	}
	if def.BirthDate != nil {
		sj.BirthDate = def.BirthDate.String()
	}
	return sj
}

func parseDate(field, value string) (generic.Date, error) {
	if value == "" {
		return generic.Date{}, fmt.Errorf("%w: %s is required", generic.ErrInvalidArgument, field)
	}
	d, err := generic.ParseDate(value)
	if err != nil {
		return generic.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// =============================================================================
// BUILDERS
// =============================================================================

// Build generates the schedule dates.
func (d *ScheduleDefinition) Build() (*generic.OrderedDates, error) {
	return generic.NewOrderedDatesFromStrategy(d.Kind, d.CalculationDate, d.LastDate)
}

// Plan generates an actuarial plan. The definition needs a birth date.
func (d *ScheduleDefinition) Plan() (*actuarial.Plan, error) {
	if d.BirthDate == nil {
		return nil, fmt.Errorf("%w: birth_date is required for a plan", generic.ErrInvalidArgument)
	}
	return actuarial.NewPlan(*d.BirthDate, d.AgeBasis, d.Kind, d.CalculationDate, d.LastDate)
}
