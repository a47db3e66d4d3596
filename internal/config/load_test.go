package config

import (
	"errors"
	"strings"
	"testing"
)

func baseDocumentJSON() string {
	return `{
		"start_date": "2026-01-05",
		"end_date": "2026-01-11",
		"no_of_employees": 2,
		"no_of_shifts": 2,
		"min_time_between_shifts": 10,
		"shifts": [
			{"shift_id": 1, "start_time": "06:00:00", "end_time": "14:00:00", "min_no_of_employees": 1, "max_no_of_employees": 2},
			{"shift_id": 2, "start_time": "22:00:00", "end_time": "06:00:00", "min_no_of_employees": 0, "max_no_of_employees": 2}
		],
		"work_pattern": [
			{"pettern_id": 1, "no_working_days": 5, "no_off_days": 2, "strict_weekend_off": true}
		],
		"employees": [
			{"preferred_work_pattern": 1, "no_work_days_from_previous_pattern": 0, "no_off_days_from_previous_pattern": 0, "last_shift": 0, "quality": [0, 0]},
			{"preferred_work_pattern": 1, "no_work_days_from_previous_pattern": 2, "no_off_days_from_previous_pattern": 0, "last_shift": 1, "quality": [0, 0]}
		]
	}`
}

func TestLoad_ValidDocument(t *testing.T) {
	problem, state, _, err := Load(strings.NewReader(baseDocumentJSON()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if problem.HorizonDays != 7 {
		t.Errorf("expected horizon_days=7, got %d", problem.HorizonDays)
	}
	if len(state.PatternPos) != 2 {
		t.Errorf("expected 2 employees in initial state, got %d", len(state.PatternPos))
	}
}

// 2026-01-05 is a Monday; strict_weekend_off should override the
// initial pattern position for every employee on that pattern so
// Saturday (2026-01-10) and Sunday (2026-01-11) land on positions 5
// and 6 regardless of the employee-supplied previous-pattern fields.
func TestLoad_StrictWeekendOffOverridesPosition(t *testing.T) {
	problem, _, warnings, err := Load(strings.NewReader(baseDocumentJSON()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning noting the strict_weekend_off override")
	}
	// start_date 2026-01-05 is a Monday, so day index 5 is Saturday and
	// day index 6 is Sunday; initial_pattern_pos=0 makes
	// (0+5) mod 7 = 5 and (0+6) mod 7 = 6, aligning both correctly.
	for i, emp := range problem.Employees {
		if emp.InitialPatternPos != 0 {
			t.Errorf("employee %d: expected overridden initial_pattern_pos=0 (Monday start), got %d", i, emp.InitialPatternPos)
		}
	}
}

func TestLoad_ForbiddenPairFromCrossMidnightShift(t *testing.T) {
	problem, _, _, err := Load(strings.NewReader(baseDocumentJSON()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Shift 2 runs 22:00->06:00 (cross-midnight); shift 1 starts at
	// 06:00, giving zero hours of rest, which is below the configured
	// 10-hour minimum, so (2,1) must be forbidden.
	found := false
	for pair := range problem.ForbiddenPairs {
		if pair.Prev == 2 && pair.Next == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected forbidden pair (2,1) from insufficient rest, got %v", problem.ForbiddenPairs)
	}
}

func TestLoad_RejectsOverlappingPreferenceAndExclusion(t *testing.T) {
	doc := `{
		"start_date": "2026-01-05",
		"end_date": "2026-01-06",
		"no_of_employees": 1,
		"no_of_shifts": 2,
		"min_time_between_shifts": 8,
		"shifts": [
			{"shift_id": 1, "start_time": "06:00:00", "end_time": "14:00:00", "min_no_of_employees": 0, "max_no_of_employees": 1},
			{"shift_id": 2, "start_time": "14:00:00", "end_time": "22:00:00", "min_no_of_employees": 0, "max_no_of_employees": 1}
		],
		"work_pattern": [
			{"pettern_id": 1, "no_working_days": 1, "no_off_days": 0}
		],
		"employees": [
			{"preferred_work_pattern": 1, "last_shift": 0, "quality": [0, 0], "shift_preference": [1], "shift_exclusion": [1]}
		]
	}`

	_, _, _, err := Load(strings.NewReader(doc))
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "both preferred and excluded") {
		t.Errorf("expected conflict message, got: %v", err)
	}
}

func TestLoad_RejectsMissingRequiredField(t *testing.T) {
	doc := `{"start_date": "2026-01-05"}`
	_, _, _, err := Load(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected an error for a document missing required fields")
	}
}
