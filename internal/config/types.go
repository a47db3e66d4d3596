// Package config adapts the JSON configuration document read by
// cmd/roster-engine into a roster.Problem and its day-0 roster.State.
package config

// document mirrors the JSON configuration shape: a schedule horizon,
// shift definitions, work patterns, and per-employee static facts.
type document struct {
	StartDate            string        `json:"start_date"`
	EndDate              string        `json:"end_date"`
	NumEmployees         int           `json:"no_of_employees"`
	NumShifts            int           `json:"no_of_shifts"`
	MinTimeBetweenShifts int           `json:"min_time_between_shifts"`
	QualityThreshold     int           `json:"quality_threshold"`
	Threshold            int           `json:"threshold"`
	CSPTimeLimitMS       int           `json:"csp_time_limit_ms"`
	Shifts               []shiftDoc    `json:"shifts"`
	WorkPattern          []patternDoc  `json:"work_pattern"`
	Employees            []employeeDoc `json:"employees"`
}

type shiftDoc struct {
	ShiftID   int    `json:"shift_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	MinCount  int    `json:"min_no_of_employees"`
	MaxCount  int    `json:"max_no_of_employees"`
}

type patternDoc struct {
	PatternID        int  `json:"pettern_id"`
	NoWorkingDays    int  `json:"no_working_days"`
	NoOffDays        int  `json:"no_off_days"`
	StrictWeekendOff bool `json:"strict_weekend_off"`
}

type employeeDoc struct {
	PreferredWorkPattern          int        `json:"preferred_work_pattern"`
	NoWorkDaysFromPreviousPattern int        `json:"no_work_days_from_previous_pattern"`
	NoOffDaysFromPreviousPattern  int        `json:"no_off_days_from_previous_pattern"`
	LastShift                     int        `json:"last_shift"`
	Quality                       []int      `json:"quality"`
	Leaves                        []leaveDoc `json:"leaves"`
	ShiftPreference               []int      `json:"shift_preference"`
	ShiftExclusion                []int      `json:"shift_exclusion"`
}

type leaveDoc struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Warning is a non-fatal finding surfaced alongside a successfully
// loaded Problem, distinct from roster.Message (which only exists once
// a Problem is built).
type Warning struct {
	Text string
}
