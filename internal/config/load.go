package config

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nextmv-community/roster-engine/roster"
)

// Load decodes, validates, and derives a roster.Problem and its day-0
// roster.State from a JSON configuration document. Every schema
// violation found is returned together in one error; structural checks
// run only on a schema-valid document, and every structural violation
// is then returned together in one error. Load never returns a
// partially valid Problem alongside an error.
func Load(r io.Reader) (roster.Problem, roster.State, []Warning, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return roster.Problem{}, roster.State{}, nil, fmt.Errorf("reading configuration: %w", err)
	}

	if schemaErrs := validateSchema(raw); len(schemaErrs) > 0 {
		joined := schemaErrs[0]
		for _, e := range schemaErrs[1:] {
			joined = fmt.Errorf("%w; %s", joined, e.Error())
		}
		return roster.Problem{}, roster.State{}, nil, &ValidationError{errs: joined}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return roster.Problem{}, roster.State{}, nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := validateStructure(&doc); err != nil {
		return roster.Problem{}, roster.State{}, nil, err
	}

	problem, warnings, err := derive(&doc)
	if err != nil {
		return roster.Problem{}, roster.State{}, nil, err
	}
	if err := problem.Validate(); err != nil {
		return roster.Problem{}, roster.State{}, nil, err
	}

	return problem, roster.NewInitialState(&problem), warnings, nil
}

// derive builds a roster.Problem from an already schema- and
// structurally-valid document: patterns keyed by pettern_id, forbidden
// pairs from shift time windows and min_time_between_shifts, and the
// strict_weekend_off pattern-position override.
func derive(doc *document) (roster.Problem, []Warning, error) {
	var warnings []Warning

	start, err := time.Parse(dateLayout, doc.StartDate)
	if err != nil {
		return roster.Problem{}, nil, fmt.Errorf("start_date: %w", err)
	}
	end, err := time.Parse(dateLayout, doc.EndDate)
	if err != nil {
		return roster.Problem{}, nil, fmt.Errorf("end_date: %w", err)
	}
	horizonDays := int(end.Sub(start).Hours()/24) + 1

	patterns := make(map[int]roster.Pattern, len(doc.WorkPattern))
	strictWeekendOffPos := make(map[int]int, len(doc.WorkPattern))
	for _, p := range doc.WorkPattern {
		totalDays := p.NoWorkingDays + p.NoOffDays
		offDays := make(map[int]struct{}, p.NoOffDays)
		for d := totalDays - p.NoOffDays; d < totalDays; d++ {
			offDays[d] = struct{}{}
		}
		patterns[p.PatternID] = roster.Pattern{TotalDays: totalDays, OffDays: offDays}

		if p.StrictWeekendOff {
			// Saturday aligns to position 5, Sunday to position 6, in the
			// 7-day cycle, regardless of any employee-provided pattern
			// position: initial_pos = (weekday(start_date) - 1) mod 7,
			// using time.Weekday's Sunday=0..Saturday=6 numbering.
			w0 := int(start.Weekday())
			strictWeekendOffPos[p.PatternID] = ((w0-1)%7 + 7) % 7
			warnings = append(warnings, Warning{Text: fmt.Sprintf("work pattern %d: strict_weekend_off overrides initial pattern position for all employees on this pattern", p.PatternID)})
		}
	}

	minCount := make(map[int]int, len(doc.Shifts))
	maxCount := make(map[int]int, len(doc.Shifts))
	shiftTimes := make(map[int][2]time.Time, len(doc.Shifts))
	for _, s := range doc.Shifts {
		minCount[s.ShiftID] = s.MinCount
		maxCount[s.ShiftID] = s.MaxCount

		startTime, _ := parseShiftTime(s.StartTime)
		endTime, _ := parseShiftTime(s.EndTime)
		if !startTime.Before(endTime) {
			endTime = endTime.Add(24 * time.Hour)
		}
		shiftTimes[s.ShiftID] = [2]time.Time{startTime, endTime}
	}

	forbiddenPairs := make(map[roster.ForbiddenPair]struct{})
	for _, a := range doc.Shifts {
		for _, b := range doc.Shifts {
			if a.ShiftID == b.ShiftID {
				continue
			}
			aTimes, bTimes := shiftTimes[a.ShiftID], shiftTimes[b.ShiftID]
			gap := bTimes[0].Add(24 * time.Hour).Sub(aTimes[1])
			if int(gap.Hours()) < doc.MinTimeBetweenShifts {
				forbiddenPairs[roster.ForbiddenPair{Prev: a.ShiftID, Next: b.ShiftID}] = struct{}{}
			}
		}
	}

	employees := make([]roster.EmployeeProfile, len(doc.Employees))
	for i, emp := range doc.Employees {
		leaveDays := make(map[int]struct{})
		for _, leave := range emp.Leaves {
			leaveStart, _ := time.Parse(dateLayout, leave.StartDate)
			leaveEnd, _ := time.Parse(dateLayout, leave.EndDate)
			for d := leaveStart; !d.After(leaveEnd); d = d.AddDate(0, 0, 1) {
				dayIndex := int(d.Sub(start).Hours() / 24)
				leaveDays[dayIndex] = struct{}{}
			}
		}

		preferred := make(map[int]struct{}, len(emp.ShiftPreference))
		for _, s := range emp.ShiftPreference {
			preferred[s] = struct{}{}
		}
		excluded := make(map[int]struct{}, len(emp.ShiftExclusion))
		for _, s := range emp.ShiftExclusion {
			excluded[s] = struct{}{}
		}

		initialPos := emp.NoWorkDaysFromPreviousPattern + emp.NoOffDaysFromPreviousPattern
		if override, ok := strictWeekendOffPos[emp.PreferredWorkPattern]; ok {
			initialPos = override
		}

		employees[i] = roster.EmployeeProfile{
			LeaveDays:         leaveDays,
			PreferredShifts:   preferred,
			ExcludedShifts:    excluded,
			InitialQuality:    append([]int(nil), emp.Quality...),
			PatternID:         emp.PreferredWorkPattern,
			InitialPatternPos: initialPos,
			PrevShift:         emp.LastShift,
		}
	}

	problem := roster.Problem{
		Patterns:       patterns,
		MinCount:       minCount,
		MaxCount:       maxCount,
		ForbiddenPairs: forbiddenPairs,
		Employees:      employees,
		NumEmployees:   doc.NumEmployees,
		NumShifts:      doc.NumShifts,
		HorizonDays:    horizonDays,
		Threshold:      doc.Threshold,
		QualityCap:     doc.QualityThreshold,
		CSPTimeLimitMS: doc.CSPTimeLimitMS,
	}

	return problem, warnings, nil
}
