package roster

import (
	"fmt"

	"go.uber.org/zap"
)

// Severity classifies a feasibility message. An ERROR short-circuits
// driver invocation; a WARNING is surfaced but allows proceeding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// Message is one feasibility finding.
type Message struct {
	Text     string
	Severity Severity
}

// CheckFeasibility runs the static pre-analysis over the whole horizon
// and returns whether the problem is feasible along with every
// message collected (errors first is not guaranteed; callers filter by
// Severity). It never panics on shape issues already captured as
// messages, but a malformed Problem.Patterns/MinCount/MaxCount lookup
// that would otherwise index out of range is itself reported as an
// error message rather than failing the call.
func CheckFeasibility(problem *Problem, logger *zap.Logger) (bool, []Message) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var messages []Message
	emit := func(sev Severity, format string, args ...any) {
		messages = append(messages, Message{Severity: sev, Text: fmt.Sprintf(format, args...)})
	}

	totalMin, totalMax := 0, 0
	for s := 1; s <= problem.NumShifts; s++ {
		totalMin += problem.MinCount[s]
		totalMax += problem.MaxCount[s]
	}

	// Check 1.
	if totalMin > problem.NumEmployees {
		emit(SeverityError, "total minimum employees required (%d) exceeds total employees (%d)", totalMin, problem.NumEmployees)
	}
	if totalMax < totalMin {
		emit(SeverityError, "total maximum employees (%d) is less than total minimum required (%d)", totalMax, totalMin)
	}

	// Check 2.
	for s := 1; s <= problem.NumShifts; s++ {
		minC, maxC := problem.MinCount[s], problem.MaxCount[s]
		if minC > maxC || maxC > problem.NumEmployees {
			emit(SeverityError, "shift %d: min_count (%d) <= max_count (%d) <= num_employees (%d) violated", s, minC, maxC, problem.NumEmployees)
		}
	}

	// Checks 3 & 4: per-day (and per-day-per-shift) availability.
	for day := 0; day < problem.HorizonDays; day++ {
		available, availablePerShift, err := availability(problem, day)
		if err != nil {
			emit(SeverityError, "day %d: %s", day, err.Error())
			continue
		}

		numAvailable := len(available)
		if numAvailable < totalMin {
			emit(SeverityError, "day %d: only %d employees available but %d minimum required", day, numAvailable, totalMin)
		} else if numAvailable == totalMin {
			emit(SeverityWarning, "day %d: exactly %d employees available for %d minimum requirement (no flexibility)", day, numAvailable, totalMin)
		} else if numAvailable < totalMin+2 {
			emit(SeverityWarning, "day %d: only %d employees available for %d minimum requirement (very tight)", day, numAvailable, totalMin)
		}

		for s := 1; s <= problem.NumShifts; s++ {
			minC := problem.MinCount[s]
			numForShift := len(availablePerShift[s])
			if numForShift < minC {
				emit(SeverityError, "day %d, shift %d: only %d employees available (considering preferences/exclusions) but %d minimum required", day, s, numForShift, minC)
			} else if numForShift == minC {
				emit(SeverityWarning, "day %d, shift %d: exactly %d employees available for %d minimum requirement (no flexibility)", day, s, numForShift, minC)
			}
		}
	}

	// Check 5: forbidden-pair saturation, day 0 only.
	blockedByShift := map[int]int{}
	for _, emp := range problem.Employees {
		for pair := range problem.ForbiddenPairs {
			if emp.PrevShift == pair.Prev {
				blockedByShift[pair.Next]++
			}
		}
	}
	for s, minC := range problem.MinCount {
		if blocked := blockedByShift[s]; blocked > problem.NumEmployees-minC {
			emit(SeverityWarning, "shift %d: %d employees may be blocked by forbidden-pair constraints, but %d minimum required (may still be solvable)", s, blocked, minC)
		}
	}

	feasible := true
	for _, m := range messages {
		if m.Severity == SeverityError {
			feasible = false
			logger.Warn("feasibility error", zap.String("text", m.Text))
		} else {
			logger.Debug("feasibility warning", zap.String("text", m.Text))
		}
	}

	return feasible, messages
}

// availability computes, for a given day, the set of employees not on
// leave and not pattern-off, and for each shift the subset further
// restricted by preferences/exclusions.
func availability(problem *Problem, day int) ([]int, map[int][]int, error) {
	available := make([]int, 0, problem.NumEmployees)
	perShift := make(map[int][]int, problem.NumShifts)
	for s := 1; s <= problem.NumShifts; s++ {
		perShift[s] = nil
	}

	for i, emp := range problem.Employees {
		if _, onLeave := emp.LeaveDays[day]; onLeave {
			continue
		}

		pattern, err := patternFor(problem, emp.PatternID)
		if err != nil {
			return nil, nil, err
		}
		// The analyser reasons purely from the employee's initial pattern
		// position plus day offset from day 0.
		off, err := IsOff(pattern, emp.InitialPatternPos, day)
		if err != nil {
			return nil, nil, err
		}
		if off {
			continue
		}

		available = append(available, i)
		for s := 1; s <= problem.NumShifts; s++ {
			if _, excluded := emp.ExcludedShifts[s]; excluded {
				continue
			}
			if len(emp.PreferredShifts) == 0 {
				perShift[s] = append(perShift[s], i)
				continue
			}
			if _, preferred := emp.PreferredShifts[s]; preferred {
				perShift[s] = append(perShift[s], i)
			}
		}
	}

	return available, perShift, nil
}
