package roster

import "fmt"

// ForbiddenPair is an ordered (prev, next) shift pair: if yesterday was
// Prev, today may not be Next.
type ForbiddenPair struct {
	Prev int
	Next int
}

// EmployeeProfile holds the static, per-run-immutable facts about one
// employee.
type EmployeeProfile struct {
	LeaveDays         map[int]struct{}
	PreferredShifts   map[int]struct{}
	ExcludedShifts    map[int]struct{}
	InitialQuality    []int
	PatternID         int
	InitialPatternPos int
	PrevShift         int
}

// Problem is immutable for the lifetime of a run.
type Problem struct {
	Patterns       map[int]Pattern
	MinCount       map[int]int
	MaxCount       map[int]int
	ForbiddenPairs map[ForbiddenPair]struct{}
	Employees      []EmployeeProfile
	NumEmployees   int
	NumShifts      int
	HorizonDays    int
	Threshold      int
	QualityCap     int
	CSPTimeLimitMS int
}

// DefaultThreshold is the maximum alternative per-day solutions tried
// before a day is declared exhausted.
const DefaultThreshold = 10

// DefaultQualityCap is the upper bound used to clamp cumulative quality
// counters.
const DefaultQualityCap = 100

// DefaultCSPTimeLimitMS is the wall-clock cap per day, in milliseconds
// (default 30s).
const DefaultCSPTimeLimitMS = 30_000

// Validate checks the structural invariants that do not depend on a
// specific day (shape, 0<=min<=max per shift, disjoint preference/
// exclusion sets, off_days subset of [0,total_days)). Staffing totals
// measured against num_employees (max<=N, sum(min)<=N) are left to
// CheckFeasibility, as are its horizon-wide checks.
func (p *Problem) Validate() error {
	if p.NumEmployees < 1 {
		return &ConfigError{Message: fmt.Sprintf("num_employees must be >= 1, got %d", p.NumEmployees)}
	}
	if p.NumShifts < 1 {
		return &ConfigError{Message: fmt.Sprintf("num_shifts must be >= 1, got %d", p.NumShifts)}
	}
	if p.HorizonDays < 1 {
		return &ConfigError{Message: fmt.Sprintf("horizon_days must be >= 1, got %d", p.HorizonDays)}
	}
	if len(p.Employees) != p.NumEmployees {
		return &ShapeError{Message: fmt.Sprintf("employees length (%d) doesn't match num_employees (%d)", len(p.Employees), p.NumEmployees)}
	}

	for s := 1; s <= p.NumShifts; s++ {
		minC, maxC := p.MinCount[s], p.MaxCount[s]
		if minC < 0 || minC > maxC {
			return &ConfigError{Message: fmt.Sprintf("shift %d: require 0 <= min_count (%d) <= max_count (%d)", s, minC, maxC)}
		}
	}

	for id, pattern := range p.Patterns {
		if pattern.TotalDays <= 0 {
			return &ConfigError{Message: fmt.Sprintf("pattern %d: total_days must be positive", id)}
		}
		for off := range pattern.OffDays {
			if off < 0 || off >= pattern.TotalDays {
				return &ConfigError{Message: fmt.Sprintf("pattern %d: off_day %d not in [0, %d)", id, off, pattern.TotalDays)}
			}
		}
	}

	for i, emp := range p.Employees {
		if len(emp.InitialQuality) != p.NumShifts {
			return &ShapeError{Message: fmt.Sprintf("employee %d: initial_quality length (%d) doesn't match num_shifts (%d)", i, len(emp.InitialQuality), p.NumShifts)}
		}
		if _, ok := p.Patterns[emp.PatternID]; !ok {
			return &ConfigError{Message: fmt.Sprintf("employee %d: unknown pattern id %d", i, emp.PatternID)}
		}
		for s := range emp.PreferredShifts {
			if _, excluded := emp.ExcludedShifts[s]; excluded {
				return &ConfigError{Message: fmt.Sprintf("employee %d: shift %d is both preferred and excluded", i, s)}
			}
		}
	}

	return nil
}
