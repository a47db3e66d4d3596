package roster

import (
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"
)

// daySolution is the result of solving one day: the assignment vector
// and the quality counters after normalisation.
type daySolution struct {
	Assignment []int
	Quality    [][]int
}

// employeeShift indexes the per-(employee,shift) indicator variables
// built for one day's model.
type employeeShift struct {
	Employee int
	Shift    int
}

// solveDay builds and solves one day's CSP+objective model. rejected
// holds assignment vectors already tried and ruled out by a downstream
// failure; the model is extended with one "differ from this vector in
// at least one employee" constraint per rejected solution.
func solveDay(problem *Problem, state *State, day int, rejected [][]int) (*daySolution, error) {
	n, k := problem.NumEmployees, problem.NumShifts

	if len(state.Yesterday) != n || len(state.PatternPos) != n || len(state.Quality) != n {
		return nil, &ShapeError{Message: fmt.Sprintf("state vectors must have length %d", n)}
	}
	for i, q := range state.Quality {
		if len(q) != k {
			return nil, &ShapeError{Message: fmt.Sprintf("quality[%d] length (%d) doesn't match num_shifts (%d)", i, len(q), k)}
		}
	}

	forcedOff := make([]bool, n)
	for i, emp := range problem.Employees {
		pattern, err := patternFor(problem, emp.PatternID)
		if err != nil {
			return nil, err
		}
		_, onLeave := emp.LeaveDays[day]
		off, err := IsOff(pattern, state.PatternPos[i], 0)
		if err != nil {
			return nil, err
		}
		forcedOff[i] = onLeave || off
	}

	m := mip.NewModel()
	m.Objective().SetMinimize()

	combos := make([]employeeShift, 0, n*k)
	for i := 0; i < n; i++ {
		for s := 1; s <= k; s++ {
			combos = append(combos, employeeShift{Employee: i, Shift: s})
		}
	}

	// indicators[i][s] ⇔ assignment[i] == s, for s in 1..K.
	indicators := model.NewMultiMap(
		func(...employeeShift) mip.Bool {
			return m.NewBool()
		}, combos)

	byEmployee := make([][]employeeShift, n)
	for _, c := range combos {
		byEmployee[c.Employee] = append(byEmployee[c.Employee], c)
	}

	// Off/forced-on per pattern and leave, plus "exactly one shift when
	// working". An indicator-based model needs this extra constraint to
	// recover single-valued-variable semantics: the sum of an employee's
	// indicators is 1 when working, 0 when off.
	for i := 0; i < n; i++ {
		exactlyOne := m.NewConstraint(mip.Equal, boolToFloat(!forcedOff[i]))
		for _, c := range byEmployee[i] {
			exactlyOne.NewTerm(1.0, indicators.Get(c))
		}
	}

	// Staffing counts.
	bySShift := make(map[int][]employeeShift, k)
	for _, c := range combos {
		bySShift[c.Shift] = append(bySShift[c.Shift], c)
	}
	for s := 1; s <= k; s++ {
		minConstraint := m.NewConstraint(mip.GreaterThanOrEqual, float64(problem.MinCount[s]))
		maxConstraint := m.NewConstraint(mip.LessThanOrEqual, float64(problem.MaxCount[s]))
		for _, c := range bySShift[s] {
			minConstraint.NewTerm(1.0, indicators.Get(c))
			maxConstraint.NewTerm(1.0, indicators.Get(c))
		}
	}

	// Forbidden sequence.
	for i := 0; i < n; i++ {
		prev := state.Yesterday[i]
		for pair := range problem.ForbiddenPairs {
			if pair.Prev == prev {
				forbid := m.NewConstraint(mip.Equal, 0.0)
				forbid.NewTerm(1.0, indicators.Get(employeeShift{Employee: i, Shift: pair.Next}))
			}
		}
	}

	// Preferences & exclusions.
	for i, emp := range problem.Employees {
		for s := 1; s <= k; s++ {
			excluded := false
			if _, ok := emp.ExcludedShifts[s]; ok {
				excluded = true
			}
			notPreferred := false
			if len(emp.PreferredShifts) > 0 {
				if _, ok := emp.PreferredShifts[s]; !ok {
					notPreferred = true
				}
			}
			if excluded || notPreferred {
				forbid := m.NewConstraint(mip.Equal, 0.0)
				forbid.NewTerm(1.0, indicators.Get(employeeShift{Employee: i, Shift: s}))
			}
		}
	}

	// Rejected-solution exclusion: for each prior rejected assignment r,
	// require at least one employee to differ. An employee who is
	// forced off can never differ (off-ness is fixed by pattern/leave,
	// not chosen), so only employees with a real shift in r contribute.
	// For those, diff_i = 1 - indicator[i][r[i]] (exactlyOne guarantees
	// indicator[i][r[i]]=1 iff x[i]=r[i]); "sum(diff_i) >= 1" rewrites to
	// "sum(indicator[i][r[i]]) <= (count of such employees) - 1".
	for _, r := range rejected {
		if len(r) != n {
			return nil, &ShapeError{Message: fmt.Sprintf("rejected solution length (%d) doesn't match num_employees (%d)", len(r), n)}
		}
		varying := 0
		terms := make([]employeeShift, 0, n)
		for i := 0; i < n; i++ {
			if forcedOff[i] || r[i] == 0 {
				continue
			}
			varying++
			terms = append(terms, employeeShift{Employee: i, Shift: r[i]})
		}
		if varying == 0 {
			// No employee could possibly differ from r: r is the only
			// assignment this day admits and it has already been
			// rejected, so the day has no solution left (the exclusion
			// constraint would be the unsatisfiable sum <= -1).
			return nil, &NoSolution{Day: day, Reason: "the only possible assignment has already been rejected"}
		}
		excludeRejected := m.NewConstraint(mip.LessThanOrEqual, float64(varying-1))
		for _, c := range terms {
			excludeRejected.NewTerm(1.0, indicators.Get(c))
		}
	}

	// Fairness objective: minimise sum of (quality[i][s-1]+1) over
	// assigned indicators.
	for i := 0; i < n; i++ {
		for s := 1; s <= k; s++ {
			cost := float64(state.Quality[i][s-1] + 1)
			m.Objective().NewTerm(cost, indicators.Get(employeeShift{Employee: i, Shift: s}))
		}
	}

	limit := problem.CSPTimeLimitMS
	if limit <= 0 {
		limit = DefaultCSPTimeLimitMS
	}

	solver, err := mip.NewSolver(mip.Highs, m)
	if err != nil {
		return nil, fmt.Errorf("building solver: %w", err)
	}

	// HiGHS runs single-threaded branch-and-bound by default; unlike an
	// OR-tools CP-SAT binding, go-highs exposes no num_search_workers
	// knob to set explicitly.
	solveOptions := mip.SolveOptions{}
	solveOptions.Duration = time.Duration(limit) * time.Millisecond
	solveOptions.Verbosity = mip.Off

	solution, err := solver.Solve(solveOptions)
	if err != nil {
		return nil, &NoSolution{Day: day, Reason: err.Error()}
	}
	if solution == nil || !solution.HasValues() || !(solution.IsOptimal() || solution.IsSubOptimal()) {
		return nil, &NoSolution{Day: day, Reason: "solver returned no feasible assignment"}
	}

	assignment := make([]int, n)
	for i := 0; i < n; i++ {
		assigned := 0
		for s := 1; s <= k; s++ {
			if solution.Value(indicators.Get(employeeShift{Employee: i, Shift: s})) >= 0.5 {
				assigned = s
				break
			}
		}
		assignment[i] = assigned
	}

	qualityCap := problem.QualityCap
	if qualityCap <= 0 {
		qualityCap = DefaultQualityCap
	}
	newQuality := make([][]int, n)
	for i := 0; i < n; i++ {
		q := append([]int(nil), state.Quality[i]...)
		if assignment[i] > 0 {
			q[assignment[i]-1]++
		}
		newQuality[i] = normalizeQuality(q, qualityCap)
	}

	return &daySolution{Assignment: assignment, Quality: newQuality}, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
