package roster

// State is the rolling state threaded across days. It is owned by
// exactly one recursion frame at a time; RosterDriver advances it by
// value (via Advance, which returns a new State) so that a caller's
// State after a failed recursion is untouched — no shared backing
// arrays between a State and any State derived from it.
type State struct {
	PatternPos []int
	Yesterday  []int
	Quality    [][]int
	Schedule   [][]int
}

// NewInitialState builds day-0 state from the problem's static employee
// profiles: pattern position and previous shift come from the profile,
// quality is a defensive copy of InitialQuality, and the schedule starts
// empty.
func NewInitialState(problem *Problem) State {
	n := problem.NumEmployees
	st := State{
		PatternPos: make([]int, n),
		Yesterday:  make([]int, n),
		Quality:    make([][]int, n),
		Schedule:   make([][]int, 0, problem.HorizonDays),
	}
	for i, emp := range problem.Employees {
		st.PatternPos[i] = emp.InitialPatternPos
		st.Yesterday[i] = emp.PrevShift
		st.Quality[i] = append([]int(nil), emp.InitialQuality...)
	}
	return st
}

// Advance produces the state for day+1 from today's assignment and the
// already-normalised newQuality: pattern positions move forward by one,
// yesterday becomes today's assignment, and quality is replaced. The
// schedule grows by exactly one day. Advance never mutates the
// receiver's backing slices, so st is safe to keep using after a
// failed recursion into the returned state.
func (st State) Advance(assignment []int, newQuality [][]int) State {
	n := len(st.PatternPos)

	nextPos := make([]int, n)
	for i, pos := range st.PatternPos {
		nextPos[i] = pos + 1
	}

	nextYesterday := append([]int(nil), assignment...)

	nextQuality := make([][]int, n)
	for i, q := range newQuality {
		nextQuality[i] = append([]int(nil), q...)
	}

	nextSchedule := make([][]int, len(st.Schedule), len(st.Schedule)+1)
	copy(nextSchedule, st.Schedule)
	nextSchedule = append(nextSchedule, append([]int(nil), assignment...))

	return State{
		PatternPos: nextPos,
		Yesterday:  nextYesterday,
		Quality:    nextQuality,
		Schedule:   nextSchedule,
	}
}

// FinalQuality returns a defensive copy of the final per-employee,
// per-shift quality counters, suitable for returning to a caller.
func (st State) FinalQuality() [][]int {
	out := make([][]int, len(st.Quality))
	for i, q := range st.Quality {
		out[i] = append([]int(nil), q...)
	}
	return out
}

// normalizeQuality subtracts the minimum entry from every entry of q
// and clamps each entry to qualityCap. Idempotent: a second application
// subtracts zero and re-clamps values already within bounds.
func normalizeQuality(q []int, qualityCap int) []int {
	if len(q) == 0 {
		return q
	}
	out := append([]int(nil), q...)
	min := out[0]
	for _, v := range out[1:] {
		if v < min {
			min = v
		}
	}
	for i, v := range out {
		v -= min
		if v > qualityCap {
			v = qualityCap
		}
		out[i] = v
	}
	return out
}
