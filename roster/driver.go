package roster

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Success is returned by GenerateRoster when every day 0..D-1 was
// assigned.
type Success struct {
	Schedule     [][]int
	FinalQuality [][]int
	RunID        string
}

// Failure is returned by GenerateRoster when the recursion unwound past
// day 0 without finding a complete schedule. PartialSchedule is
// available for diagnostics but must not be published as a roster.
type Failure struct {
	Reason          string
	PartialSchedule [][]int
	RunID           string
	LastDayReached  int
}

// GenerateRoster is the RosterDriver entry point: recursive day-by-day
// backtracking that chains DaySolver calls, threads State forward,
// remembers rejected solutions per day, and backtracks when a
// downstream day becomes infeasible.
//
// Cancellation: if ctx-style cancellation is needed by a caller, it must
// be enforced at day boundaries — this function itself runs to
// completion or exhaustion synchronously, matching the single-threaded
// cooperative model of the solver loop.
func GenerateRoster(problem *Problem, initial State, logger *zap.Logger) (*Success, *Failure) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	threshold := problem.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	schedule, finalQuality, lastDayReached, ok := solveFromDay(problem, initial, 0, threshold, logger)
	if ok {
		logger.Info("roster generation succeeded", zap.Int("days", problem.HorizonDays))
		return &Success{Schedule: schedule, FinalQuality: finalQuality, RunID: runID}, nil
	}

	logger.Warn("roster generation exhausted", zap.Int("last_day_reached", lastDayReached))
	return nil, &Failure{
		Reason:          "exhausted",
		LastDayReached:  lastDayReached,
		PartialSchedule: schedule,
		RunID:           runID,
	}
}

// solveFromDay implements the recursive backtracking step. It returns
// the accumulated schedule (complete on success, the deepest partial
// schedule reached on failure), the final quality counters (only
// meaningful on success), the deepest day index reached, and whether
// the full horizon was completed.
func solveFromDay(problem *Problem, state State, day int, threshold int, logger *zap.Logger) ([][]int, [][]int, int, bool) {
	if day == problem.HorizonDays {
		return state.Schedule, state.FinalQuality(), day, true
	}

	deepestReached := day
	deepestSchedule := state.Schedule
	var rejected [][]int
	for {
		solution, err := solveDay(problem, &state, day, rejected)
		if err != nil {
			logger.Debug("day exhausted", zap.Int("day", day), zap.Error(err))
			return deepestSchedule, nil, deepestReached, false
		}

		rejected = append(rejected, solution.Assignment)
		if len(rejected) > threshold {
			logger.Debug("day attempt threshold exceeded", zap.Int("day", day), zap.Int("threshold", threshold))
			return deepestSchedule, nil, deepestReached, false
		}

		nextState := state.Advance(solution.Assignment, solution.Quality)

		schedule, finalQuality, deepestDay, ok := solveFromDay(problem, nextState, day+1, threshold, logger)
		if ok {
			return schedule, finalQuality, deepestDay, true
		}
		if deepestDay > deepestReached {
			deepestReached = deepestDay
			deepestSchedule = schedule
		}

		logger.Debug("backtracking", zap.Int("day", day), zap.Int("attempt", len(rejected)))
	}
}
