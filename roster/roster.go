// Package roster implements the day-by-day constraint-solving engine
// that builds an employee shift roster: pattern calendars, a static
// feasibility analyser, a per-day CSP+objective solver backed by HiGHS,
// and a recursive backtracking driver that chains days together.
package roster

import "go.uber.org/zap"

// Run validates and checks feasibility of problem, then drives roster
// generation from initial. It returns *InfeasibilityError immediately
// if the problem fails the static feasibility analysis, matching the
// propagation policy that ConfigError and InfeasibilityError are never
// caught internally while NoSolution never escapes past GenerateRoster.
func Run(problem *Problem, initial State, logger *zap.Logger) (*Success, *Failure, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := problem.Validate(); err != nil {
		return nil, nil, err
	}

	feasible, messages := CheckFeasibility(problem, logger)
	if !feasible {
		return nil, nil, &InfeasibilityError{Messages: messages}
	}

	success, failure := GenerateRoster(problem, initial, logger)
	return success, failure, nil
}
