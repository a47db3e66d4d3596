// package main runs the roster engine as a nextmv run.CLI application:
// it reads a configuration document from stdin (or a file, via the
// standard nextmv run options), derives a Problem, checks feasibility,
// drives day-by-day generation, and writes a schema.Output to stdout.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"github.com/nextmv-io/sdk"
	"github.com/nextmv-io/sdk/run"
	"github.com/nextmv-io/sdk/run/schema"
	"github.com/nextmv-io/sdk/run/statistics"
	"go.uber.org/zap"

	"github.com/nextmv-community/roster-engine/internal/config"
	"github.com/nextmv-community/roster-engine/roster"
)

func main() {
	err := run.CLI(solver).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// options exposes verbosity to the CLI; the core solver otherwise
// derives its own per-day time limit from the configuration document.
type options struct {
	Verbose bool `json:"verbose,omitempty"`
}

// scheduleOutput is the roster-specific payload carried in
// schema.Output.Solutions.
type scheduleOutput struct {
	Status          string   `json:"status"`
	Schedule        [][]int  `json:"schedule,omitempty"`
	FinalQuality    [][]int  `json:"final_quality,omitempty"`
	Reason          string   `json:"reason,omitempty"`
	LastDayReached  int      `json:"last_day_reached,omitempty"`
	PartialSchedule [][]int  `json:"partial_schedule,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

func solver(_ context.Context, input json.RawMessage, opts options) (schema.Output, error) {
	logger := newLogger(opts.Verbose)
	defer logger.Sync()

	problem, initial, warnings, err := config.Load(bytes.NewReader(input))
	if err != nil {
		return schema.Output{}, err
	}

	warningTexts := make([]string, len(warnings))
	for i, w := range warnings {
		warningTexts[i] = w.Text
	}

	success, failure, err := roster.Run(&problem, initial, logger)
	if err != nil {
		return schema.Output{}, err
	}

	out := scheduleOutput{Warnings: warningTexts}
	if success != nil {
		out.Status = "success"
		out.Schedule = success.Schedule
		out.FinalQuality = success.FinalQuality
	} else {
		out.Status = "failure"
		out.Reason = failure.Reason
		out.LastDayReached = failure.LastDayReached
		out.PartialSchedule = failure.PartialSchedule
	}

	return format(out), nil
}

func format(solution scheduleOutput) schema.Output {
	o := schema.Output{}
	o.Version = schema.Version{Sdk: sdk.VERSION}

	stats := statistics.NewStatistics()
	stats.Result = &statistics.Result{}
	value := statistics.Float64(float64(len(solution.Schedule)))
	stats.Result.Value = &value
	o.Statistics = stats

	o.Solutions = append(o.Solutions, solution)
	return o
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
