package main

import "testing"

func TestFormat_SuccessSolutionShape(t *testing.T) {
	out := format(scheduleOutput{
		Status:       "success",
		Schedule:     [][]int{{1, 2}, {2, 1}},
		FinalQuality: [][]int{{1, 0}, {0, 1}},
	})

	if out.Version.Sdk == "" {
		t.Error("expected Sdk version to be populated")
	}
	if len(out.Solutions) != 1 {
		t.Fatalf("expected exactly one solution, got %d", len(out.Solutions))
	}
	solution, ok := out.Solutions[0].(scheduleOutput)
	if !ok {
		t.Fatalf("expected solution of type scheduleOutput, got %T", out.Solutions[0])
	}
	if solution.Status != "success" || len(solution.Schedule) != 2 {
		t.Errorf("unexpected solution contents: %+v", solution)
	}
	if out.Statistics == nil || out.Statistics.Result == nil || out.Statistics.Result.Value == nil {
		t.Fatal("expected a populated result value in statistics")
	}
	if *out.Statistics.Result.Value != 2 {
		t.Errorf("expected result value 2 (days scheduled), got %v", *out.Statistics.Result.Value)
	}
}

func TestFormat_FailureSolutionShape(t *testing.T) {
	out := format(scheduleOutput{
		Status:         "failure",
		Reason:         "exhausted",
		LastDayReached: 3,
	})

	solution, ok := out.Solutions[0].(scheduleOutput)
	if !ok {
		t.Fatalf("expected solution of type scheduleOutput, got %T", out.Solutions[0])
	}
	if solution.Reason != "exhausted" || solution.LastDayReached != 3 {
		t.Errorf("unexpected failure solution: %+v", solution)
	}
}
