package v1

import (
	"errors"
	"strings"
	"testing"
)

func TestTester(t *testing.T) {
	tester := NewTester()

	tester.Stage("Stage1", func() {})
	tester.Stage("Stage2", func() {})

	if len(tester.Stages) != 2 {
		t.Errorf("Expected 2 stages, got %d", len(tester.Stages))
	}

	if err := tester.RunStageByName("Stage1"); err != nil {
		t.Errorf("Stage1 failed: %v", err)
	}

	if err := tester.RunStageByName("StageX"); err == nil {
		t.Error("Expected error for missing stage")
	}

	tester.Stage("FailStage", func() {
		Fail("Explicit fail")
	})

	err := tester.RunStageByName("FailStage")
	if err == nil {
		t.Fatal("Expected error for FailStage")
	}
	if !strings.Contains(err.Error(), "Explicit fail") {
		t.Errorf("Expected error message 'Explicit fail', got %v", err)
	}

	tester.Stage("PanicStage", func() {
		panic("Something bad happened")
	})

	err = tester.RunStageByName("PanicStage")
	if err == nil {
		t.Fatal("Expected error for PanicStage")
	}
	if !strings.Contains(err.Error(), "panic: Something bad happened") {
		t.Errorf("Expected error message 'panic: Something bad happened', got %v", err)
	}
}

func TestRunAllStopsAtFirstFailureAndRunsFinally(t *testing.T) {
	tester := NewTester()
	var order []string

	tester.Stage("Setup", func() { order = append(order, "Setup") })
	tester.Finally("Teardown", func() { order = append(order, "Teardown") })
	tester.Stage("Broken", func() {
		order = append(order, "Broken")
		Fail("selector never appeared")
	})
	tester.Stage("After", func() { order = append(order, "After") })

	var results []StageResult
	tester.OnStageResult(func(r StageResult) { results = append(results, r) })

	err := tester.RunAll()
	if err == nil {
		t.Fatal("expected RunAll to report the failure")
	}
	if !strings.Contains(err.Error(), `stage "Broken" failed: selector never appeared`) {
		t.Errorf("unexpected error: %v", err)
	}

	want := []string{"Setup", "Broken", "Teardown"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("expected order %v, got %v", want, order)
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[2].Name != "After" || !errors.Is(results[2].Err, ErrStageSkipped) {
		t.Errorf("expected After to be skipped, got %+v", results[2])
	}
	if results[3].Name != "Teardown" || !results[3].Passed() {
		t.Errorf("expected Teardown to pass, got %+v", results[3])
	}
}

func TestRunAllPasses(t *testing.T) {
	tester := NewTester()
	runs := 0
	tester.Stage("One", func() { runs++ })
	tester.Finally("Always", func() { runs++ })

	if err := tester.RunAll(); err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if runs != 2 {
		t.Errorf("expected both stages to run once, got %d runs", runs)
	}
}

func TestRunAllReportsFailingFinally(t *testing.T) {
	tester := NewTester()
	tester.Stage("One", func() {})
	tester.Finally("Always", func() { Fail("could not close") })

	err := tester.RunAll()
	if err == nil || !strings.Contains(err.Error(), "could not close") {
		t.Fatalf("expected finally failure, got %v", err)
	}
}

func TestDryRun(t *testing.T) {
	tester := NewTester()
	tester.Stage("DryRunStage", func() {
		RecordAction("My Action", func() {})
	})

	tester.DryRunAll()

	actions := GetStageActions("DryRunStage")
	if len(actions) != 1 {
		t.Fatalf("Expected 1 action, got %d", len(actions))
	}
	if actions[0].Summary != "My Action" {
		t.Errorf("Expected action summary 'My Action', got '%s'", actions[0].Summary)
	}

	sawDryRun := false
	tester.Stage("CheckDryRun", func() {
		sawDryRun = IsDryRun()
	})
	tester.DryRunStage(tester.Stages[1])
	if !sawDryRun {
		t.Error("Expected IsDryRun to be true inside a dry-run stage")
	}
	if IsDryRun() {
		t.Error("Expected IsDryRun to be reset after the stage")
	}
}
