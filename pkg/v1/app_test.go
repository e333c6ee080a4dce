package v1

import (
	"strings"
	"testing"
	"time"
)

func TestRunAppServer(t *testing.T) {
	app := RunAppServer("sleep", "5")

	if app.Pid() == 0 {
		t.Fatal("expected a started process")
	}

	start := time.Now()
	app.Stop()
	if time.Since(start) > 2*time.Second {
		t.Errorf("Stop should kill the process instead of waiting for it")
	}

	// Second call must be a no-op.
	app.Stop()
}

func TestRunAppServerFail(t *testing.T) {
	defer func() {
		r := recover()
		te, ok := r.(TestError)
		if !ok {
			t.Fatalf("Expected TestError panic for missing executable, got %v", r)
		}
		if !strings.Contains(te.Message, "non_existent_executable_xyz") {
			t.Errorf("unexpected message: %s", te.Message)
		}
	}()

	RunAppServer("non_existent_executable_xyz")
}

func TestAppCloseIsIdempotent(t *testing.T) {
	driver := &recordingDriver{}
	stops := 0
	app := NewApp(NewWindow(t.Context(), driver, time.Second), func() { stops++ })

	app.Close()
	app.Close()
	app.Close()

	if stops != 1 {
		t.Errorf("expected the process to be stopped once, got %d", stops)
	}
	if driver.closed != 1 {
		t.Errorf("expected the window session to be closed once, got %d", driver.closed)
	}
	if app.Teardowns() != 1 {
		t.Errorf("expected one teardown, got %d", app.Teardowns())
	}
}
