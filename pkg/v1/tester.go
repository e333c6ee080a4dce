package v1

import (
	"errors"
	"fmt"
	"sync"
)

// StageFunc represents the function to be executed in a stage.
type StageFunc func()

// StageDef represents a defined stage.
type StageDef struct {
	Name string
	Func StageFunc
	// Always marks a stage registered with Finally.
	Always bool
}

// Action represents a runnable operation within a stage.
type Action struct {
	Summary string
	Func    func()
}

// ErrStageSkipped is returned for stages RunAll did not start because an earlier stage failed.
var ErrStageSkipped = errors.New("skipped after earlier failure")

var (
	// stageActions maps StageName -> List of Actions
	stageActions = make(map[string][]Action)
	// currentStage tracks the currently running stage name
	currentStage string
	// isRecording determines if operations should be recorded
	isRecording bool
	// actionMu protects the global state
	actionMu sync.Mutex
	// actionHandlers are notified when actions list updates
	actionHandlers []func()
	// isDryRun indicates if the tester is in discovery mode
	isDryRun bool
)

// IsDryRun checks if the tester is in dry run mode.
func IsDryRun() bool {
	actionMu.Lock()
	defer actionMu.Unlock()
	return isDryRun
}

// RecordAction registers an operation for the current stage.
func RecordAction(summary string, fn func()) {
	actionMu.Lock()
	defer actionMu.Unlock()

	if !isRecording || currentStage == "" {
		return
	}

	stageActions[currentStage] = append(stageActions[currentStage], Action{
		Summary: summary,
		Func:    fn,
	})

	notifyActionHandlers()
}

// GetStageActions returns the recorded actions for a stage.
func GetStageActions(stageName string) []Action {
	actionMu.Lock()
	defer actionMu.Unlock()
	src := stageActions[stageName]
	dst := make([]Action, len(src))
	copy(dst, src)
	return dst
}

// RegisterActionUpdateHandler adds a listener for action updates.
func RegisterActionUpdateHandler(fn func()) {
	actionMu.Lock()
	defer actionMu.Unlock()
	actionHandlers = append(actionHandlers, fn)
}

func notifyActionHandlers() {
	for _, h := range actionHandlers {
		h()
	}
}

// StageResult is the outcome of one stage in a RunAll pass.
type StageResult struct {
	Name string
	Err  error
}

// Passed reports whether the stage ran without failure.
func (r StageResult) Passed() bool { return r.Err == nil }

// Tester is the main struct for the integration test library.
type Tester struct {
	Stages []StageDef
	mu     sync.Mutex

	resultHandlers []func(StageResult)
}

// NewTester creates a new Tester instance.
func NewTester() *Tester {
	return &Tester{
		Stages: make([]StageDef, 0),
	}
}

// Stage registers a new stage.
func (t *Tester) Stage(name string, fn StageFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Stages = append(t.Stages, StageDef{Name: name, Func: fn})
}

// Finally registers a stage that RunAll executes after the ordinary stages,
// regardless of whether they passed.
func (t *Tester) Finally(name string, fn StageFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Stages = append(t.Stages, StageDef{Name: name, Func: fn, Always: true})
}

// OnStageResult adds a listener called after every stage RunAll visits.
func (t *Tester) OnStageResult(fn func(StageResult)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resultHandlers = append(t.resultHandlers, fn)
}

func (t *Tester) snapshot() ([]StageDef, []func(StageResult)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stages := make([]StageDef, len(t.Stages))
	copy(stages, t.Stages)
	handlers := make([]func(StageResult), len(t.resultHandlers))
	copy(handlers, t.resultHandlers)
	return stages, handlers
}

// RunStageByName runs a specific stage by name.
func (t *Tester) RunStageByName(name string) (err error) {
	t.mu.Lock()
	var fn StageFunc
	for _, s := range t.Stages {
		if s.Name == name {
			fn = s.Func
			break
		}
	}
	t.mu.Unlock()

	if fn == nil {
		return fmt.Errorf("stage %s not found", name)
	}

	actionMu.Lock()
	currentStage = name
	isRecording = true
	stageActions[name] = []Action{} // Clear previous actions
	notifyActionHandlers()
	actionMu.Unlock()

	Log(LogTypeStage, fmt.Sprintf("Running Stage: %s", name), "")

	defer func() {
		actionMu.Lock()
		isRecording = false
		currentStage = ""
		actionMu.Unlock()
	}()

	// Stages signal failure by panicking with TestError (see Fail).
	defer func() {
		if r := recover(); r != nil {
			if te, ok := r.(TestError); ok {
				Log(LogTypeStage, fmt.Sprintf("Stage %s FAILED", name), te.Message)
				err = fmt.Errorf("failed: %s", te.Message)
			} else {
				Log(LogTypeStage, fmt.Sprintf("Stage %s FAILED (Crash)", name), fmt.Sprintf("%v", r))
				err = fmt.Errorf("panic: %v", r)
			}
		} else {
			Log(LogTypeStage, fmt.Sprintf("Stage %s PASSED", name), "")
		}
	}()
	fn()
	return nil
}

// RunAll runs the ordinary stages in registration order and stops at the first
// failure. Stages registered with Finally run afterwards no matter what.
// The first failure is returned, wrapped with the stage name.
func (t *Tester) RunAll() error {
	stages, handlers := t.snapshot()

	var first error
	report := func(res StageResult) {
		for _, h := range handlers {
			h(res)
		}
		if res.Err != nil && first == nil && !errors.Is(res.Err, ErrStageSkipped) {
			first = fmt.Errorf("stage %q %w", res.Name, res.Err)
		}
	}

	failed := false
	for _, s := range stages {
		if s.Always {
			continue
		}
		if failed {
			Log(LogTypeStage, fmt.Sprintf("Stage %s SKIPPED", s.Name), "")
			report(StageResult{Name: s.Name, Err: ErrStageSkipped})
			continue
		}
		err := t.RunStageByName(s.Name)
		report(StageResult{Name: s.Name, Err: err})
		failed = err != nil
	}

	for _, s := range stages {
		if !s.Always {
			continue
		}
		report(StageResult{Name: s.Name, Err: t.RunStageByName(s.Name)})
	}
	return first
}

// DryRunAll executes all stages in dry run mode to discover actions.
func (t *Tester) DryRunAll() {
	stages, _ := t.snapshot()
	for _, s := range stages {
		t.DryRunStage(s)
	}
}

// DryRunStage executes a single stage in dry run mode.
func (t *Tester) DryRunStage(s StageDef) {
	actionMu.Lock()
	currentStage = s.Name
	isRecording = true
	isDryRun = true
	stageActions[s.Name] = []Action{}
	actionMu.Unlock()

	defer func() {
		actionMu.Lock()
		isRecording = false
		isDryRun = false
		currentStage = ""
		actionMu.Unlock()
		// Catch panics during dry run
		recover()
	}()

	s.Func()
}
