package v1

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// recordingDriver is a Driver that remembers calls and serves canned text.
type recordingDriver struct {
	calls   []string
	visible map[string]bool
	texts   map[string]string
	filled  map[string]string
	closed  int
	shotErr error
}

func (d *recordingDriver) WaitVisible(ctx context.Context, selector string) error {
	d.calls = append(d.calls, "wait "+selector)
	if d.visible[selector] {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (d *recordingDriver) Click(ctx context.Context, selector string) error {
	d.calls = append(d.calls, "click "+selector)
	return nil
}

func (d *recordingDriver) Fill(ctx context.Context, selector, text string) error {
	d.calls = append(d.calls, "fill "+selector)
	if d.filled == nil {
		d.filled = map[string]string{}
	}
	d.filled[selector] = text
	return nil
}

func (d *recordingDriver) TextContent(ctx context.Context, selector string) (string, error) {
	d.calls = append(d.calls, "text "+selector)
	text, ok := d.texts[selector]
	if !ok {
		return "", errors.New("no node")
	}
	return text, nil
}

func (d *recordingDriver) Screenshot(ctx context.Context) ([]byte, error) {
	d.calls = append(d.calls, "screenshot")
	if d.shotErr != nil {
		return nil, d.shotErr
	}
	return []byte("\x89PNG\r\n\x1a\n"), nil
}

func (d *recordingDriver) Close() error {
	d.closed++
	return nil
}

func expectTestError(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		te, ok := r.(TestError)
		if !ok {
			t.Fatalf("expected TestError, got %T (%v)", r, r)
		}
		if !strings.Contains(te.Message, contains) {
			t.Errorf("expected message to contain %q, got %q", contains, te.Message)
		}
	}()
	fn()
}

func TestWindowInteractions(t *testing.T) {
	d := &recordingDriver{
		visible: map[string]bool{"#ready": true},
		texts:   map[string]string{"#address": "ST28VRDJ"},
	}
	w := NewWindow(context.Background(), d, time.Second)

	w.WaitFor("#ready")
	w.Click("#go")
	w.Fill("#password", "secret")
	if got := w.Text("#address"); got != "ST28VRDJ" {
		t.Errorf("expected text ST28VRDJ, got %q", got)
	}
	w.ExpectText("#address", ConditionStartsWith, "ST")

	want := []string{"wait #ready", "click #go", "fill #password", "text #address", "text #address"}
	if strings.Join(d.calls, "|") != strings.Join(want, "|") {
		t.Errorf("expected calls %v, got %v", want, d.calls)
	}
	if d.filled["#password"] != "secret" {
		t.Errorf("expected password to be typed, got %q", d.filled["#password"])
	}
}

func TestWindowWaitTimeoutNamesSelector(t *testing.T) {
	d := &recordingDriver{}
	w := NewWindow(context.Background(), d, 20*time.Millisecond)

	expectTestError(t, `Wait for selector "[data-test=\"missing\"]"`, func() {
		w.WaitFor(`[data-test="missing"]`)
	})
}

func TestWindowIsVisibleNeverFails(t *testing.T) {
	d := &recordingDriver{visible: map[string]bool{"#here": true}}
	w := NewWindow(context.Background(), d, time.Second)

	if !w.IsVisible("#here", 10*time.Millisecond) {
		t.Error("expected #here to be visible")
	}
	if w.IsVisible("#gone", 10*time.Millisecond) {
		t.Error("expected #gone to be absent")
	}
}

func TestWindowScreenshotCreatesDirectories(t *testing.T) {
	d := &recordingDriver{}
	w := NewWindow(context.Background(), d, time.Second)
	path := filepath.Join(t.TempDir(), "restore-wallet", "testnet-after-close-stx-modal.png")

	w.Screenshot(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Errorf("expected PNG data, got %q", data)
	}
}

func TestWindowScreenshotFailure(t *testing.T) {
	d := &recordingDriver{shotErr: errors.New("target closed")}
	w := NewWindow(context.Background(), d, time.Second)

	expectTestError(t, "target closed", func() {
		w.Screenshot(filepath.Join(t.TempDir(), "x.png"))
	})
}

func TestWindowDryRunRecordsWithoutDriver(t *testing.T) {
	tester := NewTester()
	tester.Stage("UI", func() {
		w := &Window{}
		w.WaitFor("#a")
		w.Click("#b")
		w.Fill("#c", "pw")
		_ = w.Text("#d")
		w.Screenshot("shots/x.png")
	})

	tester.DryRunAll()

	acts := GetStageActions("UI")
	if len(acts) != 5 {
		t.Fatalf("expected 5 recorded actions, got %d: %#v", len(acts), acts)
	}
	if acts[2].Summary != "Fill: #c" {
		t.Errorf("fill action should not expose the value, got %q", acts[2].Summary)
	}
}

func TestWindowWithoutDriverFails(t *testing.T) {
	w := &Window{}
	expectTestError(t, "window is not attached", func() { w.Click("#x") })
}
