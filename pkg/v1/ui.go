package v1

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultWaitTimeout bounds a single UI interaction when none is configured.
const DefaultWaitTimeout = 30 * time.Second

// Driver performs raw interactions against one application window.
// Selectors are CSS selectors.
type Driver interface {
	WaitVisible(ctx context.Context, selector string) error
	Click(ctx context.Context, selector string) error
	// Fill replaces the value of an input with text.
	Fill(ctx context.Context, selector, text string) error
	TextContent(ctx context.Context, selector string) (string, error)
	// Screenshot returns a PNG of the whole window.
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Window drives an application window. Every operation is recorded as an action,
// skipped in dry run, and fails the current stage when it cannot complete in time.
type Window struct {
	driver      Driver
	ctx         context.Context
	waitTimeout time.Duration
}

// NewWindow wraps a driver. ctx bounds the window's whole lifetime.
func NewWindow(ctx context.Context, driver Driver, waitTimeout time.Duration) *Window {
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &Window{driver: driver, ctx: ctx, waitTimeout: waitTimeout}
}

func (w *Window) run(summary string, fn func(ctx context.Context) error) {
	if w.driver == nil {
		Fail("%s: window is not attached", summary)
	}
	ctx, cancel := context.WithTimeout(w.ctx, w.waitTimeout)
	defer cancel()

	Log(LogTypeUI, summary, "")
	if err := fn(ctx); err != nil {
		Fail("%s: %v", summary, err)
	}
}

// WaitFor blocks until selector is visible.
func (w *Window) WaitFor(selector string) {
	RecordAction(fmt.Sprintf("Wait For: %s", selector), func() { w.WaitFor(selector) })
	if IsDryRun() {
		return
	}
	w.run(fmt.Sprintf("Wait for selector %q", selector), func(ctx context.Context) error {
		return w.driver.WaitVisible(ctx, selector)
	})
}

// IsVisible reports whether selector becomes visible within timeout. It never fails the stage.
func (w *Window) IsVisible(selector string, timeout time.Duration) bool {
	RecordAction(fmt.Sprintf("Check Visible: %s", selector), func() { w.IsVisible(selector, timeout) })
	if IsDryRun() || w.driver == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(w.ctx, timeout)
	defer cancel()
	visible := w.driver.WaitVisible(ctx, selector) == nil
	Log(LogTypeUI, fmt.Sprintf("Selector %q visible=%v", selector, visible), "")
	return visible
}

// Click waits for selector and clicks it.
func (w *Window) Click(selector string) {
	RecordAction(fmt.Sprintf("Click: %s", selector), func() { w.Click(selector) })
	if IsDryRun() {
		return
	}
	w.run(fmt.Sprintf("Click %q", selector), func(ctx context.Context) error {
		return w.driver.Click(ctx, selector)
	})
}

// Fill types text into the input matched by selector. The text itself is never logged.
func (w *Window) Fill(selector, text string) {
	RecordAction(fmt.Sprintf("Fill: %s", selector), func() { w.Fill(selector, text) })
	if IsDryRun() {
		return
	}
	w.run(fmt.Sprintf("Fill %q (%d chars)", selector, len(text)), func(ctx context.Context) error {
		return w.driver.Fill(ctx, selector, text)
	})
}

// Text returns the text content of the element matched by selector.
func (w *Window) Text(selector string) string {
	RecordAction(fmt.Sprintf("Read Text: %s", selector), func() { w.Text(selector) })
	if IsDryRun() {
		return ""
	}
	var text string
	w.run(fmt.Sprintf("Read text of %q", selector), func(ctx context.Context) error {
		var err error
		text, err = w.driver.TextContent(ctx, selector)
		return err
	})
	Log(LogTypeUI, fmt.Sprintf("Text of %q", selector), text)
	return text
}

// ExpectText reads selector's text and checks it against expected with condition.
func (w *Window) ExpectText(selector, condition, expected string) {
	RecordAction(fmt.Sprintf("Expect Text: %s %s %s", selector, condition, expected), func() { w.ExpectText(selector, condition, expected) })
	if IsDryRun() {
		return
	}
	ExpectCondition(fmt.Sprintf("text of %q", selector), w.Text(selector), condition, expected)
}

// Screenshot captures the window to a PNG at path, creating parent directories.
func (w *Window) Screenshot(path string) {
	RecordAction(fmt.Sprintf("Screenshot: %s", path), func() { w.Screenshot(path) })
	if IsDryRun() {
		return
	}
	var data []byte
	w.run(fmt.Sprintf("Capture screenshot %s", path), func(ctx context.Context) error {
		var err error
		data, err = w.driver.Screenshot(ctx)
		return err
	})
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		Fail("Failed to create screenshot directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		Fail("Failed to write screenshot %s: %v", path, err)
	}
	Log(LogTypeScreenshot, fmt.Sprintf("Saved %s", path), fmt.Sprintf("%d bytes", len(data)))
}

func (w *Window) close() {
	if w == nil || w.driver == nil {
		return
	}
	if err := w.driver.Close(); err != nil {
		Log(LogTypeUI, "Closing window session failed", err.Error())
	}
}
