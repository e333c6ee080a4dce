package v1

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const guiLogLines = 500

// RunGUI starts the local desktop GUI. It blocks until the window is closed.
func RunGUI(t *Tester, title string) {
	myApp := app.New()
	myWindow := myApp.NewWindow(title)

	// Populate recorded actions so each stage can show what it will do.
	t.DryRunAll()

	statusLabels := make(map[string]*widget.Label)
	setStatus := func(stage, text string) {
		if l, ok := statusLabels[stage]; ok {
			fyne.Do(func() { l.SetText(text) })
		}
	}
	t.OnStageResult(func(res StageResult) {
		switch {
		case res.Passed():
			setStatus(res.Name, "PASSED")
		case res.Err == ErrStageSkipped:
			setStatus(res.Name, "Skipped")
		default:
			setStatus(res.Name, fmt.Sprintf("FAILED: %v", res.Err))
		}
	})

	logView := widget.NewMultiLineEntry()
	logView.Wrapping = fyne.TextWrapWord
	logView.Disable()
	var (
		logMu    sync.Mutex
		logLines []string
	)
	RegisterLogHandler(func(e LogEntry) {
		line := fmt.Sprintf("[%s] %s", e.Type, e.Summary)
		if e.Detail != "" {
			line += " - " + e.Detail
		}
		logMu.Lock()
		logLines = append(logLines, line)
		if len(logLines) > guiLogLines {
			logLines = logLines[len(logLines)-guiLogLines:]
		}
		text := strings.Join(logLines, "\n")
		logMu.Unlock()
		fyne.Do(func() { logView.SetText(text) })
	})

	var running sync.Mutex
	runAsync := func(fn func()) {
		go func() {
			if !running.TryLock() {
				Log(LogTypeInfo, "A run is already in progress", "")
				return
			}
			defer running.Unlock()
			fn()
		}()
	}

	var stageControls []fyne.CanvasObject
	stageControls = append(stageControls, widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}))

	for _, stage := range t.Stages {
		stageName := stage.Name

		statusLabel := widget.NewLabel("Not Run")
		statusLabel.TextStyle = fyne.TextStyle{Italic: true}
		statusLabels[stageName] = statusLabel

		name := stageName
		if stage.Always {
			name += " (always)"
		}

		actionsBtn := widget.NewButton("Actions", func() {
			var lines []string
			for i, a := range GetStageActions(stageName) {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, a.Summary))
			}
			if len(lines) == 0 {
				lines = append(lines, "No recorded actions")
			}
			dialog.ShowInformation(stageName, strings.Join(lines, "\n"), myWindow)
		})

		runBtn := widget.NewButton("Run", func() {
			statusLabel.SetText("Running...")
			runAsync(func() {
				if err := t.RunStageByName(stageName); err != nil {
					setStatus(stageName, fmt.Sprintf("FAILED: %v", err))
				} else {
					setStatus(stageName, "PASSED")
				}
			})
		})

		row := container.NewHBox(
			widget.NewLabel(name),
			layout.NewSpacer(),
			statusLabel,
			actionsBtn,
			runBtn,
		)
		stageControls = append(stageControls, row)
	}

	runAllBtn := widget.NewButton("Run All", func() {
		for _, l := range statusLabels {
			l.SetText("Pending")
		}
		runAsync(func() {
			if err := t.RunAll(); err != nil {
				Log(LogTypeError, "Run finished with failure", err.Error())
				return
			}
			Log(LogTypeInfo, "Run finished", "all stages passed")
		})
	})
	stageControls = append(stageControls, runAllBtn)

	stages := container.NewScroll(container.NewVBox(stageControls...))
	split := container.NewVSplit(stages, logView)
	split.Offset = 0.5

	myWindow.SetContent(split)
	myWindow.Resize(fyne.NewSize(760, 620))

	log.Println("Starting GUI window...")
	myWindow.ShowAndRun()
}
