package cli

import (
	"errors"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"
)

// stageProgress draws one bar step per finished stage.
type stageProgress struct {
	bar                     *progressbar.ProgressBar
	passed, failed, skipped int
}

func newStageProgress(w io.Writer, stages int) *stageProgress {
	p := &stageProgress{}
	p.bar = progressbar.NewOptions(stages,
		progressbar.OptionSetDescription(p.describe("")),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() { io.WriteString(w, "\n") }),
		progressbar.OptionSetRenderBlankState(true),
	)
	return p
}

func (p *stageProgress) describe(stage string) string {
	return color.CyanString("Restore wallet ") +
		color.GreenString("[passed: %d", p.passed) + " | " +
		color.RedString("failed: %d", p.failed) + " | " +
		color.YellowString("skipped: %d]", p.skipped) + " " + stage
}

// Observe is a v1.Tester stage result listener.
func (p *stageProgress) Observe(res v1.StageResult) {
	switch {
	case res.Passed():
		p.passed++
	case errors.Is(res.Err, v1.ErrStageSkipped):
		p.skipped++
	default:
		p.failed++
	}
	p.bar.Describe(p.describe(res.Name))
	p.bar.Add(1)
}

func (p *stageProgress) Finish() {
	p.bar.Finish()
}
