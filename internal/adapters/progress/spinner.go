package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// SpinnerProgressReporter shows the deploy stages behind a spinner on stderr
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     usecase.DeployStage
	StartTime time.Time
	EndTime   time.Time
	Message   string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterTo(os.Stderr)
}

// NewSpinnerProgressReporterTo writes the spinner and messages to out
func NewSpinnerProgressReporterTo(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	stage := usecase.DeployStage(event.Stage)
	if n := len(r.stages); n == 0 || r.stages[n-1].Stage != stage {
		r.completeCurrentStage()
		r.stages = append(r.stages, stageInfo{Stage: stage, StartTime: time.Now()})
	}
	r.stages[len(r.stages)-1].Message = event.Message

	if event.Spinner {
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if stage == usecase.StageCompleted {
		r.completeCurrentStage()
		fmt.Fprintln(r.out, r.display())
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage marks the current stage as completed
func (r *SpinnerProgressReporter) completeCurrentStage() {
	if n := len(r.stages); n > 0 && r.stages[n-1].EndTime.IsZero() {
		r.stages[n-1].EndTime = time.Now()
	}
}

// display renders the stage trail, e.g. "✓ Resolving (12ms) → ● Deploying"
func (r *SpinnerProgressReporter) display() string {
	var display string
	for i, stage := range r.stages {
		icon := "●"
		stageColor := color.New(color.FgYellow)
		duration := ""
		if !stage.EndTime.IsZero() {
			icon = "✓"
			stageColor = color.New(color.FgGreen)
			if stage.Stage != usecase.StageCompleted {
				duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
			}
		}

		if i > 0 {
			display += " → "
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(string(stage.Stage)), duration)
	}

	if n := len(r.stages); n > 0 && r.stages[n-1].EndTime.IsZero() && r.stages[n-1].Message != "" {
		display += ": " + r.stages[n-1].Message
	}
	return display
}

var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
