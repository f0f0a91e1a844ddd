package components

import (
	"fmt"
	"strings"

	"github.com/tooley/tooley/internal/ui/theme"
)

// StepBar shows how far through a numbered sequence of questions the
// user is.
type StepBar struct {
	Step  int
	Total int
	Width int
}

// NewStepBar creates a step bar. A zero step hides it.
func NewStepBar(step, total, width int) StepBar {
	return StepBar{Step: step, Total: total, Width: width}
}

// Percent is the completed share of the steps.
func (p StepBar) Percent() float64 {
	if p.Total <= 0 || p.Step <= 0 {
		return 0
	}
	return min(float64(p.Step)/float64(p.Total), 1)
}

// View renders the bar followed by "step/total", or nothing when no step
// is active.
func (p StepBar) View() string {
	if p.Step <= 0 || p.Total <= 0 {
		return ""
	}
	label := fmt.Sprintf("  %d/%d", p.Step, p.Total)
	barWidth := max(p.Width-len(label), 4)

	filled := max(min(int(float64(barWidth)*p.Percent()), barWidth), 0)
	empty := barWidth - filled

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		theme.Hint.Render(label)
}
