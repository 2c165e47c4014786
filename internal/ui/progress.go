package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/offsite/internal/content"
)

// Checklist renders the tutorial steps as a numbered list. Each line
// carries a bar showing the step's share of the total estimated time.
type Checklist struct {
	Steps    []content.Step
	Width    int  // Terminal width
	Detailed bool // Include content and instructions under each step
	bar      progress.Model
}

// NewChecklist creates a checklist sized to the terminal
func NewChecklist(steps []content.Step) *Checklist {
	c := &Checklist{Steps: steps}
	return c.SetWidth(GetTerminalWidth())
}

// SetWidth sets the terminal width for responsive rendering
func (c *Checklist) SetWidth(width int) *Checklist {
	c.Width = width
	barWidth := width / 6
	if barWidth < 8 {
		barWidth = 8
	}
	if barWidth > 16 {
		barWidth = 16
	}
	c.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return c
}

// TotalMinutes sums the estimated time of every step.
func (c *Checklist) TotalMinutes() int {
	total := 0
	for _, s := range c.Steps {
		total += s.EstimatedTime
	}
	return total
}

// Render returns the styled checklist as a string
func (c *Checklist) Render() string {
	total := c.TotalMinutes()
	lines := make([]string, 0, len(c.Steps)*2)
	for i, s := range c.Steps {
		lines = append(lines, c.renderLine(i, s, total))
		if c.Detailed {
			lines = append(lines, c.renderDetail(s))
		}
	}
	lines = append(lines, "", StepTimeStyle.Render(fmt.Sprintf("  ~%d min total", total)))
	return strings.Join(lines, "\n")
}

// titleWidth is the column budget for step titles in compact lines.
func (c *Checklist) titleWidth() int {
	w := c.Width - 32 // prefix, time and bar
	if w < 20 {
		w = 20
	}
	return w
}

func (c *Checklist) renderLine(i int, s content.Step, total int) string {
	prefix := StepNumberStyle.Render(fmt.Sprintf("  [%d/%d]", i+1, len(c.Steps)))

	tw := c.titleWidth()
	title := runewidth.Truncate(s.Title, tw, "…")
	pad := tw - runewidth.StringWidth(title)
	if pad < 0 {
		pad = 0
	}

	share := 0.0
	if total > 0 {
		share = float64(s.EstimatedTime) / float64(total)
	}

	return fmt.Sprintf("%s %s%s %s  %s",
		prefix,
		StepTitleStyle.Render(title),
		strings.Repeat(" ", pad),
		StepTimeStyle.Render(fmt.Sprintf("%3d min", s.EstimatedTime)),
		c.bar.ViewAs(share),
	)
}

func (c *Checklist) renderDetail(s content.Step) string {
	bodyWidth := c.Width - 10
	var parts []string
	if len(s.Badges) > 0 {
		badges := make([]string, len(s.Badges))
		for i, b := range s.Badges {
			badges[i] = BadgeStyle.Render("[" + b + "]")
		}
		parts = append(parts, strings.Join(badges, " "))
	}
	if s.Content != "" {
		parts = append(parts, lipgloss.NewStyle().Width(bodyWidth).Render(s.Content))
	}
	for _, in := range s.Instructions {
		parts = append(parts, BulletMarker+" "+in)
	}
	return StepBodyStyle.Render(strings.Join(parts, "\n")) + "\n"
}

// String implements fmt.Stringer
func (c *Checklist) String() string {
	return c.Render()
}
