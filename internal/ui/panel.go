package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines in a box using the current theme.
func Panel(lines []string) string {
	return FrameStyle().Render(strings.Join(lines, "\n"))
}

// FrameStyle is the bordered box shared by the list panel and the TUI.
func FrameStyle() lipgloss.Style {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}

// Counts renders the "✔ bought  • pending  Total n" header fragment.
func Counts(bought, total int) string {
	t := Current()
	return fmt.Sprintf("%s %d  %s %d  %s %d",
		t.Success.Render(t.SymDone), bought,
		t.Pending.Render(t.SymPending), total-bought,
		t.Accent.Render("Total"), total,
	)
}
