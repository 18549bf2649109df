package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected, Help                          lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail           string
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

var current = build("classic", false)

// SetTheme switches the palette used by every renderer. Unknown names fall
// back to classic; noColor keeps the symbols but drops all colour.
func SetTheme(name string, noColor bool) {
	current = build(name, noColor)
}

// Current exposes what renderers need.
func Current() Theme { return current }

func build(name string, noColor bool) Theme {
	var t Theme
	switch strings.ToLower(name) {
	case "neon":
		t = Theme{
			Name:         "neon",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("13"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
		}
	case "mono":
		noColor = true
		t = Theme{
			Name:         "mono",
			Border:       lipgloss.ASCIIBorder(),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
		}
	default: // classic
		t = Theme{
			Name:         "classic",
			Title:        lipgloss.NewStyle().Bold(true),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
		}
	}

	t.SymOK, t.SymFail = "✔", "✖"
	t.Done = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	t.Selected = lipgloss.NewStyle().Bold(true).Reverse(true)
	t.Help = lipgloss.NewStyle().Faint(true)

	if noColor {
		plain := lipgloss.NewStyle()
		t.Title, t.Muted, t.Accent = plain, plain, plain
		t.Success, t.Error, t.Pending = plain, plain, plain
		t.Done, t.Selected, t.Help = plain, plain, plain
		t.BorderColor = lipgloss.NoColor{}
	}
	return t
}
