package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Map"},
		{"2", "Stats"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	}))

	sections = append(sections, m.renderSection("Map", []keyHelp{
		{"arrows / hjkl", "Move the cursor"},
		{"enter", "Log a workout at the cursor"},
		{"+ / -", "Zoom in / out"},
		{"tab", "Switch focus map <-> list"},
		{"e", "Export workouts as GPX"},
		{"X", "Reset all workouts (asks to confirm)"},
	}))

	sections = append(sections, m.renderSection("Workout Form", []keyHelp{
		{"t", "Toggle running / cycling"},
		{"tab", "Next field"},
		{"enter", "Save workout"},
		{"esc", "Cancel"},
	}))

	sections = append(sections, m.renderSection("Workout List", []keyHelp{
		{"j / down", "Select older entry"},
		{"k / up", "Select newer entry"},
		{"enter", "Jump to entry on the map"},
	}))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var b strings.Builder
	b.WriteString(entryTitleStyle.Render(title))
	for _, k := range keys {
		b.WriteByte('\n')
		b.WriteString("  ")
		b.WriteString(helpKeyStyle.Render(padRight(k.key, 16)))
		b.WriteString(helpDescStyle.Render(k.desc))
	}
	b.WriteByte('\n')
	return b.String()
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
