package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"waylog/internal/workout"
)

// ListModel is the workout list panel. Newest entries render on top,
// matching the original list's insert-above behavior.
type ListModel struct {
	entries []workout.Entry
	cursor  int
}

// NewListModel creates an empty list.
func NewListModel() ListModel {
	return ListModel{}
}

// SetEntries replaces the list contents. The cursor stays on the
// newest entry.
func (m *ListModel) SetEntries(entries []workout.Entry) {
	m.entries = entries
	m.cursor = 0
}

// MoveUp moves the selection toward newer entries.
func (m *ListModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the selection toward older entries.
func (m *ListModel) MoveDown() {
	if m.cursor < len(m.entries)-1 {
		m.cursor++
	}
}

// SelectedID returns the identifier of the selected entry.
func (m ListModel) SelectedID() (string, bool) {
	if len(m.entries) == 0 {
		return "", false
	}
	// Display order is newest-first.
	idx := len(m.entries) - 1 - m.cursor
	return m.entries[idx].ID, true
}

// View renders the list, newest first, with the selected entry
// highlighted.
func (m ListModel) View(width int, focused bool) string {
	if len(m.entries) == 0 {
		return helpDescStyle.Render("No workouts yet.\nMove the cursor and\npress enter to log one.")
	}

	var blocks []string
	for i := len(m.entries) - 1; i >= 0; i-- {
		displayIdx := len(m.entries) - 1 - i
		selected := focused && displayIdx == m.cursor
		blocks = append(blocks, renderEntry(m.entries[i], width, selected))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// renderEntry builds one display block: icon, description title,
// distance, duration, and the two kind-specific derived metrics.
func renderEntry(e workout.Entry, width int, selected bool) string {
	title := fmt.Sprintf("%s %s", e.Kind.Icon(), e.Description)
	if selected {
		title = entrySelectedStyle.Render(title)
	} else {
		title = entryTitleStyle.Render(title)
	}

	metrics := fmt.Sprintf("%.1f km · ⏱ %.0f min", e.DistanceKm, e.DurationMin)
	var derived string
	if e.Kind == workout.KindRunning {
		derived = fmt.Sprintf("⚡ %.1f min/km · 🦶 %d spm", e.PaceMinPerKm, e.CadenceSPM)
	} else {
		derived = fmt.Sprintf("⚡ %.1f km/h · ⛰ %.0f m", e.SpeedKmPerH, e.ElevationGainM)
	}
	when := entryMetaStyle.Render(humanize.Time(e.CreatedAt))

	bar := entryRunningBar
	if e.Kind == workout.KindCycling {
		bar = entryCyclingBar
	}

	lines := []string{title, metrics, derived, when}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(bar.Render("│ "))
		b.WriteString(line)
	}
	return lipgloss.NewStyle().Width(width).Render(b.String()) + "\n"
}
