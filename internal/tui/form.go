package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"waylog/internal/app"
	"waylog/internal/workout"
)

// Input slots in focus order. The metric slot holds cadence for
// running and elevation gain for cycling; toggling the kind swaps
// which one is shown, the other keeps its value hidden like the
// original form's hidden row.
const (
	slotDistance = iota
	slotDuration
	slotMetric
	slotCount
)

// FormModel is the workout entry form shown after a map click.
type FormModel struct {
	kind      workout.Kind
	distance  textinput.Model
	duration  textinput.Model
	cadence   textinput.Model
	elevation textinput.Model
	focused   int
}

// NewFormModel creates the form with empty fields.
func NewFormModel() FormModel {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 10
		ti.Width = 10
		ti.Prompt = ""
		return ti
	}
	return FormModel{
		kind:      workout.KindRunning,
		distance:  mk("km"),
		duration:  mk("min"),
		cadence:   mk("step/min"),
		elevation: mk("meters"),
	}
}

// Open resets the form and focuses the distance field, mirroring the
// original form's focus-on-open behavior.
func (m *FormModel) Open() {
	m.kind = workout.KindRunning
	m.distance.SetValue("")
	m.duration.SetValue("")
	m.cadence.SetValue("")
	m.elevation.SetValue("")
	m.focused = slotDistance
	m.applyFocus()
}

// ToggleKind switches between running and cycling.
func (m *FormModel) ToggleKind() {
	if m.kind == workout.KindRunning {
		m.kind = workout.KindCycling
	} else {
		m.kind = workout.KindRunning
	}
	m.applyFocus()
}

// NextField advances focus, wrapping around.
func (m *FormModel) NextField() {
	m.focused = (m.focused + 1) % slotCount
	m.applyFocus()
}

func (m *FormModel) applyFocus() {
	m.distance.Blur()
	m.duration.Blur()
	m.cadence.Blur()
	m.elevation.Blur()
	switch m.focused {
	case slotDistance:
		m.distance.Focus()
	case slotDuration:
		m.duration.Focus()
	case slotMetric:
		if m.kind == workout.KindRunning {
			m.cadence.Focus()
		} else {
			m.elevation.Focus()
		}
	}
}

// Update forwards key input to the focused field.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focused {
	case slotDistance:
		m.distance, cmd = m.distance.Update(msg)
	case slotDuration:
		m.duration, cmd = m.duration.Update(msg)
	case slotMetric:
		if m.kind == workout.KindRunning {
			m.cadence, cmd = m.cadence.Update(msg)
		} else {
			m.elevation, cmd = m.elevation.Update(msg)
		}
	}
	return m, cmd
}

// Values returns the raw form input for submission.
func (m FormModel) Values() app.FormInput {
	return app.FormInput{
		Type:      string(m.kind),
		Distance:  m.distance.Value(),
		Duration:  m.duration.Value(),
		Cadence:   m.cadence.Value(),
		Elevation: m.elevation.Value(),
	}
}

// View renders the form card.
func (m FormModel) View() string {
	metricLabel := "Cadence"
	metricField := m.cadence.View()
	if m.kind == workout.KindCycling {
		metricLabel = "Elev Gain"
		metricField = m.elevation.View()
	}

	rows := []string{
		formLabelStyle.Render("Type") + formKindStyle.Render(m.kind.Icon()+" "+string(m.kind)) + helpDescStyle.Render("  (t to switch)"),
		formLabelStyle.Render("Distance") + m.distance.View(),
		formLabelStyle.Render("Duration") + m.duration.View(),
		formLabelStyle.Render(metricLabel) + metricField,
		"",
		helpDescStyle.Render("enter save · tab next field · esc cancel"),
	}

	title := cardTitleStyle.Render("New Workout")
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
