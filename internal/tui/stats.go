package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"waylog/internal/workout"
)

// StatsModel is the totals screen, computed from the in-memory
// collection when the screen opens.
type StatsModel struct {
	entries []workout.Entry
}

// NewStatsModel creates a stats model over the given entries.
func NewStatsModel(entries []workout.Entry) StatsModel {
	return StatsModel{entries: entries}
}

// View renders totals per kind and a distance chart in creation order.
func (m StatsModel) View() string {
	if len(m.entries) == 0 {
		return "\n  No workouts yet."
	}

	var (
		runCount, rideCount      int
		runKm, rideKm            float64
		runMin, rideMin, totalKm float64
	)
	distances := make([]float64, 0, len(m.entries))
	for _, e := range m.entries {
		distances = append(distances, e.DistanceKm)
		totalKm += e.DistanceKm
		if e.Kind == workout.KindRunning {
			runCount++
			runKm += e.DistanceKm
			runMin += e.DurationMin
		} else {
			rideCount++
			rideKm += e.DistanceKm
			rideMin += e.DurationMin
		}
	}

	totals := []string{
		RenderMetric("Workouts", fmt.Sprintf("%d", len(m.entries))),
		RenderMetric("Total distance", fmt.Sprintf("%.1f km", totalKm)),
		RenderMetric("Running", fmt.Sprintf("%d · %.1f km · %.0f min", runCount, runKm, runMin)),
		RenderMetric("Cycling", fmt.Sprintf("%d · %.1f km · %.0f min", rideCount, rideKm, rideMin)),
	}
	totalsCard := cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("Totals"),
		lipgloss.JoinVertical(lipgloss.Left, totals...),
	))

	chart := asciigraph.Plot(distances,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)
	chartCard := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("Distance per Workout (km)"),
		chart,
	))

	return lipgloss.JoinVertical(lipgloss.Left, totalsCard, chartCard)
}
