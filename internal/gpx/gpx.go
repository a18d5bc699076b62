package gpx

import (
	"fmt"
	"strings"
	"time"

	"waylog/internal/workout"
)

// Generate builds a GPX 1.1 document with one waypoint per workout
// entry. Returns an empty string for an empty collection.
func Generate(entries []workout.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<gpx version="1.1" creator="waylog">`)

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf(
			`<wpt lat="%f" lon="%f"><time>%s</time><name>%s</name><desc>%s</desc></wpt>`,
			e.Coords.Lat, e.Coords.Lng,
			e.CreatedAt.UTC().Format(time.RFC3339),
			escape(e.Description),
			escape(metrics(e)),
		))
	}

	sb.WriteString(`</gpx>`)
	return sb.String()
}

func metrics(e workout.Entry) string {
	if e.Kind == workout.KindCycling {
		return fmt.Sprintf("%.1f km in %.0f min, %.1f km/h, %.0f m climbed",
			e.DistanceKm, e.DurationMin, e.SpeedKmPerH, e.ElevationGainM)
	}
	return fmt.Sprintf("%.1f km in %.0f min, %.1f min/km, %d spm",
		e.DistanceKm, e.DurationMin, e.PaceMinPerKm, e.CadenceSPM)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
