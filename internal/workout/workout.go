package workout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"waylog/internal/geo"
)

// Kind discriminates the two workout variants.
type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// Valid reports whether k is a known workout kind.
func (k Kind) Valid() bool {
	return k == KindRunning || k == KindCycling
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	if k == KindCycling {
		return "🚴"
	}
	return "🏃"
}

// Entry is one logged workout. Entries are immutable after
// construction: derived metrics and the description are computed once
// and stored, never recomputed.
//
// The kind-specific fields follow the tag: CadenceSPM and PaceMinPerKm
// are meaningful only for running entries, ElevationGainM and
// SpeedKmPerH only for cycling.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	Coords      geo.Coord
	DistanceKm  float64
	DurationMin float64
	Kind        Kind
	Description string

	CadenceSPM   int
	PaceMinPerKm float64

	ElevationGainM float64
	SpeedKmPerH    float64
}

// NewRunning constructs a running entry. Pace is derived here and
// stored. Input validation is the caller's responsibility.
func NewRunning(coords geo.Coord, distanceKm, durationMin float64, cadenceSPM int) Entry {
	e := newEntry(coords, distanceKm, durationMin, KindRunning)
	e.CadenceSPM = cadenceSPM
	e.PaceMinPerKm = durationMin / distanceKm
	return e
}

// NewCycling constructs a cycling entry. Speed is derived here and
// stored. Input validation is the caller's responsibility.
func NewCycling(coords geo.Coord, distanceKm, durationMin, elevationGainM float64) Entry {
	e := newEntry(coords, distanceKm, durationMin, KindCycling)
	e.ElevationGainM = elevationGainM
	e.SpeedKmPerH = distanceKm / (durationMin / 60)
	return e
}

func newEntry(coords geo.Coord, distanceKm, durationMin float64, kind Kind) Entry {
	now := time.Now()
	return Entry{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Kind:        kind,
		Description: describe(kind, now),
	}
}

// describe builds the display title, e.g. "Running on April 14".
func describe(kind Kind, at time.Time) string {
	label := "Running"
	if kind == KindCycling {
		label = "Cycling"
	}
	return fmt.Sprintf("%s on %s %d", label, at.Month(), at.Day())
}
