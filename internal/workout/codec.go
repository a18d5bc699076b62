package workout

import (
	"encoding/json"
	"fmt"
	"time"

	"waylog/internal/geo"
)

// record is the persisted wire shape of an Entry. Coordinates are
// stored as a [lat, lng] pair and the kind tag is always written, so
// the decoder can reconstruct the proper variant.
type record struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	Coordinates    [2]float64 `json:"coordinates"`
	DistanceKm     float64    `json:"distanceKm"`
	DurationMin    float64    `json:"durationMin"`
	Kind           Kind       `json:"kind"`
	Description    string     `json:"description"`
	CadenceSPM     int        `json:"cadenceSpm,omitempty"`
	PaceMinPerKm   float64    `json:"paceMinPerKm,omitempty"`
	ElevationGainM float64    `json:"elevationGainM,omitempty"`
	SpeedKmPerH    float64    `json:"speedKmPerH,omitempty"`
}

// EncodeAll serializes the ordered collection to JSON.
func EncodeAll(entries []Entry) (string, error) {
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		records = append(records, record{
			ID:             e.ID,
			CreatedAt:      e.CreatedAt,
			Coordinates:    [2]float64{e.Coords.Lat, e.Coords.Lng},
			DistanceKm:     e.DistanceKm,
			DurationMin:    e.DurationMin,
			Kind:           e.Kind,
			Description:    e.Description,
			CadenceSPM:     e.CadenceSPM,
			PaceMinPerKm:   e.PaceMinPerKm,
			ElevationGainM: e.ElevationGainM,
			SpeedKmPerH:    e.SpeedKmPerH,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding workouts: %w", err)
	}
	return string(data), nil
}

// DecodeAll parses a serialized collection, preserving order. Stored
// derived metrics are trusted as written; they are not recomputed.
// An unknown kind tag makes the whole payload invalid, since entries
// without a variant cannot be rendered.
func DecodeAll(data string) ([]Entry, error) {
	var records []record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("parsing workouts: %w", err)
	}
	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		if !r.Kind.Valid() {
			return nil, fmt.Errorf("parsing workouts: record %d has unknown kind %q", i, r.Kind)
		}
		entries = append(entries, Entry{
			ID:             r.ID,
			CreatedAt:      r.CreatedAt,
			Coords:         geo.Coord{Lat: r.Coordinates[0], Lng: r.Coordinates[1]},
			DistanceKm:     r.DistanceKm,
			DurationMin:    r.DurationMin,
			Kind:           r.Kind,
			Description:    r.Description,
			CadenceSPM:     r.CadenceSPM,
			PaceMinPerKm:   r.PaceMinPerKm,
			ElevationGainM: r.ElevationGainM,
			SpeedKmPerH:    r.SpeedKmPerH,
		})
	}
	return entries, nil
}
