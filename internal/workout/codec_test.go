package workout

import (
	"strings"
	"testing"

	"waylog/internal/geo"
)

func TestRoundTrip(t *testing.T) {
	entries := []Entry{
		NewRunning(geo.Coord{Lat: 51.5, Lng: -0.1}, 5, 30, 170),
		NewCycling(geo.Coord{Lat: 48.85, Lng: 2.35}, 20, 60, 150),
	}

	encoded, err := EncodeAll(entries)
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}

	decoded, err := DecodeAll(encoded)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}

	if len(decoded) != len(entries) {
		t.Fatalf("len(decoded) = %d, want %d", len(decoded), len(entries))
	}

	for i, want := range entries {
		got := decoded[i]
		if got.ID != want.ID {
			t.Errorf("entry %d: ID = %q, want %q", i, got.ID, want.ID)
		}
		if got.Kind != want.Kind {
			t.Errorf("entry %d: Kind = %q, want %q", i, got.Kind, want.Kind)
		}
		if got.Coords != want.Coords {
			t.Errorf("entry %d: Coords = %v, want %v", i, got.Coords, want.Coords)
		}
		if got.DistanceKm != want.DistanceKm {
			t.Errorf("entry %d: DistanceKm = %v, want %v", i, got.DistanceKm, want.DistanceKm)
		}
		if got.DurationMin != want.DurationMin {
			t.Errorf("entry %d: DurationMin = %v, want %v", i, got.DurationMin, want.DurationMin)
		}
		if got.Description != want.Description {
			t.Errorf("entry %d: Description = %q, want %q", i, got.Description, want.Description)
		}
	}

	// Variant identity survives the round trip.
	if decoded[0].PaceMinPerKm != 6.0 {
		t.Errorf("PaceMinPerKm = %v, want 6.0", decoded[0].PaceMinPerKm)
	}
	if decoded[0].CadenceSPM != 170 {
		t.Errorf("CadenceSPM = %v, want 170", decoded[0].CadenceSPM)
	}
	if decoded[1].SpeedKmPerH != 20.0 {
		t.Errorf("SpeedKmPerH = %v, want 20.0", decoded[1].SpeedKmPerH)
	}
	if decoded[1].ElevationGainM != 150.0 {
		t.Errorf("ElevationGainM = %v, want 150", decoded[1].ElevationGainM)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	encoded, err := EncodeAll([]Entry{NewRunning(geo.Coord{Lat: 1, Lng: 2}, 5, 30, 170)})
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}

	first, err := DecodeAll(encoded)
	if err != nil {
		t.Fatalf("first DecodeAll: %v", err)
	}
	second, err := DecodeAll(encoded)
	if err != nil {
		t.Fatalf("second DecodeAll: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	if first[0] != second[0] {
		t.Errorf("decoded entries differ: %+v vs %+v", first[0], second[0])
	}
}

func TestEncodeEmpty(t *testing.T) {
	encoded, err := EncodeAll(nil)
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	decoded, err := DecodeAll(encoded)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("len(decoded) = %d, want 0", len(decoded))
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		errContains string
	}{
		{"garbage", "not json at all", "parsing workouts"},
		{"wrong shape", `{"id":"x"}`, "parsing workouts"},
		{"unknown kind", `[{"id":"a","kind":"swimming","coordinates":[0,0]}]`, "unknown kind"},
		{"missing kind", `[{"id":"a","coordinates":[0,0]}]`, "unknown kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAll(tt.data)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %q, want it to contain %q", err, tt.errContains)
			}
		})
	}
}

func TestEncodeOmitsIrrelevantFields(t *testing.T) {
	encoded, err := EncodeAll([]Entry{NewRunning(geo.Coord{Lat: 1, Lng: 2}, 5, 30, 170)})
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	if strings.Contains(encoded, "elevationGainM") || strings.Contains(encoded, "speedKmPerH") {
		t.Errorf("running record should not carry cycling fields: %s", encoded)
	}
	if !strings.Contains(encoded, `"kind":"running"`) {
		t.Errorf("kind tag missing from %s", encoded)
	}
}
