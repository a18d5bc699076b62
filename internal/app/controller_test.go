package app

import (
	"context"
	"errors"
	"testing"

	"waylog/internal/geo"
	"waylog/internal/workout"
)

type fakeLocator struct {
	coord geo.Coord
	err   error
}

func (l *fakeLocator) Current(ctx context.Context) (geo.Coord, error) {
	return l.coord, l.err
}

type fakeKV struct {
	data   map[string]string
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (kv *fakeKV) Get(key string) (string, error) { return kv.data[key], nil }

func (kv *fakeKV) Set(key, value string) error {
	if kv.setErr != nil {
		return kv.setErr
	}
	kv.data[key] = value
	return nil
}

func (kv *fakeKV) Delete(key string) error {
	delete(kv.data, key)
	return nil
}

type recorder struct {
	messages []string
}

func (r *recorder) notify(msg string) {
	r.messages = append(r.messages, msg)
}

func startedController(t *testing.T, kv *fakeKV) (*Controller, *recorder) {
	t.Helper()
	notes := &recorder{}
	c := NewController(&fakeLocator{coord: geo.Coord{Lat: 51.5, Lng: -0.1}}, kv, notes.notify)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, notes
}

func TestStartSuccess(t *testing.T) {
	c, notes := startedController(t, newFakeKV())

	if c.State() != StateMapReady {
		t.Errorf("State = %v, want StateMapReady", c.State())
	}
	want := geo.Coord{Lat: 51.5, Lng: -0.1}
	if c.Center() != want {
		t.Errorf("Center = %v, want %v", c.Center(), want)
	}
	if len(notes.messages) != 0 {
		t.Errorf("unexpected notifications: %v", notes.messages)
	}
}

func TestStartLocationFailure(t *testing.T) {
	notes := &recorder{}
	c := NewController(&fakeLocator{err: geo.ErrLocationUnavailable}, newFakeKV(), notes.notify)

	err := c.Start(context.Background())
	if err == nil {
		t.Fatal("Start should fail when the locator fails")
	}
	if c.State() != StateAwaitingLocation {
		t.Errorf("State = %v, want StateAwaitingLocation", c.State())
	}
	if len(notes.messages) != 1 || notes.messages[0] != "Could not get your position" {
		t.Errorf("notifications = %v, want position failure message", notes.messages)
	}

	// Degraded: the map never loads, so clicks are rejected.
	if err := c.OpenForm(geo.Coord{Lat: 1, Lng: 1}); !errors.Is(err, ErrNotReady) {
		t.Errorf("OpenForm in degraded state = %v, want ErrNotReady", err)
	}
}

func TestFormTransitions(t *testing.T) {
	c, _ := startedController(t, newFakeKV())

	click := geo.Coord{Lat: 51.51, Lng: -0.08}
	if err := c.OpenForm(click); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}
	if c.State() != StateFormOpen {
		t.Errorf("State = %v, want StateFormOpen", c.State())
	}
	if c.ClickCoord() != click {
		t.Errorf("ClickCoord = %v, want %v", c.ClickCoord(), click)
	}

	// A second click while the form is open is ignored.
	if err := c.OpenForm(geo.Coord{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("OpenForm while open = %v, want ErrNotReady", err)
	}

	c.CancelForm()
	if c.State() != StateMapReady {
		t.Errorf("State after cancel = %v, want StateMapReady", c.State())
	}
}

func TestSubmitRunning(t *testing.T) {
	kv := newFakeKV()
	c, _ := startedController(t, kv)

	click := geo.Coord{Lat: 51.5, Lng: -0.1}
	if err := c.OpenForm(click); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}

	entry, err := c.Submit(FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "170"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if entry.PaceMinPerKm != 6.0 {
		t.Errorf("PaceMinPerKm = %v, want 6.0", entry.PaceMinPerKm)
	}
	if entry.Coords != click {
		t.Errorf("Coords = %v, want %v", entry.Coords, click)
	}
	if c.State() != StateMapReady {
		t.Errorf("State = %v, want StateMapReady", c.State())
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(c.Entries()))
	}

	// Collection mirrored into the store.
	stored, err := workout.DecodeAll(kv.data["workouts"])
	if err != nil {
		t.Fatalf("decoding persisted collection: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != entry.ID {
		t.Errorf("persisted collection = %+v, want the submitted entry", stored)
	}
}

func TestSubmitCycling(t *testing.T) {
	c, _ := startedController(t, newFakeKV())

	if err := c.OpenForm(geo.Coord{Lat: 51.5, Lng: -0.1}); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}

	entry, err := c.Submit(FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "150"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.SpeedKmPerH != 20.0 {
		t.Errorf("SpeedKmPerH = %v, want 20.0", entry.SpeedKmPerH)
	}
	if entry.ElevationGainM != 150 {
		t.Errorf("ElevationGainM = %v, want 150", entry.ElevationGainM)
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		input FormInput
		valid bool
	}{
		{"negative distance", FormInput{Type: "running", Distance: "-5", Duration: "30", Cadence: "170"}, false},
		{"zero distance", FormInput{Type: "running", Distance: "0", Duration: "30", Cadence: "170"}, false},
		{"zero duration", FormInput{Type: "running", Distance: "5", Duration: "0", Cadence: "170"}, false},
		{"non-numeric distance", FormInput{Type: "running", Distance: "fast", Duration: "30", Cadence: "170"}, false},
		{"zero cadence", FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "0"}, false},
		{"empty distance", FormInput{Type: "running", Distance: "", Duration: "30", Cadence: "170"}, false},
		{"unknown type", FormInput{Type: "swimming", Distance: "5", Duration: "30"}, false},
		{"non-numeric elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "hill"}, false},
		{"valid running", FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "170"}, true},
		// Elevation gain is exempt from the positivity check.
		{"negative elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "-30"}, true},
		{"empty elevation", FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, notes := startedController(t, newFakeKV())
			if err := c.OpenForm(geo.Coord{Lat: 51.5, Lng: -0.1}); err != nil {
				t.Fatalf("OpenForm: %v", err)
			}

			_, err := c.Submit(tt.input)
			if tt.valid {
				if err != nil {
					t.Fatalf("Submit: %v", err)
				}
				if len(c.Entries()) != 1 {
					t.Errorf("len(Entries) = %d, want 1", len(c.Entries()))
				}
				return
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Submit = %v, want ErrInvalidInput", err)
			}
			if len(c.Entries()) != 0 {
				t.Errorf("len(Entries) = %d, want 0 after rejection", len(c.Entries()))
			}
			if c.State() != StateFormOpen {
				t.Errorf("State = %v, want StateFormOpen (form stays open)", c.State())
			}
			if len(notes.messages) != 1 {
				t.Errorf("notifications = %v, want exactly one rejection message", notes.messages)
			}
		})
	}
}

func TestSubmitPersistFailureKeepsEntry(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("disk full")
	c, notes := startedController(t, kv)

	if err := c.OpenForm(geo.Coord{}); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}
	_, err := c.Submit(FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "170"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(c.Entries()) != 1 {
		t.Errorf("len(Entries) = %d, want 1 (entry kept despite save failure)", len(c.Entries()))
	}
	if len(notes.messages) != 1 {
		t.Errorf("notifications = %v, want save failure message", notes.messages)
	}
}

func TestEntryByID(t *testing.T) {
	c, _ := startedController(t, newFakeKV())
	if err := c.OpenForm(geo.Coord{Lat: 51.5, Lng: -0.1}); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}
	entry, err := c.Submit(FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "170"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, ok := c.EntryByID(entry.ID)
	if !ok {
		t.Fatal("EntryByID should find the submitted entry")
	}
	if got.Coords != entry.Coords {
		t.Errorf("Coords = %v, want %v", got.Coords, entry.Coords)
	}

	if _, ok := c.EntryByID("stale-id"); ok {
		t.Error("EntryByID(stale) should report not found")
	}
}

func TestRehydrateAcrossControllers(t *testing.T) {
	kv := newFakeKV()

	first, _ := startedController(t, kv)
	if err := first.OpenForm(geo.Coord{Lat: 51.5, Lng: -0.1}); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}
	if _, err := first.Submit(FormInput{Type: "cycling", Distance: "20", Duration: "60", Elevation: "150"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Fresh session against the same store.
	second, _ := startedController(t, kv)
	entries := second.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(entries))
	}
	if entries[0].DistanceKm != 20 {
		t.Errorf("DistanceKm = %v, want 20", entries[0].DistanceKm)
	}
	if entries[0].Kind != workout.KindCycling {
		t.Errorf("Kind = %q, want %q", entries[0].Kind, workout.KindCycling)
	}
}

func TestCorruptStateStartsEmpty(t *testing.T) {
	kv := newFakeKV()
	kv.data["workouts"] = "{{{ not json"

	c, _ := startedController(t, kv)
	if c.State() != StateMapReady {
		t.Errorf("State = %v, want StateMapReady despite corrupt state", c.State())
	}
	if len(c.Entries()) != 0 {
		t.Errorf("len(Entries) = %d, want 0", len(c.Entries()))
	}
}

func TestReset(t *testing.T) {
	kv := newFakeKV()
	c, _ := startedController(t, kv)
	if err := c.OpenForm(geo.Coord{}); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}
	if _, err := c.Submit(FormInput{Type: "running", Distance: "5", Duration: "30", Cadence: "170"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(c.Entries()) != 0 {
		t.Errorf("len(Entries) = %d, want 0", len(c.Entries()))
	}
	if _, ok := kv.data["workouts"]; ok {
		t.Error("persisted key should be removed by Reset")
	}
}
