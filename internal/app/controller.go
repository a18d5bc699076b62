package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"waylog/internal/geo"
	"waylog/internal/workout"
)

// State is the controller's lifecycle state.
type State int

const (
	// StateAwaitingLocation is the initial state, before the position
	// request has resolved. If the request fails the controller stays
	// here and no new entries can be logged.
	StateAwaitingLocation State = iota
	// StateMapReady means the map is centered and accepting clicks.
	StateMapReady
	// StateFormOpen means a click has been captured and the entry
	// form is awaiting submission or cancel.
	StateFormOpen
)

// RecenterZoom is the zoom level used when jumping to an entry from
// the list.
const RecenterZoom = 14

// workoutsKey is the persistence key holding the serialized collection.
const workoutsKey = "workouts"

// ErrInvalidInput is returned by Submit when a field fails validation.
// The form stays open and the collection is unchanged.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotReady is returned for operations that need a loaded map.
var ErrNotReady = errors.New("map not ready")

// KV is the synchronous string-keyed store the collection is mirrored
// into after every mutation.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Notifier surfaces a user-visible message. All controller failures
// are reported this way; none are fatal and none are retried.
type Notifier func(msg string)

// FormInput is the raw form field values as entered, before parsing.
type FormInput struct {
	Type      string
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}

// Controller owns the in-memory workout collection and drives the
// geolocation -> map -> form -> entry flow. It is not safe for
// concurrent use; all events arrive on the UI loop.
type Controller struct {
	locator geo.Locator
	kv      KV
	notify  Notifier

	state      State
	center     geo.Coord
	clickCoord geo.Coord
	entries    []workout.Entry
}

// NewController wires the controller with its collaborators.
func NewController(locator geo.Locator, kv KV, notify Notifier) *Controller {
	if notify == nil {
		notify = func(string) {}
	}
	return &Controller{
		locator: locator,
		kv:      kv,
		notify:  notify,
		state:   StateAwaitingLocation,
	}
}

// Start resolves the position and rehydrates the persisted collection.
// On location failure the controller notifies and stays in
// StateAwaitingLocation; there is no retry.
func (c *Controller) Start(ctx context.Context) error {
	if c.state != StateAwaitingLocation {
		return nil
	}

	pos, err := c.locator.Current(ctx)
	if err != nil {
		c.notify("Could not get your position")
		return fmt.Errorf("resolving position: %w", err)
	}
	c.center = pos

	c.loadEntries()
	c.state = StateMapReady
	return nil
}

// loadEntries reads the persisted collection. Absent or unparsable
// state is treated as empty; the app never refuses to start over it.
func (c *Controller) loadEntries() {
	data, err := c.kv.Get(workoutsKey)
	if err != nil || data == "" {
		return
	}
	entries, err := workout.DecodeAll(data)
	if err != nil {
		return
	}
	c.entries = entries
}

// OpenForm captures a map click and opens the entry form. Clicks are
// ignored unless the map is ready.
func (c *Controller) OpenForm(click geo.Coord) error {
	if c.state != StateMapReady {
		return ErrNotReady
	}
	c.clickCoord = click
	c.state = StateFormOpen
	return nil
}

// CancelForm discards the pending click and closes the form.
func (c *Controller) CancelForm() {
	if c.state == StateFormOpen {
		c.state = StateMapReady
	}
}

// Submit validates the form, constructs the entry at the captured
// click coordinate, appends it to the collection and persists the
// whole collection. On validation failure the form stays open and
// nothing changes.
//
// Validation: every relevant field must parse to a finite number;
// distance and duration must be strictly positive, as must cadence
// for running. Elevation gain only needs to be finite — a descent-only
// ride is legal.
func (c *Controller) Submit(input FormInput) (workout.Entry, error) {
	if c.state != StateFormOpen {
		return workout.Entry{}, ErrNotReady
	}

	kind := workout.Kind(strings.TrimSpace(input.Type))
	distance, okDist := parseNumber(input.Distance)
	duration, okDur := parseNumber(input.Duration)

	var entry workout.Entry
	switch kind {
	case workout.KindRunning:
		cadence, okCad := parseNumber(input.Cadence)
		if !okDist || !okDur || !okCad || !allPositive(distance, duration, cadence) {
			return c.reject()
		}
		entry = workout.NewRunning(c.clickCoord, distance, duration, int(math.Round(cadence)))

	case workout.KindCycling:
		elevation, okElev := parseNumber(input.Elevation)
		if !okDist || !okDur || !okElev || !allPositive(distance, duration) {
			return c.reject()
		}
		entry = workout.NewCycling(c.clickCoord, distance, duration, elevation)

	default:
		return c.reject()
	}

	c.entries = append(c.entries, entry)
	c.persist()
	c.state = StateMapReady
	return entry, nil
}

func (c *Controller) reject() (workout.Entry, error) {
	c.notify("Inputs have to be positive numbers")
	return workout.Entry{}, ErrInvalidInput
}

// persist mirrors the collection into the store. A failed write is
// reported but the in-memory entry is kept; losing one write is
// acceptable here.
func (c *Controller) persist() {
	data, err := workout.EncodeAll(c.entries)
	if err != nil {
		c.notify(fmt.Sprintf("Could not save workouts: %v", err))
		return
	}
	if err := c.kv.Set(workoutsKey, data); err != nil {
		c.notify(fmt.Sprintf("Could not save workouts: %v", err))
	}
}

// EntryByID looks up an entry for list-click recentering. A stale
// identifier yields ok=false and the caller does nothing.
func (c *Controller) EntryByID(id string) (workout.Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return workout.Entry{}, false
}

// Reset wipes the persisted collection and empties the in-memory one.
func (c *Controller) Reset() error {
	if err := c.kv.Delete(workoutsKey); err != nil {
		c.notify(fmt.Sprintf("Could not reset workouts: %v", err))
		return err
	}
	c.entries = nil
	return nil
}

// Entries returns the collection in creation order.
func (c *Controller) Entries() []workout.Entry { return c.entries }

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Center returns the resolved start position.
func (c *Controller) Center() geo.Coord { return c.center }

// ClickCoord returns the coordinate captured by the pending form.
func (c *Controller) ClickCoord() geo.Coord { return c.clickCoord }

// parseNumber parses a form field. An empty field counts as zero,
// matching how the original form coerced blank inputs; anything else
// must parse to a finite float.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func allPositive(values ...float64) bool {
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}
	return true
}
