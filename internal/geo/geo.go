package geo

import (
	"context"
	"errors"
	"fmt"
)

// ErrLocationUnavailable is returned when the current position cannot
// be determined.
var ErrLocationUnavailable = errors.New("location unavailable")

// Coord is a WGS84 coordinate pair.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// Locator supplies the user's position. The request is one-shot: it
// resolves once into either a coordinate or an error, with no retry.
type Locator interface {
	Current(ctx context.Context) (Coord, error)
}

// FixedLocator reports a position configured ahead of time. It stands
// in for a real positioning service, which a terminal has no access to.
type FixedLocator struct {
	coord Coord
	set   bool
}

// NewFixedLocator creates a locator pinned to the given coordinate.
// A zero coordinate (0, 0) is treated as unset, since it is the
// config zero value and nobody logs workouts at Null Island.
func NewFixedLocator(c Coord) *FixedLocator {
	set := c.Lat != 0 || c.Lng != 0
	return &FixedLocator{coord: c, set: set}
}

// Current returns the configured position.
func (l *FixedLocator) Current(ctx context.Context) (Coord, error) {
	if err := ctx.Err(); err != nil {
		return Coord{}, err
	}
	if !l.set {
		return Coord{}, fmt.Errorf("%w: no home location configured", ErrLocationUnavailable)
	}
	return l.coord, nil
}
