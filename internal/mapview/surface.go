package mapview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"waylog/internal/geo"
)

// Marker is a point placed on the map with an attached popup. The
// popup is open from the moment the marker is placed.
type Marker struct {
	Coord geo.Coord
	Popup string
	// Class selects the popup/marker style, e.g. "running" or "cycling".
	Class string
}

// Surface is the interactive slippy-map panel. It tracks a view
// (center + zoom), a cursor the user steers with the keyboard, and
// the markers placed so far. Moving the cursor and reading its
// coordinate is the terminal equivalent of a map click.
type Surface struct {
	center  geo.Coord
	zoom    int
	curDX   int // cursor offset from viewport center, in cells
	curDY   int
	markers []Marker
	ready   bool
}

// NewSurface creates an uninitialized surface. SetView must be called
// before the surface is usable.
func NewSurface() *Surface {
	return &Surface{}
}

// SetView centers the map and resets the cursor to the center cell.
func (s *Surface) SetView(c geo.Coord, zoom int) {
	s.center = c
	s.zoom = clampZoom(zoom)
	s.curDX = 0
	s.curDY = 0
	s.ready = true
}

// Ready reports whether SetView has been called.
func (s *Surface) Ready() bool { return s.ready }

// Center returns the current view center.
func (s *Surface) Center() geo.Coord { return s.center }

// Zoom returns the current zoom level.
func (s *Surface) Zoom() int { return s.zoom }

// AddMarker places a marker with its popup opened.
func (s *Surface) AddMarker(m Marker) {
	s.markers = append(s.markers, m)
}

// Markers returns the markers placed so far, in placement order.
func (s *Surface) Markers() []Marker { return s.markers }

// ClearMarkers removes all markers, used when the collection is reset.
func (s *Surface) ClearMarkers() { s.markers = nil }

// MoveCursor shifts the cursor by the given number of cells.
func (s *Surface) MoveCursor(dx, dy int) {
	s.curDX += dx
	s.curDY += dy
}

// Cursor returns the coordinate under the cursor.
func (s *Surface) Cursor() geo.Coord {
	cx, cy := project(s.center, s.zoom)
	return unproject(cx+float64(s.curDX*cellPxX), cy+float64(s.curDY*cellPxY), s.zoom)
}

// ZoomIn increases the zoom level by one step.
func (s *Surface) ZoomIn() { s.zoom = clampZoom(s.zoom + 1) }

// ZoomOut decreases the zoom level by one step.
func (s *Surface) ZoomOut() { s.zoom = clampZoom(s.zoom - 1) }

// Cell styling classes for rendering.
type cellClass int

const (
	classBackground cellClass = iota
	classGrid
	classCursor
	classRunning
	classCycling
	classPopup
)

var (
	gridStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB"))
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	cyclingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	popupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

type cell struct {
	r   rune
	cls cellClass
}

// View renders the map viewport at the given size. The cursor sits at
// its offset from the viewport center; markers inside the viewport
// are drawn with their popup text to the right, truncated at the edge.
func (s *Surface) View(width, height int) string {
	if !s.ready || width <= 0 || height <= 0 {
		return ""
	}

	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			// Faint graticule dots so panning is visible.
			if x%10 == 4 && y%5 == 2 {
				grid[y][x] = cell{r: '·', cls: classGrid}
			} else {
				grid[y][x] = cell{r: ' ', cls: classBackground}
			}
		}
	}

	// World pixel of the viewport's top-left cell.
	cx, cy := project(s.center, s.zoom)
	originX := cx - float64(width/2*cellPxX)
	originY := cy - float64(height/2*cellPxY)

	for _, m := range s.markers {
		mx, my := project(m.Coord, s.zoom)
		col := int((mx - originX) / cellPxX)
		row := int((my - originY) / cellPxY)
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		cls := classRunning
		r := '▲'
		if m.Class == "cycling" {
			cls = classCycling
			r = '●'
		}
		grid[row][col] = cell{r: r, cls: cls}
		s.writePopup(grid[row], col+2, m.Popup)
	}

	// Cursor last so it is never hidden.
	curCol := width/2 + s.curDX
	curRow := height/2 + s.curDY
	if curRow >= 0 && curRow < height && curCol >= 0 && curCol < width {
		grid[curRow][curCol] = cell{r: '┼', cls: classCursor}
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderRow(row))
	}
	return b.String()
}

// writePopup writes popup text into a row starting at col, stopping at
// the viewport edge. Popup width is capped like the original map's
// popup options (max width 25 cells).
func (s *Surface) writePopup(row []cell, col int, text string) {
	runes := []rune(text)
	if len(runes) > 25 {
		runes = runes[:25]
	}
	for i, r := range runes {
		x := col + i
		if x >= len(row) {
			break
		}
		row[x] = cell{r: r, cls: classPopup}
	}
}

// renderRow groups adjacent cells of the same class into one styled
// segment to keep the emitted ANSI small.
func renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for start < len(row) {
		end := start
		for end < len(row) && row[end].cls == row[start].cls {
			end++
		}
		var seg strings.Builder
		for _, c := range row[start:end] {
			seg.WriteRune(c.r)
		}
		b.WriteString(styleFor(row[start].cls).Render(seg.String()))
		start = end
	}
	return b.String()
}

func styleFor(cls cellClass) lipgloss.Style {
	switch cls {
	case classGrid:
		return gridStyle
	case classCursor:
		return cursorStyle
	case classRunning:
		return runningStyle
	case classCycling:
		return cyclingStyle
	case classPopup:
		return popupStyle
	default:
		return lipgloss.NewStyle()
	}
}
