package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"waylog/internal/app"
	"waylog/internal/config"
	"waylog/internal/geo"
	"waylog/internal/gpx"
	"waylog/internal/mapview"
	"waylog/internal/workout"
)

// Screen identifiers
type Screen int

const (
	ScreenMap Screen = iota
	ScreenStats
	ScreenHelp
)

// focusArea selects which map-screen pane receives keys.
type focusArea int

const (
	focusMap focusArea = iota
	focusList
)

const listPaneWidth = 34

// statusBuf collects controller notifications so the app can surface
// the latest one on its status line.
type statusBuf struct {
	msgs []string
}

func (b *statusBuf) push(msg string) {
	b.msgs = append(b.msgs, msg)
}

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	ctrl    *app.Controller
	surface *mapview.Surface
	notes   *statusBuf

	form  FormModel
	list  ListModel
	stats StatsModel
	help  HelpModel

	startZoom  int
	exportPath string
	degraded   bool

	focus        focusArea
	confirmReset bool

	// Window dimensions
	width  int
	height int

	// Status message
	status    string
	statusErr bool
}

// NewApp wires the controller and its collaborators into the TUI.
func NewApp(locator geo.Locator, kv app.KV, cfg *config.Config, exportPath string) *App {
	notes := &statusBuf{}
	return &App{
		screen:     ScreenMap,
		ctrl:       app.NewController(locator, kv, notes.push),
		surface:    mapview.NewSurface(),
		notes:      notes,
		form:       NewFormModel(),
		list:       NewListModel(),
		help:       NewHelpModel(),
		startZoom:  cfg.Map.Zoom,
		exportPath: exportPath,
	}
}

type startedMsg struct {
	err error
}

// Init kicks off the one-shot position request.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: a.ctrl.Start(context.Background())}
	}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		a.drainNotifications()
		if msg.err != nil {
			a.degraded = true
			return a, nil
		}
		a.surface.SetView(a.ctrl.Center(), a.startZoom)
		for _, e := range a.ctrl.Entries() {
			a.surface.AddMarker(markerFor(e))
		}
		a.list.SetEntries(a.ctrl.Entries())
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The open form captures typing, so route to it before anything
	// global.
	if a.screen == ScreenMap && a.ctrl.State() == app.StateFormOpen {
		return a.handleFormKey(msg)
	}

	if a.confirmReset {
		a.confirmReset = false
		if msg.String() == "y" {
			if err := a.ctrl.Reset(); err == nil {
				a.surface.ClearMarkers()
				a.list.SetEntries(nil)
				a.setStatus("All workouts deleted")
			}
			a.drainNotifications()
		} else {
			a.setStatus("Reset cancelled")
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1":
		a.screen = ScreenMap
		return a, nil
	case "2":
		a.screen = ScreenStats
		a.stats = NewStatsModel(a.ctrl.Entries())
		return a, nil
	case "?":
		if a.screen != ScreenHelp {
			a.prevScreen = a.screen
			a.screen = ScreenHelp
		}
		return a, nil
	case "esc":
		if a.screen == ScreenHelp {
			a.screen = a.prevScreen
		} else if a.screen == ScreenStats {
			a.screen = ScreenMap
		}
		return a, nil
	}

	if a.screen == ScreenMap {
		return a.handleMapKey(msg)
	}
	return a, nil
}

func (a *App) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if a.focus == focusMap {
			a.focus = focusList
		} else {
			a.focus = focusMap
		}
		return a, nil
	case "e":
		a.exportGPX()
		return a, nil
	case "X":
		if len(a.ctrl.Entries()) > 0 {
			a.confirmReset = true
			a.setStatus("Delete all workouts? Press y to confirm")
		}
		return a, nil
	}

	if a.focus == focusList {
		switch msg.String() {
		case "up", "k":
			a.list.MoveUp()
		case "down", "j":
			a.list.MoveDown()
		case "enter":
			// List click: recenter on the entry, nothing else.
			if id, ok := a.list.SelectedID(); ok {
				if e, ok := a.ctrl.EntryByID(id); ok {
					a.surface.SetView(e.Coords, app.RecenterZoom)
				}
			}
		}
		return a, nil
	}

	if !a.surface.Ready() {
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		a.surface.MoveCursor(0, -1)
	case "down", "j":
		a.surface.MoveCursor(0, 1)
	case "left", "h":
		a.surface.MoveCursor(-2, 0)
	case "right", "l":
		a.surface.MoveCursor(2, 0)
	case "+", "=":
		a.surface.ZoomIn()
	case "-":
		a.surface.ZoomOut()
	case "enter":
		// Map click: capture the cursor coordinate and open the form.
		if err := a.ctrl.OpenForm(a.surface.Cursor()); err == nil {
			a.form.Open()
			a.clearStatus()
		}
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.ctrl.CancelForm()
		a.clearStatus()
		return a, nil
	case "tab":
		a.form.NextField()
		return a, nil
	case "t":
		a.form.ToggleKind()
		return a, nil
	case "enter":
		entry, err := a.ctrl.Submit(a.form.Values())
		a.drainNotifications()
		if err != nil {
			// Form stays open for correction.
			return a, nil
		}
		a.surface.AddMarker(markerFor(entry))
		a.list.SetEntries(a.ctrl.Entries())
		a.setStatus("Saved " + entry.Description)
		return a, nil
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

func (a *App) exportGPX() {
	doc := gpx.Generate(a.ctrl.Entries())
	if doc == "" {
		a.setStatus("No workouts to export")
		return
	}
	if err := os.MkdirAll(filepath.Dir(a.exportPath), 0755); err != nil {
		a.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	if err := os.WriteFile(a.exportPath, []byte(doc), 0644); err != nil {
		a.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	a.setStatus("Exported to " + a.exportPath)
}

// drainNotifications moves controller messages onto the status line.
func (a *App) drainNotifications() {
	if len(a.notes.msgs) == 0 {
		return
	}
	a.status = a.notes.msgs[len(a.notes.msgs)-1]
	a.statusErr = true
	a.notes.msgs = nil
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusErr = false
}

func markerFor(e workout.Entry) mapview.Marker {
	return mapview.Marker{
		Coord: e.Coords,
		Popup: e.Description,
		Class: string(e.Kind),
	}
}

// View renders the app
func (a *App) View() string {
	header := headerStyle.Render("waylog — workout map")
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenMap:
		content = a.renderMapScreen()
	case ScreenStats:
		content = a.stats.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Map", ScreenMap},
		{"2", "Stats", ScreenStats},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}
		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}
	return nav
}

func (a *App) renderMapScreen() string {
	if a.degraded {
		return errorStyle.Render("\n  Could not get your position.\n  Set location.lat / location.lng in the config file and restart.")
	}
	if !a.surface.Ready() {
		return "\n  Locating..."
	}

	mapW := a.width - listPaneWidth - 6
	mapH := a.height - 8
	if mapW < 20 {
		mapW = 20
	}
	if mapH < 5 {
		mapH = 5
	}

	border := mapBorderStyle
	if a.focus == focusMap && a.ctrl.State() != app.StateFormOpen {
		border = mapBorderFocusStyle
	}
	mapPane := border.Render(a.surface.View(mapW, mapH))

	var side string
	if a.ctrl.State() == app.StateFormOpen {
		side = a.form.View()
	} else {
		sideBorder := mapBorderStyle
		if a.focus == focusList {
			sideBorder = mapBorderFocusStyle
		}
		side = sideBorder.Width(listPaneWidth).Render(
			a.list.View(listPaneWidth-2, a.focus == focusList))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, mapPane, " ", side)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		if a.statusErr {
			return errorStyle.Render(a.status)
		}
		return statusStyle.Render(a.status)
	}
	if a.screen == ScreenMap && a.surface.Ready() {
		cur := a.surface.Cursor()
		return statusStyle.Render(fmt.Sprintf("cursor %s · zoom %d · enter to log · ? for help",
			cur.String(), a.surface.Zoom()))
	}
	return statusStyle.Render("? for help · q to quit")
}
