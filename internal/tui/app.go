package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jask/idcard/internal/config"
	"github.com/jask/idcard/internal/layout"
	"github.com/jask/idcard/internal/logging"
)

// App is the root model: it owns the mounted screen, any open alert and the
// window shape the screens lay themselves out against.
type App struct {
	nav      *Navigator
	screen   Screen
	alert    *Alert
	sizes    *layout.Broadcaster
	tracker  *layout.Tracker
	untrack  func()
	aspect   float64
	tallRows int
	width    int
	height   int
	log      *log.Logger
}

func New(ctx context.Context, cfg config.UIConfig, deps Deps) *App {
	if ctx != nil {
		deps.Ctx = ctx
	}
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	logger := deps.Log
	sizes := layout.NewBroadcaster()
	tracker, untrack := layout.NewTracker(sizes, func(o layout.Orientation) {
		logger.Debug("orientation", "now", o)
	})
	a := &App{
		nav:      NewNavigator(deps),
		sizes:    sizes,
		tracker:  tracker,
		untrack:  untrack,
		aspect:   cfg.CellAspect,
		tallRows: cfg.TallRows,
		width:    80,
		height:   24,
		log:      deps.Log,
	}
	a.screen = a.nav.Start()
	return a
}

func (a *App) Init() tea.Cmd {
	return a.screen.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.sizes.Publish(layout.Dimensions{Cols: m.Width, Rows: m.Height, Aspect: a.aspect})
		a.log.Debug("resize", "cols", m.Width, "rows", m.Height)
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, keyQuit) {
			return a, tea.Quit
		}
		if a.alert != nil {
			return a.updateAlert(m)
		}
		if !a.screen.CapturesText() && key.Matches(m, keyQuitSoft) {
			return a, tea.Quit
		}
	case alertMsg:
		alert := m.Alert
		a.alert = &alert
		a.log.Debug("alert", "title", alert.Title, "message", alert.Message)
		return a, nil
	case navigateMsg:
		if m.from != a.nav.Serial() {
			a.log.Debug("stale navigation dropped", "to", m.to.Route())
			return a, nil
		}
		a.alert = nil
		a.screen = a.nav.Replace(m.to)
		return a, a.screen.Init()
	}

	next, cmd := a.screen.Update(msg)
	a.screen = next
	return a, cmd
}

func (a *App) updateAlert(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(m, keyDismiss) {
		return a, nil
	}
	cmd := a.alert.OnDismiss
	a.alert = nil
	return a, cmd
}

func (a *App) viewport() Viewport {
	footer := 1
	vp := Viewport{
		Width:       a.width,
		Height:      max(0, a.height-footer),
		Orientation: a.tracker.Orientation(),
		Dims:        a.tracker.Dimensions(),
	}
	if vp.Dims.Cols == 0 {
		vp.Dims = layout.Dimensions{Cols: a.width, Rows: a.height, Aspect: a.aspect}
		vp.Orientation = vp.Dims.Orientation()
	}
	vp.Tall = a.tallRows > 0 && a.height > a.tallRows
	return vp
}

func (a *App) View() string {
	vp := a.viewport()
	body := a.screen.View(vp)
	bindings := a.screen.Bindings()
	if a.alert != nil {
		body = renderAlert(body, *a.alert, vp.Width, vp.Height)
		bindings = []key.Binding{keyDismiss, keyQuit}
	}
	body = lipgloss.NewStyle().MaxWidth(vp.Width).MaxHeight(vp.Height).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, renderFooter(a.width, bindings))
}

// Close detaches the app from window size updates.
func (a *App) Close() {
	a.untrack()
}

// Route reports the mounted screen.
func (a *App) Route() Route { return a.screen.Route() }

// Alert returns the open alert, if any.
func (a *App) Alert() *Alert { return a.alert }
