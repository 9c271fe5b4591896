package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/idcard/internal/secrets"
)

type tokenLookupMsg struct {
	token string
	err   error
}

// startupScreen looks for a saved token and hands off to Profile or Auth.
type startupScreen struct {
	id      int
	deps    Deps
	spinner spinner.Model
}

func newStartupScreen(id int, deps Deps) *startupScreen {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return &startupScreen{id: id, deps: deps, spinner: sp}
}

func (s *startupScreen) Route() Route            { return RouteStartup }
func (s *startupScreen) CapturesText() bool      { return false }
func (s *startupScreen) Bindings() []key.Binding { return []key.Binding{keyQuitSoft} }

func (s *startupScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.lookupToken())
}

func (s *startupScreen) lookupToken() tea.Cmd {
	return func() tea.Msg {
		token, err := s.deps.Store.Get(s.deps.Ctx, secrets.TokenKey)
		return tokenLookupMsg{token: token, err: err}
	}
}

func (s *startupScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tokenLookupMsg:
		switch {
		case m.err == nil && m.token != "":
			s.deps.Log.Info("saved token found")
			return s, navigate(s.id, ToProfile(m.token))
		case m.err == nil || errors.Is(m.err, secrets.ErrNotFound):
			return s, navigate(s.id, ToAuth())
		default:
			s.deps.Log.Error("read saved token", "err", m.err)
			return s, showAlert(Alert{
				Title:     "Error",
				Message:   m.err.Error(),
				OnDismiss: navigate(s.id, ToAuth()),
			})
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(m)
		return s, cmd
	}
	return s, nil
}

func (s *startupScreen) View(vp Viewport) string {
	return lipgloss.Place(vp.Width, vp.Height, lipgloss.Center, lipgloss.Center, s.spinner.View())
}
