package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/idcard/internal/api"
	"github.com/jask/idcard/internal/secrets"
)

type userMsg struct {
	user api.UserData
	err  error
}

// profileScreen shows the signed-in user and offers logout.
type profileScreen struct {
	id      int
	deps    Deps
	params  ProfileParams
	user    *api.UserData
	loading bool
	spinner spinner.Model
}

func newProfileScreen(id int, deps Deps, params ProfileParams) *profileScreen {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return &profileScreen{id: id, deps: deps, params: params, spinner: sp}
}

func (s *profileScreen) Route() Route       { return RouteProfile }
func (s *profileScreen) CapturesText() bool { return false }

func (s *profileScreen) Bindings() []key.Binding {
	return []key.Binding{keyLogout, keyQuitSoft}
}

func (s *profileScreen) Init() tea.Cmd {
	s.loading = true
	return tea.Batch(s.spinner.Tick, s.fetchUser())
}

func (s *profileScreen) fetchUser() tea.Cmd {
	token := s.params.Token
	return func() tea.Msg {
		u, err := s.deps.API.FetchUser(s.deps.Ctx, token)
		return userMsg{user: u, err: err}
	}
}

func (s *profileScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(m, keyLogout) {
			return s, s.logout()
		}
	case userMsg:
		if m.err != nil {
			// spinner keeps running under the alert until we leave
			return s, showAlert(Alert{
				Title:     "Error",
				Message:   m.err.Error(),
				OnDismiss: navigate(s.id, ToAuth()),
			})
		}
		u := m.user
		s.user = &u
		s.loading = false
	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(m)
		return s, cmd
	}
	return s, nil
}

// logout always ends on Auth, even if the token could not be removed.
func (s *profileScreen) logout() tea.Cmd {
	return func() tea.Msg {
		if err := s.deps.Store.Delete(s.deps.Ctx, secrets.TokenKey); err != nil {
			s.deps.Log.Error("delete token", "err", err)
		} else {
			s.deps.Log.Info("logged out")
		}
		return navigateMsg{from: s.id, to: ToAuth()}
	}
}

func (s *profileScreen) View(vp Viewport) string {
	if s.loading || s.user == nil {
		return lipgloss.Place(vp.Width, vp.Height, lipgloss.Center, lipgloss.Center, s.spinner.View())
	}
	st := profileStyleFor(vp)

	header := s.renderHeader(vp.Width, st)
	bodyHeight := max(0, vp.Height-lipgloss.Height(header))

	var body string
	if st.Horizontal {
		body = s.renderLandscape(vp, st)
	} else {
		body = s.renderPortrait(vp, st)
	}
	body = lipgloss.Place(vp.Width, bodyHeight, lipgloss.Center, lipgloss.Top, body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (s *profileScreen) renderHeader(width int, st profileStyle) string {
	bar := headerStyle.Width(width).Render(logoutStyle.Render("Logout"))
	if st.HeaderPad <= 0 {
		return bar
	}
	pad := headerStyle.Width(width).Height(st.HeaderPad).Render("")
	return lipgloss.JoinVertical(lipgloss.Left, pad, bar)
}

func (s *profileScreen) textLines() []string {
	u := s.user
	return []string{u.FullName(), u.Address, u.Phone}
}

func (s *profileScreen) renderImage(cols, rows int) string {
	inner := max(1, cols-2)
	label := ansi.Truncate(s.user.Image, inner, "…")
	if id := s.user.ShortID(); id != "" {
		label = "#" + id + "\n" + label
	}
	return imageFrameStyle.Width(inner).Height(max(1, rows-2)).Render(label)
}

func (s *profileScreen) renderPortrait(vp Viewport, st profileStyle) string {
	cols := min(st.ImageW, max(4, vp.Width-2))
	parts := []string{"", s.renderImage(cols, st.ImageH)}
	parts = withGap(parts, st.ImageGap)
	for i, line := range s.textLines() {
		if i > 0 {
			parts = withGap(parts, st.TextGap)
		}
		parts = append(parts, profileTextStyle.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (s *profileScreen) renderLandscape(vp Viewport, st profileStyle) string {
	cols, rows := fitImage(vp.Dims)
	if limit := vp.Width / 2; cols > limit {
		cols = max(4, limit)
	}
	image := s.renderImage(cols, rows)

	// spread the text evenly over the image height
	lines := s.textLines()
	height := lipgloss.Height(image)
	spacing := max(0, (height-len(lines))/(len(lines)+1))
	var b strings.Builder
	for i, line := range lines {
		if i > 0 || spacing > 0 {
			b.WriteString(strings.Repeat("\n", spacing))
		}
		b.WriteString(profileTextStyle.Render(line))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	text := lipgloss.NewStyle().Height(height).Render(b.String())

	spacer := strings.Repeat(" ", st.ImageGap)
	return lipgloss.JoinVertical(lipgloss.Left, "", lipgloss.JoinHorizontal(lipgloss.Top, image, spacer, text))
}
