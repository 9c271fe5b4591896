package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/idcard/internal/api"
	"github.com/jask/idcard/internal/secrets"
)

const (
	focusUsername = iota
	focusPassword
	focusSubmit
	focusCount
)

type loginResultMsg struct {
	token string
	err   error
}

// authScreen is the login form.
type authScreen struct {
	id      int
	deps    Deps
	inputs  [2]textinput.Model
	focus   int
	loading bool
	spinner spinner.Model
}

func newAuthScreen(id int, deps Deps) *authScreen {
	s := &authScreen{
		id:      id,
		deps:    deps,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(colorOnBrand))),
	}
	for i, ph := range []string{"Username", "Password"} {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Cursor.SetMode(cursor.CursorStatic)
		s.inputs[i] = ti
	}
	s.inputs[focusPassword].EchoMode = textinput.EchoPassword
	s.inputs[focusPassword].EchoCharacter = '•'
	s.inputs[focusUsername].Focus()
	return s
}

func (s *authScreen) Route() Route { return RouteAuth }

func (s *authScreen) CapturesText() bool { return s.focus != focusSubmit }

func (s *authScreen) Bindings() []key.Binding {
	return []key.Binding{keyNext, keyPrev, keySubmit, keyQuit}
}

func (s *authScreen) Init() tea.Cmd { return nil }

func (s *authScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(m, keyNext):
			s.setFocus(s.focus + 1)
			return s, nil
		case key.Matches(m, keyPrev):
			s.setFocus(s.focus - 1)
			return s, nil
		case key.Matches(m, keySubmit):
			if s.focus == focusUsername {
				s.setFocus(focusPassword)
				return s, nil
			}
			return s, s.submit()
		}
		if s.focus == focusSubmit {
			return s, nil
		}
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(m)
		return s, cmd
	case loginResultMsg:
		s.loading = false
		if m.err != nil {
			return s, showAlert(Alert{Title: "Error", Message: m.err.Error()})
		}
		return s, navigate(s.id, ToProfile(m.token))
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

func (s *authScreen) setFocus(i int) {
	i = (i + focusCount) % focusCount
	s.focus = i
	for j := range s.inputs {
		if j == i {
			s.inputs[j].Focus()
		} else {
			s.inputs[j].Blur()
		}
	}
}

func (s *authScreen) credentials() api.Credentials {
	return api.Credentials{
		Username: s.inputs[focusUsername].Value(),
		Password: s.inputs[focusPassword].Value(),
	}
}

// submit validates locally, then posts the credentials. Submitting again while
// a request is out is allowed; each answer is handled as it arrives.
func (s *authScreen) submit() tea.Cmd {
	creds := s.credentials()
	if creds.Empty() {
		return showAlert(Alert{
			Title:   "Missing form fields",
			Message: "Please enter both username and password",
		})
	}
	s.loading = true
	return tea.Batch(s.spinner.Tick, s.login(creds))
}

func (s *authScreen) login(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		token, err := s.deps.API.Login(s.deps.Ctx, creds)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := s.deps.Store.Set(s.deps.Ctx, secrets.TokenKey, token); err != nil {
			// the session still works for this run
			s.deps.Log.Warn("save token", "err", err)
		}
		return loginResultMsg{token: token}
	}
}

func (s *authScreen) View(vp Viewport) string {
	st := authStyleFor(vp)
	w := st.formWidth(vp.Width)

	logo := logoStyle.Width(st.LogoW).Height(st.LogoH).Render("idcard")
	rows := withGap([]string{lipgloss.PlaceHorizontal(w, lipgloss.Center, logo)}, st.LogoGap)
	for i := range s.inputs {
		style := inputStyle
		if s.focus == i {
			style = inputFocusedStyle
		}
		// border and cursor column come out of the form width
		s.inputs[i].Width = max(1, w-4)
		rows = withGap(append(rows, style.Width(w-2).Render(s.inputs[i].View())), st.InputGap)
	}

	label := "Submit"
	if s.loading {
		label = s.spinner.View()
	}
	button := buttonStyle
	if s.focus == focusSubmit {
		button = buttonFocusedStyle
	}
	rows = append(rows, button.Width(w).Height(st.ButtonH).Render(label))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if st.Lift > 0 {
		form += strings.Repeat("\n", st.Lift)
	}
	return lipgloss.Place(vp.Width, vp.Height, lipgloss.Center, lipgloss.Center, form)
}

// withGap appends n blank rows.
func withGap(rows []string, n int) []string {
	if n <= 0 {
		return rows
	}
	return append(rows, strings.Repeat("\n", n-1))
}
