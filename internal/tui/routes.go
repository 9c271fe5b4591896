package tui

import tea "github.com/charmbracelet/bubbletea"

// Route names one of the app's screens.
type Route int

const (
	RouteStartup Route = iota
	RouteAuth
	RouteProfile
)

func (r Route) String() string {
	switch r {
	case RouteAuth:
		return "Auth"
	case RouteProfile:
		return "Profile"
	default:
		return "Startup"
	}
}

// Destination is a typed transition target. Only this package can implement it,
// so every transition goes through ToAuth or ToProfile.
type Destination interface {
	Route() Route
	destination()
}

// AuthParams carries nothing; the login form starts empty.
type AuthParams struct{}

func (AuthParams) Route() Route { return RouteAuth }
func (AuthParams) destination() {}

// ProfileParams is required to mount the profile screen.
type ProfileParams struct {
	Token string
}

func (ProfileParams) Route() Route { return RouteProfile }
func (ProfileParams) destination() {}

func ToAuth() Destination { return AuthParams{} }

func ToProfile(token string) Destination { return ProfileParams{Token: token} }

// navigateMsg asks the app to replace screen `from` with a new one.
type navigateMsg struct {
	from int
	to   Destination
}

func navigate(from int, to Destination) tea.Cmd {
	return func() tea.Msg { return navigateMsg{from: from, to: to} }
}
