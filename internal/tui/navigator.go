package tui

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/jask/idcard/internal/api"
	"github.com/jask/idcard/internal/logging"
	"github.com/jask/idcard/internal/secrets"
)

// ProfileAPI is the slice of the backend the screens need.
type ProfileAPI interface {
	Login(ctx context.Context, creds api.Credentials) (string, error)
	FetchUser(ctx context.Context, token string) (api.UserData, error)
}

// Deps are the capabilities handed to every screen.
type Deps struct {
	Ctx   context.Context
	API   ProfileAPI
	Store secrets.Store
	Log   *log.Logger
}

// Navigator builds screens for destinations. Transitions replace the current
// screen; there is no back stack.
type Navigator struct {
	deps    Deps
	serial  int
	current Route
}

func NewNavigator(deps Deps) *Navigator {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	return &Navigator{deps: deps}
}

// Start mounts the startup screen.
func (n *Navigator) Start() Screen {
	n.serial++
	n.current = RouteStartup
	return newStartupScreen(n.serial, n.deps)
}

// Replace discards the current screen and builds the one for dest.
func (n *Navigator) Replace(dest Destination) Screen {
	n.serial++
	n.deps.Log.Debug("navigate", "from", n.current, "to", dest.Route())
	n.current = dest.Route()
	switch d := dest.(type) {
	case ProfileParams:
		return newProfileScreen(n.serial, n.deps, d)
	default:
		return newAuthScreen(n.serial, n.deps)
	}
}

func (n *Navigator) Current() Route { return n.current }

// Serial identifies the mounted screen; stale navigation requests carry an older one.
func (n *Navigator) Serial() int { return n.serial }
