package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/idcard/internal/layout"
)

// Screen is one mounted route.
type Screen interface {
	Route() Route
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(vp Viewport) string
	Bindings() []key.Binding
	// CapturesText reports whether plain runes belong to a text field.
	CapturesText() bool
}

// Viewport is the area a screen renders into.
type Viewport struct {
	Width       int
	Height      int
	Orientation layout.Orientation
	Dims        layout.Dimensions
	// Tall overrides landscape on screens that only need vertical room.
	Tall bool
}

func (v Viewport) Portrait() bool { return v.Orientation == layout.Portrait }

// Alert is a blocking modal. OnDismiss runs after the user closes it.
type Alert struct {
	Title     string
	Message   string
	OnDismiss tea.Cmd
}

type alertMsg struct{ Alert }

func showAlert(a Alert) tea.Cmd {
	return func() tea.Msg { return alertMsg{a} }
}
