package tui

import "github.com/charmbracelet/bubbles/key"

var (
	keyQuit     = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	keyQuitSoft = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))

	keyNext   = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	keyPrev   = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous"))
	keySubmit = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))

	keyLogout = key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l", "logout"))

	keyDismiss = key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok"))
)
