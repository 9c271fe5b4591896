package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#1f2933"
	colorMuted   lipgloss.Color = "#7b8794"
	colorBorder  lipgloss.Color = "#3e4c59"
	colorAccent  lipgloss.Color = "#00b896"
	colorOnBrand lipgloss.Color = "#ffffff"
	colorError   lipgloss.Color = "#e12d39"
	colorSurface lipgloss.Color = "#f5f7fa"
)
