package tui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/idcard/internal/layout"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)

	logoStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorOnBrand).
			Bold(true).
			Align(lipgloss.Center, lipgloss.Center)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Align(lipgloss.Center)
	inputFocusedStyle = inputStyle.BorderForeground(colorAccent)

	buttonStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorOnBrand).
			Bold(true).
			Align(lipgloss.Center, lipgloss.Center)
	buttonFocusedStyle = buttonStyle.Underline(true)

	headerStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorOnBrand).
			Align(lipgloss.Right)
	logoutStyle = lipgloss.NewStyle().Foreground(colorOnBrand).Background(colorAccent).Bold(true).Padding(0, 2)

	imageFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Foreground(colorMuted).
			Align(lipgloss.Center, lipgloss.Center)
	profileTextStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	alertCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Background(colorSurface).
			Padding(1, 2)
	alertTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	alertButtonStyle = lipgloss.NewStyle().Background(colorAccent).Foreground(colorOnBrand).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	footerDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// authStyle is one of the two login form layouts.
type authStyle struct {
	LogoW, LogoH int
	LogoGap      int // blank rows under the logo
	InputGap     int // blank rows under each input
	ButtonH      int
	MaxWidth     int
	Lift         int // rows the form sits above centre
}

var (
	authPortrait = authStyle{
		LogoW: 16, LogoH: 5,
		LogoGap:  3,
		InputGap: 2,
		ButtonH:  3,
		MaxWidth: 40,
		Lift:     2,
	}
	authLandscape = authStyle{
		LogoW: 12, LogoH: 3,
		LogoGap:  1,
		InputGap: 0,
		ButtonH:  1,
		MaxWidth: 40,
	}
)

func authStyleFor(vp Viewport) authStyle {
	return layout.Pick(vp.Orientation, authPortrait, authLandscape)
}

// formWidth is 80% of the window, capped.
func (s authStyle) formWidth(width int) int {
	w := width * 8 / 10
	if w > s.MaxWidth {
		w = s.MaxWidth
	}
	return max(w, 10)
}

// profileStyle is one of the two profile layouts.
type profileStyle struct {
	HeaderPad  int
	Horizontal bool
	// fixed image frame in cells; zero means fit to the window
	ImageW, ImageH int
	ImageGap       int
	TextGap        int
}

var (
	profilePortrait = profileStyle{
		HeaderPad: 2,
		ImageW:    30, ImageH: 10,
		ImageGap: 1,
		TextGap:  1,
	}
	profileLandscape = profileStyle{
		HeaderPad:  1,
		Horizontal: true,
		ImageGap:   3,
	}
)

// profileStyleFor keeps the portrait layout on tall windows even when they are wide.
func profileStyleFor(vp Viewport) profileStyle {
	if vp.Portrait() || vp.Tall {
		return profilePortrait
	}
	return profileLandscape
}

// fitImage sizes a square frame to two thirds of the window's short side,
// converted back to cells.
func fitImage(d layout.Dimensions) (cols, rows int) {
	w, h := d.Square()
	side := float64(min(w, h)) / 1.5
	aspect := d.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	cols = int(math.Round(side))
	rows = int(math.Round(side / aspect))
	return max(cols, 4), max(rows, 3)
}
