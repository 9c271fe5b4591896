package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/idcard/internal/config"
	"github.com/jask/idcard/internal/layout"
	"github.com/jask/idcard/internal/logging"
	"github.com/jask/idcard/internal/secrets"
)

func TestViewportFollowsWindowSize(t *testing.T) {
	a := New(context.Background(), config.UIConfig{CellAspect: 2, TallRows: 40}, Deps{Store: secrets.NewMemoryStore(), API: &fakeAPI{}})

	a = flowApply(t, a, tea.WindowSizeMsg{Width: 120, Height: 30})
	if vp := a.viewport(); vp.Orientation != layout.Landscape || vp.Tall {
		t.Fatalf("120x30: %+v", vp)
	}

	a = flowApply(t, a, tea.WindowSizeMsg{Width: 40, Height: 30})
	if vp := a.viewport(); vp.Orientation != layout.Portrait {
		t.Fatalf("40x30 should be portrait at 2:1 cells: %+v", vp)
	}

	a = flowApply(t, a, tea.WindowSizeMsg{Width: 200, Height: 50})
	vp := a.viewport()
	if vp.Orientation != layout.Landscape || !vp.Tall {
		t.Fatalf("200x50: %+v", vp)
	}
	if vp.Height != 49 {
		t.Fatalf("footer row not reserved: height %d", vp.Height)
	}
}

func TestOrientationLoggedOnlyOnFlips(t *testing.T) {
	var buf bytes.Buffer
	a := New(context.Background(), config.UIConfig{CellAspect: 2, TallRows: 40}, Deps{
		Store: secrets.NewMemoryStore(),
		API:   &fakeAPI{},
		Log:   logging.New(&buf, "", log.DebugLevel),
	})

	a = flowApply(t, a, tea.WindowSizeMsg{Width: 120, Height: 30})
	a = flowApply(t, a, tea.WindowSizeMsg{Width: 130, Height: 30})
	a = flowApply(t, a, tea.WindowSizeMsg{Width: 40, Height: 30})
	if n := strings.Count(buf.String(), "orientation"); n != 2 {
		t.Fatalf("orientation logged %d times:\n%s", n, buf.String())
	}

	a.Close()
	a = flowApply(t, a, tea.WindowSizeMsg{Width: 200, Height: 30})
	if o := a.viewport().Orientation; o != layout.Portrait {
		t.Fatalf("closed app still tracking: %v", o)
	}
	if n := strings.Count(buf.String(), "orientation"); n != 2 {
		t.Fatalf("orientation logged after close:\n%s", buf.String())
	}
}

func TestAuthStyleTables(t *testing.T) {
	p := authStyleFor(Viewport{Orientation: layout.Portrait})
	l := authStyleFor(Viewport{Orientation: layout.Landscape})
	if p != authPortrait || l != authLandscape {
		t.Fatal("wrong table picked")
	}
	if !(p.LogoH > l.LogoH && p.InputGap > l.InputGap && p.LogoGap > l.LogoGap) {
		t.Fatalf("portrait should be roomier: %+v vs %+v", p, l)
	}
	if got := p.formWidth(100); got != 40 {
		t.Fatalf("formWidth capped = %d", got)
	}
	if got := p.formWidth(30); got != 24 {
		t.Fatalf("formWidth 80%% = %d", got)
	}
}

func TestProfileStyleTallOverride(t *testing.T) {
	if profileStyleFor(Viewport{Orientation: layout.Landscape}).Horizontal != true {
		t.Fatal("landscape should lay out side by side")
	}
	if profileStyleFor(Viewport{Orientation: layout.Landscape, Tall: true}).Horizontal {
		t.Fatal("tall windows keep the stacked layout")
	}
	if profileStyleFor(Viewport{Orientation: layout.Portrait}).Horizontal {
		t.Fatal("portrait should stack")
	}
}

func TestFitImageUsesShortSide(t *testing.T) {
	// 120x30 cells at 2:1 is 120x60; 60/1.5 = 40
	cols, rows := fitImage(layout.Dimensions{Cols: 120, Rows: 30, Aspect: 2})
	if cols != 40 || rows != 20 {
		t.Fatalf("fit = %dx%d, want 40x20", cols, rows)
	}
	cols, rows = fitImage(layout.Dimensions{Cols: 3, Rows: 1, Aspect: 2})
	if cols < 4 || rows < 3 {
		t.Fatalf("fit should have a floor: %dx%d", cols, rows)
	}
}

func TestAuthViewDiffersByOrientation(t *testing.T) {
	s := newAuthScreen(1, Deps{})
	portrait := ansi.Strip(s.View(Viewport{Width: 50, Height: 40, Orientation: layout.Portrait}))
	landscape := ansi.Strip(s.View(Viewport{Width: 50, Height: 40, Orientation: layout.Landscape}))
	if portrait == landscape {
		t.Fatal("views should differ")
	}
	for _, v := range []string{portrait, landscape} {
		for _, want := range []string{"idcard", "Username", "Password", "Submit"} {
			if !strings.Contains(v, want) {
				t.Fatalf("view missing %q:\n%s", want, v)
			}
		}
	}
}

func TestPasswordIsMasked(t *testing.T) {
	s := newAuthScreen(1, Deps{})
	s.setFocus(focusPassword)
	s.inputs[focusPassword].SetValue("hunter2")
	if v := ansi.Strip(s.View(Viewport{Width: 60, Height: 30})); strings.Contains(v, "hunter2") {
		t.Fatalf("password rendered in clear:\n%s", v)
	}
}

func TestRenderAlertKeepsCanvasSize(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 60)+"\n", 19) + strings.Repeat(".", 60)
	out := renderAlert(base, Alert{Title: "Error", Message: "Incorrect credentials provided"}, 60, 20)

	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("lines = %d, want 20", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 60 {
			t.Fatalf("line %d width = %d", i, w)
		}
	}
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Error") || !strings.Contains(plain, "Ok") {
		t.Fatalf("alert not drawn:\n%s", plain)
	}
}

func TestFooterListsBindings(t *testing.T) {
	out := ansi.Strip(renderFooter(80, []key.Binding{keyLogout, keyQuitSoft}))
	if !strings.Contains(out, "logout") || !strings.Contains(out, "quit") {
		t.Fatalf("footer = %q", out)
	}
	if w := ansi.StringWidth(out); w != 80 {
		t.Fatalf("footer width = %d", w)
	}
}
