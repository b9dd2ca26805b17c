package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/registry"
)

// stubGame records what the model feeds it.
type stubGame struct {
	resets  int
	seeds   []int64
	frames  []core.InputFrame
	resized [2]int
}

func (g *stubGame) ID() string    { return "tui_stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) error {
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
	return nil
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	cp := core.NewInputFrame()
	for a := range in.Actions {
		cp.Set(a)
	}
	cp.Column = in.Column
	cp.Gesture = in.Gesture
	g.frames = append(g.frames, cp)
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub board")
}

func (g *stubGame) State() core.GameState { return core.GameState{} }

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

var _ registry.Game = (*stubGame)(nil)

func newTestModel(seed int64) (Model, *stubGame) {
	g := &stubGame{}
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: seed}
	return NewModel(g, cfg), g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelKeysReachGameOnTick(t *testing.T) {
	m, g := newTestModel(7)

	m = update(t, m, runes("4"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})

	if len(g.frames) != 1 {
		t.Fatalf("expected one step, got %d", len(g.frames))
	}
	f := g.frames[0]
	if !f.Has(core.ActionConfirm) || !f.Has(core.ActionToggleSpawn) || f.Column != 3 {
		t.Errorf("unexpected frame %+v", f)
	}

	update(t, m, TickMsg{})
	if !g.frames[1].Empty() {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelMouseGesture(t *testing.T) {
	m, g := newTestModel(7)

	m = update(t, m, tea.MouseMsg{X: 4, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = update(t, m, tea.MouseMsg{X: 7, Y: 3, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
	update(t, m, TickMsg{})

	gs := g.frames[0].Gesture
	if gs == nil {
		t.Fatal("expected a gesture")
	}
	want := core.Gesture{StartX: 4, StartY: 3, EndX: 7, EndY: 3}
	if *gs != want {
		t.Errorf("gesture = %+v, want %+v", *gs, want)
	}
}

func TestModelReleaseWithoutPress(t *testing.T) {
	m, g := newTestModel(7)
	m = update(t, m, tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionRelease})
	update(t, m, TickMsg{})
	if g.frames[0].Gesture != nil {
		t.Error("release without press must not produce a gesture")
	}
}

func TestModelRestartKeepsFixedSeed(t *testing.T) {
	m, g := newTestModel(42)
	m = update(t, m, runes("r"))
	update(t, m, TickMsg{})

	if g.resets != 1 || g.seeds[0] != 42 {
		t.Errorf("restart should reuse seed 42, got resets=%d seeds=%v", g.resets, g.seeds)
	}
	if len(g.frames) != 0 {
		t.Error("restart tick should not step the game")
	}
}

func TestModelResize(t *testing.T) {
	m, g := newTestModel(7)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resized != [2]int{100, 29} {
		t.Errorf("game resized to %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}
	if g.resets != 0 {
		t.Error("resize must not restart the game")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(7)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(7)
	view := m.View()
	if !strings.Contains(view, "stub board") {
		t.Errorf("view misses game output:\n%s", view)
	}
	if !strings.Contains(view, "quit") {
		t.Errorf("view misses help footer:\n%s", view)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawStyledText(0, 0, "B G", core.ColorBlue, core.AttrBold)
	s.DrawStyledText(4, 0, "R", core.ColorRed, core.AttrReverse)
	s.DrawText(0, 1, "status")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"B G", "R", "status"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}
