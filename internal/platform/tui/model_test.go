package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-catch/internal/core"
)

// stubGame records what the platform asks of it.
type stubGame struct {
	resets  int
	steps   int
	actions []core.Action // Last action seen per step
	poses   []string
	over    bool
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.over = false
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return core.GameState{GameOver: g.over} }
func (g *stubGame) Pose(label string)     { g.poses = append(g.poses, label) }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.actions = append(g.actions, in.Last)
	return core.StepResult{State: g.State()}
}

var testCfg = core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testCfg)

	if cmd := m.Init(); cmd == nil {
		t.Error("Init should start the tick loop")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
}

func TestModelKeyReachesNextTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testCfg)
	m.Init()

	m, _ = update(t, m, runes("a"))
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if g.steps != 1 || g.actions[0] != core.ActionLeft {
		t.Fatalf("steps=%d actions=%v, expected one Left step", g.steps, g.actions)
	}

	// Input is cleared after each tick.
	update(t, m, TickMsg(time.Now()))
	if g.actions[1] != core.ActionNone {
		t.Errorf("second tick saw %v, expected no action", g.actions[1])
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testCfg)
	m.Init()

	m, _ = update(t, m, runes("r"))
	m, _ = update(t, m, TickMsg(time.Now()))
	if g.resets != 1 {
		t.Errorf("restart during play reset the game (resets=%d)", g.resets)
	}
	if g.actions[0] == core.ActionRestart {
		t.Error("restart should not reach a running game")
	}

	g.over = true
	m, _ = update(t, m, TickMsg(time.Now())) // observe game over
	m, _ = update(t, m, runes("r"))
	update(t, m, TickMsg(time.Now()))
	if g.resets != 2 {
		t.Errorf("resets = %d, expected restart after game over", g.resets)
	}
}

func TestModelPose(t *testing.T) {
	ch := make(chan string, 1)
	g := &stubGame{}
	m := NewModel(g, testCfg, WithPoseSource(ch))
	m.Init()

	_, cmd := update(t, m, PoseMsg("LEFT"))
	if len(g.poses) != 1 || g.poses[0] != "LEFT" {
		t.Errorf("poses = %v, expected [LEFT]", g.poses)
	}
	if cmd == nil {
		t.Fatal("expected a command waiting for the next pose")
	}

	ch <- "RIGHT"
	if msg := cmd(); msg != PoseMsg("RIGHT") {
		t.Errorf("wait command returned %v, expected RIGHT", msg)
	}

	close(ch)
	if msg := waitForPose(ch)(); msg != nil {
		t.Errorf("closed source returned %v, expected nil", msg)
	}
	if waitForPose(nil) != nil {
		t.Error("nil source should produce no command")
	}
}

func TestModelObserver(t *testing.T) {
	calls := 0
	g := &stubGame{}
	m := NewModel(g, testCfg, WithTickObserver(func(got Game) {
		if got != g {
			t.Errorf("observer got %v", got)
		}
		calls++
	}))
	m.Init()

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	if calls != 3 {
		t.Errorf("observer called %d times, expected 3", calls)
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testCfg)
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if g.resets != 1 {
		t.Error("resize should not reset the game")
	}
	if m.screen.Width() != 40 || m.screen.Height() != 10 {
		t.Errorf("screen = %dx%d, expected 40x10", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, testCfg)
	m.Init()

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if !m.quitting || m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := NewModel(&stubGame{}, testCfg, WithScreenshotDir(dir))
	m.Init()

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(dir, "stub_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v (err %v), expected one file", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:4]) != "stub" {
		t.Errorf("screenshot content = %q", data)
	}
}

func TestWriteScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := core.NewScreen(3, 2)
	s.DrawText(0, 1, "abc")

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	path, err := WriteScreenshot(dir, "fruitcatch", s, at)
	if err != nil {
		t.Fatalf("WriteScreenshot: %v", err)
	}
	if filepath.Base(path) != "fruitcatch_20240506_070809.txt" {
		t.Errorf("path = %s", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "   \nabc" {
		t.Errorf("content = %q", data)
	}
}

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "wxyz", core.ColorGray)

	// Tests run without a terminal, so styles render as plain text.
	if got := RenderScreen(s); got != s.String() {
		t.Errorf("RenderScreen = %q, expected %q", got, s.String())
	}
}
