package fruitcatch

import (
	"strings"
	"testing"

	"github.com/vovakirdan/fruit-catch/internal/catch"
	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
)

// 50 ticks per second gives an exact 20ms step.
var testRuntime = core.RuntimeConfig{
	ScreenW:  60,
	ScreenH:  20,
	TickRate: 50,
	Seed:     42,
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testRuntime)
	return g
}

func stepN(g *Game, n int) core.StepResult {
	var res core.StepResult
	for i := 0; i < n; i++ {
		res = g.Step(core.NewInputFrame())
	}
	return res
}

func timeLeft(g *Game) int {
	st, _ := g.Snapshot()
	return st.TimeRemaining
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t)

	state := g.State()
	if state.Score != 0 || state.Level != 1 {
		t.Errorf("after Reset: score=%d level=%d, expected 0 and 1", state.Score, state.Level)
	}
	if state.GameOver || state.Paused {
		t.Error("a fresh game should be running")
	}

	st, items := g.Snapshot()
	if !st.Active {
		t.Error("engine should be active after Reset")
	}
	if st.BasketZone != catch.ZoneCenter {
		t.Errorf("basket = %v, expected CENTER", st.BasketZone)
	}
	if len(items) != 1 {
		t.Errorf("expected the first item to spawn at start, got %d items", len(items))
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch i % 90 {
		case 0:
			inputs[i].Set(core.ActionLeft)
		case 30:
			inputs[i].Set(core.ActionCenter)
		case 60:
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() (catch.State, int) {
		g := newTestGame(t)
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		st, items := g.Snapshot()
		return st, len(items)
	}

	st1, n1 := run()
	st2, n2 := run()
	if st1 != st2 {
		t.Errorf("states differ: %+v vs %+v", st1, st2)
	}
	if n1 != n2 {
		t.Errorf("item counts differ: %d vs %d", n1, n2)
	}
}

func TestStepAdvancesVirtualTime(t *testing.T) {
	g := newTestGame(t)

	stepN(g, 49)
	if got := timeLeft(g); got != 60 {
		t.Errorf("after 49 ticks time = %d, expected 60", got)
	}
	stepN(g, 1)
	if got := timeLeft(g); got != 59 {
		t.Errorf("after 50 ticks time = %d, expected 59", got)
	}
}

func TestPauseFreezesTime(t *testing.T) {
	g := newTestGame(t)
	stepN(g, 50)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if !g.Step(pause).State.Paused {
		t.Fatal("expected game to be paused")
	}

	stepN(g, 200)
	if got := timeLeft(g); got != 59 {
		t.Errorf("time moved while paused: %d", got)
	}

	if g.Step(pause).State.Paused {
		t.Fatal("expected game to resume")
	}
	stepN(g, 49)
	if got := timeLeft(g); got != 58 {
		t.Errorf("after resuming time = %d, expected 58", got)
	}
}

func TestKeyboardMovesBasket(t *testing.T) {
	tests := []struct {
		action core.Action
		zone   catch.Zone
	}{
		{core.ActionLeft, catch.ZoneLeft},
		{core.ActionRight, catch.ZoneRight},
		{core.ActionCenter, catch.ZoneCenter},
	}

	g := newTestGame(t)
	for _, tc := range tests {
		in := core.NewInputFrame()
		in.Set(tc.action)
		g.Step(in)
		if st, _ := g.Snapshot(); st.BasketZone != tc.zone {
			t.Errorf("%v: basket = %v, expected %v", tc.action, st.BasketZone, tc.zone)
		}
	}
}

func TestZoneFromInput(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		zone    catch.Zone
		ok      bool
	}{
		{"none", nil, 0, false},
		{"pause only", []core.Action{core.ActionPause}, 0, false},
		{"single", []core.Action{core.ActionRight}, catch.ZoneRight, true},
		{"last zone wins", []core.Action{core.ActionLeft, core.ActionRight}, catch.ZoneRight, true},
		{"zone before pause", []core.Action{core.ActionLeft, core.ActionPause}, catch.ZoneLeft, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := core.NewInputFrame()
			for _, a := range tc.actions {
				in.Set(a)
			}
			zone, ok := zoneFromInput(in)
			if ok != tc.ok || (ok && zone != tc.zone) {
				t.Errorf("zoneFromInput = (%v, %v), expected (%v, %v)", zone, ok, tc.zone, tc.ok)
			}
		})
	}
}

func TestPoseLabels(t *testing.T) {
	g := newTestGame(t)

	g.Pose("LEFT")
	if st, _ := g.Snapshot(); st.BasketZone != catch.ZoneLeft {
		t.Errorf("basket = %v, expected LEFT", st.BasketZone)
	}

	g.Pose("Left") // not a zone label
	g.Pose("")
	if st, _ := g.Snapshot(); st.BasketZone != catch.ZoneLeft {
		t.Errorf("unknown labels moved the basket to %v", st.BasketZone)
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	g.Pose("RIGHT")
	if st, _ := g.Snapshot(); st.BasketZone != catch.ZoneLeft {
		t.Error("pose input should be ignored while paused")
	}
}

func playToEnd(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 70*testRuntime.TickRate; i++ {
		if g.Step(core.NewInputFrame()).State.GameOver {
			return
		}
	}
	t.Fatal("session did not end within 70 seconds")
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t)
	playToEnd(t, g)

	if g.Reason() == "" {
		t.Error("expected an end reason after game over")
	}
	st, _ := g.Snapshot()
	if st.Active {
		t.Error("engine should be inactive after game over")
	}

	// Input other than restart is ignored once over.
	before := timeLeft(g)
	stepN(g, 100)
	if timeLeft(g) != before {
		t.Error("time moved after game over")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	res := g.Step(restart)
	if res.State.GameOver {
		t.Error("restart should start a new session")
	}
	if res.State.Score != 0 || timeLeft(g) != 60 {
		t.Errorf("after restart: score=%d time=%d", res.State.Score, timeLeft(g))
	}
	if g.Reason() != "" {
		t.Error("restart should clear the end reason")
	}
}

func TestRenderPlayfield(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Score: 0") || !strings.Contains(hud, "Time: 60s") {
		t.Errorf("HUD row = %q", hud)
	}
	if hud := screen.Row(0); !strings.Contains(hud, "♥♥♥") {
		t.Errorf("expected three hearts in %q", hud)
	}

	basketRow := screen.Row(testRuntime.ScreenH - 2)
	idx := strings.Index(basketRow, basketSprite)
	if idx < 0 {
		t.Fatalf("basket not drawn: %q", basketRow)
	}
	lanes := core.NewRect(0, 0, testRuntime.ScreenW, 1).SplitColumns(3)
	if idx < lanes[1].X || idx >= lanes[1].Right() {
		t.Errorf("basket at column %d, expected inside the center lane %v", idx, lanes[1])
	}

	// The first item is drawn at the top of its lane.
	_, items := g.Snapshot()
	it := items[0]
	col := lanes[it.Zone].CenterX()
	if got := screen.GetCell(col, hudRows); got.Rune != it.Kind.Rune {
		t.Errorf("cell at lane %v top = %q, expected %q", it.Zone, got.Rune, it.Kind.Rune)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	g.Step(pause)
	playToEnd(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), g.Reason().Message()) {
		t.Errorf("game-over overlay should show %q", g.Reason().Message())
	}
}

func TestFlashExpires(t *testing.T) {
	g := newTestGame(t)
	g.addFlash(catch.ZoneLeft, "+100", core.ColorGreen)
	g.addFlash(catch.ZoneLeft, "MISS", core.ColorRed)

	if len(g.flashes) != 1 || g.flashes[0].text != "MISS" {
		t.Fatalf("flashes = %+v, expected one MISS flash", g.flashes)
	}
	for i := 0; i < testRuntime.TickRate/2; i++ {
		g.ageFlashes()
	}
	if len(g.flashes) != 0 {
		t.Errorf("flash should expire after half a second, got %+v", g.flashes)
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { SetDifficultyPreset("") })

	SetDifficultyPreset("hard")
	hard := LoadConfig()
	SetDifficultyPreset("")
	base := LoadConfig()

	if hard.Session.MaxMisses >= base.Session.MaxMisses {
		t.Errorf("hard max misses = %d, expected fewer than %d", hard.Session.MaxMisses, base.Session.MaxMisses)
	}
	if hard.Levels[0].FallDurationMS >= base.Levels[0].FallDurationMS {
		t.Error("hard preset should make items fall faster")
	}

	SetDifficultyPreset("bogus")
	if got := LoadConfig(); got.Session.MaxMisses != base.Session.MaxMisses {
		t.Error("unknown preset should keep the loaded config")
	}
}

func TestConfigPathFallsBackOnError(t *testing.T) {
	t.Cleanup(func() { SetConfigPath("") })
	SetConfigPath("/nonexistent/catch.yaml")

	got := LoadConfig()
	want := config.DefaultCatchConfig()
	if got.Session != want.Session {
		t.Errorf("session = %+v, expected defaults %+v", got.Session, want.Session)
	}
}

func TestSnapshotBeforeReset(t *testing.T) {
	g := New()
	st, items := g.Snapshot()
	if st.Active || items != nil {
		t.Error("unstarted game should report an empty snapshot")
	}
	g.Pose("LEFT")
	g.Step(core.NewInputFrame())
	g.Render(core.NewScreen(10, 5))
}
