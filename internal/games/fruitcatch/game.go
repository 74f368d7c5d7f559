// Package fruitcatch adapts the catch engine to the terminal platform.
// The engine runs on a virtual clock that advances one tick per Step,
// so pausing the game freezes its timers.
package fruitcatch

import (
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-catch/internal/catch"
	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
)

// epoch is the virtual start time of every session.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config as loaded.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficulty(preset)
}

// SetLogger sets the logger handed to every engine the package creates.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig loads the configured rules with the difficulty preset applied.
// A broken config file is logged and replaced by the defaults.
func LoadConfig() config.CatchConfig {
	cfg, err := config.LoadCatch(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultCatchConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Game implements Fruit Catch for the terminal platform.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.CatchConfig
	engine  *catch.Engine
	clock   time.Time     // Virtual time of the engine
	step    time.Duration // Virtual time per tick

	paused  bool
	over    bool
	reason  EndReason
	tally   Tally
	flashes []flash
}

// flash is a short-lived message drawn above the basket.
type flash struct {
	zone  catch.Zone
	text  string
	color core.Color
	ttl   int // Ticks left
}

// New creates a new Fruit Catch game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "fruitcatch"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fruit Catch"
}

// Reset loads the config, builds a fresh engine and starts a session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.cfg = LoadConfig()

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.clock = epoch
	g.step = time.Second / time.Duration(runtime.TickRate)
	g.paused = false
	g.over = false
	g.reason = ""
	g.tally = Tally{}
	g.flashes = g.flashes[:0]

	g.engine = catch.New(g.cfg.Engine(),
		catch.WithScheduler(catch.NewScheduler(epoch)),
		catch.WithSeed(seed),
		catch.WithLogger(logger),
	)
	g.tally.Attach(g.engine)

	// Tally owns the hooks it needs; the display layers its own on top.
	g.engine.SetItemCatchCallback(func(it catch.Item, caught bool) {
		g.tally.itemCatch(it, caught)
		if caught {
			g.addFlash(it.Zone, "+"+strconv.Itoa(it.Score()), core.ColorBrightGreen)
		} else {
			g.addFlash(it.Zone, "MISS", core.ColorRed)
		}
	})
	g.engine.SetLevelCallback(func(level int) {
		if level > 1 {
			g.addFlash(catch.ZoneCenter, "LEVEL "+strconv.Itoa(level), core.ColorCyan)
		}
	})
	g.engine.SetGameEndCallback(func(score, level, miss int) {
		g.tally.gameEnd(score, level, miss)
		g.tally.Reason = ReasonFor(g.engine)
		g.over = true
		g.reason = g.tally.Reason
		if g.reason == ReasonBomb {
			g.addFlash(g.engine.State().BasketZone, "BOOM", core.ColorOrange)
		}
	})

	g.engine.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	if g.over {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if zone, ok := zoneFromInput(in); ok {
		g.engine.OnPoseDetected(zone.String())
	}

	g.clock = g.clock.Add(g.step)
	g.engine.Advance(g.clock)
	g.ageFlashes()

	return core.StepResult{State: g.State()}
}

// Pose applies a classifier zone label. Ignored while paused.
func (g *Game) Pose(label string) {
	if g.engine == nil || g.paused {
		return
	}
	g.engine.OnPoseDetected(label)
}

// Snapshot returns the engine state and items for external viewers.
func (g *Game) Snapshot() (catch.State, []catch.Item) {
	if g.engine == nil {
		return catch.State{}, nil
	}
	return g.engine.State(), g.engine.Items()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	st := g.engine.State()
	return core.GameState{
		Score:    st.Score,
		Level:    st.Level,
		GameOver: g.over,
		Paused:   g.paused,
	}
}

// Reason reports why the last session ended, or "" while it runs.
func (g *Game) Reason() EndReason {
	return g.reason
}

// zoneFromInput returns the zone requested this frame. The most recent
// zone action wins; otherwise any zone action present is used.
func zoneFromInput(in core.InputFrame) (catch.Zone, bool) {
	if z, ok := actionZone(in.Last); ok {
		return z, true
	}
	for _, a := range []core.Action{core.ActionLeft, core.ActionCenter, core.ActionRight} {
		if in.Has(a) {
			return actionZone(a)
		}
	}
	return 0, false
}

func actionZone(a core.Action) (catch.Zone, bool) {
	switch a {
	case core.ActionLeft:
		return catch.ZoneLeft, true
	case core.ActionCenter:
		return catch.ZoneCenter, true
	case core.ActionRight:
		return catch.ZoneRight, true
	default:
		return 0, false
	}
}

func (g *Game) addFlash(zone catch.Zone, text string, c core.Color) {
	ttl := g.runtime.TickRate / 2
	if ttl < 1 {
		ttl = 1
	}
	// One flash per zone; the newest replaces the old.
	for i := range g.flashes {
		if g.flashes[i].zone == zone {
			g.flashes[i] = flash{zone: zone, text: text, color: c, ttl: ttl}
			return
		}
	}
	g.flashes = append(g.flashes, flash{zone: zone, text: text, color: c, ttl: ttl})
}

func (g *Game) ageFlashes() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ttl--
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}
