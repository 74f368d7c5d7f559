package catch

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds the rules of a session.
type Config struct {
	Catalog       Catalog
	Levels        LevelTable
	SessionLength int // Session length in seconds
	MaxMisses     int // Missed fruit allowed before the session ends
	LevelUpEvery  int // Seconds of play between level-ups
}

// DefaultConfig returns the standard rules: 60 seconds, three misses,
// a level-up every 20 seconds across three levels.
func DefaultConfig() Config {
	return Config{
		Catalog:       DefaultCatalog(),
		Levels:        DefaultLevels(),
		SessionLength: 60,
		MaxMisses:     3,
		LevelUpEvery:  20,
	}
}

// State is a snapshot of the session aggregate.
type State struct {
	Score         int  `json:"score"`
	Level         int  `json:"level"`
	TimeRemaining int  `json:"time_remaining"`
	MissCount     int  `json:"miss_count"`
	MaxMisses     int  `json:"max_misses"`
	BasketZone    Zone `json:"basket_zone"`
	Active        bool `json:"active"`
}

// Engine owns one game session at a time. All methods must be called
// from a single goroutine; callbacks run on that goroutine too.
type Engine struct {
	cfg    Config
	sched  *Scheduler
	rng    *rand.Rand
	logger *log.Logger
	hooks  Callbacks

	state       State
	items       []Item
	nextID      uint64
	nextLevelUp int // Elapsed seconds at which the next level-up is due
	generation  uint64

	countdown *Task
	spawner   *Task
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler sets the scheduler the engine runs its timers on.
func WithScheduler(s *Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithSeed seeds the engine's random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for zone and kind selection.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithLogger sets the logger for session lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an idle engine. Call Start to begin a session.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.sched == nil {
		e.sched = NewScheduler(time.Time{})
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if len(e.cfg.Catalog) == 0 {
		e.cfg.Catalog = DefaultCatalog()
	}
	if len(e.cfg.Levels) == 0 {
		e.cfg.Levels = DefaultLevels()
	}
	e.state = State{
		Level:         1,
		TimeRemaining: cfg.SessionLength,
		MaxMisses:     cfg.MaxMisses,
		BasketZone:    ZoneCenter,
	}
	return e
}

// Config returns the rules the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Now returns the engine's current virtual time.
func (e *Engine) Now() time.Time {
	return e.sched.Now()
}

// Start resets the session and starts the countdown and spawner.
// Timers left over from a previous session are cancelled first; the
// previous session does not receive a game-end notification.
func (e *Engine) Start() {
	e.cancelTimers()
	e.generation++

	e.state = State{
		Score:         0,
		Level:         1,
		TimeRemaining: e.cfg.SessionLength,
		MissCount:     0,
		MaxMisses:     e.cfg.MaxMisses,
		BasketZone:    ZoneCenter,
		Active:        true,
	}
	e.items = nil
	e.nextLevelUp = e.cfg.LevelUpEvery

	e.logger.Debug("session started",
		"length", e.cfg.SessionLength,
		"max_misses", e.cfg.MaxMisses,
	)

	gen := e.generation
	e.emitScore()
	e.emitTime()
	e.emitMiss()
	e.emitLevel()
	if !e.current(gen) {
		return
	}

	e.countdown = e.sched.Every(time.Second, e.tickCountdown)
	e.spawnLoop()
}

// Stop ends the session and fires the game-end notification. Stopping an
// inactive engine only re-cancels its timers.
func (e *Engine) Stop() {
	wasActive := e.state.Active
	e.state.Active = false
	e.cancelTimers()
	if !wasActive {
		return
	}

	e.logger.Debug("session ended",
		"score", e.state.Score,
		"level", e.state.Level,
		"misses", e.state.MissCount,
		"time_remaining", e.state.TimeRemaining,
	)
	e.emitGameEnd()
}

// Active reports whether a session is running.
func (e *Engine) Active() bool {
	return e.state.Active
}

// State returns a snapshot of the session state.
func (e *Engine) State() State {
	return e.state
}

// Items returns copies of the falling items with progress computed at
// the current time.
func (e *Engine) Items() []Item {
	now := e.sched.Now()
	out := make([]Item, len(e.items))
	for i, it := range e.items {
		it.Progress = it.progressAt(now)
		out[i] = it
	}
	return out
}

// Advance moves virtual time to now, firing due countdown and spawn
// timers, then runs one simulation step.
func (e *Engine) Advance(now time.Time) {
	e.sched.Advance(now)
	e.Update()
}

// OnPoseDetected moves the basket to the zone named by label. Unknown
// labels and input while inactive are ignored.
func (e *Engine) OnPoseDetected(label string) {
	zone, ok := ParseZone(label)
	if !ok {
		return
	}
	e.MoveBasket(zone)
}

// MoveBasket moves the basket to zone, notifying only on change.
func (e *Engine) MoveBasket(zone Zone) {
	if !e.state.Active || !zone.Valid() {
		return
	}
	if zone == e.state.BasketZone {
		return
	}
	e.state.BasketZone = zone
	e.emitBasketMove()
}

// Update recomputes item progress and resolves every item that reached
// the catch line. Resolved items are removed after the sweep; the rest
// keep their order. Update is a no-op while inactive.
func (e *Engine) Update() {
	if !e.state.Active {
		return
	}

	gen := e.generation
	now := e.sched.Now()
	var resolved []bool

	for i := range e.items {
		e.items[i].Progress = e.items[i].progressAt(now)
		if e.items[i].Progress < 1 {
			continue
		}
		if resolved == nil {
			resolved = make([]bool, len(e.items))
		}
		resolved[i] = true
		e.resolveLanding(e.items[i])

		if !e.current(gen) {
			// A callback restarted the session; its items are not ours.
			return
		}
		if !e.state.Active {
			break
		}
	}

	if resolved == nil {
		return
	}
	kept := e.items[:0]
	for i, it := range e.items {
		if !resolved[i] {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(e.items); i++ {
		e.items[i] = Item{}
	}
	e.items = kept
}

// resolveLanding applies the collision rules for an item at the catch line,
// against the basket position at this instant.
func (e *Engine) resolveLanding(it Item) {
	sameZone := it.Zone == e.state.BasketZone

	switch {
	case sameZone && it.IsBomb():
		e.logger.Debug("bomb caught", "item", it.ID, "zone", it.Zone)
		e.Stop()

	case sameZone:
		e.state.Score += it.Score()
		e.emitScore()
		e.emitItemCatch(it, true)

	case it.IsBomb():
		// Dodged.

	default:
		e.state.MissCount++
		e.emitMiss()
		e.emitItemCatch(it, false)
		if e.state.Active && e.state.MissCount >= e.state.MaxMisses {
			e.Stop()
		}
	}
}

func (e *Engine) tickCountdown() {
	if !e.state.Active {
		return
	}
	gen := e.generation

	e.state.TimeRemaining--
	e.emitTime()
	if !e.current(gen) || !e.state.Active {
		return
	}

	// Threshold crossing rather than modulo equality, so a coarse host
	// tick that skips a second still levels up.
	elapsed := e.cfg.SessionLength - e.state.TimeRemaining
	for e.cfg.LevelUpEvery > 0 && elapsed >= e.nextLevelUp && e.state.Level < e.cfg.Levels.MaxLevel() {
		e.nextLevelUp += e.cfg.LevelUpEvery
		e.levelUp()
		if !e.current(gen) || !e.state.Active {
			return
		}
	}

	if e.state.TimeRemaining <= 0 {
		e.Stop()
	}
}

func (e *Engine) levelUp() {
	e.state.Level++
	e.logger.Debug("level up", "level", e.state.Level)
	gen := e.generation
	e.emitLevel()
	if !e.current(gen) || !e.state.Active {
		return
	}

	e.spawner.Stop()
	e.spawnLoop()
}

// spawnLoop spawns one item and reschedules itself using the interval of
// the level in effect now, so a level-up between firings takes hold at
// the next reschedule.
func (e *Engine) spawnLoop() {
	if !e.state.Active {
		return
	}
	gen := e.generation
	e.spawnRandomItem()
	if !e.current(gen) || !e.state.Active {
		return
	}

	interval := e.cfg.Levels.Lookup(e.state.Level).SpawnInterval
	if interval <= 0 {
		interval = time.Millisecond
	}
	e.spawner = e.sched.AfterFunc(interval, e.spawnLoop)
}

// spawnRandomItem draws a uniform zone and a weighted kind.
func (e *Engine) spawnRandomItem() Item {
	zone := Zones[e.rng.Intn(len(Zones))]
	kind := e.cfg.Catalog.Pick(e.rng.Float64())
	return e.spawnItem(kind, zone)
}

func (e *Engine) spawnItem(kind ItemKind, zone Zone) Item {
	e.nextID++
	it := Item{
		ID:           e.nextID,
		Kind:         kind,
		Zone:         zone,
		Progress:     0,
		FallDuration: e.cfg.Levels.Lookup(e.state.Level).FallDuration,
		SpawnedAt:    e.sched.Now(),
	}
	e.items = append(e.items, it)
	e.emitItemSpawn(it)
	return it
}

func (e *Engine) cancelTimers() {
	e.countdown.Stop()
	e.spawner.Stop()
	e.countdown = nil
	e.spawner = nil
}

// current reports whether the session that started as gen is still the
// running one, i.e. no callback called Start in between.
func (e *Engine) current(gen uint64) bool {
	return e.generation == gen
}
