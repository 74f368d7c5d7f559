package catch

// Notification hooks. Each hook holds at most one function; registering
// a new one replaces the old. An unset hook is skipped silently. Hooks
// run synchronously inside the engine operation that triggered them.
type (
	ScoreFunc      func(score, level int)
	TimeFunc       func(secondsRemaining int)
	MissFunc       func(missCount, maxMisses int)
	LevelFunc      func(level int)
	GameEndFunc    func(finalScore, finalLevel, missCount int)
	ItemSpawnFunc  func(item Item)
	ItemCatchFunc  func(item Item, caught bool)
	BasketMoveFunc func(zone Zone)
)

// Callbacks bundles all eight hooks for one-shot registration.
type Callbacks struct {
	Score      ScoreFunc
	Time       TimeFunc
	Miss       MissFunc
	Level      LevelFunc
	GameEnd    GameEndFunc
	ItemSpawn  ItemSpawnFunc
	ItemCatch  ItemCatchFunc
	BasketMove BasketMoveFunc
}

// SetCallbacks replaces every hook, clearing those left nil in cb.
func (e *Engine) SetCallbacks(cb Callbacks) {
	e.hooks = cb
}

func (e *Engine) SetScoreCallback(fn ScoreFunc)           { e.hooks.Score = fn }
func (e *Engine) SetTimeCallback(fn TimeFunc)             { e.hooks.Time = fn }
func (e *Engine) SetMissCallback(fn MissFunc)             { e.hooks.Miss = fn }
func (e *Engine) SetLevelCallback(fn LevelFunc)           { e.hooks.Level = fn }
func (e *Engine) SetGameEndCallback(fn GameEndFunc)       { e.hooks.GameEnd = fn }
func (e *Engine) SetItemSpawnCallback(fn ItemSpawnFunc)   { e.hooks.ItemSpawn = fn }
func (e *Engine) SetItemCatchCallback(fn ItemCatchFunc)   { e.hooks.ItemCatch = fn }
func (e *Engine) SetBasketMoveCallback(fn BasketMoveFunc) { e.hooks.BasketMove = fn }

func (e *Engine) emitScore() {
	if e.hooks.Score != nil {
		e.hooks.Score(e.state.Score, e.state.Level)
	}
}

func (e *Engine) emitTime() {
	if e.hooks.Time != nil {
		e.hooks.Time(e.state.TimeRemaining)
	}
}

func (e *Engine) emitMiss() {
	if e.hooks.Miss != nil {
		e.hooks.Miss(e.state.MissCount, e.state.MaxMisses)
	}
}

func (e *Engine) emitLevel() {
	if e.hooks.Level != nil {
		e.hooks.Level(e.state.Level)
	}
}

func (e *Engine) emitGameEnd() {
	if e.hooks.GameEnd != nil {
		e.hooks.GameEnd(e.state.Score, e.state.Level, e.state.MissCount)
	}
}

func (e *Engine) emitItemSpawn(it Item) {
	if e.hooks.ItemSpawn != nil {
		e.hooks.ItemSpawn(it)
	}
}

func (e *Engine) emitItemCatch(it Item, caught bool) {
	if e.hooks.ItemCatch != nil {
		e.hooks.ItemCatch(it, caught)
	}
}

func (e *Engine) emitBasketMove() {
	if e.hooks.BasketMove != nil {
		e.hooks.BasketMove(e.state.BasketZone)
	}
}
