package fruitcatch

import (
	"github.com/vovakirdan/fruit-catch/internal/catch"
)

// EndReason says why a session ended.
type EndReason string

const (
	ReasonTime    EndReason = "time"
	ReasonMisses  EndReason = "misses"
	ReasonBomb    EndReason = "bomb"
	ReasonStopped EndReason = "stopped"
)

// Message returns the game-over headline for the reason.
func (r EndReason) Message() string {
	switch r {
	case ReasonTime:
		return "TIME'S UP"
	case ReasonMisses:
		return "TOO MANY MISSES"
	case ReasonBomb:
		return "BOMB!"
	case ReasonStopped:
		return "STOPPED"
	default:
		return "GAME OVER"
	}
}

// Tally counts what happened during one session.
type Tally struct {
	Spawned int
	Caught  int
	Missed  int
	Moves   int
	Score   int
	Level   int
	Misses  int
	Reason  EndReason
	Ended   bool
}

// Attach registers the tally's hooks on e, replacing any already set for
// spawn, catch, basket move and game end.
func (t *Tally) Attach(e *catch.Engine) {
	e.SetItemSpawnCallback(func(catch.Item) { t.Spawned++ })
	e.SetItemCatchCallback(t.itemCatch)
	e.SetBasketMoveCallback(func(catch.Zone) { t.Moves++ })
	e.SetGameEndCallback(func(score, level, miss int) {
		t.gameEnd(score, level, miss)
		t.Reason = ReasonFor(e)
	})
}

func (t *Tally) itemCatch(_ catch.Item, caught bool) {
	if caught {
		t.Caught++
	} else {
		t.Missed++
	}
}

// gameEnd records the final numbers. Reason is filled in by the caller
// that can see the engine state.
func (t *Tally) gameEnd(score, level, miss int) {
	t.Score = score
	t.Level = level
	t.Misses = miss
	t.Ended = true
}

// ReasonFor infers why e's session ended. Call it from the game-end
// hook: a caught bomb is still in the item list at that point, sitting
// on the catch line in the basket's zone.
func ReasonFor(e *catch.Engine) EndReason {
	st := e.State()
	switch {
	case st.MaxMisses > 0 && st.MissCount >= st.MaxMisses:
		return ReasonMisses
	case st.TimeRemaining <= 0:
		return ReasonTime
	}
	for _, it := range e.Items() {
		if it.IsBomb() && it.Progress >= 1 && it.Zone == st.BasketZone {
			return ReasonBomb
		}
	}
	return ReasonStopped
}
