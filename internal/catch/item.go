package catch

import "time"

// Item is a falling object. Items are values: the engine hands out copies,
// so mutating a received Item has no effect on the session.
type Item struct {
	ID           uint64
	Kind         ItemKind
	Zone         Zone
	Progress     float64 // 0 at spawn, 1 at the catch line
	FallDuration time.Duration
	SpawnedAt    time.Time
}

// Score returns the points the item is worth when caught.
func (it Item) Score() int {
	return it.Kind.Score
}

// IsBomb reports whether catching the item ends the session.
func (it Item) IsBomb() bool {
	return it.Kind.Bomb
}

// progressAt computes normalized fall progress at the given instant.
func (it Item) progressAt(now time.Time) float64 {
	if it.FallDuration <= 0 {
		return 1
	}
	p := float64(now.Sub(it.SpawnedAt)) / float64(it.FallDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
