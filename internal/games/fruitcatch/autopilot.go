package fruitcatch

import (
	"github.com/vovakirdan/fruit-catch/internal/catch"
)

// bombDanger is the progress past which a bomb is treated as landing.
const bombDanger = 0.75

// Autopilot picks a basket zone for the current engine state. It chases
// the fruit closest to landing in a lane that is not about to receive a
// bomb first, and otherwise steps out of the way of landing bombs.
// ok is false when the basket should stay where it is.
func Autopilot(e *catch.Engine) (zone catch.Zone, ok bool) {
	items := e.Items()
	current := e.State().BasketZone

	// Most advanced bomb per lane.
	var bombAt [len(catch.Zones)]float64
	for _, it := range items {
		if it.IsBomb() && it.Progress > bombAt[it.Zone] {
			bombAt[it.Zone] = it.Progress
		}
	}

	best := -1.0
	for _, it := range items {
		if it.IsBomb() || it.Progress <= best {
			continue
		}
		// A bomb landing ahead of this fruit makes its lane unsafe.
		if bombAt[it.Zone] > it.Progress {
			continue
		}
		best = it.Progress
		zone = it.Zone
		ok = true
	}
	if ok {
		return zone, zone != current
	}

	if bombAt[current] < bombDanger {
		return current, false
	}
	safest := current
	for _, z := range catch.Zones {
		if bombAt[z] < bombAt[safest] {
			safest = z
		}
	}
	return safest, safest != current
}
