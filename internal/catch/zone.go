// Package catch implements the fruit-catch game engine: item spawning,
// timed falling, zone collision, scoring and leveling. It has no
// dependency on any rendering layer. Hosts drive it by calling Advance
// with the current time and observe it through single-slot callbacks.
package catch

import "strings"

// Zone is one of the three horizontal lanes shared by items and the basket.
type Zone int

const (
	ZoneLeft Zone = iota
	ZoneCenter
	ZoneRight
)

// Zones lists all zones in left-to-right order.
var Zones = [...]Zone{ZoneLeft, ZoneCenter, ZoneRight}

// String returns the canonical zone label.
func (z Zone) String() string {
	switch z {
	case ZoneLeft:
		return "LEFT"
	case ZoneCenter:
		return "CENTER"
	case ZoneRight:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether z is one of the three lanes.
func (z Zone) Valid() bool {
	return z >= ZoneLeft && z <= ZoneRight
}

// ParseZone converts a zone label to a Zone. Matching is exact on the
// canonical labels after trimming surrounding whitespace.
func ParseZone(label string) (Zone, bool) {
	switch strings.TrimSpace(label) {
	case "LEFT":
		return ZoneLeft, true
	case "CENTER":
		return ZoneCenter, true
	case "RIGHT":
		return ZoneRight, true
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}
