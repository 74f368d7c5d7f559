package catch

import "time"

// LevelConfig holds the spawn cadence for one level.
type LevelConfig struct {
	SpawnInterval time.Duration // Delay between consecutive spawns
	FallDuration  time.Duration // Time an item takes to reach the catch line
}

// LevelTable maps level N to entry N-1.
type LevelTable []LevelConfig

// DefaultLevels returns the built-in three-level table.
func DefaultLevels() LevelTable {
	return LevelTable{
		{SpawnInterval: 1500 * time.Millisecond, FallDuration: 3000 * time.Millisecond},
		{SpawnInterval: 1200 * time.Millisecond, FallDuration: 2500 * time.Millisecond},
		{SpawnInterval: 900 * time.Millisecond, FallDuration: 2000 * time.Millisecond},
	}
}

// MaxLevel returns the highest level the table defines.
func (t LevelTable) MaxLevel() int {
	return len(t)
}

// Lookup returns the config for a level. Levels past the end of the
// table use the last entry; levels below 1 use the first.
func (t LevelTable) Lookup(level int) LevelConfig {
	switch {
	case len(t) == 0:
		return LevelConfig{}
	case level < 1:
		return t[0]
	case level > len(t):
		return t[len(t)-1]
	default:
		return t[level-1]
	}
}
