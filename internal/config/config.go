// Package config provides YAML-based configuration loading and
// difficulty presets for Fruit Catch.
package config

// CatchConfig contains all configuration for a Fruit Catch session.
type CatchConfig struct {
	Session SessionConfig `yaml:"session"`
	Items   []ItemConfig  `yaml:"items"`
	Levels  []LevelConfig `yaml:"levels"`
	Pose    PoseConfig    `yaml:"pose"`
}

// SessionConfig defines session length and end conditions.
type SessionConfig struct {
	DurationSeconds     int `yaml:"duration_seconds"`
	MaxMisses           int `yaml:"max_misses"`
	LevelUpEverySeconds int `yaml:"level_up_every_seconds"`
}

// ItemConfig defines one spawnable item kind.
type ItemConfig struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Glyph       string  `yaml:"glyph"`
	Rune        string  `yaml:"rune"` // Single terminal cell
	Score       int     `yaml:"score"`
	Probability float64 `yaml:"probability"`
	Bomb        bool    `yaml:"bomb"`
}

// LevelConfig defines the spawn cadence of one level.
// Levels are listed in order starting at level 1.
type LevelConfig struct {
	SpawnIntervalMS int `yaml:"spawn_interval_ms"`
	FallDurationMS  int `yaml:"fall_duration_ms"`
}

// PoseConfig tunes how classifier output becomes basket movement.
type PoseConfig struct {
	MinConfidence float64           `yaml:"min_confidence"` // Minimum top-class probability
	StableFrames  int               `yaml:"stable_frames"`  // Consecutive agreeing frames required
	Labels        map[string]string `yaml:"labels"`         // Classifier label -> zone label
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value to a preset.
// Empty or unknown values return "" (use config as loaded).
func ParseDifficulty(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
