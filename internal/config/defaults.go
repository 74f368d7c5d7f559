package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

// DefaultCatchConfig returns the hardcoded default configuration.
// It mirrors defaults/catch.yaml and is used if the embed fails to parse.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		Session: SessionConfig{
			DurationSeconds:     60,
			MaxMisses:           3,
			LevelUpEverySeconds: 20,
		},
		Items: []ItemConfig{
			{ID: "apple", Name: "Apple", Glyph: "🍎", Rune: "@", Score: 100, Probability: 0.4},
			{ID: "banana", Name: "Banana", Glyph: "🍌", Rune: ")", Score: 150, Probability: 0.3},
			{ID: "grape", Name: "Grape", Glyph: "🍇", Rune: "%", Score: 200, Probability: 0.2},
			{ID: "bomb", Name: "Bomb", Glyph: "💣", Rune: "*", Score: 0, Probability: 0.1, Bomb: true},
		},
		Levels: []LevelConfig{
			{SpawnIntervalMS: 1500, FallDurationMS: 3000},
			{SpawnIntervalMS: 1200, FallDurationMS: 2500},
			{SpawnIntervalMS: 900, FallDurationMS: 2000},
		},
		Pose: PoseConfig{
			MinConfidence: 0.8,
			StableFrames:  3,
			Labels: map[string]string{
				"Left":   "LEFT",
				"Center": "CENTER",
				"Right":  "RIGHT",
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCatchYAML
}
