package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fruit-catch/internal/catch"
)

// LoadCatch loads Fruit Catch configuration.
// Search order: customPath -> ~/.fruitcatch/configs/catch.yaml -> ./configs/catch.yaml -> embedded default
func LoadCatch(customPath string) (CatchConfig, error) {
	var cfg CatchConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("catch.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "catch.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCatchYAML, &cfg); err != nil {
		return DefaultCatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unparsable or invalid
// files are skipped so the next source in the search order is used.
func tryLoad(path string) (CatchConfig, bool) {
	var cfg CatchConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fruitcatch", "configs", filename)
}

// Validate reports every problem in the config as one joined error.
func (c CatchConfig) Validate() error {
	var errs []error

	if c.Session.DurationSeconds <= 0 {
		errs = append(errs, fmt.Errorf("session.duration_seconds must be positive, got %d", c.Session.DurationSeconds))
	}
	if c.Session.MaxMisses <= 0 {
		errs = append(errs, fmt.Errorf("session.max_misses must be positive, got %d", c.Session.MaxMisses))
	}
	if c.Session.LevelUpEverySeconds < 0 {
		errs = append(errs, fmt.Errorf("session.level_up_every_seconds must not be negative, got %d", c.Session.LevelUpEverySeconds))
	}

	if len(c.Items) == 0 {
		errs = append(errs, errors.New("items: at least one item kind is required"))
	}
	seen := make(map[string]bool, len(c.Items))
	total := 0.0
	for i, it := range c.Items {
		if it.ID == "" {
			errs = append(errs, fmt.Errorf("items[%d]: id is required", i))
		} else if seen[it.ID] {
			errs = append(errs, fmt.Errorf("items[%d]: duplicate id %q", i, it.ID))
		}
		seen[it.ID] = true
		if it.Probability < 0 {
			errs = append(errs, fmt.Errorf("items[%d]: probability must not be negative, got %v", i, it.Probability))
		}
		if it.Score < 0 {
			errs = append(errs, fmt.Errorf("items[%d]: score must not be negative, got %d", i, it.Score))
		}
		if utf8.RuneCountInString(it.Rune) > 1 {
			errs = append(errs, fmt.Errorf("items[%d]: rune must be a single character, got %q", i, it.Rune))
		}
		total += it.Probability
	}
	if len(c.Items) > 0 && math.Abs(total-1) > 0.001 {
		errs = append(errs, fmt.Errorf("items: probabilities must sum to 1, got %.4f", total))
	}

	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("levels: at least one level is required"))
	}
	for i, l := range c.Levels {
		if l.SpawnIntervalMS <= 0 {
			errs = append(errs, fmt.Errorf("levels[%d]: spawn_interval_ms must be positive, got %d", i, l.SpawnIntervalMS))
		}
		if l.FallDurationMS <= 0 {
			errs = append(errs, fmt.Errorf("levels[%d]: fall_duration_ms must be positive, got %d", i, l.FallDurationMS))
		}
	}

	if c.Pose.MinConfidence < 0 || c.Pose.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("pose.min_confidence must be within [0, 1], got %v", c.Pose.MinConfidence))
	}
	if c.Pose.StableFrames < 0 {
		errs = append(errs, fmt.Errorf("pose.stable_frames must not be negative, got %d", c.Pose.StableFrames))
	}
	for label, zone := range c.Pose.Labels {
		if _, ok := catch.ParseZone(zone); !ok {
			errs = append(errs, fmt.Errorf("pose.labels[%q]: unknown zone %q", label, zone))
		}
	}

	return errors.Join(errs...)
}

// Engine converts the config to engine rules.
func (c CatchConfig) Engine() catch.Config {
	catalog := make(catch.Catalog, 0, len(c.Items))
	for _, it := range c.Items {
		r := '?'
		if it.Rune != "" {
			r, _ = utf8.DecodeRuneInString(it.Rune)
		}
		catalog = append(catalog, catch.ItemKind{
			ID:          it.ID,
			Name:        it.Name,
			Glyph:       it.Glyph,
			Rune:        r,
			Score:       it.Score,
			Probability: it.Probability,
			Bomb:        it.Bomb,
		})
	}

	levels := make(catch.LevelTable, 0, len(c.Levels))
	for _, l := range c.Levels {
		levels = append(levels, catch.LevelConfig{
			SpawnInterval: time.Duration(l.SpawnIntervalMS) * time.Millisecond,
			FallDuration:  time.Duration(l.FallDurationMS) * time.Millisecond,
		})
	}

	return catch.Config{
		Catalog:       catalog,
		Levels:        levels,
		SessionLength: c.Session.DurationSeconds,
		MaxMisses:     c.Session.MaxMisses,
		LevelUpEvery:  c.Session.LevelUpEverySeconds,
	}
}
