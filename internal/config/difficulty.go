package config

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *CatchConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.MaxMisses += 2
		scaleLevels(cfg.Levels, 1.25)
	case DifficultyHard:
		if cfg.Session.MaxMisses > 1 {
			cfg.Session.MaxMisses--
		}
		scaleLevels(cfg.Levels, 0.8)
	}
}

// scaleLevels stretches (factor > 1) or compresses spawn and fall timings.
func scaleLevels(levels []LevelConfig, factor float64) {
	for i := range levels {
		levels[i].SpawnIntervalMS = scaleMS(levels[i].SpawnIntervalMS, factor)
		levels[i].FallDurationMS = scaleMS(levels[i].FallDurationMS, factor)
	}
}

func scaleMS(ms int, factor float64) int {
	scaled := int(float64(ms) * factor)
	if scaled < 100 { // Keep items visible for at least a few frames
		scaled = 100
	}
	return scaled
}
