package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
)

// newLogger builds the logger from --log-level and --log-file. With no
// log file, terminal UIs discard logs and other commands use stderr.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          "fruitcatch",
	})
	return logger, closer, nil
}

// loadConfig validates the chosen config before anything starts and
// hands the same settings to the game package.
func loadConfig(logger *log.Logger) (config.CatchConfig, error) {
	if flagDifficulty != "" && config.ParseDifficulty(flagDifficulty) == "" {
		return config.CatchConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	if _, err := config.LoadCatch(flagConfig); err != nil {
		return config.CatchConfig{}, err
	}

	fruitcatch.SetConfigPath(flagConfig)
	fruitcatch.SetDifficultyPreset(flagDifficulty)
	fruitcatch.SetLogger(logger)
	return fruitcatch.LoadConfig(), nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// sessionSeed returns the seed for the i-th session of a run.
func sessionSeed(i int) int64 {
	if flagSeed != 0 {
		return flagSeed + int64(i)
	}
	return time.Now().UnixNano() + int64(i)
}
