package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/fruit-catch/internal/catch"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := LoadCatch("")
	if err != nil {
		t.Fatalf("LoadCatch() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}

	want := DefaultCatchConfig()
	if cfg.Session != want.Session {
		t.Errorf("Session = %+v, expected %+v", cfg.Session, want.Session)
	}
	if len(cfg.Items) != len(want.Items) {
		t.Fatalf("len(Items) = %d, expected %d", len(cfg.Items), len(want.Items))
	}
	for i := range want.Items {
		if cfg.Items[i] != want.Items[i] {
			t.Errorf("Items[%d] = %+v, expected %+v", i, cfg.Items[i], want.Items[i])
		}
	}
	if len(cfg.Levels) != len(want.Levels) {
		t.Fatalf("len(Levels) = %d, expected %d", len(cfg.Levels), len(want.Levels))
	}
	for i := range want.Levels {
		if cfg.Levels[i] != want.Levels[i] {
			t.Errorf("Levels[%d] = %+v, expected %+v", i, cfg.Levels[i], want.Levels[i])
		}
	}
}

func TestEngineConversion(t *testing.T) {
	ec := DefaultCatchConfig().Engine()
	def := catch.DefaultConfig()

	if ec.SessionLength != def.SessionLength || ec.MaxMisses != def.MaxMisses || ec.LevelUpEvery != def.LevelUpEvery {
		t.Errorf("session rules = %d/%d/%d, expected %d/%d/%d",
			ec.SessionLength, ec.MaxMisses, ec.LevelUpEvery,
			def.SessionLength, def.MaxMisses, def.LevelUpEvery)
	}
	for i, k := range def.Catalog {
		if ec.Catalog[i] != k {
			t.Errorf("Catalog[%d] = %+v, expected %+v", i, ec.Catalog[i], k)
		}
	}
	for i, l := range def.Levels {
		if ec.Levels[i] != l {
			t.Errorf("Levels[%d] = %+v, expected %+v", i, ec.Levels[i], l)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catch.yaml")

	custom := strings.Replace(string(DefaultYAML()), "max_misses: 3", "max_misses: 7", 1)
	if err := os.WriteFile(path, []byte(custom), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadCatch(path)
	if err != nil {
		t.Fatalf("LoadCatch() failed: %v", err)
	}
	if cfg.Session.MaxMisses != 7 {
		t.Errorf("MaxMisses = %d, expected 7", cfg.Session.MaxMisses)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadCatch(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("session: [unterminated"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadCatch(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("session:\n  duration_seconds: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadCatch(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultCatchConfig()
	cfg.Session.MaxMisses = 0
	cfg.Items[0].Probability = 0.9
	cfg.Levels[1].FallDurationMS = 0
	cfg.Pose.Labels["Jump"] = "UP"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{"max_misses", "sum to 1", "levels[1]", `unknown zone "UP"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		wantMisses int
		wantFall   time.Duration
	}{
		{DifficultyEasy, 5, 3750 * time.Millisecond},
		{DifficultyNormal, 3, 3000 * time.Millisecond},
		{DifficultyHard, 2, 2400 * time.Millisecond},
		{"", 3, 3000 * time.Millisecond},
	}

	for _, tc := range tests {
		cfg := DefaultCatchConfig()
		ApplyPreset(&cfg, tc.preset)
		ec := cfg.Engine()

		if ec.MaxMisses != tc.wantMisses {
			t.Errorf("%q: MaxMisses = %d, expected %d", tc.preset, ec.MaxMisses, tc.wantMisses)
		}
		if got := ec.Levels.Lookup(1).FallDuration; got != tc.wantFall {
			t.Errorf("%q: level 1 FallDuration = %v, expected %v", tc.preset, got, tc.wantFall)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if ParseDifficulty("hard") != DifficultyHard {
		t.Error("ParseDifficulty(hard) should return DifficultyHard")
	}
	if ParseDifficulty("nightmare") != "" {
		t.Error("unknown preset should return empty")
	}
}
