package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPongEmbeddedDefaults(t *testing.T) {
	cfg, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}

	if cfg.Physics.BallSpeed <= 0 {
		t.Errorf("BallSpeed = %v, want > 0", cfg.Physics.BallSpeed)
	}
	if cfg.Gameplay.WinScore <= 0 {
		t.Errorf("WinScore = %v, want > 0", cfg.Gameplay.WinScore)
	}
	if cfg.CPU.HitThreshold <= 0 {
		t.Errorf("HitThreshold = %v, want > 0", cfg.CPU.HitThreshold)
	}
}

func TestLoadCustomPathOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pong.yaml")
	yaml := `
physics:
  ball_speed: 99.0
gameplay:
  win_score: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPong(path)
	if err != nil {
		t.Fatalf("LoadPong(%s): %v", path, err)
	}
	if cfg.Physics.BallSpeed != 99.0 {
		t.Errorf("BallSpeed = %v, want 99 from custom file", cfg.Physics.BallSpeed)
	}
	if cfg.Gameplay.WinScore != 3 {
		t.Errorf("WinScore = %v, want 3 from custom file", cfg.Gameplay.WinScore)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := LoadPong("/nonexistent/pong.yaml"); err == nil {
		t.Error("missing custom path did not error")
	}
}

func TestLoadMalformedCustomPathFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadInvaders(path); err == nil {
		t.Error("malformed custom config did not error")
	}
}

func TestAllEmbeddedDefaultsParse(t *testing.T) {
	if _, err := LoadPacman(""); err != nil {
		t.Errorf("LoadPacman: %v", err)
	}
	if _, err := LoadInvaders(""); err != nil {
		t.Errorf("LoadInvaders: %v", err)
	}
	if _, err := LoadHall(""); err != nil {
		t.Errorf("LoadHall: %v", err)
	}
}

func TestPongPresets(t *testing.T) {
	cfg := DefaultPongConfig()
	base := cfg.Physics.BallSpeed

	ApplyPongPreset(&cfg, DifficultyHard)
	if cfg.Physics.BallSpeed <= base {
		t.Errorf("hard BallSpeed = %v, want faster than %v", cfg.Physics.BallSpeed, base)
	}
	if cfg.CPU.Reaction != 0.9 {
		t.Errorf("hard Reaction = %v, want 0.9", cfg.CPU.Reaction)
	}

	cfg = DefaultPongConfig()
	ApplyPongPreset(&cfg, DifficultyEasy)
	if cfg.CPU.MissChance != 0.15 {
		t.Errorf("easy MissChance = %v, want 0.15", cfg.CPU.MissChance)
	}
}

func TestInvadersPresets(t *testing.T) {
	cfg := DefaultInvadersConfig()
	baseFire := cfg.Weapons.AlienFireChance

	ApplyInvadersPreset(&cfg, DifficultyEasy)
	if cfg.Gameplay.Lives != 5 {
		t.Errorf("easy Lives = %d, want 5", cfg.Gameplay.Lives)
	}
	if cfg.Weapons.AlienFireChance >= baseFire {
		t.Errorf("easy AlienFireChance = %v, want below %v", cfg.Weapons.AlienFireChance, baseFire)
	}
}

func TestFixedPresetDisablesProgression(t *testing.T) {
	cfg := DefaultPacmanConfig()
	cfg.Difficulty.Enabled = true

	ApplyPacmanPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset left progression enabled")
	}
	if got := cfg.Difficulty.SpeedScale(0.5); got != 1 {
		t.Errorf("disabled progression SpeedScale = %v, want 1", got)
	}
}

func TestSpeedScaleTracksLevel(t *testing.T) {
	d := DifficultyConfig{Enabled: true, InitialLevel: 0.5}

	if got := d.Level(); got != 0.5 {
		t.Errorf("Level = %v, want 0.5", got)
	}
	if got := d.SpeedScale(0.4); math.Abs(got-1.2) > 1e-9 {
		t.Errorf("SpeedScale(0.4) at level 0.5 = %v, want 1.2", got)
	}

	d.Enabled = false
	if got := d.Level(); got != 0 {
		t.Errorf("disabled Level = %v, want 0", got)
	}
}
