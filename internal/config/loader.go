package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config with the standard search order:
// customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml ->
// embedded default.
func load(customPath, name string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	if userPath := userConfigPath(name + ".yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", name+".yaml")); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	return yaml.Unmarshal(embedded, out)
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadPacman loads the maze game configuration.
func LoadPacman(customPath string) (PacmanConfig, error) {
	var cfg PacmanConfig
	if err := load(customPath, "pacman", defaultPacmanYAML, &cfg); err != nil {
		if customPath != "" {
			return cfg, err
		}
		return DefaultPacmanConfig(), nil
	}
	return cfg, nil
}

// LoadPong loads the Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	var cfg PongConfig
	if err := load(customPath, "pong", defaultPongYAML, &cfg); err != nil {
		if customPath != "" {
			return cfg, err
		}
		return DefaultPongConfig(), nil
	}
	return cfg, nil
}

// LoadInvaders loads the Space Invaders configuration.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	var cfg InvadersConfig
	if err := load(customPath, "invaders", defaultInvadersYAML, &cfg); err != nil {
		if customPath != "" {
			return cfg, err
		}
		return DefaultInvadersConfig(), nil
	}
	return cfg, nil
}

// LoadHall loads the first-person family configuration.
func LoadHall(customPath string) (HallConfig, error) {
	var cfg HallConfig
	if err := load(customPath, "hall", defaultHallYAML, &cfg); err != nil {
		if customPath != "" {
			return cfg, err
		}
		return DefaultHallConfig(), nil
	}
	return cfg, nil
}

// ApplyPacmanPreset modifies the config based on a difficulty preset.
func ApplyPacmanPreset(cfg *PacmanConfig, preset DifficultyPreset) {
	applyPresetLevel(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Speeds.Ghost = cfg.Speeds.Player * 0.8
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Speeds.Ghost = cfg.Speeds.Player * 0.95
		cfg.Gameplay.FrightenedSeconds = 4.0
	}
}

// ApplyPongPreset modifies the config based on a difficulty preset.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	applyPresetLevel(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.CPU.Reaction = 0.6
		cfg.CPU.MissChance = 0.15
	case DifficultyHard:
		cfg.CPU.Reaction = 0.9
		cfg.CPU.MissChance = 0.04
		cfg.Physics.BallSpeed *= 1.2
	}
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	applyPresetLevel(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Weapons.AlienFireChance *= 0.5
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Fleet.MarchSpeed *= 1.4
		cfg.Weapons.AlienFireChance *= 1.5
	}
}

func applyPresetLevel(d *DifficultyConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
