package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

//go:embed defaults/hall.yaml
var defaultHallYAML []byte

// DefaultPacmanConfig returns the default maze game configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Speeds: PacmanSpeeds{
			Player: 7.0,
			Ghost:  6.2,
		},
		Scoring: PacmanScoring{
			Pellet: 10,
			Power:  50,
			Ghost:  200,
		},
		Gameplay: PacmanGameplay{
			Lives:             3,
			FrightenedSeconds: 7.0,
			EndDelaySeconds:   2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			BallSpeed:    22.0,
			PaddleSpeed:  18.0,
			PaddleHeight: 5.0,
			SpeedFactor:  1.04,
			Deflect:      9.0,
			Jitter:       1.2,
			MinVertical:  2.0,
		},
		CPU: PongCPU{
			Reaction:      0.75,
			Noise:         1.5,
			DeadZone:      0.6,
			MissChance:    0.08,
			MaxMissChance: 0.35,
			MissStep:      0.04,
			SpeedStep:     1.08,
			HitThreshold:  4,
		},
		Gameplay: PongGameplay{
			WinScore:        5,
			ServeSeconds:    1.0,
			EndDelaySeconds: 2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
		},
	}
}

// DefaultInvadersConfig returns the default Space Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Fleet: InvadersFleet{
			Rows:        4,
			Cols:        8,
			MarchSpeed:  2.0,
			DescendStep: 1.0,
			SpeedUp:     1.03,
		},
		Weapons: InvadersWeapons{
			PlayerBulletSpeed: 28.0,
			AlienBulletSpeed:  10.0,
			AlienFireChance:   0.06,
			FireCooldown:      0.35,
		},
		Gameplay: InvadersGameplay{
			Lives:           3,
			AlienScore:      10,
			EndDelaySeconds: 2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
	}
}

// DefaultHallConfig returns the default first-person configuration.
func DefaultHallConfig() HallConfig {
	return HallConfig{
		Movement: HallMovement{
			MoveSpeed:   3.2,
			Gravity:     18.0,
			JumpImpulse: 6.0,
			TurnSpeed:   2.2,
			PitchMax:    0.5,
			PitchReturn: 1.6,
		},
		View: HallView{
			FOV:      1.15,
			MaxDelta: 0.25,
		},
	}
}
