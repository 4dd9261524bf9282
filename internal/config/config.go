// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// PacmanConfig contains all configuration for the maze game.
type PacmanConfig struct {
	Speeds     PacmanSpeeds     `yaml:"speeds"`
	Scoring    PacmanScoring    `yaml:"scoring"`
	Gameplay   PacmanGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanSpeeds defines movement rates in tiles per second.
type PacmanSpeeds struct {
	Player float64 `yaml:"player"`
	Ghost  float64 `yaml:"ghost"`
}

// PacmanScoring defines point values.
type PacmanScoring struct {
	Pellet int `yaml:"pellet"`
	Power  int `yaml:"power"`
	Ghost  int `yaml:"ghost"`
}

// PacmanGameplay defines round parameters.
type PacmanGameplay struct {
	Lives             int     `yaml:"lives"`
	FrightenedSeconds float64 `yaml:"frightened_seconds"`
	EndDelaySeconds   float64 `yaml:"end_delay_seconds"`
}

// PongConfig contains all configuration for Pong (2D and first-person).
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	CPU        PongCPU          `yaml:"cpu"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPhysics defines ball and paddle motion parameters.
type PongPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	PaddleHeight float64 `yaml:"paddle_height"`
	SpeedFactor  float64 `yaml:"speed_factor"`
	Deflect      float64 `yaml:"deflect"`
	Jitter       float64 `yaml:"jitter"`
	MinVertical  float64 `yaml:"min_vertical"`
}

// PongCPU defines the opposing paddle AI tuning.
type PongCPU struct {
	Reaction      float64 `yaml:"reaction"`
	Noise         float64 `yaml:"noise"`
	DeadZone      float64 `yaml:"dead_zone"`
	MissChance    float64 `yaml:"miss_chance"`
	MaxMissChance float64 `yaml:"max_miss_chance"`
	MissStep      float64 `yaml:"miss_step"`
	SpeedStep     float64 `yaml:"speed_step"`
	HitThreshold  int     `yaml:"hit_threshold"`
}

// PongGameplay defines round parameters.
type PongGameplay struct {
	WinScore        int     `yaml:"win_score"`
	ServeSeconds    float64 `yaml:"serve_seconds"`
	EndDelaySeconds float64 `yaml:"end_delay_seconds"`
}

// InvadersConfig contains all configuration for Space Invaders.
type InvadersConfig struct {
	Fleet      InvadersFleet    `yaml:"fleet"`
	Weapons    InvadersWeapons  `yaml:"weapons"`
	Gameplay   InvadersGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// InvadersFleet defines the marching alien grid.
type InvadersFleet struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	MarchSpeed  float64 `yaml:"march_speed"`  // Columns per second
	DescendStep float64 `yaml:"descend_step"` // Rows dropped per edge hit
	SpeedUp     float64 `yaml:"speed_up"`     // March multiplier per kill
}

// InvadersWeapons defines projectile parameters.
type InvadersWeapons struct {
	PlayerBulletSpeed float64 `yaml:"player_bullet_speed"`
	AlienBulletSpeed  float64 `yaml:"alien_bullet_speed"`
	AlienFireChance   float64 `yaml:"alien_fire_chance"` // Per alien per second
	FireCooldown      float64 `yaml:"fire_cooldown"`
}

// InvadersGameplay defines round parameters.
type InvadersGameplay struct {
	Lives           int     `yaml:"lives"`
	AlienScore      int     `yaml:"alien_score"`
	EndDelaySeconds float64 `yaml:"end_delay_seconds"`
}

// HallConfig contains the first-person family physics, shared by the hub
// and the 3D game variants.
type HallConfig struct {
	Movement HallMovement `yaml:"movement"`
	View     HallView     `yaml:"view"`
}

// HallMovement defines the first-person movement controller tuning.
type HallMovement struct {
	MoveSpeed   float64 `yaml:"move_speed"`
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	TurnSpeed   float64 `yaml:"turn_speed"`
	PitchMax    float64 `yaml:"pitch_max"`
	PitchReturn float64 `yaml:"pitch_return"`
}

// HallView defines raycast view parameters.
type HallView struct {
	FOV      float64 `yaml:"fov"` // Horizontal field of view in radians
	MaxDelta float64 `yaml:"max_delta"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
}

// Level returns the progression starting level in [0, 1]. Disabled
// progression always reports level 0.
func (d DifficultyConfig) Level() float64 {
	if !d.Enabled {
		return 0
	}
	return d.InitialLevel
}

// SpeedScale maps the level onto a speed multiplier: level 0 leaves the
// configured speed alone, level 1 raises it by boost.
func (d DifficultyConfig) SpeedScale(boost float64) float64 {
	return 1 + boost*d.Level()
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
