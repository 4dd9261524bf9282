package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome tags how a finished session ended.
// OutcomeNone means the game exposes a score but no win/lose distinction.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the storage tag for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return ""
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Lives    int     // Remaining lives (0 for games without lives)
	GameOver bool    // Whether the game has ended
	Paused   bool    // Whether the game is paused
	Outcome  Outcome // Result tag once GameOver is set
}

// Event is a fire-and-forget side effect emitted by a game during a tick.
// The platform consumes events for audio/feedback; games never wait on them.
type Event struct {
	Sound    string // Named sound trigger, empty if none
	Feedback string // Short feedback text for the HUD, empty if none
	Negative bool   // Whether the feedback represents something bad
	Launch   string // Game ID to launch (arcade hall cabinets), empty if none
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
