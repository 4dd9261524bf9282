package engine

import "github.com/neonhall/arcade/internal/core"

// Phase is the top-level state of one play-through.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseWon
)

// Session is the per-game state machine: ready freezes gameplay until the
// first directional input, playing toggles with paused, and the terminal
// phases freeze everything, hold a short result overlay, then fire the
// completion callback exactly once. All timing is countdown fields ticked
// with the game; there are no wall-clock timers to mock in tests.
type Session struct {
	Score int
	Lives int
	Level int

	phase    Phase
	outcome  core.Outcome
	endDelay float64
	done     bool // Idempotency guard on terminal transitions
	notified bool
	onDone   func(score int, outcome core.Outcome)

	events []core.Event
}

// NewSession creates a session in the ready phase.
func NewSession(lives int, onDone func(score int, outcome core.Outcome)) *Session {
	return &Session{Lives: lives, phase: PhaseReady, onDone: onDone}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Active reports whether gameplay updates should run this tick.
func (s *Session) Active() bool {
	return s.phase == PhasePlaying
}

// Over reports whether a terminal phase has been reached.
func (s *Session) Over() bool {
	return s.done
}

// Outcome returns the result tag, meaningful once Over.
func (s *Session) Outcome() core.Outcome {
	return s.outcome
}

// MaybeStart moves ready to playing on the first directional input.
// Returns true on the transition tick.
func (s *Session) MaybeStart(in core.InputFrame) bool {
	if s.phase != PhaseReady {
		return false
	}
	if in.Any(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight) {
		s.phase = PhasePlaying
		return true
	}
	return false
}

// TogglePause flips between playing and paused. Ignored in other phases.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhasePlaying:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhasePlaying
	}
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.phase == PhasePaused
}

// Win enters the won phase. delay is how long the result overlay shows
// before the completion callback fires. Subsequent terminal triggers are
// no-ops.
func (s *Session) Win(delay float64) {
	s.finish(PhaseWon, core.OutcomeWon, delay)
}

// Lose enters the game-over phase; see Win.
func (s *Session) Lose(delay float64) {
	s.finish(PhaseGameOver, core.OutcomeLost, delay)
}

func (s *Session) finish(phase Phase, outcome core.Outcome, delay float64) {
	if s.done {
		return
	}
	s.done = true
	s.phase = phase
	s.outcome = outcome
	s.endDelay = delay
	if delay <= 0 {
		s.notify()
	}
}

// Tick advances the end-delay countdown. Call once per game tick; it fires
// the completion callback exactly once when the delay elapses.
func (s *Session) Tick(dt float64) {
	if !s.done || s.notified {
		return
	}
	s.endDelay -= dt
	if s.endDelay <= 0 {
		s.notify()
	}
}

func (s *Session) notify() {
	if s.notified {
		return
	}
	s.notified = true
	if s.onDone != nil {
		s.onDone(s.Score, s.outcome)
	}
}

// AddScore increments the score by n.
func (s *Session) AddScore(n int) {
	s.Score += n
}

// LoseLife decrements the life counter and returns the remaining count.
func (s *Session) LoseLife() int {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives
}

// Emit queues a fire-and-forget sound/feedback event for the platform.
func (s *Session) Emit(ev core.Event) {
	s.events = append(s.events, ev)
}

// Drain returns and clears the queued events.
func (s *Session) Drain() []core.Event {
	evs := s.events
	s.events = nil
	return evs
}

// GameState reduces the session to the platform-facing state record.
func (s *Session) GameState() core.GameState {
	return core.GameState{
		Score:    s.Score,
		Lives:    s.Lives,
		GameOver: s.done,
		Paused:   s.phase == PhasePaused,
		Outcome:  s.outcome,
	}
}
