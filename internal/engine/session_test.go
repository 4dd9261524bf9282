package engine

import (
	"testing"

	"github.com/neonhall/arcade/internal/core"
)

func directionalInput(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestSessionStartsOnDirectionalInput(t *testing.T) {
	s := NewSession(3, nil)

	if s.Phase() != PhaseReady {
		t.Fatalf("initial phase = %v, want PhaseReady", s.Phase())
	}
	if s.Active() {
		t.Error("Active() = true while ready")
	}

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	if s.MaybeStart(fire) {
		t.Error("fire input started the session")
	}

	if !s.MaybeStart(directionalInput(core.ActionLeft)) {
		t.Error("directional input did not start the session")
	}
	if !s.Active() {
		t.Error("Active() = false after start")
	}
}

func TestSessionPauseToggle(t *testing.T) {
	s := NewSession(3, nil)
	s.MaybeStart(directionalInput(core.ActionUp))

	s.TogglePause()
	if !s.Paused() {
		t.Error("not paused after toggle")
	}
	if s.Active() {
		t.Error("Active() = true while paused")
	}

	s.TogglePause()
	if s.Paused() {
		t.Error("still paused after second toggle")
	}
}

func TestSessionPauseIgnoredWhenReady(t *testing.T) {
	s := NewSession(3, nil)
	s.TogglePause()
	if s.Phase() != PhaseReady {
		t.Errorf("phase = %v after pause while ready, want PhaseReady", s.Phase())
	}
}

func TestSessionWinIsIdempotent(t *testing.T) {
	s := NewSession(3, nil)
	s.MaybeStart(directionalInput(core.ActionUp))

	s.Win(1.0)
	s.Lose(1.0) // Late lose must not overwrite the win
	s.Win(1.0)

	if s.Outcome() != core.OutcomeWon {
		t.Errorf("outcome = %v, want OutcomeWon", s.Outcome())
	}
	if s.Phase() != PhaseWon {
		t.Errorf("phase = %v, want PhaseWon", s.Phase())
	}
}

func TestSessionCallbackFiresExactlyOnce(t *testing.T) {
	calls := 0
	var gotScore int
	var gotOutcome core.Outcome

	s := NewSession(1, func(score int, outcome core.Outcome) {
		calls++
		gotScore = score
		gotOutcome = outcome
	})
	s.MaybeStart(directionalInput(core.ActionUp))
	s.AddScore(42)
	s.Lose(0.5)

	if calls != 0 {
		t.Fatalf("callback fired before delay elapsed")
	}

	for i := 0; i < 120; i++ {
		s.Tick(1.0 / 60.0)
	}

	if calls != 1 {
		t.Fatalf("callback fired %d times, want 1", calls)
	}
	if gotScore != 42 {
		t.Errorf("callback score = %d, want 42", gotScore)
	}
	if gotOutcome != core.OutcomeLost {
		t.Errorf("callback outcome = %v, want OutcomeLost", gotOutcome)
	}
}

func TestSessionZeroDelayNotifiesImmediately(t *testing.T) {
	calls := 0
	s := NewSession(1, func(int, core.Outcome) { calls++ })
	s.MaybeStart(directionalInput(core.ActionUp))

	s.Win(0)
	if calls != 1 {
		t.Errorf("callback fired %d times after zero-delay win, want 1", calls)
	}
}

func TestSessionLoseLifeFloorsAtZero(t *testing.T) {
	s := NewSession(1, nil)

	if got := s.LoseLife(); got != 0 {
		t.Errorf("LoseLife() = %d, want 0", got)
	}
	if got := s.LoseLife(); got != 0 {
		t.Errorf("second LoseLife() = %d, want 0", got)
	}
}

func TestSessionEventsDrainOnce(t *testing.T) {
	s := NewSession(3, nil)
	s.Emit(core.Event{Sound: "chomp"})
	s.Emit(core.Event{Sound: "bonus"})

	evs := s.Drain()
	if len(evs) != 2 {
		t.Fatalf("drained %d events, want 2", len(evs))
	}
	if evs := s.Drain(); len(evs) != 0 {
		t.Errorf("second drain returned %d events, want 0", len(evs))
	}
}

func TestSessionGameState(t *testing.T) {
	s := NewSession(3, nil)
	s.MaybeStart(directionalInput(core.ActionUp))
	s.AddScore(7)
	s.LoseLife()
	s.Lose(0)

	st := s.GameState()
	if st.Score != 7 || st.Lives != 2 || !st.GameOver || st.Outcome != core.OutcomeLost {
		t.Errorf("GameState = %+v", st)
	}
}
