package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/games/pong"
)

const frameDt = 1.0 / 60.0

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHeldActionDecaysOverHoldWindow(t *testing.T) {
	km := NewKeyMapper()
	km.Press(keyMsg("w"))

	for i := 0; i < defaultHoldTicks; i++ {
		if !km.Frame().Has(core.ActionUp) {
			t.Fatalf("tick %d: up not held, want held for %d ticks", i, defaultHoldTicks)
		}
	}
	if km.Frame().Has(core.ActionUp) {
		t.Fatal("up still held after the hold window expired")
	}
}

func TestPausePressFiresExactlyOnce(t *testing.T) {
	km := NewKeyMapper()
	km.Press(keyMsg("p"))

	if !km.Frame().Has(core.ActionPause) {
		t.Fatal("first frame after pressing P is missing the pause action")
	}
	for i := 0; i < defaultHoldTicks; i++ {
		if km.Frame().Has(core.ActionPause) {
			t.Fatalf("tick %d: pause action repeated; one press must yield one edge", i+1)
		}
	}
}

// Pressing P once and ticking past the hold window must leave the game
// paused, with no gameplay advancing in between.
func TestSinglePausePressPausesGameThroughKeymap(t *testing.T) {
	km := NewKeyMapper()
	g := pong.New()
	g.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24})

	// Start the match with a directional press.
	km.Press(keyMsg("w"))
	for i := 0; i < 3; i++ {
		g.Step(km.Frame(), frameDt)
	}

	km.Press(keyMsg("p"))
	var state core.GameState
	for i := 0; i < 12; i++ {
		state = g.Step(km.Frame(), frameDt).State
	}
	if !state.Paused {
		t.Fatal("pressed P once; game ended up not paused")
	}

	km.Press(keyMsg("p"))
	for i := 0; i < 12; i++ {
		state = g.Step(km.Frame(), frameDt).State
	}
	if state.Paused {
		t.Fatal("second P press did not resume the game")
	}
}

func TestInteractAndFireAreEdgeTriggered(t *testing.T) {
	km := NewKeyMapper()
	km.Press(keyMsg("f"))
	km.Press(keyMsg(" "))

	first := km.Frame()
	if !first.Has(core.ActionInteract) || !first.Has(core.ActionFire) {
		t.Fatal("first frame missing interact/fire edge")
	}
	second := km.Frame()
	if second.Has(core.ActionInteract) || second.Has(core.ActionFire) {
		t.Fatal("interact/fire repeated without a new press")
	}
}
