package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neonhall/arcade/internal/core"
)

// defaultHoldTicks is how many simulation ticks a key press counts as held.
// Terminals report key repeats but no release events, so a press keeps its
// action alive for a short window and auto-repeat refreshes it.
const defaultHoldTicks = 8

// oneShotActions fire exactly once per key press instead of decaying over
// the hold window. Holding P must not toggle pause every tick; the same goes
// for restart, interact and fire (games meter fire with their own cooldowns,
// terminal auto-repeat re-arms the press).
var oneShotActions = map[core.Action]bool{
	core.ActionPause:    true,
	core.ActionRestart:  true,
	core.ActionInteract: true,
	core.ActionFire:     true,
}

// KeyMapper translates Bubble Tea key messages into held game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	holdTicks int
	held      map[core.Action]int
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		holdTicks: defaultHoldTicks,
		held:      make(map[core.Action]int),
	}
}

// MapKey translates a key message to an action. Returns the action (may be
// ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "q":
		return core.ActionTurnLeft, false
	case "e":
		return core.ActionTurnRight, false
	case "z":
		return core.ActionLookUp, false
	case "x":
		return core.ActionLookDown, false
	case " ":
		return core.ActionFire, false
	case "j":
		return core.ActionJump, false
	case "f", "enter":
		return core.ActionInteract, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// Press registers a key press as a held action. Returns true if the key was
// a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg) bool {
	action, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	if action != core.ActionNone {
		km.held[action] = km.holdTicks
	}
	return false
}

// Frame produces the held-state input snapshot for one simulation tick and
// decays every hold by one tick. One-shot actions are consumed on read: the
// tick that sees them clears them, so a single press yields a single edge.
func (km *KeyMapper) Frame() core.InputFrame {
	frame := core.NewInputFrame()
	for action, ticks := range km.held {
		if ticks <= 0 {
			delete(km.held, action)
			continue
		}
		frame.Set(action)
		if oneShotActions[action] {
			delete(km.held, action)
			continue
		}
		km.held[action] = ticks - 1
	}
	return frame
}

// Release clears all held actions, e.g. when switching games.
func (km *KeyMapper) Release() {
	km.held = make(map[core.Action]int)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
