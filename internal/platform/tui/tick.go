// Package tui is the Bubble Tea front end: it owns the terminal loop, maps
// keys to held game actions, and drives the engine clock one simulation tick
// per timer message.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall-clock time of one simulation tick.
type TickMsg time.Time

// tickCmd schedules the next simulation tick at the given rate. Each handled
// tick re-arms itself, so the loop runs at most one timer at a time.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
