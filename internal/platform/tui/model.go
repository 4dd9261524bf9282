package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
	"github.com/neonhall/arcade/internal/storage"
)

// feedbackSeconds is how long a game's feedback line stays on screen.
const feedbackSeconds = 1.6

// Model is the Bubble Tea model for running arcade games. It owns the
// simulation clock, the held-key input state, and the screen buffer, and
// switches games when one emits a launch event (the hall's cabinets).
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	clock       *engine.Clock
	keys        *KeyMapper
	gameState   core.GameState
	feedback    string
	feedbackFor float64
	quitting    bool
	scoreSaved  bool // Whether the score has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		clock:  engine.NewClock(),
		keys:   NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.clock.Start()

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.Press(msg) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Mid-run geometry changes would corrupt field coordinates, so the game
	// restarts at the new size unless it's already over.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick advances the simulation by one clamped clock delta.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.clock.Tick(now)

	result := m.game.Step(m.keys.Frame(), dt)
	m.gameState = result.State

	for _, ev := range result.Events {
		if ev.Feedback != "" {
			m.feedback = ev.Feedback
			m.feedbackFor = feedbackSeconds
		}
		if ev.Launch != "" {
			return m.launch(ev.Launch)
		}
	}
	if m.feedbackFor > 0 {
		m.feedbackFor -= dt
		if m.feedbackFor <= 0 {
			m.feedback = ""
		}
	}

	// Save the finished run once.
	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Outcome)
		}
		m.scoreSaved = true
	}
	if !m.gameState.GameOver && m.scoreSaved {
		m.scoreSaved = false // A restart began a fresh run
	}

	return m, tickCmd(m.config.TickRate)
}

// launch swaps the running game for the one a cabinet requested.
func (m Model) launch(gameID string) (tea.Model, tea.Cmd) {
	next, err := registry.Create(gameID)
	if err != nil {
		m.feedback = fmt.Sprintf("Cabinet out of order: %v", err)
		m.feedbackFor = feedbackSeconds
		return m, tickCmd(m.config.TickRate)
	}

	m.game = next
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.keys.Release()
	m.feedback = ""
	m.feedbackFor = 0

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	if m.feedback != "" {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.feedback)
	}

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
