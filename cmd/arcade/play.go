package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/games/hall"
	"github.com/neonhall/arcade/internal/games/invaders"
	"github.com/neonhall/arcade/internal/games/pacman"
	"github.com/neonhall/arcade/internal/games/pong"
	"github.com/neonhall/arcade/internal/games/pong3d"
	"github.com/neonhall/arcade/internal/platform/tui"
	"github.com/neonhall/arcade/internal/registry"
	"github.com/neonhall/arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  WASD/Arrows  - Move / steer
  Q/E          - Turn (3D games), J - jump
  F/Enter      - Interact with cabinets
  Space        - Fire
  P            - Pause
  R            - Restart (after game over)
  Ctrl+C/Esc   - Quit

Difficulty options:
  easy   - Slower enemies, forgiving timings
  normal - Stock cabinet settings
  hard   - Faster enemies, sharper AI

Examples:
  arcade play pacman
  arcade play invaders --difficulty easy
  arcade play pong --difficulty hard
  arcade play pacman --config ./my-pacman.yaml
  arcade play hall`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalConfig builds a runtime config from the current terminal size
// and the global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyGameTuning points config-aware games at the custom config file and
// difficulty preset before they are created.
func applyGameTuning(gameID string) {
	switch gameID {
	case "pacman":
		pacman.SetConfigPath(flagConfig)
		pacman.SetDifficultyPreset(flagDifficulty)
	case "invaders":
		invaders.SetConfigPath(flagConfig)
		invaders.SetDifficultyPreset(flagDifficulty)
	case "pong":
		pong.SetConfigPath(flagConfig)
		pong.SetDifficultyPreset(flagDifficulty)
	case "pong3d":
		pong3d.SetConfigPath(flagConfig)
		pong3d.SetDifficultyPreset(flagDifficulty)
	case "hall":
		hall.SetConfigPath(flagConfig)
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := terminalConfig()
	applyGameTuning(gameID)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
