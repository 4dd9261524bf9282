// arcade is a terminal arcade hall: a first-person 3D hub full of playable
// cabinets, each running a classic mini-game.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game (or walk the hall with 'play hall')
//	arcade hall              - Walk the arcade hall
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/neonhall/arcade/internal/games/asteroids"
	_ "github.com/neonhall/arcade/internal/games/hall"
	_ "github.com/neonhall/arcade/internal/games/invaders"
	_ "github.com/neonhall/arcade/internal/games/pacman"
	_ "github.com/neonhall/arcade/internal/games/pong"
	_ "github.com/neonhall/arcade/internal/games/pong3d"
	_ "github.com/neonhall/arcade/internal/games/snake"
	_ "github.com/neonhall/arcade/internal/games/snake3d"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Neon Hall - A first-person arcade in your terminal",
	Long: `Neon Hall is a terminal arcade: walk a raycast 3D hall between glowing
cabinets and press F to play the game each one hosts. Every cabinet game
can also be launched directly from the command line.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  hall     - Walk the arcade hall
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade hall
  arcade play invaders
  arcade menu
  arcade serve --ssh :2222
  arcade scores pacman`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hallCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
