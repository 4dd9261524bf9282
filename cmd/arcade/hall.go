package main

import (
	"github.com/spf13/cobra"
)

var hallCmd = &cobra.Command{
	Use:   "hall",
	Short: "Walk the arcade hall",
	Long: `Start in the first-person arcade hall.

Walk between the cabinets with WASD, turn with Q/E (or arrows),
jump with J, and press F (or Enter) in front of a cabinet to play its game.

Examples:
  arcade hall
  arcade hall --fps 30`,
	Run: runHall,
}

func runHall(cmd *cobra.Command, _ []string) {
	runPlay(cmd, []string{"hall"})
}
