package engine

import "github.com/neonhall/arcade/internal/core"

// WorldView is the read-only snapshot an AI agent decides against for one
// tick. Agents never hold references into live game state; the game builds
// a fresh view each tick so every agent sees the same consistent frame.
type WorldView struct {
	Maze         *Maze
	PlayerPos    core.Vec2
	PlayerFacing Facing
	Collected    int // Global collectible count, gates ghost release
}
