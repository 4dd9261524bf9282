// Package pacman implements the maze-chase game: eat every pellet while
// four personality-driven ghosts hunt you. Power pellets flip the chase for
// a few seconds.
package pacman

import (
	"fmt"
	"math/rand"

	"github.com/neonhall/arcade/internal/config"
	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

const (
	hudHeight    = 2
	respawnPause = 1.0 // Seconds of freeze after losing a life

	// levelSpeedBoost is the extra ghost speed at progression level 1.0.
	levelSpeedBoost = 0.2
)

// Package-level knobs set by the CLI before game creation.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Game implements the maze game.
type Game struct {
	cfg config.PacmanConfig
	rng *rand.Rand

	maze    *engine.Maze
	player  engine.Entity
	mover   engine.GridMover
	ghosts  []*engine.Ghost
	session *engine.Session

	collected  int
	frightened float64 // Global frightened countdown, mirrors the ghosts'
	pauseFor   float64 // Respawn freeze countdown
	animTick   float64 // Drives the idle mouth animation

	screenW, screenH int
	offsetX, offsetY int
	tooSmall         bool
}

// New creates a new maze game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("pacman", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "pacman"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pac-Man"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadPacman(configPath)
	if err != nil {
		cfg = config.DefaultPacmanConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPacmanPreset(&cfg, config.DifficultyPreset(difficultyPreset))
	}
	g.cfg = cfg

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.session = engine.NewSession(cfg.Gameplay.Lives, nil)
	g.maze = newMaze()
	g.collected = 0
	g.frightened = 0
	g.pauseFor = 0
	g.animTick = 0

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	requiredW := g.maze.W + 2
	requiredH := g.maze.H + hudHeight + 1
	g.tooSmall = rc.ScreenW < requiredW || rc.ScreenH < requiredH
	g.offsetX = (rc.ScreenW - g.maze.W) / 2
	g.offsetY = hudHeight

	g.spawnPlayer()
	g.spawnGhosts()
}

func (g *Game) spawnPlayer() {
	g.player = engine.Entity{
		Pos:    g.maze.TileCenter(playerStartTile[0], playerStartTile[1]),
		Radius: 0.45,
		Facing: engine.FacingLeft,
		Alive:  true,
		Kind:   engine.KindPlayer,
	}
	g.mover = engine.GridMover{
		Dir:   engine.FacingNone,
		Speed: g.cfg.Speeds.Player,
	}
}

func (g *Game) spawnGhosts() {
	speed := g.cfg.Speeds.Ghost * g.cfg.Difficulty.SpeedScale(levelSpeedBoost)
	g.ghosts = g.ghosts[:0]
	for i, roster := range ghostRoster {
		spawn := g.maze.TileCenter(ghostSpawnTiles[i][0], ghostSpawnTiles[i][1])
		ghost := engine.NewGhost(spawn, roster.strategy, roster.releaseAt, speed, g.rng)
		ghost.ExitPath = exitPath(g.maze, ghostSpawnTiles[i])
		g.ghosts = append(g.ghosts, ghost)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.animTick += dt

	if in.Has(core.ActionRestart) && g.session.Over() {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63(), ScreenW: g.screenW, ScreenH: g.screenH})
		return g.result()
	}
	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}

	g.session.MaybeStart(in)
	g.session.Tick(dt)

	if !g.session.Active() || g.tooSmall {
		return g.result()
	}

	if g.pauseFor > 0 {
		g.pauseFor -= dt
		return g.result()
	}

	g.readDirection(in)

	// Fixed per-tick order: player moves, then ghosts decide against a
	// consistent snapshot, then collisions resolve.
	g.mover.Step(&g.player, g.maze, dt)
	g.eat()

	view := engine.WorldView{
		Maze:         g.maze,
		PlayerPos:    g.player.Pos,
		PlayerFacing: g.player.Facing,
		Collected:    g.collected,
	}
	for _, ghost := range g.ghosts {
		ghost.Step(view, dt)
	}

	if g.frightened > 0 {
		g.frightened -= dt
		if g.frightened < 0 {
			g.frightened = 0
		}
	}

	g.collideGhosts()

	if g.maze.PelletsLeft() == 0 {
		g.session.Emit(core.Event{Sound: "win", Feedback: "Maze cleared!"})
		g.session.Win(g.cfg.Gameplay.EndDelaySeconds)
	}

	return g.result()
}

func (g *Game) readDirection(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.mover.NextDir = engine.FacingUp
	case in.Has(core.ActionDown):
		g.mover.NextDir = engine.FacingDown
	case in.Has(core.ActionLeft):
		g.mover.NextDir = engine.FacingLeft
	case in.Has(core.ActionRight):
		g.mover.NextDir = engine.FacingRight
	}
	if g.mover.Dir == engine.FacingNone && g.mover.NextDir != engine.FacingNone {
		g.mover.Dir = g.mover.NextDir
	}
}

// eat consumes the collectible on the player's tile, if any.
func (g *Game) eat() {
	tx, ty := g.maze.TileOf(g.player.Pos)
	cell, ok := g.maze.Consume(tx, ty)
	if !ok {
		return
	}
	g.collected++

	switch cell {
	case engine.CellPellet:
		g.session.AddScore(g.cfg.Scoring.Pellet)
		g.session.Emit(core.Event{Sound: "chomp"})
	case engine.CellPower:
		g.session.AddScore(g.cfg.Scoring.Power)
		g.frightened = g.cfg.Gameplay.FrightenedSeconds
		for _, ghost := range g.ghosts {
			ghost.Frighten(g.cfg.Gameplay.FrightenedSeconds)
		}
		g.session.Emit(core.Event{Sound: "power", Feedback: "Power up!"})
	}
}

// collideGhosts resolves player/ghost contact: frightened ghosts are eaten
// and sent home, hunters cost a life.
func (g *Game) collideGhosts() {
	for _, ghost := range g.ghosts {
		if !engine.CircleHit(&g.player, &ghost.Entity) {
			continue
		}

		if ghost.Frightened() {
			ghost.ResetToSpawn()
			g.session.AddScore(g.cfg.Scoring.Ghost)
			g.session.Emit(core.Event{Sound: "eat_ghost", Feedback: fmt.Sprintf("+%d", g.cfg.Scoring.Ghost)})
			continue
		}

		if ghost.State != engine.GhostActive {
			continue
		}

		g.session.Emit(core.Event{Sound: "death", Feedback: "Caught!", Negative: true})
		if g.session.LoseLife() == 0 {
			g.session.Lose(g.cfg.Gameplay.EndDelaySeconds)
			return
		}

		// Reset positions and freeze briefly; the round continues.
		g.spawnPlayer()
		for _, gh := range g.ghosts {
			gh.ResetToSpawn()
		}
		g.pauseFor = respawnPause
		return
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.session.Drain()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.session.GameState()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderMaze(dst)
	g.renderGhosts(dst)
	g.renderPlayer(dst)

	switch {
	case g.session.Phase() == engine.PhaseWon:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.session.Score))
	case g.session.Phase() == engine.PhaseGameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.session.Paused():
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.session.Phase() == engine.PhaseReady:
		// Flashing prompt while waiting for the first input.
		if int(g.animTick*2)%2 == 0 {
			dst.DrawTextCentered(g.offsetY+g.maze.H+1, "READY!  Press an arrow key")
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Pac-Man — Score: %d  Lives: %d  Pellets: %d",
		g.session.Score, g.session.Lives, g.maze.PelletsLeft())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func (g *Game) renderMaze(dst *core.Screen) {
	for y := 0; y < g.maze.H; y++ {
		for x := 0; x < g.maze.W; x++ {
			px, py := g.offsetX+x, g.offsetY+y
			switch g.maze.At(x, y) {
			case engine.CellWall:
				dst.SetColored(px, py, '█', core.ColorBlue)
			case engine.CellPellet:
				dst.SetColored(px, py, '·', core.ColorYellow)
			case engine.CellPower:
				dst.SetColored(px, py, 'o', core.ColorBrightYellow)
			}
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen) {
	tx, ty := g.maze.TileOf(g.player.Pos)
	// Two-frame mouth animation; keeps idling in the ready phase.
	ch := 'C'
	if int(g.animTick*4)%2 == 0 {
		ch = 'c'
	}
	dst.SetColored(g.offsetX+tx, g.offsetY+ty, ch, core.ColorBrightYellow)
}

func (g *Game) renderGhosts(dst *core.Screen) {
	for i, ghost := range g.ghosts {
		tx, ty := g.maze.TileOf(ghost.Entity.Pos)
		ch := 'M'
		color := ghostRoster[i].color
		if ghost.Frightened() {
			ch = 'W'
			color = core.ColorBrightBlue
			// Flash when frightened mode is about to expire.
			if ghost.FrightenedFor < 2 && int(g.animTick*4)%2 == 0 {
				color = core.ColorWhite
			}
		}
		dst.SetColored(g.offsetX+tx, g.offsetY+ty, ch, color)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()
	boxW := core.Max(len(line1), len(line2)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
