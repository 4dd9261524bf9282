// Package snake3d implements the first-person apple race: the player
// glides around a walled arena, always moving forward, racing a rival
// serpent to the apples. Touching the rival or a wall costs a life.
package snake3d

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

const (
	hudHeight = 1

	arenaW = 22.0
	arenaH = 16.0
	fov    = 1.15

	playerSpeed  = 4.2
	playerTurn   = 2.6 // Radians per second
	playerRadius = 0.3

	rivalSpeed  = 3.6
	rivalTurn   = 2.0
	rivalRadius = 0.5

	appleRadius  = 0.4
	appleScore   = 10
	applesToWin  = 10
	lives        = 3
	graceSeconds = 1.5
	endDelay     = 2.0
	wallMargin   = 0.6 // Closer than this to a wall is a crash
)

// arena is the raycast wall map: a plain walled rectangle.
type arena struct{}

func (arena) WallAt(x, y int) bool {
	return x < 0 || float64(x) >= arenaW || y < 0 || float64(y) >= arenaH
}

// Game implements the first-person snake race.
type Game struct {
	rng *rand.Rand

	pos     core.Vec2
	yaw     float64
	rival   core.Vec2
	chase   engine.Pursuit
	apple   core.Vec2
	grace   float64
	eaten   int
	session *engine.Session

	screenW, screenH int
}

// New creates a new snake race instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake3d", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "snake3d"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Snake 3D"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	g.session = engine.NewSession(lives, nil)
	g.eaten = 0
	g.respawn()
	g.rival = core.Vec2{X: arenaW - 3, Y: arenaH - 3}
	g.chase = engine.Pursuit{Speed: rivalSpeed, TurnRate: rivalTurn, Heading: math.Pi}
	g.placeApple()
}

func (g *Game) respawn() {
	g.pos = core.Vec2{X: 3, Y: 3}
	g.yaw = 0
	g.grace = graceSeconds
}

// placeApple picks a random spot away from both runners.
func (g *Game) placeApple() {
	for {
		p := core.Vec2{
			X: 2 + g.rng.Float64()*(arenaW-4),
			Y: 2 + g.rng.Float64()*(arenaH-4),
		}
		if p.Dist(g.pos) > 3 && p.Dist(g.rival) > 3 {
			g.apple = p
			return
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionRestart) && g.session.Over() {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63(), ScreenW: g.screenW, ScreenH: g.screenH})
		return g.result()
	}
	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}

	g.session.MaybeStart(in)
	g.session.Tick(dt)

	if !g.session.Active() {
		return g.result()
	}

	if g.grace > 0 {
		g.grace -= dt
	}

	// The player always glides forward; only the heading is steered.
	if in.Has(core.ActionLeft) || in.Has(core.ActionTurnLeft) {
		g.yaw -= playerTurn * dt
	}
	if in.Has(core.ActionRight) || in.Has(core.ActionTurnRight) {
		g.yaw += playerTurn * dt
	}
	g.pos = g.pos.Add(core.FromAngle(g.yaw).Scale(playerSpeed * dt))

	g.rival = g.chase.Step(g.rival, g.apple, dt)
	g.rival.X = core.ClampF(g.rival.X, 1, arenaW-1)
	g.rival.Y = core.ClampF(g.rival.Y, 1, arenaH-1)

	g.checkApple()
	g.checkCrash()
	return g.result()
}

func (g *Game) checkApple() {
	if g.pos.Dist(g.apple) < playerRadius+appleRadius {
		g.eaten++
		g.session.AddScore(appleScore)
		g.session.Emit(core.Event{Sound: "eat", Feedback: fmt.Sprintf("%d/%d", g.eaten, applesToWin)})
		if g.eaten >= applesToWin {
			g.session.Win(endDelay)
			return
		}
		g.placeApple()
		return
	}
	// The rival eats too, denying the player.
	if g.rival.Dist(g.apple) < rivalRadius+appleRadius {
		g.session.Emit(core.Event{Sound: "rival_eat", Feedback: "Stolen!", Negative: true})
		g.placeApple()
	}
}

func (g *Game) checkCrash() {
	if g.grace > 0 {
		return
	}
	hitWall := g.pos.X < wallMargin || g.pos.X > arenaW-wallMargin ||
		g.pos.Y < wallMargin || g.pos.Y > arenaH-wallMargin
	hitRival := g.pos.Dist(g.rival) < playerRadius+rivalRadius

	if !hitWall && !hitRival {
		return
	}

	g.session.Emit(core.Event{Sound: "crash", Feedback: "Crashed!", Negative: true})
	if g.session.LoseLife() <= 0 {
		g.session.Lose(endDelay)
		return
	}
	g.respawn()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.session.Drain()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.session.GameState()
}

// Render draws the arena first-person with apple and rival sprites.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	core.RenderFirstPerson(dst, arena{}, g.pos, g.yaw, 0, fov, 0, hudHeight, dst.Height())

	g.renderSprite(dst, g.apple, '*', core.ColorBrightRed, 2)
	g.renderSprite(dst, g.rival, '§', core.ColorBrightMagenta, 4)

	st := g.session.GameState()
	hud := fmt.Sprintf(" Snake 3D — Apples: %d/%d  Lives: %d", g.eaten, applesToWin, st.Lives)
	dst.DrawText(0, 0, hud)

	switch {
	case g.session.Phase() == engine.PhaseWon:
		dst.DrawTextCentered(dst.Height()/2, "You out-ate the rival!  Press R to play again")
	case g.session.Phase() == engine.PhaseGameOver:
		dst.DrawTextCentered(dst.Height()/2, "Game Over.  Press R to play again")
	case g.session.Paused():
		dst.DrawTextCentered(dst.Height()/2, "Paused")
	case g.session.Phase() == engine.PhaseReady:
		dst.DrawTextCentered(dst.Height()/2+2, "A/D to steer — any direction key to start")
	}
}

func (g *Game) renderSprite(dst *core.Screen, world core.Vec2, glyph rune, color core.Color, scale float64) {
	col, invDist, ok := core.ProjectPoint(g.pos, g.yaw, fov, world, dst.Width())
	if !ok || col < 0 || col >= dst.Width() {
		return
	}
	rows := dst.Height() - hudHeight
	mid := hudHeight + rows/2
	size := int(invDist * scale * float64(rows) / 8)
	for dy := -size; dy <= size; dy++ {
		dst.SetColored(col, mid+dy, glyph, color)
	}
}
