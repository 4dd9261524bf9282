// Package snake implements classic Snake on a bordered grid: the snake
// advances one tile per move interval, grows on apples, and dies on walls
// or its own body. The interval shrinks as the score grows.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

const (
	hudHeight = 2

	headChar  = '@'
	bodyChar  = 'o'
	appleChar = '*'
	wallChar  = '█'
)

const (
	baseInterval    = 0.14 // Seconds per tile at score zero
	minInterval     = 0.05
	intervalPerFood = 0.004 // Interval shaved off per apple
	appleScore      = 10
	startLength     = 3
	endDelaySeconds = 2.0
)

// tile is an integer grid coordinate.
type tile struct {
	x, y int
}

// Game implements the Snake game logic.
type Game struct {
	rng *rand.Rand

	gridW, gridH int
	body         []tile // body[0] is the head
	dir          engine.Facing
	nextDir      engine.Facing
	apple        tile
	moveTimer    float64
	eaten        int
	session      *engine.Session

	screenW, screenH int
}

// New creates a new Snake game instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.gridW = rc.ScreenW
	g.gridH = rc.ScreenH - hudHeight

	g.session = engine.NewSession(0, nil)
	g.dir = engine.FacingRight
	g.nextDir = engine.FacingRight
	g.moveTimer = 0
	g.eaten = 0

	cx, cy := g.gridW/2, g.gridH/2
	g.body = g.body[:0]
	for i := 0; i < startLength; i++ {
		g.body = append(g.body, tile{x: cx - i, y: cy})
	}
	g.placeApple()
}

// placeApple picks a uniformly random free tile inside the walls.
func (g *Game) placeApple() {
	for {
		t := tile{
			x: 1 + g.rng.Intn(g.gridW-2),
			y: 1 + g.rng.Intn(g.gridH-2),
		}
		if !g.occupies(t) {
			g.apple = t
			return
		}
	}
}

func (g *Game) occupies(t tile) bool {
	for _, b := range g.body {
		if b == t {
			return true
		}
	}
	return false
}

// moveInterval returns seconds per tile for the current score.
func (g *Game) moveInterval() float64 {
	iv := baseInterval - float64(g.eaten)*intervalPerFood
	if iv < minInterval {
		iv = minInterval
	}
	return iv
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

	g.readDirection(in)

	g.moveTimer += dt
	for g.moveTimer >= g.moveInterval() {
		g.moveTimer -= g.moveInterval()
		g.advance()
		if g.session.Over() {
			break
		}
	}
	return g.result()
}

// readDirection buffers the requested turn; reversing into the body is
// ignored. The buffered direction commits on the next tile move.
func (g *Game) readDirection(in core.InputFrame) {
	var want engine.Facing
	switch {
	case in.Has(core.ActionUp):
		want = engine.FacingUp
	case in.Has(core.ActionDown):
		want = engine.FacingDown
	case in.Has(core.ActionLeft):
		want = engine.FacingLeft
	case in.Has(core.ActionRight):
		want = engine.FacingRight
	default:
		return
	}
	if want == g.dir.Opposite() {
		return
	}
	g.nextDir = want
}

// advance moves the snake one tile, handling growth and death.
func (g *Game) advance() {
	g.dir = g.nextDir
	d := g.dir.Delta()
	head := tile{x: g.body[0].x + int(d.X), y: g.body[0].y + int(d.Y)}

	// Walls are fatal.
	if head.x <= 0 || head.x >= g.gridW-1 || head.y <= 0 || head.y >= g.gridH-1 {
		g.die()
		return
	}

	grow := head == g.apple

	// Self collision, ignoring the tail tile unless it stays put this move.
	bodyEnd := len(g.body)
	if !grow {
		bodyEnd--
	}
	for _, b := range g.body[:bodyEnd] {
		if b == head {
			g.die()
			return
		}
	}

	g.body = append([]tile{head}, g.body...)
	if grow {
		g.eaten++
		g.session.AddScore(appleScore)
		g.session.Emit(core.Event{Sound: "eat"})
		g.placeApple()
	} else {
		g.body = g.body[:len(g.body)-1]
	}
}

func (g *Game) die() {
	g.session.Emit(core.Event{Sound: "crash", Feedback: "Crashed!", Negative: true})
	g.session.Lose(endDelaySeconds)
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

	st := g.session.GameState()
	hud := fmt.Sprintf(" Snake — Score: %d  Length: %d", st.Score, len(g.body))
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	for x := 0; x < g.gridW; x++ {
		dst.SetColored(x, hudHeight, wallChar, core.ColorBlue)
		dst.SetColored(x, hudHeight+g.gridH-1, wallChar, core.ColorBlue)
	}
	for y := 0; y < g.gridH; y++ {
		dst.SetColored(0, hudHeight+y, wallChar, core.ColorBlue)
		dst.SetColored(g.gridW-1, hudHeight+y, wallChar, core.ColorBlue)
	}

	dst.SetColored(g.apple.x, hudHeight+g.apple.y, appleChar, core.ColorBrightRed)
	for i := len(g.body) - 1; i >= 1; i-- {
		dst.SetColored(g.body[i].x, hudHeight+g.body[i].y, bodyChar, core.ColorGreen)
	}
	dst.SetColored(g.body[0].x, hudHeight+g.body[0].y, headChar, core.ColorBrightGreen)

	switch {
	case g.session.Phase() == engine.PhaseGameOver:
		dst.DrawTextCentered(dst.Height()/2, "Game Over.  Press R to play again")
	case g.session.Paused():
		dst.DrawTextCentered(dst.Height()/2, "Paused")
	case g.session.Phase() == engine.PhaseReady:
		dst.DrawTextCentered(dst.Height()/2+2, "Arrows to steer — any direction key to start")
	}
}
