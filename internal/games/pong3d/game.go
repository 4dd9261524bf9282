// Package pong3d implements first-person Pong: the player stands behind
// the near paddle of a walled corridor and slides it laterally while the
// ball shuttles toward a CPU paddle at the far end.
package pong3d

import (
	"fmt"
	"math/rand"

	"github.com/neonhall/arcade/internal/config"
	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

const (
	hudHeight = 1

	corridorL = 24.0 // Corridor length, near paddle to far paddle
	corridorW = 9.0  // Corridor width, the lateral play axis
	fov       = 1.15

	// levelSpeedBoost is the extra ball speed at progression level 1.0.
	levelSpeedBoost = 0.25
)

// corridor is the raycast wall map: everything outside the play lane is
// solid.
type corridor struct{}

func (corridor) WallAt(x, y int) bool {
	return x < 0 || float64(x) >= corridorL+2 || y < 0 || float64(y) >= corridorW+2
}

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

// Game implements the first-person Pong logic. World space: X runs down
// the corridor away from the player, Y is lateral.
type Game struct {
	cfg config.PongConfig
	rng *rand.Rand

	ball     engine.Entity
	paddle1Y float64 // Player (near) paddle center, lateral
	paddle2Y float64 // CPU (far) paddle center, lateral
	cpu      *engine.PaddleAI

	score1, score2 int
	ballSpeed      float64
	serveFor       float64
	session        *engine.Session

	screenW, screenH int
}

// New creates a new first-person Pong instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("pong3d", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong3d"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong 3D"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadPong(configPath)
	if err != nil {
		cfg = config.DefaultPongConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPongPreset(&cfg, config.DifficultyPreset(difficultyPreset))
	}
	g.cfg = cfg

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	g.cpu = engine.NewPaddleAI(engine.PaddleParams{
		Reaction:      cfg.CPU.Reaction,
		Noise:         cfg.CPU.Noise,
		DeadZone:      cfg.CPU.DeadZone,
		MissChance:    cfg.CPU.MissChance,
		MaxMissChance: cfg.CPU.MaxMissChance,
		MissStep:      cfg.CPU.MissStep,
		SpeedStep:     cfg.CPU.SpeedStep,
		HitThreshold:  cfg.CPU.HitThreshold,
	}, g.rng)

	g.session = engine.NewSession(0, nil)
	g.score1 = 0
	g.score2 = 0
	// The corridor is shorter than the 2D field.
	g.ballSpeed = cfg.Physics.BallSpeed * 0.6 * cfg.Difficulty.SpeedScale(levelSpeedBoost)
	g.paddle1Y = corridorW / 2
	g.paddle2Y = corridorW / 2
	g.serve(1)
}

func (g *Game) nearX() float64 { return 2.0 }
func (g *Game) farX() float64  { return corridorL }

func (g *Game) serve(towards int) {
	g.serveFor = g.cfg.Gameplay.ServeSeconds

	dir := core.Vec2{X: 1}
	if towards == 1 {
		dir.X = -1
	}
	dir.Y = (g.rng.Float64() - 0.5) * 0.6

	g.ball = engine.Entity{
		Pos:    core.Vec2{X: (g.nearX() + g.farX()) / 2, Y: corridorW / 2},
		Vel:    dir.Normalized().Scale(g.ballSpeed),
		Radius: 0.3,
		Alive:  true,
		Kind:   engine.KindBall,
	}
	g.cpu.Retarget(&g.ball, g.farX(), corridorW)
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

	g.movePlayer(in, dt)
	if g.ball.Vel.X > 0 {
		g.paddle2Y = g.cpu.Move(g.paddle2Y, g.cfg.Physics.PaddleSpeed*0.5, dt)
	}
	half := g.paddleHalf()
	g.paddle2Y = core.ClampF(g.paddle2Y, half, corridorW-half)

	if g.serveFor > 0 {
		g.serveFor -= dt
		return g.result()
	}

	g.moveBall(dt)
	return g.result()
}

func (g *Game) paddleHalf() float64 {
	return g.cfg.Physics.PaddleHeight / 2 * 0.5 // Narrower paddles than 2D
}

func (g *Game) movePlayer(in core.InputFrame, dt float64) {
	speed := g.cfg.Physics.PaddleSpeed * 0.5
	if in.Has(core.ActionLeft) {
		g.paddle1Y -= speed * dt
	}
	if in.Has(core.ActionRight) {
		g.paddle1Y += speed * dt
	}
	half := g.paddleHalf()
	g.paddle1Y = core.ClampF(g.paddle1Y, half, corridorW-half)
}

func (g *Game) moveBall(dt float64) {
	prevVX := g.ball.Vel.X
	g.ball.Advance(dt)

	// Side walls.
	if g.ball.Pos.Y <= 0 {
		g.ball.Pos.Y = 0
		g.ball.Vel = engine.BounceOffWall(g.ball.Vel, false)
	} else if g.ball.Pos.Y >= corridorW {
		g.ball.Pos.Y = corridorW
		g.ball.Vel = engine.BounceOffWall(g.ball.Vel, false)
	}

	g.checkPaddles()

	if prevVX <= 0 && g.ball.Vel.X > 0 {
		g.cpu.Retarget(&g.ball, g.farX(), corridorW)
	}

	if g.ball.Pos.X < g.nearX()-1 {
		g.pointScored(2)
	} else if g.ball.Pos.X > g.farX()+1 {
		g.pointScored(1)
	}
}

func (g *Game) checkPaddles() {
	half := g.paddleHalf()
	params := engine.ReflectParams{
		SpeedFactor: g.cfg.Physics.SpeedFactor,
		Deflect:     g.cfg.Physics.Deflect * 0.5,
		Jitter:      g.cfg.Physics.Jitter * 0.5,
		MinNormal:   g.cfg.Physics.MinVertical * 0.5,
	}

	if g.ball.Vel.X < 0 && g.ball.Pos.X <= g.nearX() && g.ball.Pos.X >= g.nearX()-0.5 {
		if g.ball.Pos.Y >= g.paddle1Y-half && g.ball.Pos.Y <= g.paddle1Y+half {
			offset := (g.ball.Pos.Y - g.paddle1Y) / half
			g.ball.Vel = engine.ReflectOffPaddle(g.ball.Vel, offset, g.rng, params)
			g.ball.Pos.X = g.nearX()
			g.onVolley()
		}
	}

	if g.ball.Vel.X > 0 && g.ball.Pos.X >= g.farX() && g.ball.Pos.X <= g.farX()+0.5 {
		if g.ball.Pos.Y >= g.paddle2Y-half && g.ball.Pos.Y <= g.paddle2Y+half {
			offset := (g.ball.Pos.Y - g.paddle2Y) / half
			g.ball.Vel = engine.ReflectOffPaddle(g.ball.Vel, offset, g.rng, params)
			g.ball.Pos.X = g.farX()
			g.onVolley()
		}
	}
}

func (g *Game) onVolley() {
	g.session.Emit(core.Event{Sound: "paddle"})
	factor := g.cpu.OnVolley()
	if factor != 1 {
		g.ballSpeed *= factor
		g.ball.Vel = g.ball.Vel.Scale(factor)
		g.session.Emit(core.Event{Feedback: "Speed up!", Negative: true})
	}
}

func (g *Game) pointScored(who int) {
	g.cpu.OnPoint()

	if who == 1 {
		g.score1++
		g.session.AddScore(1)
		g.session.Emit(core.Event{Sound: "score", Feedback: "Point!"})
	} else {
		g.score2++
		g.session.Emit(core.Event{Sound: "concede", Feedback: "CPU scores", Negative: true})
	}

	switch {
	case g.score1 >= g.cfg.Gameplay.WinScore:
		g.session.Win(g.cfg.Gameplay.EndDelaySeconds)
	case g.score2 >= g.cfg.Gameplay.WinScore:
		g.session.Lose(g.cfg.Gameplay.EndDelaySeconds)
	default:
		g.serve(who%2 + 1)
	}
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.session.Drain()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.session.GameState()
	st.Score = g.score1
	return st
}

// Render draws the corridor from behind the near paddle.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Eye sits behind the player paddle, looking straight down-corridor.
	eye := core.Vec2{X: g.nearX() - 1.2, Y: g.paddle1Y + 1} // +1: world grid offset
	core.RenderFirstPerson(dst, corridor{}, eye, 0, 0, fov, 0, hudHeight, dst.Height())

	g.renderSprite(dst, eye, core.Vec2{X: g.farX() + 1, Y: g.paddle2Y + 1}, '▓', core.ColorBrightRed, 4)
	if g.serveFor <= 0 {
		g.renderSprite(dst, eye, g.ball.Pos.Add(core.Vec2{X: 1, Y: 1}), '●', core.ColorBrightYellow, 2)
	}

	// The player's own paddle: a bar along the bottom edge at its lateral
	// position.
	half := g.paddleHalf()
	px := int((g.paddle1Y - half) / corridorW * float64(dst.Width()))
	pw := int(2 * half / corridorW * float64(dst.Width()))
	for x := px; x < px+pw && x < dst.Width(); x++ {
		dst.SetColored(x, dst.Height()-1, '█', core.ColorBrightGreen)
	}

	hud := fmt.Sprintf(" Pong 3D — You: %d  CPU: %d  (first to %d)", g.score1, g.score2, g.cfg.Gameplay.WinScore)
	dst.DrawText(0, 0, hud)

	switch {
	case g.session.Phase() == engine.PhaseWon:
		dst.DrawTextCentered(dst.Height()/2, "You Win!  Press R to play again")
	case g.session.Phase() == engine.PhaseGameOver:
		dst.DrawTextCentered(dst.Height()/2, "CPU Wins.  Press R to play again")
	case g.session.Paused():
		dst.DrawTextCentered(dst.Height()/2, "Paused")
	case g.session.Phase() == engine.PhaseReady:
		dst.DrawTextCentered(dst.Height()/2+2, "A/D to slide — any direction key to start")
	}
}

// renderSprite draws a vertical bar scaled by distance at the projected
// screen column.
func (g *Game) renderSprite(dst *core.Screen, eye, world core.Vec2, glyph rune, color core.Color, scale float64) {
	col, invDist, ok := core.ProjectPoint(eye, 0, fov, world, dst.Width())
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
