// Package pong implements classic Pong against a CPU opponent whose aim is
// deliberately imperfect and whose difficulty ratchets up as rallies grow.
package pong

import (
	"fmt"
	"math/rand"

	"github.com/neonhall/arcade/internal/config"
	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

// Visual characters for rendering
const (
	paddleChar = '█'
	ballChar   = '●'
	netChar    = '│'
)

const (
	hudHeight    = 2
	paddleOffset = 2.0 // Distance of each paddle from its wall

	// levelSpeedBoost is the extra ball speed at progression level 1.0.
	levelSpeedBoost = 0.25
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

// Game implements the Pong game logic.
type Game struct {
	cfg config.PongConfig
	rng *rand.Rand

	fieldW, fieldH float64
	ball           engine.Entity
	paddle1Y       float64 // Player (left) paddle center
	paddle2Y       float64 // CPU (right) paddle center
	cpu            *engine.PaddleAI

	score1, score2 int
	ballSpeed      float64
	serveFor       float64 // Countdown before the ball is released
	session        *engine.Session

	screenW, screenH int
}

// New creates a new Pong game instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
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
	g.fieldW = float64(rc.ScreenW)
	g.fieldH = float64(rc.ScreenH - hudHeight)

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
	g.ballSpeed = cfg.Physics.BallSpeed * cfg.Difficulty.SpeedScale(levelSpeedBoost)
	g.paddle1Y = g.fieldH / 2
	g.paddle2Y = g.fieldH / 2
	g.serve(1)
}

// serve recenters the ball heading toward the player who conceded.
func (g *Game) serve(towards int) {
	g.serveFor = g.cfg.Gameplay.ServeSeconds

	dir := core.Vec2{X: 1}
	if towards == 1 {
		dir.X = -1
	}
	// Random shallow vertical angle.
	dir.Y = (g.rng.Float64() - 0.5) * 0.6

	g.ball = engine.Entity{
		Pos:    core.Vec2{X: g.fieldW / 2, Y: g.fieldH / 2},
		Vel:    dir.Normalized().Scale(g.ballSpeed),
		Radius: 0.5,
		Alive:  true,
		Kind:   engine.KindBall,
	}
	g.cpu.Retarget(&g.ball, g.cpuPaddleX(), g.fieldH)
}

func (g *Game) cpuPaddleX() float64 {
	return g.fieldW - paddleOffset - 1
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
	g.moveCPU(dt)

	if g.serveFor > 0 {
		g.serveFor -= dt
		return g.result()
	}

	g.moveBall(dt)
	return g.result()
}

func (g *Game) movePlayer(in core.InputFrame, dt float64) {
	if in.Has(core.ActionUp) {
		g.paddle1Y -= g.cfg.Physics.PaddleSpeed * dt
	}
	if in.Has(core.ActionDown) {
		g.paddle1Y += g.cfg.Physics.PaddleSpeed * dt
	}
	half := g.cfg.Physics.PaddleHeight / 2
	g.paddle1Y = core.ClampF(g.paddle1Y, half, g.fieldH-half)
}

func (g *Game) moveCPU(dt float64) {
	// The CPU only chases while the ball approaches it.
	if g.ball.Vel.X > 0 {
		g.paddle2Y = g.cpu.Move(g.paddle2Y, g.cfg.Physics.PaddleSpeed, dt)
	}
	half := g.cfg.Physics.PaddleHeight / 2
	g.paddle2Y = core.ClampF(g.paddle2Y, half, g.fieldH-half)
}

func (g *Game) moveBall(dt float64) {
	prevVX := g.ball.Vel.X
	g.ball.Advance(dt)

	// Bounce off top/bottom walls.
	if g.ball.Pos.Y <= 0 {
		g.ball.Pos.Y = 0
		g.ball.Vel = engine.BounceOffWall(g.ball.Vel, false)
	} else if g.ball.Pos.Y >= g.fieldH-1 {
		g.ball.Pos.Y = g.fieldH - 1
		g.ball.Vel = engine.BounceOffWall(g.ball.Vel, false)
	}

	g.checkPaddles()

	// Retarget the CPU the moment the ball turns toward it.
	if prevVX <= 0 && g.ball.Vel.X > 0 {
		g.cpu.Retarget(&g.ball, g.cpuPaddleX(), g.fieldH)
	}

	// Scoring: ball past a wall.
	if g.ball.Pos.X < 0 {
		g.pointScored(2)
	} else if g.ball.Pos.X > g.fieldW {
		g.pointScored(1)
	}
}

func (g *Game) checkPaddles() {
	half := g.cfg.Physics.PaddleHeight / 2
	params := engine.ReflectParams{
		SpeedFactor: g.cfg.Physics.SpeedFactor,
		Deflect:     g.cfg.Physics.Deflect,
		Jitter:      g.cfg.Physics.Jitter,
		MinNormal:   g.cfg.Physics.MinVertical,
	}

	// Player paddle (left), only when the ball moves toward it.
	if g.ball.Vel.X < 0 && g.ball.Pos.X <= paddleOffset+1 && g.ball.Pos.X >= paddleOffset {
		if g.ball.Pos.Y >= g.paddle1Y-half && g.ball.Pos.Y <= g.paddle1Y+half {
			offset := (g.ball.Pos.Y - g.paddle1Y) / half
			g.ball.Vel = engine.ReflectOffPaddle(g.ball.Vel, offset, g.rng, params)
			g.ball.Pos.X = paddleOffset + 1
			g.onVolley()
		}
	}

	// CPU paddle (right).
	if g.ball.Vel.X > 0 && g.ball.Pos.X >= g.cpuPaddleX()-1 && g.ball.Pos.X <= g.cpuPaddleX() {
		if g.ball.Pos.Y >= g.paddle2Y-half && g.ball.Pos.Y <= g.paddle2Y+half {
			offset := (g.ball.Pos.Y - g.paddle2Y) / half
			// Mirror into paddle-normal space: reflection works on X.
			g.ball.Vel = engine.ReflectOffPaddle(g.ball.Vel, offset, g.rng, params)
			g.ball.Pos.X = g.cpuPaddleX() - 1
			g.onVolley()
		}
	}
}

// onVolley applies the difficulty ratchet after each successful return.
func (g *Game) onVolley() {
	g.session.Emit(core.Event{Sound: "paddle"})
	factor := g.cpu.OnVolley()
	if factor != 1 {
		g.ballSpeed *= factor
		g.ball.Vel = g.ball.Vel.Normalized().Scale(g.ball.Vel.Len() * factor)
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

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Pong — You: %d  CPU: %d  (first to %d)", g.score1, g.score2, g.cfg.Gameplay.WinScore)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	// Net.
	for y := hudHeight; y < dst.Height(); y += 2 {
		dst.SetColored(dst.Width()/2, y, netChar, core.ColorGray)
	}

	g.renderPaddle(dst, paddleOffset, g.paddle1Y, core.ColorBrightGreen)
	g.renderPaddle(dst, g.cpuPaddleX(), g.paddle2Y, core.ColorBrightRed)

	if g.serveFor <= 0 || g.session.Phase() == engine.PhaseReady {
		dst.SetColored(int(g.ball.Pos.X), hudHeight+int(g.ball.Pos.Y), ballChar, core.ColorBrightYellow)
	}

	switch {
	case g.session.Phase() == engine.PhaseWon:
		dst.DrawTextCentered(dst.Height()/2, "You Win!  Press R to play again")
	case g.session.Phase() == engine.PhaseGameOver:
		dst.DrawTextCentered(dst.Height()/2, "CPU Wins.  Press R to play again")
	case g.session.Paused():
		dst.DrawTextCentered(dst.Height()/2, "Paused")
	case g.session.Phase() == engine.PhaseReady:
		dst.DrawTextCentered(dst.Height()/2+2, "W/S to move — any direction key to start")
	}
}

func (g *Game) renderPaddle(dst *core.Screen, x, centerY float64, color core.Color) {
	half := int(g.cfg.Physics.PaddleHeight / 2)
	cy := hudHeight + int(centerY)
	for y := cy - half; y <= cy+half; y++ {
		dst.SetColored(int(x), y, paddleChar, color)
	}
}
