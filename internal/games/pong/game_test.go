package pong

import (
	"math"
	"testing"

	"github.com/neonhall/arcade/internal/config"
	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
)

const testDt = 1.0 / 60.0

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func startGame(g *Game) {
	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	g.Step(in, testDt)
}

// waitOutServe ticks until the serve countdown has elapsed.
func waitOutServe(g *Game) {
	in := core.NewInputFrame()
	for i := 0; i < 70; i++ {
		g.Step(in, testDt)
		if g.serveFor <= 0 {
			return
		}
	}
}

func TestReadyUntilFirstInput(t *testing.T) {
	g := newTestGame(t, 1)

	start := g.ball.Pos
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame(), testDt)
	}
	if g.ball.Pos != start {
		t.Fatalf("ball moved before first input: %v -> %v", start, g.ball.Pos)
	}

	startGame(g)
	if g.session.Phase() != engine.PhasePlaying {
		t.Fatalf("phase = %v after directional input, want playing", g.session.Phase())
	}
}

func TestServeDelayHoldsBall(t *testing.T) {
	g := newTestGame(t, 2)
	startGame(g)

	center := core.Vec2{X: g.fieldW / 2, Y: g.fieldH / 2}
	// Half the serve window: ball must still be parked at center.
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame(), testDt)
	}
	if g.ball.Pos != center {
		t.Fatalf("ball moved during serve delay: %v", g.ball.Pos)
	}

	waitOutServe(g)
	g.Step(core.NewInputFrame(), testDt)
	if g.ball.Pos == center {
		t.Fatal("ball never released after serve delay")
	}
}

func TestPlayerPaddleClamped(t *testing.T) {
	g := newTestGame(t, 3)
	startGame(g)

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	for i := 0; i < 600; i++ {
		g.Step(in, testDt)
	}
	half := g.cfg.Physics.PaddleHeight / 2
	if g.paddle1Y < half {
		t.Fatalf("paddle escaped top edge: center %v < %v", g.paddle1Y, half)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionDown)
	for i := 0; i < 600; i++ {
		g.Step(in, testDt)
	}
	if g.paddle1Y > g.fieldH-half {
		t.Fatalf("paddle escaped bottom edge: center %v > %v", g.paddle1Y, g.fieldH-half)
	}
}

func TestPlayerPaddleReturnsBall(t *testing.T) {
	g := newTestGame(t, 4)
	startGame(g)
	waitOutServe(g)

	// Park the ball just in front of the player paddle, heading in for a
	// dead-center strike. Jitter off so the bounce is the unperturbed one.
	g.cfg.Physics.Jitter = 0
	g.ball.Pos = core.Vec2{X: paddleOffset + 1.2, Y: g.paddle1Y}
	g.ball.Vel = core.Vec2{X: -g.ballSpeed, Y: 0}

	g.Step(core.NewInputFrame(), testDt)
	if g.ball.Vel.X <= 0 {
		t.Fatalf("ball not reflected off player paddle: vel %v", g.ball.Vel)
	}

	wantVX := g.ballSpeed * g.cfg.Physics.SpeedFactor
	diff := g.ball.Vel.X - wantVX
	if diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("reflected horizontal speed = %v, want %v", g.ball.Vel.X, wantVX)
	}
}

func TestPointWhenBallPassesCPU(t *testing.T) {
	g := newTestGame(t, 5)
	startGame(g)
	waitOutServe(g)

	// Force the ball past the right wall, clear of the CPU paddle.
	g.ball.Pos = core.Vec2{X: g.fieldW - 0.1, Y: 1}
	g.ball.Vel = core.Vec2{X: g.ballSpeed, Y: 0}
	g.paddle2Y = g.fieldH - 3

	g.Step(core.NewInputFrame(), testDt)
	if g.score1 != 1 {
		t.Fatalf("score1 = %d after ball passed CPU, want 1", g.score1)
	}
	if g.State().Score != 1 {
		t.Fatalf("State().Score = %d, want 1", g.State().Score)
	}
	if g.serveFor <= 0 {
		t.Fatal("expected a fresh serve countdown after the point")
	}
}

func TestWinAtWinScore(t *testing.T) {
	g := newTestGame(t, 6)
	startGame(g)

	g.score1 = g.cfg.Gameplay.WinScore - 1
	g.pointScored(1)

	if g.session.Phase() != engine.PhaseWon {
		t.Fatalf("phase = %v at win score, want won", g.session.Phase())
	}

	// Run out the end delay: the outcome must surface exactly once.
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame(), testDt)
	}
	st := g.State()
	if !st.GameOver || st.Outcome != core.OutcomeWon {
		t.Fatalf("state = %+v after end delay, want game over + won", st)
	}
}

func TestLossAtCPUWinScore(t *testing.T) {
	g := newTestGame(t, 7)
	startGame(g)

	g.score2 = g.cfg.Gameplay.WinScore - 1
	g.pointScored(2)

	if g.session.Phase() != engine.PhaseGameOver {
		t.Fatalf("phase = %v when CPU reaches win score, want game over", g.session.Phase())
	}
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame(), testDt)
	}
	if g.State().Outcome != core.OutcomeLost {
		t.Fatalf("outcome = %v, want lost", g.State().Outcome)
	}
}

func TestVolleyRatchet(t *testing.T) {
	g := newTestGame(t, 8)
	startGame(g)
	waitOutServe(g)

	baseMiss := g.cpu.MissChance()

	// The ball speed climbs strictly at every threshold crossing of a
	// long rally.
	prev := g.ballSpeed
	for ratchet := 0; ratchet < 5; ratchet++ {
		for i := 0; i < g.cfg.CPU.HitThreshold; i++ {
			g.onVolley()
		}
		if g.ballSpeed <= prev {
			t.Fatalf("ratchet %d: ball speed %v did not climb past %v", ratchet+1, g.ballSpeed, prev)
		}
		prev = g.ballSpeed
	}
	if g.cpu.MissChance() <= baseMiss {
		t.Fatalf("miss chance did not ratchet: %v -> %v", baseMiss, g.cpu.MissChance())
	}

	// The miss chance must stay capped no matter how long the rally runs.
	for i := 0; i < 40*g.cfg.CPU.HitThreshold; i++ {
		g.onVolley()
	}
	if got := g.cpu.MissChance(); got > g.cfg.CPU.MaxMissChance {
		t.Fatalf("miss chance %v exceeds cap %v", got, g.cfg.CPU.MaxMissChance)
	}
}

func TestMissChanceResetsCounterNotChance(t *testing.T) {
	g := newTestGame(t, 9)
	startGame(g)

	for i := 0; i < g.cfg.CPU.HitThreshold; i++ {
		g.onVolley()
	}
	raised := g.cpu.MissChance()

	g.pointScored(2)
	if g.cpu.MissChance() != raised {
		t.Fatalf("miss chance changed on point: %v -> %v", raised, g.cpu.MissChance())
	}
}

func TestPresetLevelRaisesOpeningBallSpeed(t *testing.T) {
	difficultyPreset = string(config.DifficultyHard)
	defer func() { difficultyPreset = "" }()

	g := newTestGame(t, 9)

	want := g.cfg.Physics.BallSpeed * g.cfg.Difficulty.SpeedScale(levelSpeedBoost)
	if math.Abs(g.ballSpeed-want) > 1e-9 {
		t.Fatalf("opening ball speed = %v, want %v", g.ballSpeed, want)
	}
	if g.cfg.Difficulty.Level() <= 0 {
		t.Fatal("hard preset reported progression level 0")
	}
	if g.ballSpeed <= g.cfg.Physics.BallSpeed {
		t.Fatalf("progression level did not raise ball speed: %v <= %v",
			g.ballSpeed, g.cfg.Physics.BallSpeed)
	}
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64) (core.Vec2, int, int) {
		g := newTestGame(t, seed)
		startGame(g)
		in := core.NewInputFrame()
		in.Set(core.ActionDown)
		for i := 0; i < 900; i++ {
			g.Step(in, testDt)
		}
		return g.ball.Pos, g.score1, g.score2
	}

	p1, s1a, s2a := run(77)
	p2, s1b, s2b := run(77)
	if p1 != p2 || s1a != s1b || s2a != s2b {
		t.Fatalf("same seed diverged: (%v %d %d) vs (%v %d %d)", p1, s1a, s2a, p2, s1b, s2b)
	}
}
