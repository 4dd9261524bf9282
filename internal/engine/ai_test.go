package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/neonhall/arcade/internal/core"
)

var corridorLayout = []string{
	"#######",
	"#.....#",
	"#######",
}

func corridorView(m *Maze, playerTile int) WorldView {
	return WorldView{
		Maze:         m,
		PlayerPos:    m.TileCenter(playerTile, 1),
		PlayerFacing: FacingRight,
	}
}

func TestGhostReleasedByCollectedCount(t *testing.T) {
	m := ParseMaze(corridorLayout, 1)
	g := NewGhost(m.TileCenter(3, 1), StrategyDirect, 10, 4, rand.New(rand.NewSource(1)))

	view := corridorView(m, 5)
	view.Collected = 9
	g.Step(view, 1.0/60.0)
	if g.State != GhostDormant {
		t.Fatalf("state = %v below release threshold, want dormant", g.State)
	}

	view.Collected = 10
	g.Step(view, 1.0/60.0)
	if g.State == GhostDormant {
		t.Error("ghost still dormant at release threshold")
	}
}

func TestGhostFollowsExitPathThenHunts(t *testing.T) {
	m := ParseMaze(corridorLayout, 1)
	g := NewGhost(m.TileCenter(2, 1), StrategyDirect, 0, 4, rand.New(rand.NewSource(1)))
	g.ExitPath = []core.Vec2{m.TileCenter(3, 1)}

	view := corridorView(m, 5)
	for i := 0; i < 120 && g.State != GhostActive; i++ {
		g.Step(view, 1.0/60.0)
	}

	if g.State != GhostActive {
		t.Fatalf("state = %v after exit path, want active", g.State)
	}
}

func TestGhostDirectChasesPlayer(t *testing.T) {
	m := ParseMaze(corridorLayout, 1)
	g := NewGhost(m.TileCenter(1, 1), StrategyDirect, 0, 4, rand.New(rand.NewSource(1)))
	g.State = GhostActive

	view := corridorView(m, 5)
	start := g.Entity.Pos.Dist(view.PlayerPos)
	for i := 0; i < 30; i++ {
		g.Step(view, 1.0/60.0)
	}

	if got := g.Entity.Pos.Dist(view.PlayerPos); got >= start {
		t.Errorf("distance to player = %v after pursuit, started at %v", got, start)
	}
}

func TestGhostFrightenReversesAndExpires(t *testing.T) {
	m := ParseMaze(corridorLayout, 1)
	g := NewGhost(m.TileCenter(3, 1), StrategyDirect, 0, 4, rand.New(rand.NewSource(1)))
	g.State = GhostActive
	g.Mover.Dir = FacingRight

	g.Frighten(1.0)
	if !g.Frightened() {
		t.Fatal("ghost not frightened")
	}
	if g.Mover.NextDir != FacingLeft {
		t.Error("frightened ghost did not turn around")
	}

	view := corridorView(m, 5)
	for i := 0; i < 90; i++ {
		g.Step(view, 1.0/60.0)
	}
	if g.Frightened() {
		t.Error("frightened mode never expired")
	}
	if g.State != GhostActive {
		t.Errorf("state = %v after fright expiry, want active", g.State)
	}
}

func TestGhostFrightenIgnoredWhileDormant(t *testing.T) {
	m := ParseMaze(corridorLayout, 1)
	g := NewGhost(m.TileCenter(3, 1), StrategyDirect, 50, 4, rand.New(rand.NewSource(1)))

	g.Frighten(5.0)
	if g.State != GhostDormant {
		t.Errorf("state = %v after frighten while dormant, want dormant", g.State)
	}
}

func TestGhostResetToSpawnReExits(t *testing.T) {
	m := ParseMaze(corridorLayout, 1)
	spawn := m.TileCenter(3, 1)
	g := NewGhost(spawn, StrategyDirect, 0, 4, rand.New(rand.NewSource(1)))
	g.State = GhostFrightened
	g.FrightenedFor = 3
	g.Entity.Pos = m.TileCenter(1, 1)

	g.ResetToSpawn()

	if g.Entity.Pos != spawn {
		t.Errorf("pos = %v after reset, want spawn %v", g.Entity.Pos, spawn)
	}
	if g.State != GhostExiting {
		t.Errorf("state = %v after reset, want exiting", g.State)
	}
	if g.Frightened() {
		t.Error("reset ghost still frightened")
	}
}

func TestPaddleAIMoveHonorsDeadZone(t *testing.T) {
	p := DefaultPaddleParams()
	p.Reaction = 0
	p.Noise = 0
	p.MissChance = 0
	a := NewPaddleAI(p, rand.New(rand.NewSource(1)))

	ball := &Entity{Pos: core.Vec2{X: 10, Y: 12}, Vel: core.Vec2{X: 5}, Alive: true}
	a.Retarget(ball, 20, 24)

	// Within the dead zone: stay put.
	if got := a.Move(12.3, 10, 1.0/60.0); got != 12.3 {
		t.Errorf("Move inside dead zone = %v, want 12.3", got)
	}

	// Outside: step toward the target without overshooting.
	got := a.Move(5, 10, 1.0)
	if got != 12 {
		t.Errorf("Move with big step = %v, want snapped to target 12", got)
	}
}

func TestPaddleAIVolleyRatchet(t *testing.T) {
	p := DefaultPaddleParams()
	p.HitThreshold = 2
	p.MissChance = 0.1
	p.MissStep = 0.1
	p.MaxMissChance = 0.25
	p.SpeedStep = 1.1
	a := NewPaddleAI(p, rand.New(rand.NewSource(1)))

	if got := a.OnVolley(); got != 1 {
		t.Errorf("first volley multiplier = %v, want 1", got)
	}
	if got := a.OnVolley(); got != 1.1 {
		t.Errorf("second volley multiplier = %v, want 1.1", got)
	}
	if math.Abs(a.MissChance()-0.2) > 1e-9 {
		t.Errorf("MissChance = %v after one ratchet, want 0.2", a.MissChance())
	}

	// The ratchet caps out.
	a.OnVolley()
	a.OnVolley()
	a.OnVolley()
	a.OnVolley()
	if a.MissChance() != 0.25 {
		t.Errorf("MissChance = %v, want cap 0.25", a.MissChance())
	}
}

// The ball speeds up at every threshold crossing: the cumulative multiplier
// climbs strictly across at least five ratchets, while the miss chance
// respects its cap.
func TestPaddleAIRatchetClimbsAcrossThresholds(t *testing.T) {
	p := DefaultPaddleParams()
	p.HitThreshold = 3
	p.MissChance = 0.05
	p.MissStep = 0.04
	p.MaxMissChance = 0.2
	p.SpeedStep = 1.08
	a := NewPaddleAI(p, rand.New(rand.NewSource(2)))

	const thresholds = 6
	speed := 1.0
	prev := speed
	for i := 0; i < thresholds; i++ {
		for j := 0; j < p.HitThreshold; j++ {
			speed *= a.OnVolley()
		}
		if speed <= prev {
			t.Fatalf("ratchet %d: cumulative speed %v did not climb past %v", i+1, speed, prev)
		}
		prev = speed
	}

	want := math.Pow(p.SpeedStep, thresholds)
	if math.Abs(speed-want) > 1e-9 {
		t.Fatalf("cumulative speed after %d ratchets = %v, want %v", thresholds, speed, want)
	}
	if a.MissChance() > p.MaxMissChance {
		t.Fatalf("miss chance %v exceeds cap %v", a.MissChance(), p.MaxMissChance)
	}
}

func TestPaddleAIOnPointResetsVolleysOnly(t *testing.T) {
	p := DefaultPaddleParams()
	p.HitThreshold = 2
	a := NewPaddleAI(p, rand.New(rand.NewSource(1)))

	a.OnVolley()
	a.OnVolley() // Ratchet fires
	raised := a.MissChance()

	a.OnPoint()
	if a.MissChance() != raised {
		t.Error("OnPoint reset the miss chance")
	}
	if got := a.OnVolley(); got != 1 {
		t.Errorf("multiplier = %v right after OnPoint, want counter restarted", got)
	}
}

func TestPursuitConvergesOnTarget(t *testing.T) {
	p := &Pursuit{Speed: 2, TurnRate: 2 * math.Pi, Heading: math.Pi}
	pos := core.Vec2{X: 0, Y: 0}
	target := core.Vec2{X: 10, Y: 0}

	start := pos.Dist(target)
	for i := 0; i < 120; i++ {
		pos = p.Step(pos, target, 1.0/60.0)
	}

	if got := pos.Dist(target); got >= start {
		t.Errorf("distance = %v after pursuit, started at %v", got, start)
	}
	if math.Abs(p.Heading) > 0.2 && math.Abs(p.Heading-2*math.Pi) > 0.2 {
		t.Errorf("heading = %v, want converged near 0", p.Heading)
	}
}

func TestPursuitTurnRateLimitsHeading(t *testing.T) {
	p := &Pursuit{Speed: 0, TurnRate: 1, Heading: 0}

	// Target straight behind: one tick can only turn TurnRate*dt.
	p.Step(core.Vec2{}, core.Vec2{X: -10, Y: 0.001}, 0.5)
	if math.Abs(math.Abs(p.Heading)-0.5) > 1e-9 {
		t.Errorf("heading = %v after one tick, want |0.5|", p.Heading)
	}
}
