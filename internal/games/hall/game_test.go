package hall

import (
	"math"
	"testing"

	"github.com/neonhall/arcade/internal/core"
)

const testDt = 1.0 / 60.0

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func TestWalkForwardMovesPlayer(t *testing.T) {
	g := newTestGame(t)
	start := g.mover.Pos

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	for i := 0; i < 30; i++ {
		g.Step(in, testDt)
	}

	// Spawn yaw points up the hall, so forward is negative Y.
	if g.mover.Pos.Y >= start.Y {
		t.Fatalf("player did not advance: %v -> %v", start, g.mover.Pos)
	}
}

func TestWallsBlockMovement(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	// Far more ticks than the hall is deep.
	for i := 0; i < 1200; i++ {
		g.Step(in, testDt)
	}

	if g.mover.Pos.Y < 1 {
		t.Fatalf("player penetrated the north wall: %v", g.mover.Pos)
	}
}

func TestTurnChangesYaw(t *testing.T) {
	g := newTestGame(t)
	startYaw := g.mover.Yaw

	in := core.NewInputFrame()
	in.Set(core.ActionTurnRight)
	for i := 0; i < 30; i++ {
		g.Step(in, testDt)
	}
	if g.mover.Yaw <= startYaw {
		t.Fatalf("yaw = %v after turning right, want > %v", g.mover.Yaw, startYaw)
	}
}

func TestJumpRisesAndLands(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in, testDt)

	if g.mover.Height <= 0 {
		t.Fatal("jump did not leave the ground")
	}

	empty := core.NewInputFrame()
	landed := false
	for i := 0; i < 600; i++ {
		g.Step(empty, testDt)
		if g.mover.Grounded() {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("player never landed")
	}
	if g.mover.Height != 0 {
		t.Fatalf("height = %v after landing, want 0", g.mover.Height)
	}
}

func TestPitchClampedAndReturns(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.Set(core.ActionLookUp)
	for i := 0; i < 600; i++ {
		g.Step(in, testDt)
	}
	if g.mover.Pitch > g.cfg.Movement.PitchMax+1e-9 {
		t.Fatalf("pitch = %v exceeds cone %v", g.mover.Pitch, g.cfg.Movement.PitchMax)
	}

	empty := core.NewInputFrame()
	for i := 0; i < 600; i++ {
		g.Step(empty, testDt)
	}
	if g.mover.Pitch != 0 {
		t.Fatalf("pitch = %v after release, want auto-return to 0", g.mover.Pitch)
	}
}

func TestInteractLaunchesFacedCabinet(t *testing.T) {
	g := newTestGame(t)

	// Stand one tile east of the pacman cabinet, facing west.
	cab := g.cabinets[0]
	g.mover.Pos = cab.pos.Add(core.Vec2{X: 1})
	g.mover.Yaw = math.Pi

	in := core.NewInputFrame()
	in.Set(core.ActionInteract)
	res := g.Step(in, testDt)

	var launch string
	for _, ev := range res.Events {
		if ev.Launch != "" {
			launch = ev.Launch
		}
	}
	if launch != cab.id {
		t.Fatalf("launch = %q, want %q", launch, cab.id)
	}
}

func TestNoLaunchWhenFacingAway(t *testing.T) {
	g := newTestGame(t)

	cab := g.cabinets[0]
	g.mover.Pos = cab.pos.Add(core.Vec2{X: 1})
	g.mover.Yaw = 0 // Back to the cabinet

	in := core.NewInputFrame()
	in.Set(core.ActionInteract)
	res := g.Step(in, testDt)

	for _, ev := range res.Events {
		if ev.Launch != "" {
			t.Fatalf("launched %q while facing away", ev.Launch)
		}
	}
}

func TestNoLaunchOutOfRange(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.Set(core.ActionInteract)
	res := g.Step(in, testDt) // Spawn point is far from every cabinet

	for _, ev := range res.Events {
		if ev.Launch != "" {
			t.Fatalf("launched %q from out of range", ev.Launch)
		}
	}
}
