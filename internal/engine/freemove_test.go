package engine

import (
	"math"
	"testing"

	"github.com/neonhall/arcade/internal/core"
)

const moverDt = 1.0 / 60.0

func newTestMover() *FreeMover {
	return &FreeMover{
		Pos:    core.Vec2{X: 5, Y: 5},
		Radius: 0.3,
		Params: DefaultMoveParams(),
	}
}

func holding(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestFreeMoverWalksAlongYaw(t *testing.T) {
	fm := newTestMover()
	fm.Yaw = 0 // Facing +X

	fm.Step(holding(core.ActionUp), nil, 0.5)

	want := 5 + fm.Params.MoveSpeed*0.5
	if math.Abs(fm.Pos.X-want) > 1e-9 {
		t.Errorf("Pos.X = %v, want %v", fm.Pos.X, want)
	}
	if math.Abs(fm.Pos.Y-5) > 1e-9 {
		t.Errorf("Pos.Y = %v, want unchanged", fm.Pos.Y)
	}
}

func TestFreeMoverDiagonalIsNormalized(t *testing.T) {
	fm := newTestMover()
	fm.Yaw = 0

	fm.Step(holding(core.ActionUp, core.ActionRight), nil, 0.5)

	moved := fm.Pos.Dist(core.Vec2{X: 5, Y: 5})
	want := fm.Params.MoveSpeed * 0.5
	if math.Abs(moved-want) > 1e-9 {
		t.Errorf("diagonal distance = %v, want %v (no speed boost)", moved, want)
	}
}

func TestFreeMoverRespectsRoom(t *testing.T) {
	fm := newTestMover()
	fm.Yaw = 0
	room := &Room{Bounds: core.NewRect(0, 0, 6, 10)}

	for i := 0; i < 120; i++ {
		fm.Step(holding(core.ActionUp), room, moverDt)
	}

	if fm.Pos.X != 6-fm.Radius {
		t.Errorf("Pos.X = %v, want pinned at wall %v", fm.Pos.X, 6-fm.Radius)
	}
}

func TestFreeMoverTurns(t *testing.T) {
	fm := newTestMover()

	fm.Step(holding(core.ActionTurnRight), nil, 0.5)
	want := fm.Params.TurnSpeed * 0.5
	if math.Abs(fm.Yaw-want) > 1e-9 {
		t.Errorf("Yaw = %v, want %v", fm.Yaw, want)
	}

	fm.Step(holding(core.ActionTurnLeft), nil, 0.5)
	if math.Abs(fm.Yaw) > 1e-9 {
		t.Errorf("Yaw = %v after symmetric turns, want 0", fm.Yaw)
	}
}

func TestFreeMoverJumpParabola(t *testing.T) {
	fm := newTestMover()

	fm.Step(holding(core.ActionJump), nil, moverDt)
	if !fm.Jumping {
		t.Fatal("jump did not start")
	}

	rose := false
	landed := false
	for i := 0; i < 300; i++ {
		fm.Step(core.NewInputFrame(), nil, moverDt)
		if fm.Height > 0.5 {
			rose = true
		}
		if rose && fm.Grounded() {
			landed = true
			break
		}
	}

	if !rose {
		t.Error("jump never gained height")
	}
	if !landed {
		t.Error("jump never landed")
	}
	if fm.Height != 0 {
		t.Errorf("Height = %v after landing, want 0", fm.Height)
	}
}

func TestFreeMoverNoDoubleJump(t *testing.T) {
	fm := newTestMover()

	fm.Step(holding(core.ActionJump), nil, moverDt)
	peak := fm.VertVel

	// Holding jump mid-air must not re-trigger the impulse.
	fm.Step(holding(core.ActionJump), nil, moverDt)
	if fm.VertVel >= peak {
		t.Errorf("VertVel = %v mid-air, want decaying below %v", fm.VertVel, peak)
	}
}

func TestFreeMoverPitchClampsAndRecenters(t *testing.T) {
	fm := newTestMover()

	for i := 0; i < 180; i++ {
		fm.Step(holding(core.ActionLookUp), nil, moverDt)
	}
	if fm.Pitch != fm.Params.PitchMax {
		t.Errorf("Pitch = %v after long look-up, want clamp %v", fm.Pitch, fm.Params.PitchMax)
	}

	// Released, the pitch eases back to level.
	for i := 0; i < 180; i++ {
		fm.Step(core.NewInputFrame(), nil, moverDt)
	}
	if fm.Pitch != 0 {
		t.Errorf("Pitch = %v after release, want 0", fm.Pitch)
	}
}
