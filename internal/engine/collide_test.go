package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/neonhall/arcade/internal/core"
)

func TestOverlapsSkipsDeadEntities(t *testing.T) {
	a := &Entity{Pos: core.Vec2{X: 5, Y: 5}, Radius: 1, Alive: true}
	b := &Entity{Pos: core.Vec2{X: 5.5, Y: 5}, Radius: 1, Alive: true}

	if !Overlaps(a, b) {
		t.Fatal("overlapping live entities not detected")
	}

	b.Alive = false
	if Overlaps(a, b) {
		t.Error("dead entity registered a collision")
	}
	if Overlaps(a, nil) {
		t.Error("nil entity registered a collision")
	}
}

func TestCircleHitUsesRadiusSum(t *testing.T) {
	a := &Entity{Pos: core.Vec2{X: 0, Y: 0}, Radius: 1, Alive: true}
	b := &Entity{Pos: core.Vec2{X: 1.9, Y: 0}, Radius: 1, Alive: true}

	if !CircleHit(a, b) {
		t.Error("circles within radius sum not detected")
	}

	b.Pos.X = 2.1
	if CircleHit(a, b) {
		t.Error("separated circles registered a hit")
	}
}

func TestPushOutSeparatesExactly(t *testing.T) {
	a := &Entity{Pos: core.Vec2{X: 1.0, Y: 0}, Radius: 1, Alive: true}
	b := &Entity{Pos: core.Vec2{X: 0, Y: 0}, Radius: 1, Alive: true}

	PushOut(a, b)

	if got := a.Pos.Dist(b.Pos); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("post-separation distance = %v, want 2.0", got)
	}
}

func TestPushOutNoOpWhenApart(t *testing.T) {
	a := &Entity{Pos: core.Vec2{X: 5, Y: 0}, Radius: 1, Alive: true}
	b := &Entity{Pos: core.Vec2{X: 0, Y: 0}, Radius: 1, Alive: true}

	PushOut(a, b)
	if a.Pos.X != 5 {
		t.Errorf("separated entity moved to %v", a.Pos)
	}
}

func TestReflectReversesAndScalesNormal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := ReflectParams{SpeedFactor: 1.05, Deflect: 2, Jitter: 0, MinNormal: 0.1}

	// Dead-center strike: no deflection, the normal reverses and scales
	// by exactly SpeedFactor.
	in := core.Vec2{X: -10, Y: 2}
	out := ReflectOffPaddle(in, 0, rng, p)

	if math.Abs(out.X-10.5) > 1e-9 {
		t.Errorf("out.X = %v, want 10.5", out.X)
	}
	if math.Abs(out.Y-2.1) > 1e-9 {
		t.Errorf("out.Y = %v, want 2.1", out.Y)
	}
}

func TestReflectPreservesScaledSpeed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := ReflectParams{SpeedFactor: 1.05, Deflect: 2, Jitter: 0.5, MinNormal: 0.1}

	in := core.Vec2{X: -6, Y: 3}
	out := ReflectOffPaddle(in, -0.8, rng, p)

	want := in.Len() * p.SpeedFactor
	if math.Abs(out.Len()-want) > 1e-9 {
		t.Errorf("|out| = %v, want %v", out.Len(), want)
	}
}

func TestReflectTangentFollowsStrikeOffset(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := ReflectParams{SpeedFactor: 1, Deflect: 5, Jitter: 0, MinNormal: 0}

	// Flat incoming ball struck above center deflects upward-positive.
	out := ReflectOffPaddle(core.Vec2{X: -8, Y: 0}, 1, rng, p)
	if out.Y <= 0 {
		t.Errorf("out.Y = %v after high strike, want > 0", out.Y)
	}

	out = ReflectOffPaddle(core.Vec2{X: -8, Y: 0}, -1, rng, p)
	if out.Y >= 0 {
		t.Errorf("out.Y = %v after low strike, want < 0", out.Y)
	}
}

func TestReflectDeflectionGrowsWithOffset(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := ReflectParams{SpeedFactor: 1, Deflect: 5, Jitter: 0, MinNormal: 0}

	edge := ReflectOffPaddle(core.Vec2{X: -8, Y: 0}, 1, rng, p)
	glance := ReflectOffPaddle(core.Vec2{X: -8, Y: 0}, 0.2, rng, p)

	if math.Abs(edge.Y) <= math.Abs(glance.Y) {
		t.Errorf("edge strike |Y| = %v, glancing strike |Y| = %v; want edge steeper",
			math.Abs(edge.Y), math.Abs(glance.Y))
	}
	if got := edge.Len(); math.Abs(got-8) > 1e-9 {
		t.Errorf("|out| after deflection = %v, want incoming speed 8", got)
	}
}

func TestReflectAntiStalemateFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := ReflectParams{SpeedFactor: 1, Deflect: 0, Jitter: 0, MinNormal: 0.4}

	// Dead-center strike on a flat ball would return exactly horizontal
	// without the floor.
	out := ReflectOffPaddle(core.Vec2{X: -8, Y: 0}, 0, rng, p)
	if math.Abs(out.Y) != p.MinNormal {
		t.Errorf("|out.Y| = %v, want floor %v", math.Abs(out.Y), p.MinNormal)
	}
}

func TestReflectZeroVelocityUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := ReflectOffPaddle(core.Vec2{}, 0, rng, ReflectParams{SpeedFactor: 1.05})
	if out.X != 0 || out.Y != 0 {
		t.Errorf("stationary ball reflected to %v", out)
	}
}

func TestBounceOffWall(t *testing.T) {
	v := core.Vec2{X: 3, Y: -4}

	if got := BounceOffWall(v, true); got.X != -3 || got.Y != -4 {
		t.Errorf("horizontal bounce = %v", got)
	}
	if got := BounceOffWall(v, false); got.X != 3 || got.Y != 4 {
		t.Errorf("vertical bounce = %v", got)
	}
}
