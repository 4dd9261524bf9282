package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 3, Y: -1}

	if got := a.Add(b); got != (Vec2{X: 4, Y: 1}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{X: -2, Y: 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec2{X: 2, Y: 4}) {
		t.Errorf("Scale = %v", got)
	}
}

func TestVec2LenAndDist(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	if v.Len() != 5 {
		t.Errorf("Len = %v, want 5", v.Len())
	}
	if got := (Vec2{X: 1, Y: 1}).Dist(Vec2{X: 4, Y: 5}); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
	if got := (Vec2{}).Manhattan(Vec2{X: -2, Y: 3}); got != 5 {
		t.Errorf("Manhattan = %v, want 5", got)
	}
}

func TestVec2NormalizedZeroSafe(t *testing.T) {
	if got := (Vec2{}).Normalized(); got != (Vec2{}) {
		t.Errorf("Normalized zero vector = %v", got)
	}
	if got := (Vec2{X: 0, Y: -7}).Normalized(); got != (Vec2{X: 0, Y: -1}) {
		t.Errorf("Normalized = %v", got)
	}
}

func TestAngleRoundTrip(t *testing.T) {
	for _, rad := range []float64{0, math.Pi / 4, math.Pi / 2, -math.Pi / 3} {
		v := FromAngle(rad)
		if math.Abs(v.Len()-1) > 1e-9 {
			t.Errorf("FromAngle(%v) not unit length: %v", rad, v.Len())
		}
		if got := v.Angle(); math.Abs(got-rad) > 1e-9 {
			t.Errorf("Angle(FromAngle(%v)) = %v", rad, got)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 4, 4)

	if !a.Intersects(NewRect(3, 3, 4, 4)) {
		t.Error("overlapping rects not detected")
	}
	if a.Intersects(NewRect(5, 0, 2, 2)) {
		t.Error("separated rects intersect")
	}
	// Edge-touching rects do not count as overlap.
	if a.Intersects(NewRect(4, 0, 2, 2)) {
		t.Error("edge-touching rects intersect")
	}
}

func TestRectContainsAndCenter(t *testing.T) {
	r := NewRect(2, 2, 4, 6)

	if !r.Contains(Vec2{X: 3, Y: 5}) {
		t.Error("interior point not contained")
	}
	if r.Contains(Vec2{X: 7, Y: 5}) {
		t.Error("exterior point contained")
	}
	if got := r.Center(); got != (Vec2{X: 4, Y: 5}) {
		t.Errorf("Center = %v, want (4,5)", got)
	}
}

func TestClamps(t *testing.T) {
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp high = %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp low = %d", got)
	}
	if got := ClampF(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampF passthrough = %v", got)
	}
	if got := ClampF(-2.5, -1, 1); got != -1 {
		t.Errorf("ClampF low = %v", got)
	}
}
