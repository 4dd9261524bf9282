package core

import (
	"math"
	"testing"
)

// boxGrid is a WidthxHeight room whose border tiles are solid.
type boxGrid struct {
	w, h int
}

func (g boxGrid) WallAt(x, y int) bool {
	return x <= 0 || x >= g.w-1 || y <= 0 || y >= g.h-1
}

// openGrid has no walls anywhere; rays must still terminate.
type openGrid struct{}

func (openGrid) WallAt(int, int) bool { return false }

func TestCastRayHitsFacingWall(t *testing.T) {
	g := boxGrid{w: 10, h: 10}
	origin := Vec2{X: 5.5, Y: 5.5}

	hit := CastRay(g, origin, Vec2{X: 1, Y: 0}, 24)

	if hit.MaxRange {
		t.Fatal("ray at a wall reported max range")
	}
	if hit.TileX != 9 {
		t.Errorf("hit tile X = %d, want border tile 9", hit.TileX)
	}
	if hit.Side != 0 {
		t.Errorf("hit side = %d, want vertical face", hit.Side)
	}
	// The +X border face is at x=9, 3.5 units from the eye.
	if math.Abs(hit.Dist-3.5) > 1e-9 {
		t.Errorf("hit dist = %v, want 3.5", hit.Dist)
	}
}

func TestCastRayHorizontalFace(t *testing.T) {
	g := boxGrid{w: 10, h: 10}
	hit := CastRay(g, Vec2{X: 5.5, Y: 5.5}, Vec2{X: 0, Y: 1}, 24)

	if hit.Side != 1 {
		t.Errorf("hit side = %d, want horizontal face", hit.Side)
	}
	if math.Abs(hit.Dist-3.5) > 1e-9 {
		t.Errorf("hit dist = %v, want 3.5", hit.Dist)
	}
}

func TestCastRayDiagonalTerminates(t *testing.T) {
	g := boxGrid{w: 10, h: 10}
	dir := FromAngle(math.Pi / 3)

	hit := CastRay(g, Vec2{X: 5.5, Y: 5.5}, dir, 24)
	if hit.MaxRange {
		t.Error("diagonal ray inside a closed room reported max range")
	}
	if !g.WallAt(hit.TileX, hit.TileY) {
		t.Errorf("reported hit tile (%d,%d) is not a wall", hit.TileX, hit.TileY)
	}
}

func TestCastRayMaxRangeInOpenWorld(t *testing.T) {
	hit := CastRay(openGrid{}, Vec2{X: 0.5, Y: 0.5}, Vec2{X: 1, Y: 0}, 8)

	if !hit.MaxRange {
		t.Fatal("unbounded ray did not stop at max range")
	}
	if hit.Dist != 8 {
		t.Errorf("max-range dist = %v, want 8", hit.Dist)
	}
}

func TestWallShadeDarkensWithDistance(t *testing.T) {
	near := WallShade(0.5, 24, 0)
	far := WallShade(23, 24, 0)

	if near != '█' {
		t.Errorf("near shade = %q, want full block", near)
	}
	if far != '░' {
		t.Errorf("far shade = %q, want light shade", far)
	}
}

func TestProjectPointInView(t *testing.T) {
	eye := Vec2{X: 0, Y: 0}

	// Dead ahead lands in the middle column.
	col, invDist, ok := ProjectPoint(eye, 0, math.Pi/2, Vec2{X: 4, Y: 0}, 80)
	if !ok {
		t.Fatal("point dead ahead not visible")
	}
	if col != 40 {
		t.Errorf("col = %d, want center 40", col)
	}
	if math.Abs(invDist-0.25) > 1e-9 {
		t.Errorf("invDist = %v, want 0.25", invDist)
	}
}

func TestProjectPointBehindViewer(t *testing.T) {
	if _, _, ok := ProjectPoint(Vec2{}, 0, math.Pi/2, Vec2{X: -4, Y: 0}, 80); ok {
		t.Error("point behind the viewer reported visible")
	}
}

func TestProjectPointOutsideCone(t *testing.T) {
	// 60 degrees off-axis with a 90 degree FOV is outside the half-cone.
	p := FromAngle(math.Pi / 3).Scale(4)
	if _, _, ok := ProjectPoint(Vec2{}, 0, math.Pi/2, p, 80); ok {
		t.Error("point outside the view cone reported visible")
	}
}

func TestRenderFirstPersonFillsView(t *testing.T) {
	g := boxGrid{w: 10, h: 10}
	s := NewScreen(40, 20)

	RenderFirstPerson(s, g, Vec2{X: 5.5, Y: 5.5}, 0, 0, math.Pi/2, 0, 0, 20)

	// The center column looks straight at a wall 3.5 tiles away: wall
	// shading around the horizon, floor dots below the wall base.
	wallRunes := map[rune]bool{'█': true, '▓': true, '▒': true, '░': true}
	if !wallRunes[s.Get(20, 10)] {
		t.Errorf("center cell = %q, want a wall shade", s.Get(20, 10))
	}
	if got := s.Get(20, 19); got != '·' {
		t.Errorf("bottom cell = %q, want floor", got)
	}
}
