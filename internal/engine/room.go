package engine

import "github.com/neonhall/arcade/internal/core"

// Room is the playfield of a continuous-space game: axis-aligned outer
// bounds plus obstacle boxes (cabinets, pillars, paddles treated as static
// for movement). Read-only during a tick.
type Room struct {
	Bounds    core.Rect
	Obstacles []core.Rect
}

// Resolve applies clamp-and-slide collision to a tentative move: each axis
// is clamped independently against the room bounds and every obstacle, so
// contact with a wall cancels only the penetrating component and the mover
// slides along the surface. radius keeps circular bodies from overlapping
// walls.
func (r *Room) Resolve(from, to core.Vec2, radius float64) core.Vec2 {
	resolved := from

	// X axis first, with Y held at the committed value.
	resolved.X = core.ClampF(to.X, r.Bounds.X+radius, r.Bounds.Right()-radius)
	for _, ob := range r.Obstacles {
		resolved.X = slideAxisX(resolved.X, from.X, resolved.Y, ob, radius)
	}

	// Then Y, using the resolved X.
	resolved.Y = core.ClampF(to.Y, r.Bounds.Y+radius, r.Bounds.Bottom()-radius)
	for _, ob := range r.Obstacles {
		resolved.Y = slideAxisY(resolved.Y, from.Y, resolved.X, ob, radius)
	}

	return resolved
}

// slideAxisX clamps x against the obstacle (grown by radius) if the mover
// would be inside it at row y.
func slideAxisX(x, fromX, y float64, ob core.Rect, radius float64) float64 {
	grown := core.Rect{X: ob.X - radius, Y: ob.Y - radius, W: ob.W + 2*radius, H: ob.H + 2*radius}
	if y <= grown.Y || y >= grown.Bottom() {
		return x
	}
	if x <= grown.X || x >= grown.Right() {
		return x
	}
	// Entered from the side the mover came from; clamp back to that face.
	if fromX <= grown.X {
		return grown.X
	}
	if fromX >= grown.Right() {
		return grown.Right()
	}
	return x
}

// slideAxisY clamps y against the obstacle (grown by radius) if the mover
// would be inside it at column x.
func slideAxisY(y, fromY, x float64, ob core.Rect, radius float64) float64 {
	grown := core.Rect{X: ob.X - radius, Y: ob.Y - radius, W: ob.W + 2*radius, H: ob.H + 2*radius}
	if x <= grown.X || x >= grown.Right() {
		return y
	}
	if y <= grown.Y || y >= grown.Bottom() {
		return y
	}
	if fromY <= grown.Y {
		return grown.Y
	}
	if fromY >= grown.Bottom() {
		return grown.Bottom()
	}
	return y
}
