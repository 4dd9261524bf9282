package engine

import "github.com/neonhall/arcade/internal/core"

// Facing is a fixed movement direction for grid entities.
type Facing int

const (
	FacingNone Facing = iota
	FacingUp
	FacingDown
	FacingLeft
	FacingRight
)

// Delta returns the unit tile offset for the facing.
func (f Facing) Delta() core.Vec2 {
	switch f {
	case FacingUp:
		return core.Vec2{Y: -1}
	case FacingDown:
		return core.Vec2{Y: 1}
	case FacingLeft:
		return core.Vec2{X: -1}
	case FacingRight:
		return core.Vec2{X: 1}
	default:
		return core.Vec2{}
	}
}

// Opposite returns the reverse facing.
func (f Facing) Opposite() Facing {
	switch f {
	case FacingUp:
		return FacingDown
	case FacingDown:
		return FacingUp
	case FacingLeft:
		return FacingRight
	case FacingRight:
		return FacingLeft
	default:
		return FacingNone
	}
}

// String returns a human-readable name for the facing.
func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "none"
	}
}

// Facings lists the four movement directions in a stable order.
var Facings = [4]Facing{FacingUp, FacingDown, FacingLeft, FacingRight}

// Kind classifies an entity for collision and scoring rules.
type Kind int

const (
	KindPlayer Kind = iota
	KindGhost
	KindBall
	KindPaddle
	KindProjectile
	KindCollectible
	KindHostile
)

// Entity is the shared position/velocity record every game variant builds
// on. Dead entities are skipped by collision checks and rendering, and are
// eligible for removal or respawn.
type Entity struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64   // Circle collision radius; 0 for box-only bodies
	Half   core.Vec2 // Half extents for box collision; zero for circles
	Facing Facing
	Alive  bool
	Kind   Kind
}

// Bounds returns the entity's axis-aligned bounding box. Circle bodies use
// their radius as half extents.
func (e *Entity) Bounds() core.Rect {
	hx, hy := e.Half.X, e.Half.Y
	if hx == 0 && hy == 0 {
		hx, hy = e.Radius, e.Radius
	}
	return core.Rect{X: e.Pos.X - hx, Y: e.Pos.Y - hy, W: hx * 2, H: hy * 2}
}

// Advance integrates position by velocity over dt.
func (e *Entity) Advance(dt float64) {
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
}
