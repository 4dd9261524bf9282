package engine

import (
	"math"
	"math/rand"

	"github.com/neonhall/arcade/internal/core"
)

// Overlaps reports AABB overlap between two live entities. Dead entities
// never collide.
func Overlaps(a, b *Entity) bool {
	if a == nil || b == nil || !a.Alive || !b.Alive {
		return false
	}
	return a.Bounds().Intersects(b.Bounds())
}

// CircleHit reports whether two live circular entities intersect, using a
// Euclidean distance test against the sum of radii.
func CircleHit(a, b *Entity) bool {
	if a == nil || b == nil || !a.Alive || !b.Alive {
		return false
	}
	return a.Pos.Dist(b.Pos) < a.Radius+b.Radius
}

// PushOut moves a out of b along the line connecting their centers by
// exactly the overlap distance. No-op if the circles do not intersect or
// are concentric.
func PushOut(a, b *Entity) {
	dist := a.Pos.Dist(b.Pos)
	overlap := a.Radius + b.Radius - dist
	if overlap <= 0 || dist == 0 {
		return
	}
	a.Pos = a.Pos.Add(a.Pos.Sub(b.Pos).Normalized().Scale(overlap))
}

// ReflectParams tunes the ball-vs-paddle bounce.
type ReflectParams struct {
	SpeedFactor float64 // Speed multiplier per hit, >= 1
	Deflect     float64 // Velocity added per unit of strike offset
	Jitter      float64 // Magnitude of the random perturbation
	MinNormal   float64 // Anti-stalemate floor on the tangent component
}

// ReflectOffPaddle bounces a ball off a vertical paddle. vel is the
// incoming velocity with X the axis normal to the paddle face; hitOffset
// is the strike position relative to the paddle center, normalized to
// [-1, 1].
//
// The normal component reverses and the tangent component picks up a
// deflection proportional to the strike offset plus a small random
// perturbation. The result is then re-fit so the outgoing speed equals
// the incoming speed times SpeedFactor: deflection steers the bounce, it
// never adds energy, and a dead-center strike reverses the normal by
// exactly SpeedFactor. A residual floor on the tangent component keeps
// the ball from settling into a horizontal stalemate.
func ReflectOffPaddle(vel core.Vec2, hitOffset float64, rng *rand.Rand, p ReflectParams) core.Vec2 {
	speed := vel.Len()
	if speed == 0 {
		return vel
	}

	out := core.Vec2{
		X: -vel.X,
		Y: vel.Y + hitOffset*p.Deflect + (rng.Float64()-0.5)*p.Jitter,
	}
	out = out.Normalized().Scale(speed * p.SpeedFactor)

	// Anti-stalemate: a near-horizontal bounce gets a tangent nudge.
	if math.Abs(out.Y) < p.MinNormal {
		switch {
		case out.Y < 0:
			out.Y = -p.MinNormal
		case out.Y > 0:
			out.Y = p.MinNormal
		default:
			if rng.Intn(2) == 0 {
				out.Y = p.MinNormal
			} else {
				out.Y = -p.MinNormal
			}
		}
	}

	return out
}

// BounceOffWall reflects the velocity component named by horizontal: true
// flips X (side walls), false flips Y (top/bottom walls).
func BounceOffWall(vel core.Vec2, horizontal bool) core.Vec2 {
	if horizontal {
		vel.X = -vel.X
	} else {
		vel.Y = -vel.Y
	}
	return vel
}
