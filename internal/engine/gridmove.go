package engine

import (
	"math"

	"github.com/neonhall/arcade/internal/core"
)

// turnEpsilon is how close to a tile center (in tiles) an entity must be
// before a perpendicular turn is committed.
const turnEpsilon = 0.45

// GridMover advances an entity along fixed tile directions: the grid
// movement policy shared by the maze player and the ghosts. Collision is
// by rollback: a step whose destination tile is a wall is discarded whole.
type GridMover struct {
	Dir     Facing
	NextDir Facing
	Speed   float64 // World units per second

	// ThroughSpawn lets ghosts traverse the house interior.
	ThroughSpawn bool

	// blocked records that the last step hit a wall. A stalled entity can
	// sit anywhere in its tile, so the buffered turn then commits without
	// the tile-center proximity gate.
	blocked bool
}

// Step moves the entity for one tick. Returns true if the move was blocked
// by a wall (position rolled back), which AI agents use as a cue to pick a
// new direction.
func (gm *GridMover) Step(e *Entity, m *Maze, dt float64) bool {
	gm.tryTurn(e, m)

	if gm.Dir == FacingNone {
		return false
	}

	before := e.Pos
	e.Pos = e.Pos.Add(gm.Dir.Delta().Scale(gm.Speed * dt))

	gm.wrap(e, m)

	tx, ty := m.TileOf(e.Pos)
	if !m.Walkable(tx, ty, gm.ThroughSpawn) {
		// Rollback collision: discard the attempted move entirely. The
		// position after a blocked tick equals the position before it.
		e.Pos = before
		gm.blocked = true
		return true
	}

	gm.blocked = false
	e.Facing = gm.Dir
	return false
}

// tryTurn commits a buffered direction change when the adjacent cell in
// that direction is open, snapping the perpendicular coordinate to the
// tile center so the entity stays in its lane.
func (gm *GridMover) tryTurn(e *Entity, m *Maze) {
	if gm.NextDir == FacingNone || gm.NextDir == gm.Dir {
		return
	}

	tx, ty := m.TileOf(e.Pos)
	center := m.TileCenter(tx, ty)

	// Reversal is always allowed; perpendicular turns only near the center
	// of a tile whose neighbor in the new direction is open.
	if gm.NextDir == gm.Dir.Opposite() {
		gm.Dir = gm.NextDir
		return
	}

	if !gm.blocked && e.Pos.Dist(center) > turnEpsilon*m.TileSize {
		return
	}

	d := gm.NextDir.Delta()
	if !m.Walkable(tx+int(d.X), ty+int(d.Y), gm.ThroughSpawn) {
		return
	}

	gm.Dir = gm.NextDir
	// Snap the perpendicular coordinate so motion continues from the lane
	// center.
	if gm.Dir == FacingUp || gm.Dir == FacingDown {
		e.Pos.X = center.X
	} else {
		e.Pos.Y = center.Y
	}
}

// wrap applies the horizontal tunnel: running off one side re-enters on
// the other. Vertical position is clamped, never wrapped.
func (gm *GridMover) wrap(e *Entity, m *Maze) {
	if e.Pos.X < 0 {
		e.Pos.X = m.WidthPixels()
	} else if e.Pos.X > m.WidthPixels() {
		e.Pos.X = 0
	}
	e.Pos.Y = core.ClampF(e.Pos.Y, 0, m.HeightPixels())
}

// AtTileCenter reports whether the entity is within epsilon of the center
// of its current tile. AI agents re-evaluate direction at these crossings.
func AtTileCenter(e *Entity, m *Maze, epsilon float64) bool {
	tx, ty := m.TileOf(e.Pos)
	return e.Pos.Dist(m.TileCenter(tx, ty)) < epsilon*m.TileSize
}

// ValidDirections returns the facings whose adjacent tile from (tx, ty) is
// walkable, excluding the reverse of current unless nothing else is open.
func ValidDirections(m *Maze, tx, ty int, current Facing, throughSpawn bool) []Facing {
	var open []Facing
	reverse := current.Opposite()
	for _, f := range Facings {
		if f == reverse {
			continue
		}
		d := f.Delta()
		if m.Walkable(tx+int(d.X), ty+int(d.Y), throughSpawn) {
			open = append(open, f)
		}
	}
	if len(open) == 0 && reverse != FacingNone {
		d := reverse.Delta()
		if m.Walkable(tx+int(d.X), ty+int(d.Y), throughSpawn) {
			open = append(open, reverse)
		}
	}
	return open
}

// distanceToward scores a candidate direction by the Manhattan distance
// from the adjacent tile to the target tile.
func distanceToward(m *Maze, tx, ty int, f Facing, target core.Vec2) float64 {
	d := f.Delta()
	next := m.TileCenter(tx+int(d.X), ty+int(d.Y))
	return math.Abs(next.X-target.X) + math.Abs(next.Y-target.Y)
}
