package core

import "math"

// WallGrid is the read-only map queried by the raycaster.
// Out-of-bounds queries must report a wall so rays always terminate.
type WallGrid interface {
	WallAt(tileX, tileY int) bool
}

// RayHit describes where a single ray met a wall.
type RayHit struct {
	Dist     float64 // Perpendicular distance, fish-eye corrected
	Side     int     // 0 = vertical wall face, 1 = horizontal wall face
	TileX    int
	TileY    int
	MaxRange bool // True if the ray gave up before hitting anything
}

// CastRay walks the grid with DDA from origin along dir (unit vector)
// and returns the first wall hit. maxDist bounds the walk.
func CastRay(grid WallGrid, origin Vec2, dir Vec2, maxDist float64) RayHit {
	tileX := int(math.Floor(origin.X))
	tileY := int(math.Floor(origin.Y))

	// Distance along the ray between successive x/y grid lines.
	deltaX := math.Inf(1)
	if dir.X != 0 {
		deltaX = math.Abs(1 / dir.X)
	}
	deltaY := math.Inf(1)
	if dir.Y != 0 {
		deltaY = math.Abs(1 / dir.Y)
	}

	var stepX, stepY int
	var sideX, sideY float64

	if dir.X < 0 {
		stepX = -1
		sideX = (origin.X - float64(tileX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(tileX) + 1 - origin.X) * deltaX
	}
	if dir.Y < 0 {
		stepY = -1
		sideY = (origin.Y - float64(tileY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(tileY) + 1 - origin.Y) * deltaY
	}

	side := 0
	for {
		if sideX < sideY {
			sideX += deltaX
			tileX += stepX
			side = 0
		} else {
			sideY += deltaY
			tileY += stepY
			side = 1
		}

		var dist float64
		if side == 0 {
			dist = sideX - deltaX
		} else {
			dist = sideY - deltaY
		}
		if dist > maxDist {
			return RayHit{Dist: maxDist, Side: side, TileX: tileX, TileY: tileY, MaxRange: true}
		}
		if grid.WallAt(tileX, tileY) {
			return RayHit{Dist: dist, Side: side, TileX: tileX, TileY: tileY}
		}
	}
}

// Shade runes from near to far; the renderer indexes by hit distance.
var wallShades = []rune{'█', '▓', '▒', '░'}

// WallShade picks a shade rune for a wall column at the given distance.
func WallShade(dist, maxDist float64, side int) rune {
	t := ClampF(dist/maxDist, 0, 0.999)
	idx := int(t * float64(len(wallShades)))
	// Horizontal faces render one step darker for a cheap lighting cue.
	if side == 1 && idx < len(wallShades)-1 {
		idx++
	}
	return wallShades[idx]
}

// RenderFirstPerson draws a raycast view of the grid into dst between rows
// top (inclusive) and bottom (exclusive). pos is the eye position in tile
// space, yaw the view heading, pitch shifts the horizon, fov the horizontal
// field of view in radians, and eyeHeight (0..1, ground relative) lowers or
// raises the horizon with jumps.
func RenderFirstPerson(dst *Screen, grid WallGrid, pos Vec2, yaw, pitch, fov, eyeHeight float64, top, bottom int) {
	w := dst.Width()
	rows := bottom - top
	if w <= 0 || rows <= 0 {
		return
	}

	const maxDist = 24.0
	horizon := top + rows/2 - int(pitch*float64(rows)) - int(eyeHeight*float64(rows)/4)

	for x := 0; x < w; x++ {
		// Camera-plane offset in [-1, 1] for this column.
		camX := 2*float64(x)/float64(w) - 1
		angle := yaw + camX*fov/2
		hit := CastRay(grid, pos, FromAngle(angle), maxDist)

		// Fish-eye correction: project onto the view direction.
		dist := hit.Dist * math.Cos(angle-yaw)
		if dist < 0.1 {
			dist = 0.1
		}

		colH := int(float64(rows) / dist)
		if colH > rows*2 {
			colH = rows * 2
		}
		wallTop := horizon - colH/2
		wallBot := horizon + colH/2

		for y := top; y < bottom; y++ {
			switch {
			case y >= wallTop && y <= wallBot && !hit.MaxRange:
				dst.SetColored(x, y, WallShade(dist, maxDist, hit.Side), ColorGray)
			case y > wallBot || (hit.MaxRange && y > horizon):
				dst.SetColored(x, y, '·', ColorGray) // floor
			default:
				dst.Set(x, y, ' ') // ceiling
			}
		}
	}
}

// ProjectPoint maps a world point to a screen column and a scale factor
// (1/dist) for sizing sprites. Returns ok=false when the point is behind
// the viewer or outside the view cone.
func ProjectPoint(pos Vec2, yaw, fov float64, p Vec2, screenW int) (col int, invDist float64, ok bool) {
	rel := p.Sub(pos)
	dist := rel.Len()
	if dist < 0.05 {
		return 0, 0, false
	}

	angle := math.Atan2(rel.Y, rel.X) - yaw
	// Normalize to [-pi, pi].
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	if math.Abs(angle) > fov/2 {
		return 0, 0, false
	}

	col = int((angle/(fov/2) + 1) / 2 * float64(screenW))
	return col, 1 / dist, true
}
