package engine

import "github.com/neonhall/arcade/internal/core"

// Cell is the kind of a single maze tile.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellWall
	CellPellet
	CellPower
	CellSpawn // Ghost house interior; walkable for ghosts only
)

// Maze is the immutable wall layout of a grid game plus its mutable
// collectible cells. Constructed once at level init; pellet cells flip to
// empty as they are consumed.
type Maze struct {
	W, H     int
	TileSize float64

	cells   [][]Cell
	pellets int
}

// Layout characters accepted by ParseMaze.
//
//	'#' wall, '.' pellet, 'o' power pellet, '-' ghost house, ' ' empty
func ParseMaze(layout []string, tileSize float64) *Maze {
	h := len(layout)
	w := 0
	for _, row := range layout {
		if len(row) > w {
			w = len(row)
		}
	}

	m := &Maze{W: w, H: h, TileSize: tileSize}
	m.cells = make([][]Cell, h)
	for y := range m.cells {
		m.cells[y] = make([]Cell, w)
		for x := range m.cells[y] {
			var ch byte = ' '
			if x < len(layout[y]) {
				ch = layout[y][x]
			}
			switch ch {
			case '#':
				m.cells[y][x] = CellWall
			case '.':
				m.cells[y][x] = CellPellet
				m.pellets++
			case 'o':
				m.cells[y][x] = CellPower
				m.pellets++
			case '-':
				m.cells[y][x] = CellSpawn
			default:
				m.cells[y][x] = CellEmpty
			}
		}
	}
	return m
}

// At returns the cell kind at tile (x, y). Out-of-bounds indices report
// CellEmpty so the horizontal tunnel can be walked through.
func (m *Maze) At(x, y int) Cell {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return CellEmpty
	}
	return m.cells[y][x]
}

// Walkable reports whether the tile can be entered. Ghost house tiles
// block everyone except entities flagged as house dwellers.
func (m *Maze) Walkable(x, y int, throughSpawn bool) bool {
	c := m.At(x, y)
	if c == CellWall {
		return false
	}
	if c == CellSpawn && !throughSpawn {
		return false
	}
	return true
}

// Consume removes the collectible at tile (x, y), returning its kind and
// whether anything was actually collected.
func (m *Maze) Consume(x, y int) (Cell, bool) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return CellEmpty, false
	}
	c := m.cells[y][x]
	if c != CellPellet && c != CellPower {
		return CellEmpty, false
	}
	m.cells[y][x] = CellEmpty
	m.pellets--
	return c, true
}

// SetCell overwrites the cell at tile (x, y), keeping the pellet count
// consistent. Used by level tooling; gameplay only mutates via Consume.
func (m *Maze) SetCell(x, y int, c Cell) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	old := m.cells[y][x]
	if old == CellPellet || old == CellPower {
		m.pellets--
	}
	if c == CellPellet || c == CellPower {
		m.pellets++
	}
	m.cells[y][x] = c
}

// PelletsLeft returns the number of uncollected pellets in the maze.
func (m *Maze) PelletsLeft() int {
	return m.pellets
}

// TileOf returns the tile coordinates containing the world position.
func (m *Maze) TileOf(pos core.Vec2) (int, int) {
	return int(pos.X / m.TileSize), int(pos.Y / m.TileSize)
}

// TileCenter returns the world position of the center of tile (x, y).
func (m *Maze) TileCenter(x, y int) core.Vec2 {
	return core.Vec2{
		X: (float64(x) + 0.5) * m.TileSize,
		Y: (float64(y) + 0.5) * m.TileSize,
	}
}

// WidthPixels returns the maze width in world units.
func (m *Maze) WidthPixels() float64 {
	return float64(m.W) * m.TileSize
}

// HeightPixels returns the maze height in world units.
func (m *Maze) HeightPixels() float64 {
	return float64(m.H) * m.TileSize
}
