package pacman

import (
	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
)

// The classic board, one rune per tile. '#' wall, '.' pellet, 'o' power
// pellet, '-' ghost house, ' ' open floor. The y7 row is the wrap tunnel:
// both ends run off the board.
var mazeLayout = []string{
	"###################",
	"#o.......#.......o#",
	"#.##.###.#.###.##.#",
	"#.................#",
	"#.##.#.#####.#.##.#",
	"#....#.......#....#",
	"####.#.##-##.#.####",
	"    ...#---#...    ",
	"####.#.#####.#.####",
	"#....#...#...#....#",
	"#.##.#.#####.#.##.#",
	"#.................#",
	"#.##.###.#.###.##.#",
	"#o.......#.......o#",
	"###################",
}

const tileSize = 1.0

// Board tile positions used for spawning and the ghost exit route.
var (
	playerStartTile = [2]int{9, 11}
	houseCenterTile = [2]int{9, 7}
	houseDoorTile   = [2]int{9, 6}
	houseExitTile   = [2]int{9, 5}

	ghostSpawnTiles = [4][2]int{
		{9, 7},
		{8, 7},
		{10, 7},
		{9, 7},
	}
)

// Per-ghost personality and the collected-pellet count that releases it.
var ghostRoster = [4]struct {
	strategy  engine.Strategy
	releaseAt int
	color     core.Color
}{
	{engine.StrategyDirect, 0, core.ColorBrightRed},
	{engine.StrategyAmbush, 15, core.ColorBrightMagenta},
	{engine.StrategyMixed, 40, core.ColorBrightCyan},
	{engine.StrategyRandom, 70, core.ColorOrange},
}

// newMaze parses a fresh copy of the board. Pellet cells are mutable, so
// each round needs its own maze.
func newMaze() *engine.Maze {
	return engine.ParseMaze(mazeLayout, tileSize)
}

// exitPath builds the fixed waypoint route from a ghost's spawn to the
// corridor above the house door.
func exitPath(m *engine.Maze, spawn [2]int) []core.Vec2 {
	var path []core.Vec2
	if spawn != houseCenterTile {
		path = append(path, m.TileCenter(houseCenterTile[0], houseCenterTile[1]))
	}
	return append(path,
		m.TileCenter(houseDoorTile[0], houseDoorTile[1]),
		m.TileCenter(houseExitTile[0], houseExitTile[1]),
	)
}
