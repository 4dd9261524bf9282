// Package hall implements the first-person arcade hall: a raycast-rendered
// room the player walks around in, with cabinets that launch the other
// games when used.
package hall

import (
	"fmt"
	"math"

	"github.com/neonhall/arcade/internal/config"
	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

const (
	hudHeight     = 1
	interactRange = 1.8
	interactCone  = 0.5 // Radians off the view axis
)

// hallLayout is the hall floor plan. '#' is a wall, letters mark cabinet
// tiles, '@' is the spawn.
var hallLayout = []string{
	"####################",
	"#P                I#",
	"#                  #",
	"#                  #",
	"##                ##",
	"#O                S#",
	"#                  #",
	"#        @         #",
	"#                  #",
	"#A                N#",
	"##                ##",
	"#                  #",
	"#                  #",
	"#R                 #",
	"####################",
}

// cabinetGames maps layout letters to registered game IDs.
var cabinetGames = map[byte]string{
	'P': "pacman",
	'I': "invaders",
	'O': "pong",
	'S': "snake",
	'A': "asteroids",
	'N': "snake3d",
	'R': "pong3d",
}

// cabinet is an in-world machine that launches a game.
type cabinet struct {
	pos   core.Vec2
	id    string
	title string
}

// grid is the hall's wall map for raycasting.
type grid struct {
	w, h  int
	walls [][]bool
}

// WallAt reports a wall at the tile, treating out-of-bounds as solid.
func (g *grid) WallAt(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return true
	}
	return g.walls[y][x]
}

// Package-level knob set by the CLI before game creation.
var configPath string

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the arcade hall.
type Game struct {
	cfg config.HallConfig

	grid     *grid
	room     *engine.Room
	mover    engine.FreeMover
	cabinets []cabinet
	target   int // Index of the cabinet in reach, -1 otherwise
	launch   string

	screenW, screenH int
}

// New creates a new hall instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("hall", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "hall"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Arcade Hall"
}

// Reset initializes the hall.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadHall(configPath)
	if err != nil {
		cfg = config.DefaultHallConfig()
	}
	g.cfg = cfg

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.target = -1
	g.launch = ""

	g.buildWorld()

	g.mover = engine.FreeMover{
		Pos:    g.spawnPoint(),
		Yaw:    -math.Pi / 2,
		Radius: 0.3,
		Params: engine.MoveParams{
			MoveSpeed:   cfg.Movement.MoveSpeed,
			Gravity:     cfg.Movement.Gravity,
			JumpImpulse: cfg.Movement.JumpImpulse,
			TurnSpeed:   cfg.Movement.TurnSpeed,
			PitchMax:    cfg.Movement.PitchMax,
			PitchReturn: cfg.Movement.PitchReturn,
		},
	}
}

// buildWorld parses the layout into the raycast grid, the collision room,
// and the cabinet list.
func (g *Game) buildWorld() {
	h := len(hallLayout)
	w := len(hallLayout[0])
	gr := &grid{w: w, h: h, walls: make([][]bool, h)}
	var cabs []cabinet
	var obstacles []core.Rect

	for y, row := range hallLayout {
		gr.walls[y] = make([]bool, w)
		for x := 0; x < len(row); x++ {
			c := row[x]
			solid := c == '#'
			if id, ok := cabinetGames[c]; ok {
				solid = true // Cabinets block movement and sight
				cabs = append(cabs, cabinet{
					pos:   core.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5},
					id:    id,
					title: registry.Title(id),
				})
			}
			gr.walls[y][x] = solid
			if solid {
				obstacles = append(obstacles, core.Rect{X: float64(x), Y: float64(y), W: 1, H: 1})
			}
		}
	}

	g.grid = gr
	g.cabinets = cabs
	g.room = &engine.Room{
		Bounds:    core.Rect{W: float64(w), H: float64(h)},
		Obstacles: obstacles,
	}
}

func (g *Game) spawnPoint() core.Vec2 {
	for y, row := range hallLayout {
		for x := 0; x < len(row); x++ {
			if row[x] == '@' {
				return core.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			}
		}
	}
	return core.Vec2{X: float64(g.grid.w) / 2, Y: float64(g.grid.h) / 2}
}

// Step advances the hall by one tick.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.mover.Step(in, g.room, dt)
	g.target = g.findTarget()

	var events []core.Event
	if in.Has(core.ActionInteract) && g.target >= 0 {
		g.launch = g.cabinets[g.target].id
		events = append(events, core.Event{
			Sound:  "cabinet_on",
			Launch: g.launch,
		})
	}

	return core.StepResult{State: g.State(), Events: events}
}

// findTarget returns the index of the cabinet in interaction range and
// roughly ahead of the player, favoring the closest.
func (g *Game) findTarget() int {
	best := -1
	bestDist := interactRange
	for i, c := range g.cabinets {
		d := c.pos.Dist(g.mover.Pos)
		if d > bestDist {
			continue
		}
		angle := angleDiff(math.Atan2(c.pos.Y-g.mover.Pos.Y, c.pos.X-g.mover.Pos.X), g.mover.Yaw)
		if math.Abs(angle) > interactCone {
			continue
		}
		best = i
		bestDist = d
	}
	return best
}

// angleDiff returns a-b normalized to [-pi, pi].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// State returns the hall state. The hall has no score or failure mode.
func (g *Game) State() core.GameState {
	return core.GameState{}
}

// Render draws the first-person view and cabinet sprites.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	eye := core.ClampF(g.mover.Height/2, 0, 1)
	core.RenderFirstPerson(dst, g.grid, g.mover.Pos, g.mover.Yaw, g.mover.Pitch,
		g.cfg.View.FOV, eye, hudHeight, dst.Height())

	g.renderCabinets(dst)

	if g.target >= 0 {
		prompt := fmt.Sprintf("[F] Play %s", g.cabinets[g.target].title)
		dst.DrawTextCentered(dst.Height()-2, prompt)
	}
	dst.DrawText(0, 0, " Arcade Hall — WASD move, Q/E turn, J jump")
}

// renderCabinets overlays a marker glyph on each visible cabinet column.
func (g *Game) renderCabinets(dst *core.Screen) {
	rows := dst.Height() - hudHeight
	for i, c := range g.cabinets {
		col, invDist, ok := core.ProjectPoint(g.mover.Pos, g.mover.Yaw, g.cfg.View.FOV, c.pos, dst.Width())
		if !ok || col < 0 || col >= dst.Width() {
			continue
		}
		// Occlusion: skip if a wall nearer than the cabinet blocks the ray.
		dir := c.pos.Sub(g.mover.Pos).Normalized()
		hit := core.CastRay(g.grid, g.mover.Pos, dir, 24)
		dist := c.pos.Dist(g.mover.Pos)
		if hit.Dist < dist-0.8 {
			continue
		}

		y := hudHeight + rows/2 - int(g.mover.Pitch*float64(rows))
		color := core.ColorBrightMagenta
		if i == g.target {
			color = core.ColorBrightYellow
		}
		size := int(invDist * 3)
		for dy := -size; dy <= size; dy++ {
			dst.SetColored(col, y+dy, '▐', color)
		}
	}
}
