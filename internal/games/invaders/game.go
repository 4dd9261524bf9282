// Package invaders implements Space Invaders: a marching alien fleet that
// descends on the edges, speeds up as it thins out, and trades fire with a
// player ship behind destructible shields.
package invaders

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/neonhall/arcade/internal/config"
	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

const (
	hudHeight   = 2
	alienChar   = 'W'
	shipChar    = 'A'
	bulletChar  = '|'
	bombChar    = '¡'

	// levelSpeedBoost is the extra march speed at progression level 1.0.
	levelSpeedBoost = 0.35
)

// shieldRunes is indexed by a shield cell's remaining hit points.
var shieldRunes = []rune(" ░▒▓█")

const (
	fleetMarginX   = 2.0
	fleetSpacingX  = 3.0
	fleetSpacingY  = 2.0
	shieldCount    = 4
	shieldWidth    = 5
	shieldHP       = 4
	playerRowsUp   = 2 // Ship rows above the field bottom
	loseProximityY = 3 // Fleet reaching this close to the ship ends the game
)

// Package-level knobs set by the CLI before game creation.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// shield is a destructible barrier cell column-indexed by field X.
type shield struct {
	x  int
	y  int
	hp int
}

// Game implements the Space Invaders game logic.
type Game struct {
	cfg config.InvadersConfig
	rng *rand.Rand

	fieldW, fieldH float64
	ship           engine.Entity
	aliens         []engine.Entity
	bullets        []engine.Entity // Player shots, travel up
	bombs          []engine.Entity // Alien shots, travel down
	shields        []shield

	fleetDir     float64 // +1 marching right, -1 marching left
	fleetSpeed   float64
	fireCooldown float64
	session      *engine.Session

	screenW, screenH int
}

// New creates a new Space Invaders game instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "invaders"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Invaders"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		cfg = config.DefaultInvadersConfig()
	}
	if difficultyPreset != "" {
		config.ApplyInvadersPreset(&cfg, config.DifficultyPreset(difficultyPreset))
	}
	g.cfg = cfg

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.fieldW = float64(rc.ScreenW)
	g.fieldH = float64(rc.ScreenH - hudHeight)

	g.session = engine.NewSession(cfg.Gameplay.Lives, nil)
	g.fleetDir = 1
	g.fleetSpeed = cfg.Fleet.MarchSpeed * cfg.Difficulty.SpeedScale(levelSpeedBoost)
	g.fireCooldown = 0
	g.bullets = nil
	g.bombs = nil

	g.ship = engine.Entity{
		Pos:   core.Vec2{X: g.fieldW / 2, Y: g.fieldH - playerRowsUp},
		Half:  core.Vec2{X: 0.5, Y: 0.5},
		Alive: true,
		Kind:  engine.KindPlayer,
	}

	g.spawnFleet()
	g.buildShields()
}

func (g *Game) spawnFleet() {
	g.aliens = g.aliens[:0]
	for row := 0; row < g.cfg.Fleet.Rows; row++ {
		for col := 0; col < g.cfg.Fleet.Cols; col++ {
			g.aliens = append(g.aliens, engine.Entity{
				Pos: core.Vec2{
					X: fleetMarginX + float64(col)*fleetSpacingX,
					Y: 1 + float64(row)*fleetSpacingY,
				},
				Half:  core.Vec2{X: 0.5, Y: 0.5},
				Alive: true,
				Kind:  engine.KindHostile,
			})
		}
	}
}

func (g *Game) buildShields() {
	g.shields = g.shields[:0]
	y := int(g.fieldH) - playerRowsUp - 3
	span := int(g.fieldW) / shieldCount
	for i := 0; i < shieldCount; i++ {
		start := i*span + (span-shieldWidth)/2
		for dx := 0; dx < shieldWidth; dx++ {
			g.shields = append(g.shields, shield{x: start + dx, y: y, hp: shieldHP})
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionRestart) && g.session.Over() {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63(), ScreenW: g.screenW, ScreenH: g.screenH})
		return g.result()
	}
	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}

	g.session.MaybeStart(in)
	g.session.Tick(dt)

	if !g.session.Active() {
		return g.result()
	}

	g.moveShip(in, dt)
	g.fire(in, dt)
	g.marchFleet(dt)
	g.alienFire(dt)
	g.moveShots(dt)
	g.collide()

	if g.aliensLeft() == 0 {
		g.session.Win(g.cfg.Gameplay.EndDelaySeconds)
	}
	return g.result()
}

func (g *Game) moveShip(in core.InputFrame, dt float64) {
	speed := g.cfg.Weapons.PlayerBulletSpeed / 2
	if in.Has(core.ActionLeft) {
		g.ship.Pos.X -= speed * dt
	}
	if in.Has(core.ActionRight) {
		g.ship.Pos.X += speed * dt
	}
	g.ship.Pos.X = core.ClampF(g.ship.Pos.X, 1, g.fieldW-2)
}

func (g *Game) fire(in core.InputFrame, dt float64) {
	if g.fireCooldown > 0 {
		g.fireCooldown -= dt
	}
	if !in.Has(core.ActionFire) || g.fireCooldown > 0 {
		return
	}
	g.fireCooldown = g.cfg.Weapons.FireCooldown
	g.bullets = append(g.bullets, engine.Entity{
		Pos:   core.Vec2{X: g.ship.Pos.X, Y: g.ship.Pos.Y - 1},
		Vel:   core.Vec2{Y: -g.cfg.Weapons.PlayerBulletSpeed},
		Half:  core.Vec2{X: 0.3, Y: 0.5},
		Alive: true,
		Kind:  engine.KindProjectile,
	})
	g.session.Emit(core.Event{Sound: "shoot"})
}

// marchFleet moves every live alien sideways; when any alien touches a
// horizontal edge the whole fleet reverses and drops one step.
func (g *Game) marchFleet(dt float64) {
	dx := g.fleetDir * g.fleetSpeed * dt
	hitEdge := false
	for i := range g.aliens {
		a := &g.aliens[i]
		if !a.Alive {
			continue
		}
		a.Pos.X += dx
		if a.Pos.X <= 1 || a.Pos.X >= g.fieldW-2 {
			hitEdge = true
		}
	}
	if !hitEdge {
		return
	}

	g.fleetDir = -g.fleetDir
	lowest := 0.0
	for i := range g.aliens {
		a := &g.aliens[i]
		if !a.Alive {
			continue
		}
		a.Pos.X = core.ClampF(a.Pos.X, 1, g.fieldW-2)
		a.Pos.Y += g.cfg.Fleet.DescendStep
		if a.Pos.Y > lowest {
			lowest = a.Pos.Y
		}
	}
	if lowest >= g.ship.Pos.Y-loseProximityY {
		g.session.Lose(g.cfg.Gameplay.EndDelaySeconds)
	}
}

// alienFire lets the bottom-most alien of a random occupied column drop a
// bomb. Each shooter fires at AlienFireChance expected shots per second, so
// the barrage thins out together with the fleet.
func (g *Game) alienFire(dt float64) {
	shooters := g.bottomAliens()
	if len(shooters) == 0 {
		return
	}
	if g.rng.Float64() >= g.cfg.Weapons.AlienFireChance*float64(len(shooters))*dt {
		return
	}
	src := shooters[g.rng.Intn(len(shooters))]
	g.bombs = append(g.bombs, engine.Entity{
		Pos:   core.Vec2{X: src.Pos.X, Y: src.Pos.Y + 1},
		Vel:   core.Vec2{Y: g.cfg.Weapons.AlienBulletSpeed},
		Half:  core.Vec2{X: 0.3, Y: 0.5},
		Alive: true,
		Kind:  engine.KindProjectile,
	})
}

// bottomAliens returns the lowest live alien in each occupied column.
func (g *Game) bottomAliens() []*engine.Entity {
	lowest := map[int]*engine.Entity{}
	for i := range g.aliens {
		a := &g.aliens[i]
		if !a.Alive {
			continue
		}
		col := int(a.Pos.X)
		if cur, ok := lowest[col]; !ok || a.Pos.Y > cur.Pos.Y {
			lowest[col] = a
		}
	}
	cols := make([]int, 0, len(lowest))
	for col := range lowest {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	out := make([]*engine.Entity, 0, len(cols))
	for _, col := range cols {
		out = append(out, lowest[col])
	}
	return out
}

func (g *Game) moveShots(dt float64) {
	for i := range g.bullets {
		g.bullets[i].Advance(dt)
		if g.bullets[i].Pos.Y < 0 {
			g.bullets[i].Alive = false
		}
	}
	for i := range g.bombs {
		g.bombs[i].Advance(dt)
		if g.bombs[i].Pos.Y > g.fieldH {
			g.bombs[i].Alive = false
		}
	}
	g.bullets = compact(g.bullets)
	g.bombs = compact(g.bombs)
}

func (g *Game) collide() {
	// Player bullets vs aliens and shields.
	for i := range g.bullets {
		b := &g.bullets[i]
		for j := range g.aliens {
			a := &g.aliens[j]
			if !engine.Overlaps(b, a) {
				continue
			}
			a.Alive = false
			b.Alive = false
			g.session.AddScore(g.cfg.Gameplay.AlienScore)
			g.fleetSpeed *= g.cfg.Fleet.SpeedUp
			g.session.Emit(core.Event{Sound: "alien_down"})
			break
		}
		if b.Alive {
			g.hitShield(b)
		}
	}

	// Bombs vs shields and the ship.
	for i := range g.bombs {
		b := &g.bombs[i]
		g.hitShield(b)
		if !b.Alive {
			continue
		}
		if engine.Overlaps(b, &g.ship) {
			b.Alive = false
			g.shipHit()
		}
	}

	g.bullets = compact(g.bullets)
	g.bombs = compact(g.bombs)
}

// hitShield absorbs the shot into a shield cell, if one occupies the shot's
// tile, chipping one hit point off it.
func (g *Game) hitShield(shot *engine.Entity) {
	sx, sy := int(shot.Pos.X), int(shot.Pos.Y)
	for i := range g.shields {
		s := &g.shields[i]
		if s.hp <= 0 || s.x != sx || s.y != sy {
			continue
		}
		s.hp--
		shot.Alive = false
		return
	}
}

func (g *Game) shipHit() {
	g.session.Emit(core.Event{Sound: "explosion", Feedback: "Hit!", Negative: true})
	if g.session.LoseLife() <= 0 {
		g.session.Lose(g.cfg.Gameplay.EndDelaySeconds)
		return
	}
	g.ship.Pos.X = g.fieldW / 2
	g.bombs = g.bombs[:0]
}

func (g *Game) aliensLeft() int {
	n := 0
	for i := range g.aliens {
		if g.aliens[i].Alive {
			n++
		}
	}
	return n
}

func compact(ents []engine.Entity) []engine.Entity {
	out := ents[:0]
	for _, e := range ents {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.session.Drain()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.session.GameState()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	st := g.session.GameState()
	hud := fmt.Sprintf(" Invaders — Score: %d  Lives: %d  Fleet: %d", st.Score, st.Lives, g.aliensLeft())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	for i := range g.aliens {
		a := &g.aliens[i]
		if a.Alive {
			dst.SetColored(int(a.Pos.X), hudHeight+int(a.Pos.Y), alienChar, core.ColorBrightGreen)
		}
	}
	for _, s := range g.shields {
		if s.hp > 0 {
			dst.SetColored(s.x, hudHeight+s.y, shieldRunes[s.hp], core.ColorCyan)
		}
	}
	for i := range g.bullets {
		dst.SetColored(int(g.bullets[i].Pos.X), hudHeight+int(g.bullets[i].Pos.Y), bulletChar, core.ColorBrightYellow)
	}
	for i := range g.bombs {
		dst.SetColored(int(g.bombs[i].Pos.X), hudHeight+int(g.bombs[i].Pos.Y), bombChar, core.ColorBrightRed)
	}
	dst.SetColored(int(g.ship.Pos.X), hudHeight+int(g.ship.Pos.Y), shipChar, core.ColorBrightCyan)

	switch {
	case g.session.Phase() == engine.PhaseWon:
		dst.DrawTextCentered(dst.Height()/2, "Fleet destroyed!  Press R to play again")
	case g.session.Phase() == engine.PhaseGameOver:
		dst.DrawTextCentered(dst.Height()/2, "Game Over.  Press R to play again")
	case g.session.Paused():
		dst.DrawTextCentered(dst.Height()/2, "Paused")
	case g.session.Phase() == engine.PhaseReady:
		dst.DrawTextCentered(dst.Height()/2+2, "Arrows to move, Space to fire")
	}
}
