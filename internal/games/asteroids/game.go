// Package asteroids implements Asteroids: a free-rotating ship with thrust
// inertia on a wrapping field, shooting rocks that split into smaller,
// faster fragments.
package asteroids

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/neonhall/arcade/internal/core"
	"github.com/neonhall/arcade/internal/engine"
	"github.com/neonhall/arcade/internal/registry"
)

const hudHeight = 2

const (
	turnSpeed     = 3.4  // Radians per second
	thrustAccel   = 16.0 // Units per second squared
	maxShipSpeed  = 18.0
	shipDrag      = 0.4 // Fraction of velocity shed per second
	shipRadius    = 0.8
	bulletSpeed   = 30.0
	bulletLife    = 1.1 // Seconds before a shot evaporates
	fireCooldown  = 0.22
	lives         = 3
	graceSeconds  = 2.0 // Post-respawn invulnerability
	endDelay      = 2.0
	initialRocks  = 4
	splitChildren = 2
	splitSpeedUp  = 1.35
)

// Rock size classes, largest first. Radius and score per class.
var (
	rockRadii  = [3]float64{2.6, 1.5, 0.8}
	rockScores = [3]int{20, 50, 100}
	rockSpeeds = [3]float64{3.5, 5.0, 7.0}
)

// rock is an asteroid with a size class; class 2 rocks vanish when shot.
type rock struct {
	engine.Entity
	class int
}

// shot is a bullet with a remaining lifetime.
type shot struct {
	engine.Entity
	ttl float64
}

// Game implements the Asteroids game logic.
type Game struct {
	rng *rand.Rand

	fieldW, fieldH float64
	ship           engine.Entity
	heading        float64 // Radians, 0 points right
	rocks          []rock
	shots          []shot
	cooldown       float64
	grace          float64
	wave           int
	session        *engine.Session

	screenW, screenH int
}

// New creates a new Asteroids game instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("asteroids", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "asteroids"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Asteroids"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.fieldW = float64(rc.ScreenW)
	g.fieldH = float64(rc.ScreenH - hudHeight)

	g.session = engine.NewSession(lives, nil)
	g.shots = nil
	g.cooldown = 0
	g.wave = 1
	g.respawnShip()
	g.grace = 0
	g.spawnWave(initialRocks)
}

func (g *Game) respawnShip() {
	g.ship = engine.Entity{
		Pos:    core.Vec2{X: g.fieldW / 2, Y: g.fieldH / 2},
		Radius: shipRadius,
		Alive:  true,
		Kind:   engine.KindPlayer,
	}
	g.heading = -math.Pi / 2 // Pointing up
	g.grace = graceSeconds
}

// spawnWave scatters n large rocks around the edges, away from the ship.
func (g *Game) spawnWave(n int) {
	g.rocks = g.rocks[:0]
	for i := 0; i < n; i++ {
		var pos core.Vec2
		for {
			pos = core.Vec2{
				X: g.rng.Float64() * g.fieldW,
				Y: g.rng.Float64() * g.fieldH,
			}
			if pos.Dist(g.ship.Pos) > g.fieldH/3 {
				break
			}
		}
		g.rocks = append(g.rocks, g.newRock(pos, 0))
	}
}

func (g *Game) newRock(pos core.Vec2, class int) rock {
	angle := g.rng.Float64() * 2 * math.Pi
	speed := rockSpeeds[class] * (0.7 + g.rng.Float64()*0.6)
	return rock{
		Entity: engine.Entity{
			Pos:    pos,
			Vel:    core.FromAngle(angle).Scale(speed),
			Radius: rockRadii[class],
			Alive:  true,
			Kind:   engine.KindHostile,
		},
		class: class,
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

	g.steer(in, dt)
	g.fire(in, dt)
	g.integrate(dt)
	g.collide()

	if len(g.rocks) == 0 {
		g.wave++
		g.spawnWave(initialRocks + g.wave - 1)
		g.session.Emit(core.Event{Feedback: fmt.Sprintf("Wave %d", g.wave)})
	}
	return g.result()
}

func (g *Game) steer(in core.InputFrame, dt float64) {
	if in.Has(core.ActionLeft) {
		g.heading -= turnSpeed * dt
	}
	if in.Has(core.ActionRight) {
		g.heading += turnSpeed * dt
	}
	if in.Has(core.ActionUp) {
		g.ship.Vel = g.ship.Vel.Add(core.FromAngle(g.heading).Scale(thrustAccel * dt))
		if g.ship.Vel.Len() > maxShipSpeed {
			g.ship.Vel = g.ship.Vel.Normalized().Scale(maxShipSpeed)
		}
	}
}

func (g *Game) fire(in core.InputFrame, dt float64) {
	if g.cooldown > 0 {
		g.cooldown -= dt
	}
	if !in.Has(core.ActionFire) || g.cooldown > 0 {
		return
	}
	g.cooldown = fireCooldown
	nose := core.FromAngle(g.heading)
	g.shots = append(g.shots, shot{
		Entity: engine.Entity{
			Pos:    g.ship.Pos.Add(nose.Scale(shipRadius + 0.2)),
			Vel:    nose.Scale(bulletSpeed).Add(g.ship.Vel),
			Radius: 0.2,
			Alive:  true,
			Kind:   engine.KindProjectile,
		},
		ttl: bulletLife,
	})
	g.session.Emit(core.Event{Sound: "shoot"})
}

func (g *Game) integrate(dt float64) {
	if g.grace > 0 {
		g.grace -= dt
	}

	// Drag bleeds off thrust so the ship eventually coasts to a stop.
	g.ship.Vel = g.ship.Vel.Scale(1 - shipDrag*dt)
	g.ship.Advance(dt)
	g.ship.Pos = g.wrap(g.ship.Pos)

	for i := range g.rocks {
		g.rocks[i].Advance(dt)
		g.rocks[i].Pos = g.wrap(g.rocks[i].Pos)
	}

	live := g.shots[:0]
	for _, s := range g.shots {
		s.ttl -= dt
		if s.ttl <= 0 {
			continue
		}
		s.Advance(dt)
		s.Pos = g.wrap(s.Pos)
		live = append(live, s)
	}
	g.shots = live
}

// wrap folds a position onto the toroidal field.
func (g *Game) wrap(p core.Vec2) core.Vec2 {
	p.X = math.Mod(p.X+g.fieldW, g.fieldW)
	p.Y = math.Mod(p.Y+g.fieldH, g.fieldH)
	return p
}

func (g *Game) collide() {
	// Shots vs rocks. A hit splits the rock into the next class down.
	var spawned []rock
	for si := range g.shots {
		s := &g.shots[si]
		for ri := range g.rocks {
			r := &g.rocks[ri]
			if !engine.CircleHit(&s.Entity, &r.Entity) {
				continue
			}
			s.Alive = false
			r.Alive = false
			g.session.AddScore(rockScores[r.class])
			g.session.Emit(core.Event{Sound: "rock_break"})
			if r.class < len(rockRadii)-1 {
				for c := 0; c < splitChildren; c++ {
					child := g.newRock(r.Pos, r.class+1)
					child.Vel = child.Vel.Scale(splitSpeedUp)
					spawned = append(spawned, child)
				}
			}
			break
		}
	}
	g.rocks = compactRocks(append(g.rocks, spawned...))
	g.shots = compactShots(g.shots)

	// Rocks vs ship, unless inside the respawn grace window.
	if g.grace > 0 {
		return
	}
	for ri := range g.rocks {
		if !engine.CircleHit(&g.rocks[ri].Entity, &g.ship) {
			continue
		}
		g.session.Emit(core.Event{Sound: "explosion", Feedback: "Ship destroyed!", Negative: true})
		if g.session.LoseLife() <= 0 {
			g.session.Lose(endDelay)
			return
		}
		g.respawnShip()
		return
	}
}

func compactRocks(rocks []rock) []rock {
	out := rocks[:0]
	for _, r := range rocks {
		if r.Alive {
			out = append(out, r)
		}
	}
	return out
}

func compactShots(shots []shot) []shot {
	out := shots[:0]
	for _, s := range shots {
		if s.Alive {
			out = append(out, s)
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

// shipGlyph picks the glyph matching the ship's heading octant.
func (g *Game) shipGlyph() rune {
	a := math.Mod(g.heading+2*math.Pi, 2*math.Pi)
	switch {
	case a < math.Pi/4 || a >= 7*math.Pi/4:
		return '>'
	case a < 3*math.Pi/4:
		return 'v'
	case a < 5*math.Pi/4:
		return '<'
	default:
		return '^'
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	st := g.session.GameState()
	hud := fmt.Sprintf(" Asteroids — Score: %d  Lives: %d  Wave: %d", st.Score, st.Lives, g.wave)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	for i := range g.rocks {
		r := &g.rocks[i]
		glyph := []rune{'O', 'o', '°'}[r.class]
		dst.SetColored(int(r.Pos.X), hudHeight+int(r.Pos.Y), glyph, core.ColorGray)
	}
	for i := range g.shots {
		dst.SetColored(int(g.shots[i].Pos.X), hudHeight+int(g.shots[i].Pos.Y), '·', core.ColorBrightYellow)
	}

	shipColor := core.ColorBrightCyan
	if g.grace > 0 && int(g.grace*8)%2 == 0 {
		shipColor = core.ColorGray // Respawn flicker
	}
	dst.SetColored(int(g.ship.Pos.X), hudHeight+int(g.ship.Pos.Y), g.shipGlyph(), shipColor)

	switch {
	case g.session.Phase() == engine.PhaseGameOver:
		dst.DrawTextCentered(dst.Height()/2, "Game Over.  Press R to play again")
	case g.session.Paused():
		dst.DrawTextCentered(dst.Height()/2, "Paused")
	case g.session.Phase() == engine.PhaseReady:
		dst.DrawTextCentered(dst.Height()/2+2, "←/→ rotate, ↑ thrust, Space fire")
	}
}
