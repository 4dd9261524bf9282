package engine

import (
	"math"
	"math/rand"

	"github.com/neonhall/arcade/internal/core"
)

// Strategy names a ghost personality: the decision function used at each
// tile-center crossing while the ghost is active.
type Strategy int

const (
	// StrategyDirect picks the non-reverse direction minimizing Manhattan
	// distance to the player's current tile.
	StrategyDirect Strategy = iota
	// StrategyAmbush is direct pursuit toward a point a few tiles ahead of
	// the player's facing.
	StrategyAmbush
	// StrategyMixed pursues directly 70% of the time, otherwise random.
	StrategyMixed
	// StrategyRandom always picks uniformly among valid directions.
	StrategyRandom
)

// GhostState is the per-agent activity state machine.
type GhostState int

const (
	GhostDormant GhostState = iota // In the house, waiting for release
	GhostExiting                   // Following the exit waypoints
	GhostActive                    // Hunting with its personality strategy
	GhostFrightened                // Fleeing randomly, vulnerable
)

const (
	ambushLeadTiles  = 4
	exitSpeedScale   = 0.6
	frightSpeedScale = 0.5
	waypointEpsilon  = 0.2
	mixedPursueOdds  = 0.7
)

// Ghost is a grid AI agent: an entity plus its mover, personality, release
// threshold and exit path. Frightened mode is a countdown field ticked with
// the game, never a wall-clock timer.
type Ghost struct {
	Entity   Entity
	Mover    GridMover
	State    GhostState
	Strategy Strategy

	Spawn     core.Vec2
	ExitPath  []core.Vec2
	ReleaseAt int     // Collected-count threshold that frees the ghost
	BaseSpeed float64 // Active-state speed, world units per second

	FrightenedFor float64 // Seconds of frightened mode remaining

	waypoint int
	rng      *rand.Rand
}

// NewGhost creates a ghost parked at spawn with the given personality.
func NewGhost(spawn core.Vec2, strategy Strategy, releaseAt int, speed float64, rng *rand.Rand) *Ghost {
	return &Ghost{
		Entity: Entity{
			Pos:    spawn,
			Radius: 0.45,
			Alive:  true,
			Kind:   KindGhost,
		},
		Mover:     GridMover{ThroughSpawn: true},
		Strategy:  strategy,
		Spawn:     spawn,
		ReleaseAt: releaseAt,
		BaseSpeed: speed,
		rng:       rng,
	}
}

// Frighten puts the ghost into frightened mode for the given duration.
// Dormant and exiting ghosts are unaffected.
func (g *Ghost) Frighten(duration float64) {
	if g.State != GhostActive && g.State != GhostFrightened {
		return
	}
	g.State = GhostFrightened
	g.FrightenedFor = duration
	// Fleeing ghosts turn around immediately.
	g.Mover.NextDir = g.Mover.Dir.Opposite()
}

// ResetToSpawn sends an eaten ghost home. It re-exits without waiting for
// the release threshold again.
func (g *Ghost) ResetToSpawn() {
	g.Entity.Pos = g.Spawn
	g.State = GhostExiting
	g.FrightenedFor = 0
	g.waypoint = 0
	g.Mover.Dir = FacingNone
	g.Mover.NextDir = FacingNone
}

// Frightened reports whether the ghost is currently vulnerable.
func (g *Ghost) Frightened() bool {
	return g.State == GhostFrightened
}

// Step advances the ghost one tick against the world view.
func (g *Ghost) Step(view WorldView, dt float64) {
	switch g.State {
	case GhostDormant:
		if view.Collected >= g.ReleaseAt {
			g.State = GhostExiting
			g.waypoint = 0
		}

	case GhostExiting:
		g.followExitPath(view.Maze, dt)

	case GhostFrightened:
		g.FrightenedFor -= dt
		if g.FrightenedFor <= 0 {
			g.FrightenedFor = 0
			g.State = GhostActive
		}
		g.hunt(view, dt)

	case GhostActive:
		g.hunt(view, dt)
	}
}

// followExitPath walks the fixed 2-3 waypoint path out of the house at
// reduced speed, switching to active when the last waypoint is reached.
func (g *Ghost) followExitPath(m *Maze, dt float64) {
	if g.waypoint >= len(g.ExitPath) {
		g.State = GhostActive
		return
	}

	target := g.ExitPath[g.waypoint]
	delta := target.Sub(g.Entity.Pos)
	step := g.BaseSpeed * exitSpeedScale * dt

	if delta.Len() <= step || delta.Len() < waypointEpsilon*m.TileSize {
		g.Entity.Pos = target
		g.waypoint++
		if g.waypoint >= len(g.ExitPath) {
			g.State = GhostActive
		}
		return
	}

	g.Entity.Pos = g.Entity.Pos.Add(delta.Normalized().Scale(step))
}

// hunt moves with the grid policy, re-evaluating direction at each
// tile-center crossing (and whenever a wall blocks the step).
func (g *Ghost) hunt(view WorldView, dt float64) {
	speed := g.BaseSpeed
	if g.State == GhostFrightened {
		speed *= frightSpeedScale
	}
	g.Mover.Speed = speed
	// Active ghosts stay out of the house.
	g.Mover.ThroughSpawn = false

	if AtTileCenter(&g.Entity, view.Maze, waypointEpsilon) || g.Mover.Dir == FacingNone {
		g.Mover.NextDir = g.chooseDirection(view)
	}

	if blocked := g.Mover.Step(&g.Entity, view.Maze, dt); blocked {
		g.Mover.NextDir = g.chooseDirection(view)
	}
}

// chooseDirection applies the personality strategy to the current view.
func (g *Ghost) chooseDirection(view WorldView) Facing {
	m := view.Maze
	tx, ty := m.TileOf(g.Entity.Pos)
	open := ValidDirections(m, tx, ty, g.Mover.Dir, false)
	if len(open) == 0 {
		return g.Mover.Dir
	}

	if g.State == GhostFrightened {
		return open[g.rng.Intn(len(open))]
	}

	switch g.Strategy {
	case StrategyRandom:
		return open[g.rng.Intn(len(open))]
	case StrategyMixed:
		if g.rng.Float64() >= mixedPursueOdds {
			return open[g.rng.Intn(len(open))]
		}
		return bestToward(m, tx, ty, open, view.PlayerPos)
	case StrategyAmbush:
		lead := view.PlayerFacing.Delta().Scale(float64(ambushLeadTiles) * m.TileSize)
		return bestToward(m, tx, ty, open, view.PlayerPos.Add(lead))
	default: // StrategyDirect
		return bestToward(m, tx, ty, open, view.PlayerPos)
	}
}

// bestToward returns the open direction whose adjacent tile is Manhattan
// closest to the target.
func bestToward(m *Maze, tx, ty int, open []Facing, target core.Vec2) Facing {
	best := open[0]
	bestDist := distanceToward(m, tx, ty, best, target)
	for _, f := range open[1:] {
		if d := distanceToward(m, tx, ty, f, target); d < bestDist {
			best = f
			bestDist = d
		}
	}
	return best
}

// PaddleParams tunes the opposing-paddle AI.
type PaddleParams struct {
	Reaction      float64 // Fraction of retarget ticks with an accurate prediction
	Noise         float64 // Magnitude of prediction noise, world units
	DeadZone      float64 // Distance under which the paddle stays put
	MissChance    float64 // Probability of deliberately whiffing an approach
	MaxMissChance float64 // Ratchet ceiling on MissChance
	MissStep      float64 // MissChance increase per ratchet
	SpeedStep     float64 // Ball speed multiplier per ratchet
	HitThreshold  int     // Consecutive volleys per ratchet
}

// DefaultPaddleParams returns the stock CPU paddle tuning.
func DefaultPaddleParams() PaddleParams {
	return PaddleParams{
		Reaction:      0.75,
		Noise:         1.5,
		DeadZone:      0.6,
		MissChance:    0.08,
		MaxMissChance: 0.35,
		MissStep:      0.04,
		SpeedStep:     1.08,
		HitThreshold:  4,
	}
}

// PaddleAI tracks the ball with a deliberately degraded prediction: only a
// fraction of retargets use the trajectory estimate, noise is mixed in, a
// dead zone suppresses twitching, and each approach may be an intentional
// whiff. Both the whiff probability and the ball speed ratchet up after
// every HitThreshold consecutive returned volleys.
type PaddleAI struct {
	Params PaddleParams

	target   float64
	whiffing bool
	volleys  int
	rng      *rand.Rand
}

// NewPaddleAI creates a paddle AI with the given tuning.
func NewPaddleAI(p PaddleParams, rng *rand.Rand) *PaddleAI {
	return &PaddleAI{Params: p, rng: rng}
}

// Retarget recomputes the tracked Y for a ball approaching the paddle at
// paddleX. Call it whenever the ball crosses midfield or changes direction.
func (a *PaddleAI) Retarget(ball *Entity, paddleX, fieldH float64) {
	a.whiffing = a.rng.Float64() < a.Params.MissChance

	predicted := ball.Pos.Y
	if a.rng.Float64() < a.Params.Reaction && ball.Vel.X != 0 {
		// Trajectory prediction scaled by distance to intercept.
		t := (paddleX - ball.Pos.X) / ball.Vel.X
		if t > 0 {
			predicted = ball.Pos.Y + ball.Vel.Y*t
		}
	}

	predicted += (a.rng.Float64() - 0.5) * 2 * a.Params.Noise
	if a.whiffing {
		// Deliberately aim a paddle-length off.
		offset := fieldH / 4
		if a.rng.Intn(2) == 0 {
			offset = -offset
		}
		predicted += offset
	}

	a.target = core.ClampF(predicted, 0, fieldH)
}

// Move returns the paddle's new Y after stepping toward the target at
// speed, honoring the dead zone.
func (a *PaddleAI) Move(paddleY, speed, dt float64) float64 {
	diff := a.target - paddleY
	if math.Abs(diff) < a.Params.DeadZone {
		return paddleY
	}
	step := speed * dt
	if math.Abs(diff) < step {
		return a.target
	}
	if diff > 0 {
		return paddleY + step
	}
	return paddleY - step
}

// OnVolley registers a successfully returned volley. Every HitThreshold
// consecutive volleys the miss chance rises (capped) and the returned
// multiplier asks the game to speed the ball up; otherwise it returns 1.
func (a *PaddleAI) OnVolley() float64 {
	a.volleys++
	if a.volleys%a.Params.HitThreshold != 0 {
		return 1
	}
	a.Params.MissChance = math.Min(a.Params.MissChance+a.Params.MissStep, a.Params.MaxMissChance)
	return a.Params.SpeedStep
}

// OnPoint resets the consecutive-volley counter after a score.
func (a *PaddleAI) OnPoint() {
	a.volleys = 0
}

// MissChance exposes the current whiff probability, for HUDs and tests.
func (a *PaddleAI) MissChance() float64 {
	return a.Params.MissChance
}

// Pursuit steers an agent toward a target at constant speed, smoothly
// interpolating its heading instead of snapping. Used by the arena snake.
type Pursuit struct {
	Speed    float64
	TurnRate float64 // Radians per second
	Heading  float64
}

// Step advances pos toward target for one tick and returns the new
// position.
func (p *Pursuit) Step(pos, target core.Vec2, dt float64) core.Vec2 {
	desired := target.Sub(pos).Angle()

	// Shortest-arc interpolation toward the desired heading.
	diff := desired - p.Heading
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}

	maxTurn := p.TurnRate * dt
	diff = core.ClampF(diff, -maxTurn, maxTurn)
	p.Heading += diff

	return pos.Add(core.FromAngle(p.Heading).Scale(p.Speed * dt))
}
