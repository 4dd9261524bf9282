package engine

import (
	"math"

	"github.com/neonhall/arcade/internal/core"
)

// groundEpsilon is the height below which a body counts as grounded.
const groundEpsilon = 0.01

// MoveParams tunes the first-person movement controller.
type MoveParams struct {
	MoveSpeed   float64 // World units per second
	Gravity     float64 // Downward acceleration, units/s^2
	JumpImpulse float64 // Initial upward velocity on jump
	TurnSpeed   float64 // Yaw rate, radians per second
	PitchMax    float64 // Pitch cone half-angle, radians
	PitchReturn float64 // Pitch auto-centering rate, radians per second
}

// DefaultMoveParams returns the hub movement tuning.
func DefaultMoveParams() MoveParams {
	return MoveParams{
		MoveSpeed:   3.2,
		Gravity:     18.0,
		JumpImpulse: 6.0,
		TurnSpeed:   2.2,
		PitchMax:    0.5,
		PitchReturn: 1.6,
	}
}

// FreeMover is the continuous first-person movement controller: velocity is
// derived each tick from the held movement keys relative to the camera
// heading, the tentative position is resolved against the room, and
// vertical motion (jump/gravity) integrates independently.
type FreeMover struct {
	Pos     core.Vec2 // Ground-plane position, in tile units
	Height  float64   // Elevation above the floor
	VertVel float64
	Jumping bool
	Yaw     float64
	Pitch   float64
	Radius  float64
	Params  MoveParams
}

// Step advances the mover by one tick against the given room.
func (fm *FreeMover) Step(in core.InputFrame, room *Room, dt float64) {
	fm.look(in, dt)
	fm.walk(in, room, dt)
	fm.fall(in, dt)
}

// look updates yaw from the turn keys and pitch from the look keys, with
// the pitch clamped to a cone and auto-returning to level when released.
func (fm *FreeMover) look(in core.InputFrame, dt float64) {
	if in.Has(core.ActionTurnLeft) {
		fm.Yaw -= fm.Params.TurnSpeed * dt
	}
	if in.Has(core.ActionTurnRight) {
		fm.Yaw += fm.Params.TurnSpeed * dt
	}

	switch {
	case in.Has(core.ActionLookUp):
		fm.Pitch = core.ClampF(fm.Pitch+fm.Params.TurnSpeed*dt, -fm.Params.PitchMax, fm.Params.PitchMax)
	case in.Has(core.ActionLookDown):
		fm.Pitch = core.ClampF(fm.Pitch-fm.Params.TurnSpeed*dt, -fm.Params.PitchMax, fm.Params.PitchMax)
	default:
		// No vertical-look key held: ease back to level.
		if fm.Pitch > 0 {
			fm.Pitch = math.Max(0, fm.Pitch-fm.Params.PitchReturn*dt)
		} else if fm.Pitch < 0 {
			fm.Pitch = math.Min(0, fm.Pitch+fm.Params.PitchReturn*dt)
		}
	}
}

// walk derives the ground-plane velocity from held movement keys mapped to
// camera-relative forward/right vectors, normalized on diagonals, then
// resolves the tentative position with clamp-and-slide.
func (fm *FreeMover) walk(in core.InputFrame, room *Room, dt float64) {
	forward := core.FromAngle(fm.Yaw)
	right := core.FromAngle(fm.Yaw + math.Pi/2)

	var wish core.Vec2
	if in.Has(core.ActionUp) {
		wish = wish.Add(forward)
	}
	if in.Has(core.ActionDown) {
		wish = wish.Sub(forward)
	}
	if in.Has(core.ActionRight) {
		wish = wish.Add(right)
	}
	if in.Has(core.ActionLeft) {
		wish = wish.Sub(right)
	}

	if wish.X == 0 && wish.Y == 0 {
		return
	}

	tentative := fm.Pos.Add(wish.Normalized().Scale(fm.Params.MoveSpeed * dt))
	if room != nil {
		fm.Pos = room.Resolve(fm.Pos, tentative, fm.Radius)
	} else {
		fm.Pos = tentative
	}
}

// fall integrates the vertical axis: jump sets an upward impulse when
// grounded, gravity pulls it back, and landing clamps to the floor.
func (fm *FreeMover) fall(in core.InputFrame, dt float64) {
	if in.Has(core.ActionJump) && !fm.Jumping && fm.Height < groundEpsilon {
		fm.VertVel = fm.Params.JumpImpulse
		fm.Jumping = true
	}

	if !fm.Jumping {
		return
	}

	fm.VertVel -= fm.Params.Gravity * dt
	fm.Height += fm.VertVel * dt

	if fm.Height <= 0 && fm.VertVel < 0 {
		fm.Height = 0
		fm.VertVel = 0
		fm.Jumping = false
	}
}

// Grounded reports whether the mover is on the floor.
func (fm *FreeMover) Grounded() bool {
	return !fm.Jumping && fm.Height < groundEpsilon
}
