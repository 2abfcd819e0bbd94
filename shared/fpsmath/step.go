// Package fpsmath holds the deterministic movement simulation shared by
// client-side prediction and server authority. Both sides must run the exact
// same routine with the same tuning values, or reconciliation diverges
// permanently. Any change to movement rules has to land in this package and
// nowhere else.
package fpsmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PitchLimit bounds camera pitch to ±1.3 radians to prevent camera flip.
const PitchLimit = 1.3

// Tuning holds the movement constants. The server is authoritative over
// these; it echoes them to clients in the join handshake so prediction runs
// with identical numbers.
type Tuning struct {
	MoveSpeed float64
	JumpSpeed float64
	Gravity   float64
}

// DefaultTuning returns the stock arena movement constants.
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed: 8.0,
		JumpSpeed: 4.5,
		Gravity:   9.8,
	}
}

// Input is one frame of captured player intent.
type Input struct {
	Move mgl64.Vec2 // x = strafe (+right), y = forward axis (-1 = forward)
	Look mgl64.Vec2 // x = yaw delta, y = pitch delta (radians)
	Jump bool       // just-pressed edge
	Fire bool       // just-pressed edge
}

// State is the simulated player state: the unit of prediction,
// reconciliation and interpolation.
type State struct {
	Position mgl64.Vec3
	Yaw      float64 // radians, rotation about +Y
	Pitch    float64 // radians, always within ±PitchLimit
	Velocity mgl64.Vec3
}

// Step advances state by dt using one input sample. It is a pure function:
// no collision response happens here; the caller pushes the returned state
// through the arena mover afterward, which also supplies next tick's
// grounded flag.
//
// Horizontal velocity is overwritten from the move vector rather than
// accumulated; releasing all movement keys stops the player on the spot.
func Step(dt float64, in Input, st State, grounded bool, tun Tuning) State {
	st.Yaw -= in.Look[0]
	st.Pitch = Clamp(st.Pitch-in.Look[1], -PitchLimit, PitchLimit)

	if !grounded {
		st.Velocity[1] -= tun.Gravity * dt
	}

	if in.Move.Len() > 0 {
		dir := in.Move.Normalize()
		sin, cos := math.Sincos(st.Yaw)
		st.Velocity[0] = (dir[0]*cos + dir[1]*sin) * tun.MoveSpeed
		st.Velocity[2] = (-dir[0]*sin + dir[1]*cos) * tun.MoveSpeed
	} else {
		st.Velocity[0] = 0
		st.Velocity[2] = 0
	}

	if in.Jump && grounded {
		st.Velocity[1] = tun.JumpSpeed
	}

	st.Position = st.Position.Add(st.Velocity.Mul(dt))
	return st
}

// ViewDir returns the unit view direction for a yaw/pitch pair. Forward at
// yaw 0, pitch 0 is -Z; positive pitch looks up.
func ViewDir(yaw, pitch float64) mgl64.Vec3 {
	sinY, cosY := math.Sincos(yaw)
	sinP, cosP := math.Sincos(pitch)
	return mgl64.Vec3{-sinY * cosP, sinP, -cosY * cosP}
}
