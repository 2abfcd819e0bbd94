package client

import (
	"github.com/solarlune/resolv"

	"github.com/automoto/ironsight-mp/network"
	"github.com/automoto/ironsight-mp/shared/arena"
	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/messages"
)

// Prediction owns client-side prediction state for the local player. It
// runs the same step function and arena mover the server runs, so a replay
// of unacknowledged inputs lands on the server's answer exactly.
type Prediction struct {
	Buffer *network.PredictionBuffer

	state    fpsmath.State
	grounded bool
	tuning   fpsmath.Tuning
	seq      uint32

	// Collision space for prediction; nil until InitCollision.
	space *arena.Space
	obj   *resolv.Object
}

// NewPrediction creates a prediction state with the given movement tuning.
func NewPrediction(tuning fpsmath.Tuning) *Prediction {
	return &Prediction{
		Buffer:   &network.PredictionBuffer{},
		tuning:   tuning,
		grounded: true,
	}
}

// InitCollision builds a local collision space from the arena layout so
// prediction resolves walls the same way the server does, and places the
// player footprint at the given state.
func (p *Prediction) InitCollision(layout *arena.Layout, id uint, st fpsmath.State) {
	p.space = arena.NewSpace(layout)
	p.obj = p.space.AddPlayer(id, st.Position[0], st.Position[2])
	p.state = st
	p.grounded = st.Position[1] <= 0
}

// State returns the current predicted state.
func (p *Prediction) State() fpsmath.State {
	return p.state
}

// Grounded reports whether the predicted player has ground contact.
func (p *Prediction) Grounded() bool {
	return p.grounded
}

// Predict applies one frame of input locally for instant feedback, stores
// the outcome for later reconciliation, and returns the assigned sequence
// number and the predicted state.
func (p *Prediction) Predict(dt float64, in fpsmath.Input) (uint32, fpsmath.State) {
	p.seq++
	prev := p.state
	next := fpsmath.Step(dt, in, p.state, p.grounded, p.tuning)
	p.grounded = p.slide(prev, &next)
	p.state = next
	p.Buffer.Store(p.seq, dt, in, next)
	return p.seq, next
}

// SetState snaps the predicted state without collision resolution (initial
// spawn, respawn, degraded reconciliation).
func (p *Prediction) SetState(st fpsmath.State) {
	p.state = st
	p.grounded = st.Position[1] <= 0
	if p.obj != nil {
		p.space.Teleport(p.obj, st.Position[0], st.Position[2])
	}
}

func (p *Prediction) slide(prev fpsmath.State, next *fpsmath.State) bool {
	if p.obj != nil {
		return p.space.Slide(p.obj, prev, next)
	}
	// No collision space: bare movement over the flat floor.
	if next.Position[1] <= 0 {
		next.Position[1] = 0
		if next.Velocity[1] < 0 {
			next.Velocity[1] = 0
		}
		return true
	}
	return false
}

func stateFromSnapshot(s messages.ServerSnapshot) fpsmath.State {
	return fpsmath.State{
		Position: [3]float64{s.X, s.Y, s.Z},
		Yaw:      s.Yaw,
		Pitch:    s.Pitch,
		Velocity: [3]float64{s.VelX, s.VelY, s.VelZ},
	}
}
