package client

import (
	"github.com/leap-fish/necs/esync"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
)

// interpWindow is how long a remote player takes to reach a freshly
// received target state, matching the ~30 Hz broadcast cadence with a
// little headroom.
const interpWindow = 0.1 // seconds

type remoteEntry struct {
	prev    fpsmath.State
	target  fpsmath.State
	current fpsmath.State
	tween   *gween.Tween
}

// Interpolator smooths non-owned characters toward their broadcast
// authoritative states. It never extrapolates: when updates stop arriving
// the character finishes its tween and freezes at the last received state.
type Interpolator struct {
	entries map[esync.NetworkId]*remoteEntry
}

func NewInterpolator() *Interpolator {
	return &Interpolator{entries: make(map[esync.NetworkId]*remoteEntry)}
}

// Push registers a fresh authoritative state for a remote character and
// restarts its interpolation from whatever is currently displayed. The
// first state for an unknown character is applied directly.
func (it *Interpolator) Push(id esync.NetworkId, target fpsmath.State) {
	e, ok := it.entries[id]
	if !ok {
		it.entries[id] = &remoteEntry{prev: target, target: target, current: target}
		return
	}
	e.prev = e.current
	e.target = target
	e.tween = gween.New(0, 1, interpWindow, ease.Linear)
}

// Update advances all interpolations by dt.
func (it *Interpolator) Update(dt float64) {
	for _, e := range it.entries {
		if e.tween == nil {
			continue
		}
		t, done := e.tween.Update(float32(dt))
		e.current = lerpState(e.prev, e.target, float64(t))
		if done {
			e.current = e.target
			e.tween = nil
		}
	}
}

// Current returns the displayed state for a remote character.
func (it *Interpolator) Current(id esync.NetworkId) (fpsmath.State, bool) {
	e, ok := it.entries[id]
	if !ok {
		return fpsmath.State{}, false
	}
	return e.current, true
}

// Each visits every remote character's displayed state.
func (it *Interpolator) Each(fn func(id esync.NetworkId, st fpsmath.State)) {
	for id, e := range it.entries {
		fn(id, e.current)
	}
}

// Remove forgets a despawned character.
func (it *Interpolator) Remove(id esync.NetworkId) {
	delete(it.entries, id)
}

// Len reports how many remote characters are tracked.
func (it *Interpolator) Len() int {
	return len(it.entries)
}

func lerpState(a, b fpsmath.State, t float64) fpsmath.State {
	return fpsmath.State{
		Position: [3]float64{
			fpsmath.Lerp(a.Position[0], b.Position[0], t),
			fpsmath.Lerp(a.Position[1], b.Position[1], t),
			fpsmath.Lerp(a.Position[2], b.Position[2], t),
		},
		Yaw:   fpsmath.LerpAngle(a.Yaw, b.Yaw, t),
		Pitch: fpsmath.Lerp(a.Pitch, b.Pitch, t),
		Velocity: [3]float64{
			fpsmath.Lerp(a.Velocity[0], b.Velocity[0], t),
			fpsmath.Lerp(a.Velocity[1], b.Velocity[1], t),
			fpsmath.Lerp(a.Velocity[2], b.Velocity[2], t),
		},
	}
}
