package client

import (
	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/messages"
)

// ReconcileResult reports what a reconciliation pass did.
type ReconcileResult struct {
	Matched  bool    // snapshot sequence was still in the prediction buffer
	Replayed int     // unacknowledged inputs replayed on top of the snapshot
	Error    float64 // positional distance between prediction and authority at the acked sequence
}

// Reconcile replaces the predicted state with an authoritative snapshot and
// replays every input the server hadn't seen yet, in sequence order.
//
// When the snapshot's sequence has already been evicted from the prediction
// buffer, the snapshot is applied directly with no replay: a degraded
// accuracy fallback, not an error. Either way the visible state converges
// to what the server will agree on; it never rewinds further back than the
// oldest unconfirmed input.
func (p *Prediction) Reconcile(snap messages.ServerSnapshot) ReconcileResult {
	server := stateFromSnapshot(snap)

	// Before the first local prediction there is nothing to replay; accept
	// the server's placement (initial spawn).
	if p.seq == 0 {
		p.SetState(server)
		return ReconcileResult{Matched: true}
	}

	// LastSequence 0 means the server hasn't consumed any input yet: every
	// local prediction is still pending and replays on top of the snapshot.
	if snap.LastSequence != 0 {
		if _, ok := p.Buffer.Get(snap.LastSequence); !ok {
			p.SetState(server)
			return ReconcileResult{}
		}
	}

	res := ReconcileResult{Matched: true}
	if snap.LastSequence != 0 {
		res.Error = p.Buffer.PredictionError(snap.LastSequence, server)
	}

	p.SetState(server)
	for _, rec := range p.Buffer.GetUnacknowledged(snap.LastSequence) {
		prev := p.state
		next := fpsmath.Step(rec.Dt, rec.Input, p.state, p.grounded, p.tuning)
		p.grounded = p.slide(prev, &next)
		p.state = next
		// Replayed outcomes become the new predicted states for those
		// sequences, so the next snapshot reconciles against them.
		p.Buffer.Store(rec.Sequence, rec.Dt, rec.Input, next)
		res.Replayed++
	}
	return res
}
