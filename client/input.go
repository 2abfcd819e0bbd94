// Package client implements the headless game client: input capture,
// client-side prediction, server reconciliation and remote-player
// interpolation, driven by a frame loop the embedder owns.
package client

import "github.com/automoto/ironsight-mp/shared/fpsmath"

// InputSource supplies one input sample per frame. Real frontends poll
// hardware here; bots and tests supply scripted frames.
type InputSource interface {
	Sample() fpsmath.Input
}

// ScriptedInput replays a fixed list of input frames. When Loop is set the
// script wraps around; otherwise the final frame is held with its
// edge-triggered flags cleared.
type ScriptedInput struct {
	Frames []fpsmath.Input
	Loop   bool

	idx int
}

func (s *ScriptedInput) Sample() fpsmath.Input {
	if len(s.Frames) == 0 {
		return fpsmath.Input{}
	}
	if s.idx >= len(s.Frames) {
		if s.Loop {
			s.idx = 0
		} else {
			held := s.Frames[len(s.Frames)-1]
			held.Jump = false
			held.Fire = false
			held.Look = [2]float64{}
			return held
		}
	}
	in := s.Frames[s.idx]
	s.idx++
	return in
}
