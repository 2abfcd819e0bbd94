package network

import (
	"math"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
)

// PredictionBufferSize bounds local prediction history to about one second
// at 60 Hz. Sequences older than that are unrecoverable; a snapshot
// referencing one falls back to a direct state apply.
const PredictionBufferSize = 60

// InputRecord stores an input alongside the predicted state after applying
// it, plus the frame delta it was stepped with so replay is exact.
type InputRecord struct {
	Sequence  uint32
	Dt        float64
	Input     fpsmath.Input
	Predicted fpsmath.State
}

// PredictionBuffer is a ring buffer of recent inputs and their predicted
// outcomes, used for server reconciliation. Slots are keyed by sequence
// modulo capacity; new entries overwrite the oldest.
type PredictionBuffer struct {
	history [PredictionBufferSize]InputRecord
	nextSeq uint32
}

// Store saves an input and the resulting predicted state.
func (pb *PredictionBuffer) Store(seq uint32, dt float64, input fpsmath.Input, predicted fpsmath.State) {
	pb.history[seq%PredictionBufferSize] = InputRecord{
		Sequence:  seq,
		Dt:        dt,
		Input:     input,
		Predicted: predicted,
	}
	if seq >= pb.nextSeq {
		pb.nextSeq = seq + 1
	}
}

// Get retrieves a stored record by sequence number. Returns false if not
// found or if the slot has been overwritten. Sequence 0 is never issued.
func (pb *PredictionBuffer) Get(seq uint32) (InputRecord, bool) {
	if seq == 0 {
		return InputRecord{}, false
	}
	record := pb.history[seq%PredictionBufferSize]
	if record.Sequence != seq {
		return InputRecord{}, false
	}
	return record, true
}

// NextSeq returns the next sequence number that will be issued.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// GetUnacknowledged returns all stored inputs with sequence numbers greater
// than lastAcked and less than nextSeq, in sequence order: the inputs the
// server hadn't confirmed yet, i.e. the reconciliation replay set.
func (pb *PredictionBuffer) GetUnacknowledged(lastAcked uint32) []InputRecord {
	var results []InputRecord
	for seq := lastAcked + 1; seq < pb.nextSeq; seq++ {
		if record, ok := pb.Get(seq); ok {
			results = append(results, record)
		}
	}
	return results
}

// PredictionError calculates the positional distance between the predicted
// and authoritative state for a given sequence. Zero when the sequence is
// no longer buffered.
func (pb *PredictionBuffer) PredictionError(seq uint32, server fpsmath.State) float64 {
	record, ok := pb.Get(seq)
	if !ok {
		return 0
	}
	d := record.Predicted.Position.Sub(server.Position)
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
}
