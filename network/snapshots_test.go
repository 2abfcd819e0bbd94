package network

import (
	"testing"

	"github.com/automoto/ironsight-mp/shared/messages"
)

func TestSnapshotQueueLatestWins(t *testing.T) {
	t.Parallel()

	var q SnapshotQueue

	if _, ok := q.Latest(); ok {
		t.Fatalf("empty queue returned a snapshot")
	}

	for seq := uint32(1); seq <= 5; seq++ {
		q.Push(messages.ServerSnapshot{LastSequence: seq})
	}
	if q.Len() != 5 {
		t.Fatalf("Len = %d, want 5", q.Len())
	}

	snap, ok := q.Latest()
	if !ok || snap.LastSequence != 5 {
		t.Fatalf("Latest = %+v ok=%v, want sequence 5", snap, ok)
	}
	if q.Len() != 0 {
		t.Fatalf("Latest should drain the queue, Len = %d", q.Len())
	}
}

func TestSnapshotQueueEvictsOldestWhenFull(t *testing.T) {
	t.Parallel()

	var q SnapshotQueue
	for seq := uint32(1); seq <= SnapshotQueueSize+8; seq++ {
		q.Push(messages.ServerSnapshot{LastSequence: seq})
	}

	if q.Len() != SnapshotQueueSize {
		t.Fatalf("Len = %d, want cap %d", q.Len(), SnapshotQueueSize)
	}
	snap, ok := q.Latest()
	if !ok || snap.LastSequence != SnapshotQueueSize+8 {
		t.Fatalf("newest snapshot lost under eviction: %+v", snap)
	}
}
