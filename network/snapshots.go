package network

import "github.com/automoto/ironsight-mp/shared/messages"

// SnapshotQueueSize bounds how many unconsumed reconciliation snapshots a
// client holds. Only the newest is ever reconciled against; the bound just
// keeps a stalled consumer from growing without limit.
const SnapshotQueueSize = 32

// SnapshotQueue is a bounded FIFO of reconciliation snapshots. When full,
// the oldest entry is evicted. Consumption is latest-wins: Latest drains
// everything and hands back only the newest snapshot, since older ones are
// obsolete the moment a newer one exists.
type SnapshotQueue struct {
	buf   [SnapshotQueueSize]messages.ServerSnapshot
	head  int
	count int
}

// Push appends a snapshot, evicting the oldest when the queue is full.
func (q *SnapshotQueue) Push(s messages.ServerSnapshot) {
	if q.count == SnapshotQueueSize {
		q.head = (q.head + 1) % SnapshotQueueSize
		q.count--
	}
	q.buf[(q.head+q.count)%SnapshotQueueSize] = s
	q.count++
}

// Latest drains the queue and returns the most recent snapshot. Returns
// false when the queue is empty.
func (q *SnapshotQueue) Latest() (messages.ServerSnapshot, bool) {
	if q.count == 0 {
		return messages.ServerSnapshot{}, false
	}
	s := q.buf[(q.head+q.count-1)%SnapshotQueueSize]
	q.head = 0
	q.count = 0
	return s, true
}

// Len reports how many snapshots are queued.
func (q *SnapshotQueue) Len() int {
	return q.count
}
