package messages

import "github.com/leap-fish/necs/esync"

// PlayerInput is sent from client to server once per frame with the
// player's captured intent. Sequence numbers are strictly increasing per
// client; the server keeps only the latest sample per character
// (last-write-wins) and tolerates loss, duplication and reordering.
type PlayerInput struct {
	Sequence  uint32          // Incrementing ID for reconciliation
	NetworkID esync.NetworkId // Claimed owner; must match the sending connection
	MoveX     float64         // Strafe axis, +right
	MoveY     float64         // Forward axis, -1 = forward
	LookX     float64         // Yaw delta, radians
	LookY     float64         // Pitch delta, radians
	Jump      bool            // Just-pressed edge
	Fire      bool            // Just-pressed edge
	Timestamp int64           // Client capture time (Unix ms)
}
