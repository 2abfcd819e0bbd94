package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request a character.
// ReconnectToken, when set, asks the server to re-attach the session that
// minted it.
type JoinRequest struct {
	Version        string
	PlayerName     string
	ReconnectToken string
}

// JoinAccepted is sent by the server when a join request is accepted. The
// movement tuning and spawn position are echoed so client prediction starts
// from the server's exact state.
type JoinAccepted struct {
	NetworkID      esync.NetworkId
	ReconnectToken string
	ServerName     string
	TickRate       int
	Arena          string
	MoveSpeed      float64
	JumpSpeed      float64
	Gravity        float64
	SpawnX         float64
	SpawnY         float64
	SpawnZ         float64
}

// JoinRejected is sent by the server when a join request is rejected.
type JoinRejected struct {
	Reason string
}
