package messages

// ServerSnapshot is the reconciliation snapshot sent to the owning client
// only: the character's authoritative state tagged with the last input
// sequence the server had consumed when producing it. Remote players never
// see these; they receive the rate-limited world broadcast instead.
type ServerSnapshot struct {
	LastSequence uint32
	X, Y, Z      float64
	Yaw, Pitch   float64
	VelX         float64
	VelY         float64
	VelZ         float64
}
