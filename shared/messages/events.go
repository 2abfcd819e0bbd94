package messages

import "github.com/leap-fish/necs/esync"

// FireEvent is broadcast to every client when a shot is resolved, for
// tracer and impact effects. Hit is false when the shot hit nothing within
// range; the end point is then the ray's maximum extent.
type FireEvent struct {
	ShooterID esync.NetworkId
	OriginX   float64
	OriginY   float64
	OriginZ   float64
	EndX      float64
	EndY      float64
	EndZ      float64
	Hit       bool
	VictimID  esync.NetworkId // 0 for wall hits and misses
}

// DamageEvent is sent reliably to the affected client when its character
// takes damage.
type DamageEvent struct {
	AttackerID esync.NetworkId
	NewHealth  int
	Fatal      bool
}

// AmmoEvent is sent reliably to the owning client after a shot or respawn
// changes its ammo count.
type AmmoEvent struct {
	NewAmmo int
}

// RespawnEvent is sent reliably to the owning client when its character
// respawns.
type RespawnEvent struct {
	X, Y, Z float64
}
