package core

import (
	"github.com/leap-fish/necs/esync"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
)

const (
	startHealth = 100
	startAmmo   = 30
	respawnWait = 3.0 // seconds
	eyeHeight   = 1.6
)

// Character holds per-player authoritative state on the server. Only the
// simulation tick writes State; router callbacks only stage the latest
// input sample.
type Character struct {
	Entity  donburi.Entity
	Object  *resolv.Object
	OwnerID esync.NetworkId
	Name    string

	State    fpsmath.State
	Grounded bool

	// Latest input sample delivered for this character (last-write-wins;
	// stale input persists until something newer arrives).
	LatestInput fpsmath.Input
	LatestSeq   uint32

	// Last sequence the simulation actually consumed. Edge-triggered
	// actions (jump, fire) and look deltas only apply when LatestSeq moves
	// past this, so a stale sample can't re-fire or keep turning.
	ConsumedSeq uint32

	Health int
	Ammo   int
	Alive  bool

	RespawnTimer float64
	SpawnIdx     int
}

func newCharacter(ownerID esync.NetworkId, name string, spawnIdx int, x, z float64) *Character {
	return &Character{
		OwnerID:  ownerID,
		Name:     name,
		SpawnIdx: spawnIdx,
		State: fpsmath.State{
			Position: [3]float64{x, 0, z},
		},
		Grounded: true,
		Health:   startHealth,
		Ammo:     startAmmo,
		Alive:    true,
	}
}
