package protocol

import (
	"github.com/leap-fish/necs/esync"

	"github.com/automoto/ironsight-mp/shared/netcomponents"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetTransform   uint = 10
	SyncIDNetVelocity    uint = 11
	SyncIDNetPlayerState uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetTransform uint8 = 10
	InterpIDNetVelocity  uint8 = 11
)

// RegisterComponents registers all network components with necs for
// serialization. Must be called by both server and client before any
// network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetTransform,
		netcomponents.NetTransformData{},
		netcomponents.NetTransform,
		esync.WithInterpFn(InterpIDNetTransform, netcomponents.LerpNetTransform),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetVelocity,
		netcomponents.NetVelocityData{},
		netcomponents.NetVelocity,
		esync.WithInterpFn(InterpIDNetVelocity, netcomponents.LerpNetVelocity),
	); err != nil {
		return err
	}

	// PlayerState: no interpolation (discrete state changes)
	return esync.RegisterComponent(
		SyncIDNetPlayerState,
		netcomponents.NetPlayerStateData{},
		netcomponents.NetPlayerState,
	)
}
