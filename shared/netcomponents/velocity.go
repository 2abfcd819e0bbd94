package netcomponents

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
)

// NetVelocityData is a character's replicated velocity.
type NetVelocityData struct {
	X, Y, Z float64
}

var NetVelocity = donburi.NewComponentType[NetVelocityData]()

// LerpNetVelocity interpolates between two velocities.
func LerpNetVelocity(from, to NetVelocityData, t float64) *NetVelocityData {
	return &NetVelocityData{
		X: fpsmath.Lerp(from.X, to.X, t),
		Y: fpsmath.Lerp(from.Y, to.Y, t),
		Z: fpsmath.Lerp(from.Z, to.Z, t),
	}
}
