// Package netcomponents defines the ECS components replicated from the
// server world to clients. It must stay free of any client-only
// dependencies so the dedicated server build remains headless.
package netcomponents

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
)

// NetTransformData is a character's replicated position and orientation.
type NetTransformData struct {
	X, Y, Z    float64
	Yaw, Pitch float64
}

var NetTransform = donburi.NewComponentType[NetTransformData]()

// LerpNetTransform interpolates between two transforms. Yaw takes the
// shortest arc so a wrap at ±π doesn't spin the character the long way;
// pitch is linear since it is clamped well inside ±π.
func LerpNetTransform(from, to NetTransformData, t float64) *NetTransformData {
	return &NetTransformData{
		X:     fpsmath.Lerp(from.X, to.X, t),
		Y:     fpsmath.Lerp(from.Y, to.Y, t),
		Z:     fpsmath.Lerp(from.Z, to.Z, t),
		Yaw:   fpsmath.LerpAngle(from.Yaw, to.Yaw, t),
		Pitch: fpsmath.Lerp(from.Pitch, to.Pitch, t),
	}
}
