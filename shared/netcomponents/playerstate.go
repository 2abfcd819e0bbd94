package netcomponents

import "github.com/yohamta/donburi"

// NetPlayerStateData is a character's replicated gameplay state. No
// interpolation: these are discrete values.
type NetPlayerStateData struct {
	Name         string
	Health       int
	Ammo         int
	Alive        bool
	LastSequence uint32 // Last input sequence the server consumed (reconciliation tag)
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
