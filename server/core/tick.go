package core

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/messages"
	"github.com/automoto/ironsight-mp/shared/netcomponents"
)

// outbound is a message queued during the simulation pass and delivered
// after the state lock is released. to == nil broadcasts to every client.
type outbound struct {
	to  *router.NetworkClient
	msg any
}

// Tick advances the authoritative simulation by dt seconds, sends each
// owner its reconciliation snapshot, and replicates the world at the
// broadcast rate.
func (s *Server) Tick(dt float64) {
	start := time.Now()

	s.mu.Lock()

	var outbox []outbound
	var firing []*Character

	for _, ch := range s.characters {
		if !ch.Alive {
			ch.RespawnTimer -= dt
			if ch.RespawnTimer <= 0 {
				outbox = append(outbox, s.respawnLocked(ch)...)
			}
			s.writeComponents(ch)
			continue
		}

		in := ch.LatestInput
		fresh := ch.LatestSeq > ch.ConsumedSeq
		if !fresh {
			// A stale sample keeps movement held, but must not keep
			// turning the camera or re-trigger edge actions.
			in.Look = mgl64.Vec2{}
			in.Jump = false
			in.Fire = false
		}

		prev := ch.State
		next := fpsmath.Step(dt, in, ch.State, ch.Grounded, s.cfg.Tuning)
		ch.Grounded = s.space.Slide(ch.Object, prev, &next)
		ch.State = next

		if fresh && in.Fire {
			firing = append(firing, ch)
		}
		ch.ConsumedSeq = ch.LatestSeq

		s.writeComponents(ch)
	}

	for _, ch := range firing {
		outbox = append(outbox, s.resolveFireLocked(ch)...)
	}

	// Reconciliation snapshots go out every tick; only the world broadcast
	// for remote interpolation is rate limited.
	for client, ch := range s.clients {
		outbox = append(outbox, outbound{to: client, msg: messages.ServerSnapshot{
			LastSequence: ch.ConsumedSeq,
			X:            ch.State.Position[0],
			Y:            ch.State.Position[1],
			Z:            ch.State.Position[2],
			Yaw:          ch.State.Yaw,
			Pitch:        ch.State.Pitch,
			VelX:         ch.State.Velocity[0],
			VelY:         ch.State.Velocity[1],
			VelZ:         ch.State.Velocity[2],
		}})
	}

	doBroadcast := s.broadcast.Allow()

	s.mu.Unlock()

	if doBroadcast {
		if err := srvsync.DoSync(); err != nil {
			log.Printf("[server] sync error: %v", err)
		}
	}
	s.deliver(outbox)

	observeTickDuration(time.Since(start))
}

// deliver flushes queued messages outside the state lock.
func (s *Server) deliver(outbox []outbound) {
	for _, ob := range outbox {
		if ob.to != nil {
			s.send(ob.to, ob.msg)
			continue
		}
		s.mu.RLock()
		targets := make([]*router.NetworkClient, 0, len(s.clients))
		for client := range s.clients {
			targets = append(targets, client)
		}
		s.mu.RUnlock()
		for _, client := range targets {
			s.send(client, ob.msg)
		}
	}
}

// writeComponents mirrors a character's authoritative state into its
// replicated ECS components. Caller holds mu.
func (s *Server) writeComponents(ch *Character) {
	if !s.world.Valid(ch.Entity) {
		return
	}
	entry := s.world.Entry(ch.Entity)

	netcomponents.NetTransform.Set(entry, &netcomponents.NetTransformData{
		X:     ch.State.Position[0],
		Y:     ch.State.Position[1],
		Z:     ch.State.Position[2],
		Yaw:   ch.State.Yaw,
		Pitch: ch.State.Pitch,
	})
	netcomponents.NetVelocity.Set(entry, &netcomponents.NetVelocityData{
		X: ch.State.Velocity[0],
		Y: ch.State.Velocity[1],
		Z: ch.State.Velocity[2],
	})
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		Name:         ch.Name,
		Health:       ch.Health,
		Ammo:         ch.Ammo,
		Alive:        ch.Alive,
		LastSequence: ch.ConsumedSeq,
	})
}

// respawnLocked resets a dead character at its spawn point. Caller holds mu.
// Returns the notifications owed to the owning client.
func (s *Server) respawnLocked(ch *Character) []outbound {
	spawn := s.cfg.Layout.SpawnAt(ch.SpawnIdx)

	ch.State = fpsmath.State{Position: mgl64.Vec3{spawn.X, 0, spawn.Z}}
	ch.Grounded = true
	ch.Health = startHealth
	ch.Ammo = startAmmo
	ch.Alive = true
	ch.RespawnTimer = 0
	s.space.Teleport(ch.Object, spawn.X, spawn.Z)

	log.Printf("[server] character %d respawned at spawn %d", ch.OwnerID, ch.SpawnIdx)

	client := s.clientForLocked(ch)
	if client == nil {
		return nil
	}
	return []outbound{
		{to: client, msg: messages.RespawnEvent{X: spawn.X, Y: 0, Z: spawn.Z}},
		{to: client, msg: messages.AmmoEvent{NewAmmo: ch.Ammo}},
	}
}

// clientForLocked is clientFor without taking mu; caller holds it.
func (s *Server) clientForLocked(ch *Character) *router.NetworkClient {
	for client, c := range s.clients {
		if c == ch {
			return client
		}
	}
	return nil
}
