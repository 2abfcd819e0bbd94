package core

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/messages"
)

const (
	damagePerShot = 25
	fireRange     = 100.0
)

// resolveFireLocked performs a hitscan shot for a character whose fresh
// input had the fire flag set. Caller holds mu. Returns the event messages
// owed to clients.
func (s *Server) resolveFireLocked(shooter *Character) []outbound {
	if shooter.Ammo <= 0 {
		return nil
	}
	shooter.Ammo--

	origin := shooter.State.Position.Add(mgl64.Vec3{0, eyeHeight, 0})
	hit, found := s.space.Raycast(origin, shooter.State.Yaw, shooter.State.Pitch, fireRange, shooter.Object)

	end := hit.Point
	if !found {
		end = origin.Add(fpsmath.ViewDir(shooter.State.Yaw, shooter.State.Pitch).Mul(fireRange))
	}

	evt := messages.FireEvent{
		ShooterID: shooter.OwnerID,
		OriginX:   origin[0],
		OriginY:   origin[1],
		OriginZ:   origin[2],
		EndX:      end[0],
		EndY:      end[1],
		EndZ:      end[2],
	}

	var outbox []outbound

	if found && hit.PlayerID != 0 {
		victim := s.characters[esync.NetworkId(hit.PlayerID)]
		if victim != nil && victim.Alive {
			evt.Hit = true
			evt.VictimID = victim.OwnerID

			victim.Health -= damagePerShot
			fatal := victim.Health <= 0
			if fatal {
				victim.Health = 0
				victim.Alive = false
				victim.RespawnTimer = respawnWait
				log.Printf("[server] character %d killed by %d", victim.OwnerID, shooter.OwnerID)
			}
			s.writeComponents(victim)

			if victimClient := s.clientForLocked(victim); victimClient != nil {
				outbox = append(outbox, outbound{to: victimClient, msg: messages.DamageEvent{
					AttackerID: shooter.OwnerID,
					NewHealth:  victim.Health,
					Fatal:      fatal,
				}})
			}
		}
	}

	if shooterClient := s.clientForLocked(shooter); shooterClient != nil {
		outbox = append(outbox, outbound{to: shooterClient, msg: messages.AmmoEvent{NewAmmo: shooter.Ammo}})
	}
	outbox = append(outbox, outbound{msg: evt})

	s.writeComponents(shooter)
	return outbox
}
