package client

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync"

	"github.com/automoto/ironsight-mp/network"
	"github.com/automoto/ironsight-mp/shared/arena"
	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/messages"
	"github.com/automoto/ironsight-mp/shared/netcomponents"
)

// Session ties the client pieces together: once per frame it samples input,
// predicts locally, ships the input to the server, reconciles against the
// latest authoritative snapshot, and smooths remote players. The embedder
// owns the frame loop and calls Update with the frame delta.
type Session struct {
	netClient *network.Client
	source    InputSource
	layout    *arena.Layout

	prediction *Prediction
	interp     *Interpolator
	snapshots  network.SnapshotQueue

	// SendInput overrides network delivery of input samples. A listen
	// server sets this to hand inputs straight to the local authority,
	// skipping the loopback round trip.
	SendInput func(messages.PlayerInput) error

	remoteInfo map[esync.NetworkId]remotePlayer
	presentIDs map[esync.NetworkId]bool

	health int
	ammo   int
	alive  bool

	initialized bool
}

type remotePlayer struct {
	Name   string
	Health int
	Alive  bool
}

// NewSession creates a session around a connected (or connecting) client.
// layout must describe the same arena the server runs; it feeds the local
// prediction collision space.
func NewSession(netClient *network.Client, source InputSource, layout *arena.Layout) *Session {
	return &Session{
		netClient:  netClient,
		source:     source,
		layout:     layout,
		interp:     NewInterpolator(),
		remoteInfo: make(map[esync.NetworkId]remotePlayer),
		presentIDs: make(map[esync.NetworkId]bool),
		health:     100,
		alive:      true,
	}
}

// Update runs one client frame. dt is the wall-clock frame delta in
// seconds.
func (s *Session) Update(dt float64) {
	if s.netClient.State() != network.StateJoinedGame {
		return
	}
	if !s.initialized {
		s.configure()
	}

	if world := s.netClient.LatestWorld(); world != nil {
		s.applyWorld(*world)
	}

	for _, snap := range s.netClient.DrainSnapshots() {
		s.snapshots.Push(snap)
	}
	if snap, ok := s.snapshots.Latest(); ok {
		res := s.prediction.Reconcile(snap)
		if !res.Matched {
			log.Printf("[session] snapshot seq %d no longer buffered, snapping to server state", snap.LastSequence)
		}
	}

	in := s.source.Sample()
	seq, _ := s.prediction.Predict(dt, in)
	msg := messages.PlayerInput{
		Sequence:  seq,
		NetworkID: s.netClient.NetworkID(),
		MoveX:     in.Move[0],
		MoveY:     in.Move[1],
		LookX:     in.Look[0],
		LookY:     in.Look[1],
		Jump:      in.Jump,
		Fire:      in.Fire,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.send(msg); err != nil {
		log.Printf("[session] input send error: %v", err)
	}

	s.drainEvents()
	s.interp.Update(dt)
}

func (s *Session) configure() {
	// The join handshake carries the server's placement, so prediction
	// starts where the authority actually spawned us.
	st := fpsmath.State{Position: s.netClient.Spawn()}
	s.prediction = NewPrediction(s.netClient.Tuning())
	s.prediction.InitCollision(s.layout, uint(s.netClient.NetworkID()), st)
	s.initialized = true
}

func (s *Session) send(msg messages.PlayerInput) error {
	if s.SendInput != nil {
		return s.SendInput(msg)
	}
	return s.netClient.SendMessage(msg)
}

func (s *Session) drainEvents() {
	for _, evt := range s.netClient.DrainDamageEvents() {
		s.health = evt.NewHealth
		if evt.Fatal {
			s.alive = false
			log.Printf("[session] killed by %d", evt.AttackerID)
		}
	}
	for _, evt := range s.netClient.DrainAmmoEvents() {
		s.ammo = evt.NewAmmo
	}
	for _, evt := range s.netClient.DrainRespawnEvents() {
		s.alive = true
		s.health = 100
		s.prediction.SetState(fpsmath.State{Position: [3]float64{evt.X, evt.Y, evt.Z}})
	}
}

// applyWorld folds a rate-limited world broadcast into the session. The
// local character's transform is ignored here (reconciliation snapshots
// own it), but its discrete state like health and ammo is taken. Remote
// characters feed the interpolator; entities absent from the broadcast are
// despawned.
func (s *Session) applyWorld(snapshot esync.WorldSnapshot) {
	myID := s.netClient.NetworkID()
	clear(s.presentIDs)

	for _, ent := range snapshot {
		s.presentIDs[ent.Id] = true

		var transform *netcomponents.NetTransformData
		var velocity *netcomponents.NetVelocityData
		var info remotePlayer
		haveInfo := false

		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetTransformData:
				cp := v
				transform = &cp
			case netcomponents.NetVelocityData:
				cp := v
				velocity = &cp
			case netcomponents.NetPlayerStateData:
				info = remotePlayer{Name: v.Name, Health: v.Health, Alive: v.Alive}
				haveInfo = true
				if ent.Id == myID {
					s.health = v.Health
					s.ammo = v.Ammo
					s.alive = v.Alive
				}
			}
		}

		if ent.Id == myID {
			continue
		}
		if transform != nil {
			st := fpsmath.State{
				Position: [3]float64{transform.X, transform.Y, transform.Z},
				Yaw:      transform.Yaw,
				Pitch:    transform.Pitch,
			}
			if velocity != nil {
				st.Velocity = [3]float64{velocity.X, velocity.Y, velocity.Z}
			}
			s.interp.Push(ent.Id, st)
		}
		if haveInfo {
			s.remoteInfo[ent.Id] = info
		}
	}

	for id := range s.remoteInfo {
		if !s.presentIDs[id] {
			delete(s.remoteInfo, id)
			s.interp.Remove(id)
		}
	}
}

// LocalState returns the predicted local player state.
func (s *Session) LocalState() fpsmath.State {
	if s.prediction == nil {
		return fpsmath.State{}
	}
	return s.prediction.State()
}

// Health returns the last known local health.
func (s *Session) Health() int { return s.health }

// Ammo returns the last known local ammo count.
func (s *Session) Ammo() int { return s.ammo }

// Alive reports whether the local character is alive.
func (s *Session) Alive() bool { return s.alive }

// Remotes returns the interpolator for remote character display states.
func (s *Session) Remotes() *Interpolator { return s.interp }
