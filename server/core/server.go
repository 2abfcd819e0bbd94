package core

import (
	"log"
	"sync"

	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"golang.org/x/time/rate"

	"github.com/automoto/ironsight-mp/shared/arena"
	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/messages"
	"github.com/automoto/ironsight-mp/shared/netcomponents"
)

// Config describes one server instance.
type Config struct {
	Name        string
	Version     string // required client version (empty = accept any)
	TickRate    int    // physics ticks per second
	BroadcastHz int    // world broadcast / snapshot rate
	Layout      *arena.Layout
	Tuning      fpsmath.Tuning
}

// Server owns the authoritative game state: one character per connected
// peer, stepped at a fixed tick, replicated to clients at a bounded rate.
type Server struct {
	cfg   Config
	world donburi.World
	loop  *GameLoop
	space *arena.Space

	transport *transports.WsServerTransport

	mu         sync.RWMutex
	clients    map[*router.NetworkClient]*Character
	characters map[esync.NetworkId]*Character
	spawnCount int

	broadcast *rate.Limiter

	// send delivers one message to one client. Defaults to sendTo; tests
	// swap in a recorder to observe outbound traffic without a transport.
	send func(client *router.NetworkClient, msg any)
}

// NewServer creates a game server. Start must be called to open the
// transport; tests drive tick directly instead.
func NewServer(cfg Config) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.BroadcastHz <= 0 {
		cfg.BroadcastHz = 30
	}
	if cfg.Layout == nil {
		cfg.Layout = arena.Builtin()
	}

	world := donburi.NewWorld()

	s := &Server{
		cfg:        cfg,
		world:      world,
		space:      arena.NewSpace(cfg.Layout),
		clients:    make(map[*router.NetworkClient]*Character),
		characters: make(map[esync.NetworkId]*Character),
		broadcast:  rate.NewLimiter(rate.Limit(cfg.BroadcastHz), 1),
	}
	s.send = s.sendTo
	s.loop = NewGameLoop(s, cfg.TickRate)

	srvsync.UseEsync(world)
	s.setupRouterCallbacks()

	return s
}

// Start begins the game loop and opens the WebSocket transport on the
// given port. Blocks until the transport shuts down.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		s.onJoinRequest(client, msg)
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.onPlayerInput(client, input)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, msg messages.JoinRequest) {
	if s.cfg.Version != "" && msg.Version != s.cfg.Version {
		log.Printf("[server] rejecting %s: version %q (want %q)", client.Id(), msg.Version, s.cfg.Version)
		s.send(client, messages.JoinRejected{Reason: "version mismatch"})
		return
	}

	name := msg.PlayerName
	if msg.ReconnectToken != "" {
		claimedName, err := VerifyReconnectToken(msg.ReconnectToken)
		if err != nil {
			log.Printf("[server] rejecting %s: bad reconnect token: %v", client.Id(), err)
			s.send(client, messages.JoinRejected{Reason: "invalid reconnect token"})
			return
		}
		name = claimedName
		log.Printf("[server] client %s reconnected as %q", client.Id(), name)
	}
	if name == "" {
		name = "player"
	}

	ch, err := s.spawnCharacter(name)
	if err != nil {
		log.Printf("[server] spawn failed for %s: %v", client.Id(), err)
		s.send(client, messages.JoinRejected{Reason: "spawn failed"})
		return
	}

	s.mu.Lock()
	s.clients[client] = ch
	playerCount := len(s.clients)
	s.mu.Unlock()
	setPlayerGauge(playerCount)

	token, err := GenerateReconnectToken(name)
	if err != nil {
		log.Printf("[server] token mint failed: %v", err)
	}

	s.send(client, messages.JoinAccepted{
		NetworkID:      ch.OwnerID,
		ReconnectToken: token,
		ServerName:     s.cfg.Name,
		TickRate:       s.cfg.TickRate,
		Arena:          s.cfg.Layout.Name,
		MoveSpeed:      s.cfg.Tuning.MoveSpeed,
		JumpSpeed:      s.cfg.Tuning.JumpSpeed,
		Gravity:        s.cfg.Tuning.Gravity,
		SpawnX:         ch.State.Position[0],
		SpawnY:         ch.State.Position[1],
		SpawnZ:         ch.State.Position[2],
	})

	log.Printf("[server] player %q spawned for client %s (networkID=%d)", name, client.Id(), ch.OwnerID)
}

// spawnCharacter creates a character entity, registers it for network sync
// and places it at the next spawn point.
func (s *Server) spawnCharacter(name string) (*Character, error) {
	s.mu.Lock()
	spawnIdx := s.spawnCount
	s.spawnCount++
	s.mu.Unlock()

	spawn := s.cfg.Layout.SpawnAt(spawnIdx)

	entity := s.world.Create(
		netcomponents.NetTransform,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
	)
	entry := s.world.Entry(entity)

	netcomponents.NetTransform.Set(entry, &netcomponents.NetTransformData{X: spawn.X, Z: spawn.Z})
	netcomponents.NetVelocity.Set(entry, &netcomponents.NetVelocityData{})
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		Name:   name,
		Health: startHealth,
		Ammo:   startAmmo,
		Alive:  true,
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetTransform, netcomponents.NetVelocity),
		netcomponents.NetPlayerState,
	); err != nil {
		s.world.Remove(entity)
		return nil, err
	}

	var ownerID esync.NetworkId
	if nid := esync.GetNetworkId(s.world.Entry(entity)); nid != nil {
		ownerID = *nid
	}

	ch := newCharacter(ownerID, name, spawnIdx, spawn.X, spawn.Z)
	ch.Entity = entity
	ch.Object = s.space.AddPlayer(uint(ownerID), spawn.X, spawn.Z)

	s.mu.Lock()
	s.characters[ownerID] = ch
	s.mu.Unlock()

	return ch, nil
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	ch, exists := s.clients[client]
	if exists {
		delete(s.clients, client)
		delete(s.characters, ch.OwnerID)
	}
	playerCount := len(s.clients)
	s.mu.Unlock()
	setPlayerGauge(playerCount)

	if !exists {
		return
	}

	// The peer is gone: the character is orphaned, despawn it.
	s.space.RemovePlayer(ch.Object)
	if s.world.Valid(ch.Entity) {
		s.world.Remove(ch.Entity)
	}
	log.Printf("[server] character %d despawned for client %s", ch.OwnerID, client.Id())
}

func (s *Server) onPlayerInput(client *router.NetworkClient, input messages.PlayerInput) {
	s.mu.RLock()
	ch := s.clients[client]
	s.mu.RUnlock()

	if ch == nil {
		countInputRejected("unjoined")
		return
	}
	s.stageInput(ch, input)
}

// InjectInput delivers an input sample without a network hop; the listen
// server host's session uses this instead of the loopback round trip. The
// same validation applies.
func (s *Server) InjectInput(input messages.PlayerInput) {
	s.mu.RLock()
	ch := s.characters[input.NetworkID]
	s.mu.RUnlock()

	if ch == nil {
		countInputRejected("unknown")
		return
	}
	s.stageInput(ch, input)
}

// stageInput validates and stores the latest input sample for a character.
// Writes race with the tick only over these two fields, both guarded by mu.
func (s *Server) stageInput(ch *Character, input messages.PlayerInput) {
	if input.NetworkID != ch.OwnerID {
		// Spoofed sender: never applied.
		log.Printf("[server] dropping input claiming owner %d for character %d", input.NetworkID, ch.OwnerID)
		countInputRejected("spoof")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The transport may duplicate or reorder unreliable delivery; only a
	// strictly newer sequence replaces the staged sample.
	if input.Sequence <= ch.LatestSeq {
		countInputRejected("stale")
		return
	}

	ch.LatestInput = fpsmath.Input{
		Move: [2]float64{input.MoveX, input.MoveY},
		Look: [2]float64{input.LookX, input.LookY},
		Jump: input.Jump,
		Fire: input.Fire,
	}
	ch.LatestSeq = input.Sequence
}

// sendTo delivers a message to one client, logging failures.
func (s *Server) sendTo(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[server] send to %s failed: %v", client.Id(), err)
	}
}

// PlayerCount returns the number of connected players.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// World returns the ECS world.
func (s *Server) World() donburi.World {
	return s.world
}
