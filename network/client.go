package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"

	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/messages"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	networkID      esync.NetworkId
	reconnectToken string
	serverName     string
	tickRate       int
	arenaName      string
	tuning         fpsmath.Tuning
	spawn          mgl64.Vec3
	conn           *websocket.Conn

	worldCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	snapCh    chan messages.ServerSnapshot // drop-oldest; consumer keeps only the newest anyway
	damageCh  chan messages.DamageEvent
	ammoCh    chan messages.AmmoEvent
	fireCh    chan messages.FireEvent
	respawnCh chan messages.RespawnEvent
}

func NewClient() *Client {
	return &Client{
		state:     StateDisconnected,
		tuning:    fpsmath.DefaultTuning(),
		worldCh:   make(chan esync.WorldSnapshot, 1),
		snapCh:    make(chan messages.ServerSnapshot, SnapshotQueueSize),
		damageCh:  make(chan messages.DamageEvent, 8),
		ammoCh:    make(chan messages.AmmoEvent, 8),
		fireCh:    make(chan messages.FireEvent, 16),
		respawnCh: make(chan messages.RespawnEvent, 4),
	}
}

// Connect dials the server in a background goroutine and initiates the join
// handshake. reconnectToken may be empty.
func (c *Client) Connect(address, version, playerName, reconnectToken string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		payload, err := router.Serialize(messages.JoinRequest{
			Version:        version,
			PlayerName:     playerName,
			ReconnectToken: reconnectToken,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to serialize join request: %w", err))
			return
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn != nil {
			if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
				c.setError(fmt.Errorf("failed to send join request: %w", err))
			}
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s arena=%s tickRate=%d",
			msg.NetworkID, msg.ServerName, msg.Arena, msg.TickRate)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.reconnectToken = msg.ReconnectToken
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.arenaName = msg.Arena
		c.tuning = fpsmath.Tuning{
			MoveSpeed: msg.MoveSpeed,
			JumpSpeed: msg.JumpSpeed,
			Gravity:   msg.Gravity,
		}
		c.spawn = mgl64.Vec3{msg.SpawnX, msg.SpawnY, msg.SpawnZ}
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.worldCh:
		default:
		}
		c.worldCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, snap messages.ServerSnapshot) {
		select {
		case c.snapCh <- snap:
		default: // full: evict the oldest, keep the newest
			select {
			case <-c.snapCh:
			default:
			}
			c.snapCh <- snap
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.DamageEvent) {
		select {
		case c.damageCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.AmmoEvent) {
		select {
		case c.ammoCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.FireEvent) {
		select {
		case c.fireCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.RespawnEvent) {
		select {
		case c.respawnCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ReconnectToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reconnectToken
}

func (c *Client) ArenaName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.arenaName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// Tuning returns the movement constants echoed by the server at join.
func (c *Client) Tuning() fpsmath.Tuning {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tuning
}

// Spawn returns the character's placement from the join handshake.
func (c *Client) Spawn() mgl64.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spawn
}

// LatestWorld returns the most recent world broadcast, or nil. Non-blocking.
func (c *Client) LatestWorld() *esync.WorldSnapshot {
	select {
	case snap := <-c.worldCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainSnapshots returns all pending reconciliation snapshots, non-blocking.
func (c *Client) DrainSnapshots() []messages.ServerSnapshot {
	return drainChan(c.snapCh)
}

// DrainDamageEvents returns all pending damage events, non-blocking.
func (c *Client) DrainDamageEvents() []messages.DamageEvent {
	return drainChan(c.damageCh)
}

// DrainAmmoEvents returns all pending ammo events, non-blocking.
func (c *Client) DrainAmmoEvents() []messages.AmmoEvent {
	return drainChan(c.ammoCh)
}

// DrainFireEvents returns all pending fire events, non-blocking.
func (c *Client) DrainFireEvents() []messages.FireEvent {
	return drainChan(c.fireCh)
}

// DrainRespawnEvents returns all pending respawn events, non-blocking.
func (c *Client) DrainRespawnEvents() []messages.RespawnEvent {
	return drainChan(c.respawnCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
