package main

import (
	"testing"
	"time"
)

func TestRegistryRegisterAndList(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	id := reg.Register(ServerInfo{Name: "alpha", Address: "a:7777", Arena: "arena01"})
	if id == "" {
		t.Fatalf("empty server id")
	}

	servers := reg.List()
	if len(servers) != 1 {
		t.Fatalf("List = %d servers, want 1", len(servers))
	}
	if servers[0].ID != id || servers[0].Name != "alpha" || servers[0].Arena != "arena01" {
		t.Fatalf("listed server = %+v", servers[0])
	}
}

func TestRegistryHeartbeatUpdatesPlayers(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	id := reg.Register(ServerInfo{Name: "alpha", Address: "a:7777"})

	if !reg.Heartbeat(id, 7) {
		t.Fatalf("heartbeat for known server failed")
	}
	if reg.Heartbeat("nope", 1) {
		t.Fatalf("heartbeat for unknown server succeeded")
	}

	if got := reg.List()[0].Players; got != 7 {
		t.Fatalf("players = %d, want 7", got)
	}
}

func TestRegistrySweepExpiresSilentServers(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	stale := reg.Register(ServerInfo{Name: "stale", Address: "a:7777"})
	fresh := reg.Register(ServerInfo{Name: "fresh", Address: "b:7777"})

	// Age the stale server past the TTL.
	reg.mu.Lock()
	reg.servers[stale].LastSeen = time.Now().Add(-2 * time.Minute)
	reg.mu.Unlock()

	reg.Sweep(time.Now())

	servers := reg.List()
	if len(servers) != 1 {
		t.Fatalf("List = %d servers after sweep, want 1", len(servers))
	}
	if servers[0].ID != fresh {
		t.Fatalf("wrong survivor: %+v", servers[0])
	}
}
