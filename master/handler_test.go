package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegisterServerHandler(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	body := `{"name":"alpha","address":"a:7777","maxPlayers":16,"arena":"arena01"}`
	req := httptest.NewRequest(http.MethodPost, "/servers/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	RegisterServer(reg)(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var resp registerResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatalf("empty id in response")
	}
	if len(reg.List()) != 1 {
		t.Fatalf("server not registered")
	}
}

func TestRegisterServerHandlerRejectsBadInput(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing name", `{"address":"a:7777"}`},
		{"missing address", `{"name":"alpha"}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/servers/register", strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		RegisterServer(reg)(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", tc.name, w.Code, http.StatusBadRequest)
		}
	}
}

func TestHeartbeatHandler(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(time.Minute)
	defer reg.Stop()
	id := reg.Register(ServerInfo{Name: "alpha", Address: "a:7777"})

	body := `{"id":"` + id + `","players":3}`
	req := httptest.NewRequest(http.MethodPost, "/servers/heartbeat", strings.NewReader(body))
	w := httptest.NewRecorder()
	Heartbeat(reg)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := reg.List()[0].Players; got != 3 {
		t.Fatalf("players = %d, want 3", got)
	}

	// Unknown id must 404 so game servers know to re-register.
	req = httptest.NewRequest(http.MethodPost, "/servers/heartbeat", strings.NewReader(`{"id":"nope"}`))
	w = httptest.NewRecorder()
	Heartbeat(reg)(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListServersHandler(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(time.Minute)
	defer reg.Stop()
	reg.Register(ServerInfo{Name: "alpha", Address: "a:7777"})
	reg.Register(ServerInfo{Name: "beta", Address: "b:7777"})

	req := httptest.NewRequest(http.MethodGet, "/servers", nil)
	w := httptest.NewRecorder()
	ListServers(reg)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var servers []ServerInfo
	if err := json.NewDecoder(w.Body).Decode(&servers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(servers))
	}
}
