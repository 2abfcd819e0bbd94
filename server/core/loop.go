package core

import (
	"log"
	"time"
)

// GameLoop drives the authoritative simulation at a fixed rate. Every tick
// advances physics by exactly 1/tickRate seconds regardless of wall-clock
// jitter, so the server and a replaying client step the same function with
// the same dt.
type GameLoop struct {
	server   *Server
	tickRate int
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[loop] game loop started at %d ticks/second", g.tickRate)

	dt := 1.0 / float64(g.tickRate)
	for {
		select {
		case <-g.stopChan:
			log.Println("[loop] game loop stopped")
			return
		case <-ticker.C:
			g.server.Tick(dt)
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}
