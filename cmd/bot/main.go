package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/automoto/ironsight-mp/client"
	"github.com/automoto/ironsight-mp/network"
	"github.com/automoto/ironsight-mp/shared/arena"
	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/protocol"
)

// A headless client: connects, runs the full prediction/reconciliation
// pipeline against a scripted input loop, and logs where it ends up. Useful
// for soak-testing a server without a display.
func main() {
	address := flag.String("address", "localhost:7777", "Game server address")
	version := flag.String("version", "", "Client version string")
	name := flag.String("name", "bot", "Player name")
	frameRate := flag.Int("framerate", 60, "Client frame rate")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	netClient := network.NewClient()
	netClient.Connect(*address, *version, *name, "")

	// Walk a square: forward, right, back, left, one second per leg.
	frames := *frameRate
	script := &client.ScriptedInput{Loop: true}
	legs := []mgl64.Vec2{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for _, leg := range legs {
		for i := 0; i < frames; i++ {
			script.Frames = append(script.Frames, fpsmath.Input{Move: leg})
		}
	}

	session := client.NewSession(netClient, script, arena.Builtin())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(*frameRate))
	defer ticker.Stop()

	dt := 1.0 / float64(*frameRate)
	logEvery := *frameRate * 2
	frame := 0

	log.Printf("[bot] connecting to %s as %q", *address, *name)
	for {
		select {
		case <-sigChan:
			log.Println("[bot] disconnecting")
			netClient.Disconnect()
			return
		case <-ticker.C:
			session.Update(dt)
			frame++
			if frame%logEvery == 0 && netClient.State() == network.StateJoinedGame {
				st := session.LocalState()
				log.Printf("[bot] pos=(%.2f, %.2f, %.2f) health=%d ammo=%d remotes=%d",
					st.Position[0], st.Position[1], st.Position[2],
					session.Health(), session.Ammo(), session.Remotes().Len())
			}
		}
	}
}
