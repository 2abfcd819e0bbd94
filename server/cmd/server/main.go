package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/automoto/ironsight-mp/server/core"
	"github.com/automoto/ironsight-mp/shared/arena"
	"github.com/automoto/ironsight-mp/shared/fpsmath"
	"github.com/automoto/ironsight-mp/shared/protocol"
)

func main() {
	// Local .env is optional; env vars cover IRONSIGHT_JWT_SECRET and co.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	port := flag.Uint("port", 7777, "Server port")
	tickRate := flag.Int("tickrate", 60, "Server tick rate (simulation steps per second)")
	broadcastHz := flag.Int("broadcast", 30, "World broadcast rate (snapshots per second)")
	name := flag.String("name", "Ironsight Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	arenaPath := flag.String("arena", "", "Arena TMX file (empty = builtin arena)")
	masterURL := flag.String("master", "", "Master server URL for registration (empty = standalone)")
	region := flag.String("region", "local", "Region label reported to the master server")
	address := flag.String("address", "", "Public address reported to the master server")
	maxPlayers := flag.Int("maxplayers", 16, "Player cap reported to the master server")
	metricsAddr := flag.String("metrics", "", "Debug/metrics listen address (empty = disabled)")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	layout := arena.Builtin()
	if *arenaPath != "" {
		loaded, err := arena.Load(os.DirFS("."), *arenaPath)
		if err != nil {
			log.Fatalf("Failed to load arena %q: %v", *arenaPath, err)
		}
		layout = loaded
	}

	server := core.NewServer(core.Config{
		Name:        *name,
		Version:     *version,
		TickRate:    *tickRate,
		BroadcastHz: *broadcastHz,
		Layout:      layout,
		Tuning:      fpsmath.DefaultTuning(),
	})

	if *metricsAddr != "" {
		core.StartDebugServer(*metricsAddr)
	}

	var registration *core.Registration
	if *masterURL != "" {
		addr := *address
		if addr == "" {
			addr = fmt.Sprintf("localhost:%d", *port)
		}
		registration = core.NewRegistration(*masterURL, *name, addr, *version, *region, layout.Name, *maxPlayers, server)
		registration.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if registration != nil {
			registration.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting Ironsight server %q on port %d (tick rate: %d/s, arena: %s)",
		*name, *port, *tickRate, layout.Name)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
