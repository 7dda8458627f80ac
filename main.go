package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/memheal/memcore/api"
	"github.com/memheal/memcore/internal/config"
	"github.com/memheal/memcore/internal/platform"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a YAML config file")
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	bind := flag.String("bind", "", "IP address to bind the server to (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *bind != "" {
		cfg.Server.Host = *bind
	}

	// Unsupported platforms still serve requests, they just report
	// zeroed snapshots and failed cache releases
	if err := platform.ValidateSupport(); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Create and start the API server
	server, err := api.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		os.Exit(0)
	}()

	// Start the server
	log.Printf("Starting memcore server on %s", cfg.Addr())
	log.Fatal(server.Start(cfg.Addr()))
}
