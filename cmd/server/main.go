package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mosaicdesk/bridge/internal/config"
	"github.com/mosaicdesk/bridge/internal/providers/canvas"
	"github.com/mosaicdesk/bridge/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file")
	port := flag.String("port", "", "Server port (overrides config)")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *port != "" {
		cfg.Server.Port = *port
	}

	// The studio host connection is external; the bridge ships with an
	// in-memory host so invocations can be exercised without a studio.
	host := canvas.NewMemoryHost()
	host.Open()

	srv, err := server.New(cfg, host)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.LoadOrDefault()
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
