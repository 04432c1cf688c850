// Package main is the entry point for the bridge HTTP server.
//
// The server exposes the capability registry over REST: listing and
// discovering capabilities, invoking them, and Prometheus metrics.
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional TOML file via -config
//   - CLI flags override both
//
// Usage:
//
//	./server -port 8700
//	./server -config bridge.toml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
