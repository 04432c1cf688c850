package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != "8700" {
		t.Errorf("Expected default port 8700, got %s", cfg.Server.Port)
	}
	if !cfg.Agents.ScrapeOn {
		t.Error("Expected scrape agent enabled by default")
	}
	if cfg.Agents.Quota != 50 {
		t.Errorf("Expected default quota 50, got %d", cfg.Agents.Quota)
	}
	if cfg.Script.TimeoutSeconds != 30 {
		t.Errorf("Expected default script timeout 30s, got %d", cfg.Script.TimeoutSeconds)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BRIDGE_PORT", "9100")
	t.Setenv("BRIDGE_THUMB_QUOTA", "7")
	t.Setenv("BRIDGE_SCRAPE_AGENT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("Expected port 9100, got %s", cfg.Server.Port)
	}
	if cfg.Agents.Quota != 7 {
		t.Errorf("Expected quota 7, got %d", cfg.Agents.Quota)
	}
	if cfg.Agents.ScrapeOn {
		t.Error("Expected scrape agent disabled")
	}
}

func TestLoadFileOverridesEnvironment(t *testing.T) {
	t.Setenv("BRIDGE_PORT", "9100")

	path := filepath.Join(t.TempDir(), "bridge.toml")
	content := `
[server]
port = "9200"

[agents]
thumb_quota = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Server.Port != "9200" {
		t.Errorf("Expected file value to win, got %s", cfg.Server.Port)
	}
	if cfg.Agents.Quota != 5 {
		t.Errorf("Expected quota 5 from file, got %d", cfg.Agents.Quota)
	}
	// Values absent from the file keep their environment defaults.
	if cfg.Agents.BookURL != "http://localhost:8710" {
		t.Errorf("Unexpected book URL: %s", cfg.Agents.BookURL)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "ghost.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}
