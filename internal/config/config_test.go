package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/hexmap/internal/hexgrid"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Session.MaxClients != 100 {
		t.Errorf("MaxClients = %d, want default 100", cfg.Session.MaxClients)
	}
	if cfg.Grid.Width != 40 || cfg.Grid.Height != 30 {
		t.Errorf("grid dimensions = %dx%d, want defaults 40x30", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Grid.OuterToInner != hexgrid.OuterToInner {
		t.Errorf("OuterToInner = %v, want default %v", cfg.Grid.OuterToInner, hexgrid.OuterToInner)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load on missing file: expected error, got nil")
	}
}

func TestGridMetricsDerivation(t *testing.T) {
	path := writeConfig(t, `
grid:
  width: 24
  height: 18
  wrapping: true
  chunk_size_x: 6
  outer_radius: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	m := cfg.Grid.Metrics()
	if !m.Wrapping || m.WrapSize != 24 {
		t.Errorf("wrap band = %v/%d, want true/24", m.Wrapping, m.WrapSize)
	}
	if m.ChunkSizeX != 6 {
		t.Errorf("ChunkSizeX = %d, want 6", m.ChunkSizeX)
	}
	if m.OuterRadius != 12 {
		t.Errorf("OuterRadius = %v, want 12", m.OuterRadius)
	}

	// A flat map derives no wrap band regardless of width.
	cfg.Grid.Wrapping = false
	m = cfg.Grid.Metrics()
	if m.Wrapping || m.WrapSize != 0 {
		t.Errorf("flat map wrap band = %v/%d, want false/0", m.Wrapping, m.WrapSize)
	}
}
