package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/hexmap/internal/hexgrid"
)

// Config holds all map service configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	JWT     JWTConfig     `yaml:"jwt"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Grid    GridConfig    `yaml:"grid"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
}

// SessionConfig holds map session settings
type SessionConfig struct {
	MaxClients int    `yaml:"max_clients"`
	MapPath    string `yaml:"map_path"` // Binary save file; generated fresh when absent
}

// GridConfig holds the hex grid dimensions and metrics
type GridConfig struct {
	Width        int32   `yaml:"width"`  // Columns
	Height       int32   `yaml:"height"` // Rows
	Wrapping     bool    `yaml:"wrapping"`
	ChunkSizeX   int32   `yaml:"chunk_size_x"`
	ChunkSizeZ   int32   `yaml:"chunk_size_z"`
	OuterRadius  float64 `yaml:"outer_radius"`
	OuterToInner float64 `yaml:"outer_to_inner"`
	Seed         int64   `yaml:"seed"`
}

// Metrics derives the grid metrics from the configured grid. On a
// wrapping map the wrap band is exactly the map width.
func (g GridConfig) Metrics() hexgrid.Metrics {
	m := hexgrid.NewMetrics(g.OuterRadius)
	m.OuterToInner = g.OuterToInner
	m.ChunkSizeX = g.ChunkSizeX
	m.Wrapping = g.Wrapping
	if g.Wrapping {
		m.WrapSize = g.Width
	}
	return m
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Session.MaxClients == 0 {
		cfg.Session.MaxClients = 100
	}
	if cfg.Grid.Width == 0 {
		cfg.Grid.Width = 40
	}
	if cfg.Grid.Height == 0 {
		cfg.Grid.Height = 30
	}
	if cfg.Grid.ChunkSizeX == 0 {
		cfg.Grid.ChunkSizeX = 5
	}
	if cfg.Grid.ChunkSizeZ == 0 {
		cfg.Grid.ChunkSizeZ = 5
	}
	if cfg.Grid.OuterRadius == 0 {
		cfg.Grid.OuterRadius = 10
	}
	if cfg.Grid.OuterToInner == 0 {
		cfg.Grid.OuterToInner = hexgrid.OuterToInner
	}

	return &cfg, nil
}
