// Package config loads TOML configuration for the dmrv CLI and API server.
//
// Configuration is optional: every field has a working default, so the
// pipeline runs with no config file at all. A file can be passed with
// --config or placed at ~/.config/dmrv/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration.
type Config struct {
	Output   Output   `toml:"output"`
	Server   Server   `toml:"server"`
	Cache    Cache    `toml:"cache"`
	Redis    Redis    `toml:"redis"`
	Mongo    Mongo    `toml:"mongo"`
	Sentinel Sentinel `toml:"sentinel"`
	KB       KB       `toml:"knowledge_base"`
}

// Output configures artifact rendering.
type Output struct {
	// Dir is the artifact output directory.
	Dir string `toml:"dir"`
	// QualifyNames coordinate-qualifies heatmap/super-res/comparison
	// filenames instead of overwriting shared names on every render.
	QualifyNames bool `toml:"qualify_names"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Cache configures the artifact cache.
type Cache struct {
	// Backend is "file", "memory", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the file backend's directory.
	Dir string `toml:"dir"`
}

// Redis configures the shared Redis instance (cache and report store).
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Mongo configures durable report storage.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Sentinel configures the optional upstream imagery service.
type Sentinel struct {
	// Endpoint is the tile service base URL; empty disables real fetch.
	Endpoint string `toml:"endpoint"`
	BBoxSize float64 `toml:"bbox_size_deg"`
}

// KB configures the knowledge-base assistant.
type KB struct {
	// UpstreamEndpoint is the streaming document-store base URL;
	// empty means local keyword matching only.
	UpstreamEndpoint string `toml:"upstream_endpoint"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Output: Output{Dir: "output"},
		Server: Server{
			Addr:           ":8000",
			AllowedOrigins: []string{"*"},
		},
		Cache: Cache{Backend: "file"},
	}
}

// DefaultPath returns ~/.config/dmrv/config.toml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dmrv", "config.toml")
}

// Load reads a TOML config file, layering it over defaults. If path is
// empty, the default path is tried; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
