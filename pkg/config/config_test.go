package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Dir != "output" {
		t.Errorf("output dir = %q", cfg.Output.Dir)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("allowed origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[output]
dir = "artifacts"
qualify_names = true

[server]
addr = ":9090"

[cache]
backend = "redis"

[redis]
addr = "localhost:6379"
db = 2

[sentinel]
endpoint = "https://tiles.example.com"
bbox_size_deg = 0.02

[knowledge_base]
upstream_endpoint = "https://kb.example.com"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Output.Dir != "artifacts" {
		t.Errorf("output dir = %q", cfg.Output.Dir)
	}
	if !cfg.Output.QualifyNames {
		t.Error("qualify_names should be set")
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Sentinel.Endpoint != "https://tiles.example.com" {
		t.Errorf("sentinel endpoint = %q", cfg.Sentinel.Endpoint)
	}
	if cfg.Sentinel.BBoxSize != 0.02 {
		t.Errorf("bbox size = %f", cfg.Sentinel.BBoxSize)
	}
	if cfg.KB.UpstreamEndpoint != "https://kb.example.com" {
		t.Errorf("kb endpoint = %q", cfg.KB.UpstreamEndpoint)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[output]\ndir = \"out\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("output dir = %q", cfg.Output.Dir)
	}
	if cfg.Server.Addr != ":8000" {
		t.Error("unset sections should keep defaults")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("an explicitly named missing file should be an error")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should be an error")
	}
}
