package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml"
)

// UserConfig is the on-disk daemon configuration. A missing file is
// created with defaults on first run, so operators always have a file
// to edit.
type UserConfig struct {
	Server struct {
		// Host is the interface to bind. Empty binds every interface.
		Host string `toml:"host"`
		// Port is the TCP port the HTTP server listens on.
		Port int `toml:"port"`
	} `toml:"server"`
	Storage struct {
		// Backend selects the storage implementation, "memory" or "redis".
		Backend string `toml:"backend"`
	} `toml:"storage"`
	Redis struct {
		// URL is the Redis connection URL, e.g. redis://localhost:6379.
		URL          string `toml:"url"`
		PoolSize     int    `toml:"pool_size"`
		MinIdleConns int    `toml:"min_idle_conns"`
	} `toml:"redis"`
	Web struct {
		// StaticDir overrides the static asset directory. Empty probes
		// the usual checkout locations.
		StaticDir string `toml:"static_dir"`
	} `toml:"web"`
}

// defaultUserConfig returns the configuration written on first run.
func defaultUserConfig() UserConfig {
	cfg := UserConfig{}
	cfg.Server.Port = 8080
	cfg.Storage.Backend = "memory"
	cfg.Redis.URL = "redis://localhost:6379"
	cfg.Redis.PoolSize = 10
	cfg.Redis.MinIdleConns = 2
	return cfg
}

// loadConfig reads the TOML configuration at path. If the file does not
// exist yet, it is created with defaults and those defaults are returned.
func loadConfig(path string) (UserConfig, error) {
	cfg := defaultUserConfig()
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			encoded, err := toml.Marshal(cfg)
			if err != nil {
				return cfg, fmt.Errorf("encode default config: %w", err)
			}
			if err := os.WriteFile(path, encoded, 0644); err != nil {
				return cfg, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}
	return cfg, nil
}

// applyEnv applies environment overrides. Variables take precedence
// over the file.
func applyEnv(cfg *UserConfig) {
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
}
