package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	// How long a matchmaking entry stays WAITING before it expires.
	QueueTimeoutSeconds int `json:"queue_timeout_seconds"`
	// Interval of the background sweep that flips stale WAITING
	// entries to EXPIRED.
	CleanupIntervalSeconds int `json:"cleanup_interval_seconds"`
	// How many moves the composite battle view returns (newest first).
	RecentMovesLimit int `json:"recent_moves_limit"`
}

// LoadedConfig contains the server address and the tunables for
// matchmaking and battle reads.
type LoadedConfig struct {
	ServerAddress    string
	QueueTimeout     time.Duration
	CleanupInterval  time.Duration
	RecentMovesLimit int
}

// Default returns the configuration used when no config file is given.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:    ":8080",
		QueueTimeout:     30 * time.Second,
		CleanupInterval:  10 * time.Second,
		RecentMovesLimit: 20,
	}
}

// LoadConfig reads the configuration file at path and merges it over
// the defaults. An empty path returns the defaults unchanged.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.QueueTimeoutSeconds < 0 {
		return nil, fmt.Errorf("config file %s: queue_timeout_seconds must not be negative", path)
	}
	if rc.QueueTimeoutSeconds > 0 {
		cfg.QueueTimeout = time.Duration(rc.QueueTimeoutSeconds) * time.Second
	}
	if rc.CleanupIntervalSeconds > 0 {
		cfg.CleanupInterval = time.Duration(rc.CleanupIntervalSeconds) * time.Second
	}
	if rc.RecentMovesLimit > 0 {
		cfg.RecentMovesLimit = rc.RecentMovesLimit
	}
	return cfg, nil
}
