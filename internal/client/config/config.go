// Package config holds runtime settings for the CreatorLink client.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - BaseURL: root URL of the backend REST API.
//   - DatabasePath: path of the local SQLite database holding the session token.
//   - RequestTimeout: per-request deadline for backend calls.
type Config struct {
	BaseURL        string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.DatabasePath = "creatorlink.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
