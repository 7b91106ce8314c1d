// Package config holds runtime settings for the development backend.
package config

import "time"

// Config holds runtime settings for the devserver.
//
// DatabaseDSN selects the users repository: a postgres DSN uses the
// database, an empty value keeps users in memory (fine for local runs and
// tests). The Google* endpoints default to the real provider and are
// overridable so tests can point them at a stub.
type Config struct {
	EndpointAddr                string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration

	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURL      string
	GoogleAuthEndpoint     string
	GoogleTokenEndpoint    string
	GoogleUserinfoEndpoint string

	S3Bucket       string
	S3Region       string
	S3RootUser     string
	S3RootPassword string
	S3BaseEndpoint string
}

// LoadDefaults populates c with sensible defaults for local development.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.SecretKey = "dev-secret-change-me"
	c.AccessTokenValidityDuration = 24 * time.Hour

	c.GoogleRedirectURL = "http://localhost:3000/auth/callback"
	c.GoogleAuthEndpoint = "https://accounts.google.com/o/oauth2/v2/auth"
	c.GoogleTokenEndpoint = "https://oauth2.googleapis.com/token"
	c.GoogleUserinfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

	c.S3Region = "us-east-1"
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
