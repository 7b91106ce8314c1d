package config

import (
	"encoding/json"
	"os"

	"github.com/creatorlink/creatorlink/internal/flagx"
	"github.com/creatorlink/creatorlink/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`

	GoogleClientID         string `json:"google_client_id"`
	GoogleClientSecret     string `json:"google_client_secret"`
	GoogleRedirectURL      string `json:"google_redirect_url"`
	GoogleAuthEndpoint     string `json:"google_auth_endpoint"`
	GoogleTokenEndpoint    string `json:"google_token_endpoint"`
	GoogleUserinfoEndpoint string `json:"google_userinfo_endpoint"`

	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values from the JSON file given via the
// -c/-config flags. Zero-valued JSON fields leave the Config field unchanged.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	overlay(&cfg.EndpointAddr, jc.EndpointAddr)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.SecretKey, jc.SecretKey)
	if jc.AccessTokenValidityDuration.Duration != 0 {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}

	overlay(&cfg.GoogleClientID, jc.GoogleClientID)
	overlay(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	overlay(&cfg.GoogleRedirectURL, jc.GoogleRedirectURL)
	overlay(&cfg.GoogleAuthEndpoint, jc.GoogleAuthEndpoint)
	overlay(&cfg.GoogleTokenEndpoint, jc.GoogleTokenEndpoint)
	overlay(&cfg.GoogleUserinfoEndpoint, jc.GoogleUserinfoEndpoint)

	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3RootUser, jc.S3RootUser)
	overlay(&cfg.S3RootPassword, jc.S3RootPassword)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
}
