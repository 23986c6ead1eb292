// Package config loads process configuration from EVENTOR_-prefixed
// environment variables.
package config

import (
	"errors"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config contains everything main needs to wire the service.
type Config struct {
	// Port is the HTTP listen port.
	Port string `koanf:"port"`

	// FirebaseProjectID and FirebaseCredentialsJSON configure the Firestore
	// and Firebase Auth clients.
	FirebaseProjectID       string `koanf:"firebase_project_id"`
	FirebaseCredentialsJSON string `koanf:"firebase_credentials_json"`

	// CORSHosts is a comma separated list of allowed origins.
	CORSHosts string `koanf:"cors_hosts"`

	// ResendKey authenticates invitation mail delivery.
	ResendKey string `koanf:"resend_key"`

	// HostURL is the public base URL used in invitation links.
	HostURL string `koanf:"host_url"`
}

// Load reads EVENTOR_PORT, EVENTOR_FIREBASE_PROJECT_ID, ... over defaults.
func Load() (*Config, error) {
	cfg := Config{
		Port: "8080",
	}

	k := koanf.New(".")
	provider := env.Provider("EVENTOR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "EVENTOR_"))
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, err
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("EVENTOR_FIREBASE_PROJECT_ID must be set")
	}
	return &cfg, nil
}
