// Package config loads server configuration from a TOML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all pettrack configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	OIDC     OIDCConfig     `toml:"oidc"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr   string `toml:"addr"`
	WebDir string `toml:"web_dir"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL string `toml:"url,omitempty"`
}

// OIDCConfig holds optional SSO settings.
type OIDCConfig struct {
	Issuer       string `toml:"issuer,omitempty"`
	ClientID     string `toml:"client_id,omitempty"`
	ClientSecret string `toml:"client_secret,omitempty"`
	RedirectURL  string `toml:"redirect_url,omitempty"`
}

// Enabled reports whether SSO is configured.
func (c OIDCConfig) Enabled() bool {
	return c.Issuer != "" && c.ClientID != ""
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:   ":8080",
			WebDir: "web",
		},
	}
}

// Load reads the config file, returning defaults if it doesn't exist,
// then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// Env vars win over the file.
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("PETTRACK_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PETTRACK_WEB_DIR"); v != "" {
		cfg.Server.WebDir = v
	}

	return cfg, nil
}
