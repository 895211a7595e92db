// Package config loads application configuration. The access token is
// resolved once at startup and handed to the gateway explicitly; no component
// reads ambient secret state mid-call.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/repo-health/internal/domain"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "repo-health.yaml"

// Config represents the application configuration.
type Config struct {
	Token      string `yaml:"token"`       // GitHub access token
	ListenAddr string `yaml:"listen_addr"` // serve mode bind address
}

// Load reads configuration from the given YAML file if it exists, then fills
// gaps from the environment. A missing file is not an error; a missing token
// is, because nothing can be fetched without one.
func Load(filename string) (Config, error) {
	var cfg Config

	if data, err := os.ReadFile(filename); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.Token == "" {
		return Config{}, domain.ErrMissingToken
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	return cfg, nil
}
