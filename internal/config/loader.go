package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads the server configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is determined by CONFIG_PATH env (fallback "./config.yaml").
// If the file does not exist and CONFIG_PATH was not set explicitly,
// configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config
	if err := read("CONFIG_PATH", "./config.yaml", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// LoadAgent reads the session agent configuration. The optional YAML file
// is taken from LEADFLOW_AGENT_CONFIG.
func LoadAgent() (*AgentConfig, error) {
	var cfg AgentConfig
	if err := read("LEADFLOW_AGENT_CONFIG", "", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func read(pathEnv, fallback string, dst any) error {
	path := os.Getenv(pathEnv)
	explicitPath := path != ""
	if !explicitPath {
		path = fallback
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, dst); err != nil {
				return fmt.Errorf("config: read %s: %w", path, err)
			}
			return nil
		} else if explicitPath {
			return fmt.Errorf("config: file %s: %w", path, err)
		}
	}

	// No file, load from ENV + defaults only.
	if err := cleanenv.ReadEnv(dst); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}
	return nil
}
