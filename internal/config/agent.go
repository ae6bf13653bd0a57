package config

import (
	"fmt"
	"time"
)

// AgentConfig configures the terminal session agent.
type AgentConfig struct {
	APIURL    string    `yaml:"api_url"    env:"LEADFLOW_API_URL"    env-default:"http://localhost:5000/api"`
	StatePath string    `yaml:"state_path" env:"LEADFLOW_STATE_PATH" env-default:".leadflow-session.json"`
	Session   Session   `yaml:"session"`
	Log       LogConfig `yaml:"log"`
}

// Session holds the idle-timeout and heartbeat timings.
type Session struct {
	Timeout           time.Duration `yaml:"timeout"            env:"LEADFLOW_SESSION_TIMEOUT"            env-default:"12h"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval" env:"LEADFLOW_SESSION_HEARTBEAT_INTERVAL" env-default:"5m"`
	CheckInterval     time.Duration `yaml:"check_interval"     env:"LEADFLOW_SESSION_CHECK_INTERVAL"     env-default:"1m"`
	PersistThrottle   time.Duration `yaml:"persist_throttle"   env:"LEADFLOW_SESSION_PERSIST_THROTTLE"   env-default:"5s"`
	RequestTimeout    time.Duration `yaml:"request_timeout"    env:"LEADFLOW_SESSION_REQUEST_TIMEOUT"    env-default:"10s"`
}

// Validate checks the agent configuration.
func (c *AgentConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	s := c.Session
	for name, d := range map[string]time.Duration{
		"timeout":            s.Timeout,
		"heartbeat_interval": s.HeartbeatInterval,
		"check_interval":     s.CheckInterval,
		"persist_throttle":   s.PersistThrottle,
		"request_timeout":    s.RequestTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("session.%s must be > 0 (got %s)", name, d)
		}
	}
	return nil
}
