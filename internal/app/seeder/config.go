package seeder

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// maxDemoLeads keeps an accidental extra zero from filling a shared
// staging database.
const maxDemoLeads = 10_000

// Config holds bootstrap settings: the first super-admin account and an
// optional batch of demo leads.
type Config struct {
	AdminEmail    string `yaml:"admin_email"    env:"SEED_ADMIN_EMAIL"    env-required:"true"`
	AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD" env-required:"true"`
	AdminName     string `yaml:"admin_name"     env:"SEED_ADMIN_NAME"     env-default:"Administrator"`
	DemoLeads     int    `yaml:"demo_leads"     env:"SEED_DEMO_LEADS"     env-default:"0"`
	BatchSize     int    `yaml:"batch_size"     env:"SEED_BATCH_SIZE"     env-default:"500"`
	DryRun        bool   `yaml:"dry_run"        env:"SEED_DRY_RUN"`
}

// LoadConfig reads the seeder settings from path, when given, and then
// from SEED_* environment variables, which win over the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	read := func() error { return cleanenv.ReadEnv(&cfg) }
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("seeder config: %s not found", path)
		}
		read = func() error { return cleanenv.ReadConfig(path, &cfg) }
	}
	if err := read(); err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the numeric knobs. Credentials are validated by Run so
// a dry run reports them the same way a real run would.
func (c *Config) Validate() error {
	if c.DemoLeads < 0 || c.DemoLeads > maxDemoLeads {
		return fmt.Errorf("seeder config: demo_leads must be between 0 and %d (got %d)", maxDemoLeads, c.DemoLeads)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("seeder config: batch_size must be > 0 (got %d)", c.BatchSize)
	}
	return nil
}
