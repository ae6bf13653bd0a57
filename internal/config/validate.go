package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %s)", c.Auth.TokenTTL)
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be within [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Presence.ActiveWindow <= 0 {
		return fmt.Errorf("presence.active_window must be > 0 (got %s)", c.Presence.ActiveWindow)
	}

	if err := c.Leads.validate(); err != nil {
		return fmt.Errorf("leads: %w", err)
	}

	if c.Activity.ReadLimit <= 0 {
		return fmt.Errorf("activity.read_limit must be > 0 (got %d)", c.Activity.ReadLimit)
	}
	if c.Activity.WriteTimeout <= 0 {
		return fmt.Errorf("activity.write_timeout must be > 0 (got %s)", c.Activity.WriteTimeout)
	}

	return nil
}

func (l *LeadsConfig) validate() error {
	if l.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", l.DefaultPageSize)
	}
	if l.MaxPageSize < l.DefaultPageSize {
		return fmt.Errorf("max_page_size must be >= default_page_size (got %d < %d)", l.MaxPageSize, l.DefaultPageSize)
	}
	if l.ExportMaxRows <= 0 {
		return fmt.Errorf("export_max_rows must be > 0 (got %d)", l.ExportMaxRows)
	}
	if l.ImportMaxRows <= 0 {
		return fmt.Errorf("import_max_rows must be > 0 (got %d)", l.ImportMaxRows)
	}
	if l.ImportChunkSize <= 0 {
		return fmt.Errorf("import_chunk_size must be > 0 (got %d)", l.ImportChunkSize)
	}
	if l.RecentLimit <= 0 {
		return fmt.Errorf("recent_limit must be > 0 (got %d)", l.RecentLimit)
	}
	return nil
}
