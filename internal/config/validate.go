package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := c.Pagination.validate(); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}

	if c.RateLimit.WritesPerMinute < 0 {
		return fmt.Errorf("rate_limit.writes_per_minute must be >= 0 (got %d)", c.RateLimit.WritesPerMinute)
	}

	if strings.TrimSpace(c.Audit.DefaultActor) == "" {
		return fmt.Errorf("audit.default_actor must not be empty")
	}

	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}

	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}

	if l.File != "" && l.MaxSizeMB <= 0 {
		return fmt.Errorf("max_size_mb must be > 0 (got %d)", l.MaxSizeMB)
	}

	return nil
}

func (p *PaginationConfig) validate() error {
	if p.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be > 0 (got %d)", p.DefaultLimit)
	}
	if p.MaxLimit < p.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", p.MaxLimit, p.DefaultLimit)
	}
	return nil
}
