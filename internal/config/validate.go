package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Fetch providers understood by the fetch stage.
const (
	FetchProviderNone      = "none"
	FetchProviderSnapshot  = "snapshot"
	FetchProviderJina      = "jina"
	FetchProviderFirecrawl = "firecrawl"
)

// Validate checks the settings a command mode depends on. Modes are
// "verify", "serve" and "results".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "verify":
		errs = append(errs, c.validateFetch()...)
		errs = append(errs, c.validateStore()...)
	case "serve":
		errs = append(errs, c.validateFetch()...)
		errs = append(errs, c.validateStore()...)
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case "results":
		errs = append(errs, c.validateStore()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Batch.MaxConcurrentEntities < 1 || c.Batch.MaxConcurrentEntities > 50 {
		errs = append(errs, "batch.max_concurrent_entities must be between 1 and 50")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateFetch() []string {
	var errs []string
	switch c.Fetch.Provider {
	case "", FetchProviderNone:
	case FetchProviderSnapshot:
		if c.Fetch.SnapshotPath == "" {
			errs = append(errs, "fetch.snapshot_path is required for the snapshot provider")
		}
	case FetchProviderJina:
		if c.Jina.BaseURL == "" {
			errs = append(errs, "jina.base_url is required for the jina provider")
		}
		if c.Fetch.RequestsPerSecond <= 0 {
			errs = append(errs, "fetch.requests_per_second must be > 0")
		}
	case FetchProviderFirecrawl:
		if c.Firecrawl.BaseURL == "" {
			errs = append(errs, "firecrawl.base_url is required for the firecrawl provider")
		}
		if c.Firecrawl.Key == "" {
			errs = append(errs, "firecrawl.key is required for the firecrawl provider")
		}
		if c.Fetch.RequestsPerSecond <= 0 {
			errs = append(errs, "fetch.requests_per_second must be > 0")
		}
	default:
		errs = append(errs, fmt.Sprintf("fetch.provider %q is not one of none, snapshot, jina, firecrawl", c.Fetch.Provider))
	}
	return errs
}

func (c *Config) validateStore() []string {
	switch c.Store.Driver {
	case "", "sqlite":
		return nil
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return []string{"store.database_url is required for postgres"}
		}
		return nil
	default:
		return []string{fmt.Sprintf("store.driver %q is not one of sqlite, postgres", c.Store.Driver)}
	}
}
