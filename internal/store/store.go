package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/model"
)

// ErrNotFound is returned when a run or result does not exist.
var ErrNotFound = eris.New("store: not found")

// ResultFilter specifies criteria for listing stored results.
type ResultFilter struct {
	RunID  string       `json:"run_id,omitempty"`
	Status model.Status `json:"status,omitempty"`
	Limit  int          `json:"limit,omitempty"`
	Offset int          `json:"offset,omitempty"`
}

// Store defines the persistence interface for verification runs.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, source string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, summary model.RunSummary) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)

	// Results
	SaveResult(ctx context.Context, runID string, res model.VerificationResult) error
	GetResult(ctx context.Context, entityID string) (*model.StoredResult, error)
	ListResults(ctx context.Context, filter ResultFilter) ([]model.StoredResult, error)

	// Fetch cache
	GetCachedFetch(ctx context.Context, url string) (*model.PageContent, error)
	SetCachedFetch(ctx context.Context, url string, content model.PageContent, ttl time.Duration) error
	DeleteExpiredFetches(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 100

// Open returns a migrated store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Driver {
	case "", "sqlite":
		st, err = NewSQLite(cfg.DatabaseURL)
	case "postgres":
		st, err = NewPostgres(ctx, cfg.DatabaseURL, &PoolConfig{MaxConns: cfg.MaxConns, MinConns: cfg.MinConns})
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

func listLimit(n int) int {
	if n <= 0 {
		return defaultListLimit
	}
	return n
}
