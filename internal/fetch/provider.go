package fetch

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/resilience"
	"github.com/sells-group/social-verify/pkg/firecrawl"
	"github.com/sells-group/social-verify/pkg/jina"
)

// New builds the fetcher selected by cfg.Fetch.Provider. The "none" provider
// returns a nil fetcher: records are scored with whatever text they carry.
// A non-nil cache wraps remote fetchers.
func New(cfg *config.Config, cache Cache) (TextAndNameFetcher, error) {
	pacer := NewPacer(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Burst)
	timeout := time.Duration(cfg.Fetch.TimeoutSecs) * time.Second

	var f TextAndNameFetcher
	switch cfg.Fetch.Provider {
	case "", config.FetchProviderNone:
		return nil, nil
	case config.FetchProviderSnapshot:
		snap, err := LoadSnapshot(cfg.Fetch.SnapshotPath)
		if err != nil {
			return nil, err
		}
		return snap, nil
	case config.FetchProviderJina:
		client := jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.BaseURL))
		f = NewReaderFetcher(client, pacer, resilience.NewPolicy(cfg.Fetch), timeout)
	case config.FetchProviderFirecrawl:
		client := firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))
		f = NewScrapeFetcher(client, pacer, resilience.NewPolicy(cfg.Fetch), timeout)
	default:
		return nil, eris.Errorf("fetch: unknown provider %q", cfg.Fetch.Provider)
	}

	if cache != nil && cfg.Fetch.CacheTTLHours > 0 {
		f = NewCachedFetcher(f, cache, time.Duration(cfg.Fetch.CacheTTLHours)*time.Hour)
	}
	return f, nil
}
