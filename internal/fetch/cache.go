package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/model"
)

// Cache stores fetched page content with an expiry.
type Cache interface {
	// GetCachedFetch returns nil when the URL is absent or expired.
	GetCachedFetch(ctx context.Context, url string) (*model.PageContent, error)
	SetCachedFetch(ctx context.Context, url string, content model.PageContent, ttl time.Duration) error
}

// CachedFetcher serves content from a Cache before falling back to the
// wrapped fetcher. Cache errors are logged and never fail a fetch.
type CachedFetcher struct {
	next  TextAndNameFetcher
	cache Cache
	ttl   time.Duration
}

// NewCachedFetcher wraps next with cache.
func NewCachedFetcher(next TextAndNameFetcher, cache Cache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, ttl: ttl}
}

// Fetch implements TextAndNameFetcher.
func (c *CachedFetcher) Fetch(ctx context.Context, url string, platform model.Platform) (model.PageContent, error) {
	key := canonicalURL(url)

	cached, err := c.cache.GetCachedFetch(ctx, key)
	if err != nil {
		zap.L().Warn("fetch cache read failed", zap.String("url", key), zap.Error(err))
	} else if cached != nil {
		return *cached, nil
	}

	content, err := c.next.Fetch(ctx, url, platform)
	if err != nil {
		return model.PageContent{}, err
	}

	if err := c.cache.SetCachedFetch(ctx, key, content, c.ttl); err != nil {
		zap.L().Warn("fetch cache write failed", zap.String("url", key), zap.Error(err))
	}
	return content, nil
}
