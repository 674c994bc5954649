// Package fetch obtains the visible text and display name behind candidate
// social links before they are scored.
package fetch

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/social-verify/internal/model"
)

// ErrNotFound is returned when a fetcher has no content for a URL.
var ErrNotFound = eris.New("fetch: content not found")

// ErrUnsupportedPlatform is returned when a fetcher cannot read a platform.
var ErrUnsupportedPlatform = eris.New("fetch: unsupported platform")

// TextAndNameFetcher returns the raw text and display name for one link.
type TextAndNameFetcher interface {
	Fetch(ctx context.Context, url string, platform model.Platform) (model.PageContent, error)
}

// Func adapts a function to TextAndNameFetcher.
type Func func(ctx context.Context, url string, platform model.Platform) (model.PageContent, error)

// Fetch calls f.
func (f Func) Fetch(ctx context.Context, url string, platform model.Platform) (model.PageContent, error) {
	return f(ctx, url, platform)
}

// Populate returns a copy of rec whose links carry fetched content. Links
// that already have text are kept as they are. Fetch errors are logged and
// leave the link without text; only context cancellation is returned.
func Populate(ctx context.Context, f TextAndNameFetcher, rec model.BusinessRecord) (model.BusinessRecord, error) {
	links := make([]model.CandidateLink, len(rec.Links))
	copy(links, rec.Links)

	for i, link := range links {
		if link.HasText() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return rec, err
		}

		content, err := f.Fetch(ctx, link.URL, link.Platform)
		if err != nil {
			if ctx.Err() != nil {
				return rec, ctx.Err()
			}
			zap.L().Warn("fetch failed, link will not be analyzed",
				zap.String("entity_id", rec.ID),
				zap.String("url", link.URL),
				zap.String("platform", string(link.Platform)),
				zap.Error(err),
			)
			continue
		}
		links[i] = content.Apply(link)
	}
	return rec.WithLinks(links), nil
}

// canonicalURL is the key content is stored under.
func canonicalURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
