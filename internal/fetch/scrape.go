package fetch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/internal/resilience"
	"github.com/sells-group/social-verify/pkg/firecrawl"
)

// ScrapeFetcher reads public profile pages through Firecrawl with the same
// page choices as ReaderFetcher.
type ScrapeFetcher struct {
	client      firecrawl.Client
	pacer       *Pacer
	policy      *resilience.Policy
	pageTimeout time.Duration
}

// NewScrapeFetcher wires a Firecrawl client with pacing and a retry policy.
func NewScrapeFetcher(client firecrawl.Client, pacer *Pacer, policy *resilience.Policy, pageTimeout time.Duration) *ScrapeFetcher {
	return &ScrapeFetcher{
		client:      client,
		pacer:       pacer,
		policy:      policy,
		pageTimeout: pageTimeout,
	}
}

// Fetch scrapes url and extracts its text and display name.
func (s *ScrapeFetcher) Fetch(ctx context.Context, url string, platform model.Platform) (model.PageContent, error) {
	req := firecrawl.ScrapeRequest{Formats: []string{"markdown"}}
	switch platform {
	case model.PlatformFacebook:
		req.URL = AboutURL(url)
		req.OnlyMainContent = true
	case model.PlatformInstagram:
		req.URL = canonicalURL(url)
		req.IncludeTags = []string{"header"}
		req.WaitFor = 2000
	default:
		return model.PageContent{}, eris.Wrapf(ErrUnsupportedPlatform, "fetch: %s (%s)", url, platform)
	}
	if s.pageTimeout > 0 {
		req.Timeout = int(s.pageTimeout / time.Millisecond)
	}

	resp, err := resilience.Call(ctx, s.policy, string(platform), req.URL, func(ctx context.Context) (*firecrawl.ScrapeResponse, error) {
		return s.scrape(ctx, req)
	})
	if err != nil {
		return model.PageContent{}, eris.Wrapf(err, "fetch: scrape %s", req.URL)
	}

	text := strings.TrimSpace(resp.Data.Markdown)
	content := model.PageContent{
		URL:       url,
		RawText:   model.StringPtr(text),
		FetchedAt: time.Now().UTC(),
	}
	if platform == model.PlatformInstagram {
		name := HeaderDisplayName(text)
		if name == "" {
			name = TitleDisplayName(resp.Data.Metadata.Title)
		}
		content.DisplayName = model.StringPtr(name)
	}
	return content, nil
}

func (s *ScrapeFetcher) scrape(ctx context.Context, req firecrawl.ScrapeRequest) (*firecrawl.ScrapeResponse, error) {
	if s.pacer != nil {
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := s.client.Scrape(ctx, req)
	if err != nil {
		var apiErr *firecrawl.APIError
		if errors.As(err, &apiErr) {
			return nil, statusFailure(err, apiErr.StatusCode, s.pacer)
		}
		return nil, err
	}

	if s.pacer != nil {
		s.pacer.OnSuccess()
	}
	return resp, nil
}
