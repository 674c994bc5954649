package fetch

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/internal/resilience"
	"github.com/sells-group/social-verify/pkg/jina"
)

// ReaderFetcher reads public profile pages through the Jina Reader. Facebook
// profiles are read on their "about" page; Instagram profiles are read on
// the profile header, whose second line is the display name. Other
// platforms are not read.
type ReaderFetcher struct {
	client      jina.Client
	pacer       *Pacer
	policy      *resilience.Policy
	pageTimeout time.Duration
}

// NewReaderFetcher wires a Reader client with pacing and a retry policy.
func NewReaderFetcher(client jina.Client, pacer *Pacer, policy *resilience.Policy, pageTimeout time.Duration) *ReaderFetcher {
	return &ReaderFetcher{
		client:      client,
		pacer:       pacer,
		policy:      policy,
		pageTimeout: pageTimeout,
	}
}

// Fetch reads url and extracts its text and display name.
func (r *ReaderFetcher) Fetch(ctx context.Context, url string, platform model.Platform) (model.PageContent, error) {
	var (
		target string
		opts   []jina.ReadOption
	)
	switch platform {
	case model.PlatformFacebook:
		target = AboutURL(url)
		opts = []jina.ReadOption{jina.WithFormat("text")}
	case model.PlatformInstagram:
		target = canonicalURL(url)
		opts = []jina.ReadOption{
			jina.WithFormat("text"),
			jina.WithTargetSelector("header"),
			jina.WithWaitForSelector("header"),
		}
	default:
		return model.PageContent{}, eris.Wrapf(ErrUnsupportedPlatform, "fetch: %s (%s)", url, platform)
	}
	if r.pageTimeout > 0 {
		opts = append(opts, jina.WithPageTimeout(r.pageTimeout))
	}

	resp, err := resilience.Call(ctx, r.policy, string(platform), target, func(ctx context.Context) (*jina.ReadResponse, error) {
		return r.read(ctx, target, opts)
	})
	if err != nil {
		return model.PageContent{}, eris.Wrapf(err, "fetch: read %s", target)
	}

	text := strings.TrimSpace(resp.Data.Content)
	content := model.PageContent{
		URL:       url,
		RawText:   model.StringPtr(text),
		FetchedAt: time.Now().UTC(),
	}
	if platform == model.PlatformInstagram {
		name := HeaderDisplayName(text)
		if name == "" {
			name = TitleDisplayName(resp.Data.Title)
		}
		content.DisplayName = model.StringPtr(name)
	}
	return content, nil
}

func (r *ReaderFetcher) read(ctx context.Context, target string, opts []jina.ReadOption) (*jina.ReadResponse, error) {
	if r.pacer != nil {
		if err := r.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := r.client.Read(ctx, target, opts...)
	if err != nil {
		var apiErr *jina.APIError
		if errors.As(err, &apiErr) {
			return nil, statusFailure(err, apiErr.StatusCode, r.pacer)
		}
		return nil, err
	}

	if r.pacer != nil {
		r.pacer.OnSuccess()
	}
	return resp, nil
}

// statusFailure slows the pacer on 429 and marks retryable statuses
// transient.
func statusFailure(err error, statusCode int, pacer *Pacer) error {
	if statusCode == http.StatusTooManyRequests && pacer != nil {
		pacer.OnRateLimit()
	}
	if resilience.IsTransientHTTPStatus(statusCode) {
		return resilience.NewTransientError(err, statusCode)
	}
	return err
}
