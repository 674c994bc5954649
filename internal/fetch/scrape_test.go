package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/pkg/firecrawl"
)

type fakeScraper struct {
	mu   sync.Mutex
	reqs []firecrawl.ScrapeRequest
	resp map[string]*firecrawl.ScrapeResponse
	errs []error
}

func (f *fakeScraper) Scrape(_ context.Context, req firecrawl.ScrapeRequest) (*firecrawl.ScrapeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	if r, ok := f.resp[req.URL]; ok {
		return r, nil
	}
	return nil, &firecrawl.APIError{StatusCode: http.StatusNotFound, Body: "not found"}
}

func scraped(markdown, title string) *firecrawl.ScrapeResponse {
	return &firecrawl.ScrapeResponse{
		Success: true,
		Data:    firecrawl.PageData{Markdown: markdown, Metadata: firecrawl.Metadata{Title: title}},
	}
}

func TestScrapeFetcher_Facebook(t *testing.T) {
	fs := &fakeScraper{resp: map[string]*firecrawl.ScrapeResponse{
		"https://www.facebook.com/lebaroque/about": scraped("Le Baroque\nRue du Lac Windermere\n", "Le Baroque | Facebook"),
	}}
	sf := NewScrapeFetcher(fs, nil, testPolicy(), 45*time.Second)

	got, err := sf.Fetch(context.Background(), "https://www.facebook.com/lebaroque", model.PlatformFacebook)
	require.NoError(t, err)
	assert.Equal(t, "Le Baroque\nRue du Lac Windermere", *got.RawText)
	assert.Nil(t, got.DisplayName)

	require.Len(t, fs.reqs, 1)
	assert.True(t, fs.reqs[0].OnlyMainContent)
	assert.Equal(t, 45000, fs.reqs[0].Timeout)
	assert.Equal(t, []string{"markdown"}, fs.reqs[0].Formats)
}

func TestScrapeFetcher_InstagramDisplayName(t *testing.T) {
	fs := &fakeScraper{resp: map[string]*firecrawl.ScrapeResponse{
		"https://www.instagram.com/lebaroque": scraped("lebaroque\nLe Baroque Lac 2", ""),
		"https://www.instagram.com/solo":      scraped("solo", "Solo Café (@solo) • Instagram photos and videos"),
	}}
	sf := NewScrapeFetcher(fs, nil, testPolicy(), 0)

	got, err := sf.Fetch(context.Background(), "https://www.instagram.com/lebaroque/", model.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, "Le Baroque Lac 2", *got.DisplayName)
	assert.Equal(t, []string{"header"}, fs.reqs[0].IncludeTags)
	assert.Zero(t, fs.reqs[0].Timeout)

	got, err = sf.Fetch(context.Background(), "https://www.instagram.com/solo", model.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, "Solo Café", *got.DisplayName)
}

func TestScrapeFetcher_UnsupportedPlatform(t *testing.T) {
	fs := &fakeScraper{}
	sf := NewScrapeFetcher(fs, nil, testPolicy(), 0)

	_, err := sf.Fetch(context.Background(), "https://x.com/lebaroque", model.PlatformOther)
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Empty(t, fs.reqs)
}

func TestScrapeFetcher_RetriesRateLimit(t *testing.T) {
	fs := &fakeScraper{
		errs: []error{&firecrawl.APIError{StatusCode: http.StatusTooManyRequests, Body: "slow down"}},
		resp: map[string]*firecrawl.ScrapeResponse{
			"https://www.facebook.com/lebaroque/about": scraped("Le Baroque", ""),
		},
	}
	pacer := NewPacer(1000, 10)
	sf := NewScrapeFetcher(fs, pacer, testPolicy(), 0)

	got, err := sf.Fetch(context.Background(), "https://www.facebook.com/lebaroque", model.PlatformFacebook)
	require.NoError(t, err)
	assert.Equal(t, "Le Baroque", *got.RawText)
	assert.Len(t, fs.reqs, 2)
	assert.InDelta(t, 600.0, float64(pacer.Limit()), 1e-6)
}

func TestScrapeFetcher_PermanentNotRetried(t *testing.T) {
	fs := &fakeScraper{}
	sf := NewScrapeFetcher(fs, nil, testPolicy(), 0)

	_, err := sf.Fetch(context.Background(), "https://www.facebook.com/gone", model.PlatformFacebook)
	require.Error(t, err)
	assert.Len(t, fs.reqs, 1)
}

func TestScrapeFetcher_ThroughHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req firecrawl.ScrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://www.facebook.com/lebaroque/about", req.URL)
		w.Write([]byte(`{"success":true,"data":{"markdown":"Le Baroque","metadata":{"title":"Le Baroque"}}}`))
	}))
	defer srv.Close()

	client := firecrawl.NewClient("fc-test", firecrawl.WithBaseURL(srv.URL))
	sf := NewScrapeFetcher(client, NewPacer(100, 1), testPolicy(), 0)

	got, err := sf.Fetch(context.Background(), "https://www.facebook.com/lebaroque/", model.PlatformFacebook)
	require.NoError(t, err)
	assert.Equal(t, "Le Baroque", *got.RawText)
}
