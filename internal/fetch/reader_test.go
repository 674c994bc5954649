package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/model"
	"github.com/sells-group/social-verify/internal/resilience"
	"github.com/sells-group/social-verify/pkg/jina"
)

type fakeReader struct {
	mu      sync.Mutex
	targets []string
	resp    map[string]*jina.ReadResponse
	errs    []error
}

func (f *fakeReader) Read(_ context.Context, target string, _ ...jina.ReadOption) (*jina.ReadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = append(f.targets, target)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	if r, ok := f.resp[target]; ok {
		return r, nil
	}
	return nil, &jina.APIError{StatusCode: http.StatusNotFound, Body: "not found"}
}

func testPolicy() *resilience.Policy {
	return resilience.NewPolicy(config.FetchConfig{MaxAttempts: 3, InitialBackoffMs: 1, MaxBackoffMs: 2, FailureThreshold: 5})
}

func TestReaderFetcher_Facebook(t *testing.T) {
	fr := &fakeReader{resp: map[string]*jina.ReadResponse{
		"https://www.facebook.com/lebaroque/about": {Data: jina.ReadData{
			Title:   "Le Baroque | Facebook",
			Content: "  Le Baroque\nRue du Lac Windermere\n71 960 000  ",
		}},
	}}
	rf := NewReaderFetcher(fr, nil, testPolicy(), 0)

	got, err := rf.Fetch(context.Background(), "https://www.facebook.com/lebaroque/", model.PlatformFacebook)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.facebook.com/lebaroque/about"}, fr.targets)
	assert.Equal(t, "Le Baroque\nRue du Lac Windermere\n71 960 000", *got.RawText)
	assert.Nil(t, got.DisplayName)
	assert.Equal(t, "https://www.facebook.com/lebaroque/", got.URL)
	assert.False(t, got.FetchedAt.IsZero())
}

func TestReaderFetcher_InstagramDisplayName(t *testing.T) {
	fr := &fakeReader{resp: map[string]*jina.ReadResponse{
		"https://www.instagram.com/lebaroque": {Data: jina.ReadData{
			Title:   "Le Baroque (@lebaroque) • Instagram photos and videos",
			Content: "lebaroque\nLe Baroque Lac 2\n312 posts",
		}},
		"https://www.instagram.com/solo": {Data: jina.ReadData{
			Title:   "Solo Café (@solo) • Instagram photos and videos",
			Content: "solo",
		}},
	}}
	rf := NewReaderFetcher(fr, nil, testPolicy(), 0)

	got, err := rf.Fetch(context.Background(), "https://www.instagram.com/lebaroque/", model.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, "Le Baroque Lac 2", *got.DisplayName)

	got, err = rf.Fetch(context.Background(), "https://www.instagram.com/solo", model.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, "Solo Café", *got.DisplayName, "falls back to the page title")
}

func TestReaderFetcher_UnsupportedPlatform(t *testing.T) {
	fr := &fakeReader{}
	rf := NewReaderFetcher(fr, nil, testPolicy(), 0)

	_, err := rf.Fetch(context.Background(), "https://lebaroque.tn", model.PlatformOther)
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Empty(t, fr.targets)
}

func TestReaderFetcher_RetriesTransient(t *testing.T) {
	fr := &fakeReader{
		errs: []error{&jina.APIError{StatusCode: http.StatusServiceUnavailable, Body: "busy"}},
		resp: map[string]*jina.ReadResponse{
			"https://www.facebook.com/lebaroque/about": {Data: jina.ReadData{Content: "Le Baroque"}},
		},
	}
	rf := NewReaderFetcher(fr, nil, testPolicy(), 0)

	got, err := rf.Fetch(context.Background(), "https://www.facebook.com/lebaroque", model.PlatformFacebook)
	require.NoError(t, err)
	assert.Equal(t, "Le Baroque", *got.RawText)
	assert.Len(t, fr.targets, 2)
}

func TestReaderFetcher_PermanentNotRetried(t *testing.T) {
	fr := &fakeReader{}
	rf := NewReaderFetcher(fr, nil, testPolicy(), 0)

	_, err := rf.Fetch(context.Background(), "https://www.facebook.com/gone", model.PlatformFacebook)
	require.Error(t, err)
	assert.Len(t, fr.targets, 1)
	assert.Contains(t, err.Error(), "404")
}

func TestReaderFetcher_RateLimitSlowsPacer(t *testing.T) {
	fr := &fakeReader{
		errs: []error{&jina.APIError{StatusCode: http.StatusTooManyRequests, Body: "slow down"}},
		resp: map[string]*jina.ReadResponse{
			"https://www.facebook.com/lebaroque/about": {Data: jina.ReadData{Content: "Le Baroque"}},
		},
	}
	pacer := NewPacer(1000, 10)
	rf := NewReaderFetcher(fr, pacer, testPolicy(), 0)

	_, err := rf.Fetch(context.Background(), "https://www.facebook.com/lebaroque", model.PlatformFacebook)
	require.NoError(t, err)
	// halved then raised by 20%
	assert.InDelta(t, 600.0, float64(pacer.Limit()), 1e-6)
}

func TestReaderFetcher_ThroughHTTP(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/https://www.instagram.com/lebaroque", r.URL.Path)
		assert.Equal(t, "header", r.Header.Get("X-Target-Selector"))
		assert.Equal(t, "text", r.Header.Get("X-Return-Format"))
		assert.Equal(t, "30", r.Header.Get("X-Timeout"))
		w.Write([]byte(`{"code":200,"data":{"title":"Le Baroque (@lebaroque)","content":"lebaroque\nLe Baroque Lac 2"}}`))
	}))
	defer srv.Close()

	client := jina.NewClient("", jina.WithBaseURL(srv.URL))
	rf := NewReaderFetcher(client, NewPacer(100, 1), testPolicy(), 30*time.Second)

	got, err := rf.Fetch(context.Background(), "https://www.instagram.com/lebaroque", model.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, "Le Baroque Lac 2", *got.DisplayName)
	assert.Equal(t, int64(1), hits.Load())
}
