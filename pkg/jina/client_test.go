package jina

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Success(t *testing.T) {
	t.Parallel()

	want := ReadResponse{
		Code: 200,
		Data: ReadData{
			Title:   "Le Baroque | Facebook",
			URL:     "https://www.facebook.com/lebaroque/about",
			Content: "Le Baroque\n\nRue du Lac Windermere, Les Berges du Lac\n71 960 000",
			Usage:   ReadUsage{Tokens: 412},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "markdown", r.Header.Get("X-Return-Format"))
		assert.Empty(t, r.Header.Get("X-Target-Selector"))
		assert.Equal(t, "/https://www.facebook.com/lebaroque/about", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.Read(context.Background(), "https://www.facebook.com/lebaroque/about")

	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestRead_Options(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "keyless client sends no auth header")
		assert.Equal(t, "text", r.Header.Get("X-Return-Format"))
		assert.Equal(t, "header", r.Header.Get("X-Target-Selector"))
		assert.Equal(t, "main", r.Header.Get("X-Wait-For-Selector"))
		assert.Equal(t, "20", r.Header.Get("X-Timeout"))
		assert.Equal(t, "true", r.Header.Get("X-No-Cache"))
		w.Write([]byte(`{"code":200,"data":{"title":"x","content":"y"}}`))
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))
	got, err := client.Read(context.Background(), "https://instagram.com/lebaroque",
		WithFormat("text"),
		WithTargetSelector("header"),
		WithWaitForSelector("main"),
		WithPageTimeout(20*time.Second),
		WithNoCache(),
	)
	require.NoError(t, err)
	assert.Equal(t, "y", got.Data.Content)
}

func TestRead_StatusError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code int
	}{
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
		{"not found", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(`{"error":"nope"}`))
			}))
			defer srv.Close()

			_, err := NewClient("k", WithBaseURL(srv.URL)).Read(context.Background(), "https://x.test")
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.code, apiErr.StatusCode)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestRead_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := NewClient("k", WithBaseURL(srv.URL)).Read(context.Background(), "https://x.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jina: unmarshal response")
}

func TestRead_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("k", WithBaseURL(srv.URL)).Read(ctx, "https://x.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jina: request failed")
}

func TestAPIError_TruncatesBody(t *testing.T) {
	t.Parallel()

	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	err := &APIError{StatusCode: 502, Body: string(long)}
	assert.Less(t, len(err.Error()), 260)
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient("k").(*httpClient)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, 60*time.Second, c.http.Timeout)

	hc := &http.Client{Timeout: time.Second}
	c = NewClient("k", WithHTTPClient(hc)).(*httpClient)
	assert.Same(t, hc, c.http)
}
