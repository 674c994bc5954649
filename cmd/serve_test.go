package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/social-verify/internal/model"
)

func TestResolvePort(t *testing.T) {
	assert.Equal(t, 9090, resolvePort(9090, 8080))
	assert.Equal(t, 8080, resolvePort(0, 8080))
	assert.Equal(t, 0, resolvePort(0, 0))
}

func newTestServer(t *testing.T, withStore bool) (*httptest.Server, *verifyEnv) {
	t.Helper()
	env := testEnv(t, testConfig(t), withStore)
	srv := httptest.NewServer(buildRouter(env, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv, env
}

func postVerify(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/verify", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServe_Health(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServe_VerifyAndFetchResult(t *testing.T) {
	srv, _ := newTestServer(t, true)

	reqBody, err := json.Marshal(map[string]any{
		"id":      "42",
		"name":    "Le Baroque",
		"address": "Rue du Lac Windermere, Les Berges du Lac",
		"phone":   "+216 71 960 000",
		"links": []map[string]any{
			{"url": "https://www.facebook.com/lebaroque", "raw_text": baroqueText},
		},
	})
	require.NoError(t, err)

	resp := postVerify(t, srv, string(reqBody))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var rec model.OutputRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "42", rec.ID)
	assert.Equal(t, model.StatusVerified, rec.VerificationStatus)
	require.Len(t, rec.SocialLinks, 1)
	assert.Equal(t, model.PlatformFacebook, rec.SocialLinks[0].Type)

	got, err := http.Get(srv.URL + "/results/42")
	require.NoError(t, err)
	defer got.Body.Close()
	require.Equal(t, http.StatusOK, got.StatusCode)

	var stored model.StoredResult
	require.NoError(t, json.NewDecoder(got.Body).Decode(&stored))
	assert.Equal(t, apiRunID, stored.RunID)
	assert.Equal(t, model.StatusVerified, stored.Status)
	assert.Equal(t, rec, stored.Record)
}

func TestServe_VerifyBadRequest(t *testing.T) {
	srv, _ := newTestServer(t, false)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"id":`, "decode"},
		{"missing id", `{"name": "Le Baroque"}`, "missing id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postVerify(t, srv, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

func TestServe_ResultNotFound(t *testing.T) {
	srv, _ := newTestServer(t, true)

	resp, err := http.Get(srv.URL + "/results/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServe_ResultsWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp, err := http.Get(srv.URL + "/results/42")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServe_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, false)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/verify", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://directory.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStartServer_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	env := testEnv(t, testConfig(t), false)
	handler := buildRouter(env, []string{"*"})

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- startServer(ctx, handler, port)
	}()

	var ready bool
	for i := 0; i < 50; i++ {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err == nil {
			resp.Body.Close()
			ready = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ready, "server did not become ready in time")

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
