package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/social-verify/internal/config"
	"github.com/sells-group/social-verify/internal/verify"
)

const baroqueText = "Le Baroque\nRue du Lac Windermere, Les Berges du Lac\n+216 71 960 000"

// testConfig returns a valid config backed by a temp SQLite database.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Store: config.StoreConfig{
			Driver:      "sqlite",
			DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
		},
		Fetch:  config.FetchConfig{Provider: config.FetchProviderNone},
		Verify: verify.DefaultConfig(),
		Batch:  config.BatchConfig{MaxConcurrentEntities: 2},
		Server: config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Log:    config.LogConfig{Level: "error", Format: "json"},
	}
}

func testEnv(t *testing.T, c *config.Config, withStore bool) *verifyEnv {
	t.Helper()
	env, err := initEnv(context.Background(), c, "verify", withStore)
	require.NoError(t, err)
	t.Cleanup(env.Close)
	return env
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
