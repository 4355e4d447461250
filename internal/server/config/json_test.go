package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "flag.json", map[string]any{
		"http_addr":         "www.example:9000",
		"database_dsn":      "postgres://x",
		"storage_backend":   "s3",
		"s3_bucket":         "bucket",
		"s3_base_endpoint":  "http://minio:9000",
		"token_ttl":         "1h",
		"page_size":         5,
		"login_rate":        1.5,
		"thumbnail_workers": 3,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := validConfig(t)
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "www.example:9000", cfg.HTTPAddr)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, StorageS3, cfg.StorageBackend)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
		assert.Equal(t, time.Hour, cfg.TokenTTL)
		assert.Equal(t, 5, cfg.PageSize)
		assert.Equal(t, 1.5, cfg.LoginRatePerSecond)
		assert.Equal(t, 3, cfg.ThumbnailWorkers)

		assert.Equal(t, ":50051", cfg.GRPCHealthAddr, "absent keys keep earlier values")
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := validConfig(t)
		before := *cfg
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, before, *cfg)
	})

	t.Run("numeric nanosecond duration", func(t *testing.T) {
		p := writeTempJSON(t, "", "", map[string]any{"token_ttl": int64(time.Second)})
		os.Args = []string{"testbin", "-c", p}

		cfg := validConfig(t)
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, time.Second, cfg.TokenTTL)
	})

	t.Run("missing file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "nope.json")}
		assert.Error(t, parseJson(validConfig(t)))
	})

	t.Run("invalid json", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(p, []byte("{"), 0o600))
		os.Args = []string{"testbin", "-c", p}
		assert.Error(t, parseJson(validConfig(t)))
	})
}
