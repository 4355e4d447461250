package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("FK_DATABASE_DSN", "")
	t.Setenv("FK_CACHE_BACKEND", "memory")
	t.Setenv("FOLDER_PATH", "/data/files")
	t.Setenv("FK_REDIS_DB", "3")
	t.Setenv("FK_TOKEN_TTL", "90m")
	t.Setenv("FK_LOGIN_RATE", "0.5")
	t.Setenv("FK_THUMBNAIL_WORKERS", "4")

	c := validConfig(t)
	require.NoError(t, parseEnv(c))

	assert.Equal(t, "", c.DatabaseDSN, "an empty variable still overrides")
	assert.Equal(t, CacheMemory, c.CacheBackend)
	assert.Equal(t, "/data/files", c.FolderPath)
	assert.Equal(t, 3, c.RedisDB)
	assert.Equal(t, 90*time.Minute, c.TokenTTL)
	assert.Equal(t, 0.5, c.LoginRatePerSecond)
	assert.Equal(t, 4, c.ThumbnailWorkers)
}

func TestParseEnv_BadValues(t *testing.T) {
	for name, value := range map[string]string{
		"FK_PAGE_SIZE":  "many",
		"FK_TOKEN_TTL":  "forever",
		"FK_LOGIN_RATE": "fast",
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			err := parseEnv(validConfig(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	orig := envFiles
	t.Cleanup(func() { envFiles = orig })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FK_S3_REGION=eu-central-1\n"), 0o600))
	envFiles = []string{path, filepath.Join(t.TempDir(), "missing.env")}
	t.Cleanup(func() { os.Unsetenv("FK_S3_REGION") })

	c := validConfig(t)
	require.NoError(t, parseEnv(c))
	assert.Equal(t, "eu-central-1", c.S3Region)
}
