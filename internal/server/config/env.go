package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// envFiles are loaded when present. Variables already set in the process
// environment win over file values.
var envFiles = []string{".env"}

// parseEnv overlays values from the environment. Numeric, boolean and
// duration values are coerced with cast; a value that cannot be coerced is
// an error rather than being silently ignored.
func parseEnv(c *Config) error {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	strs := map[string]*string{
		"FK_HTTP_ADDR":       &c.HTTPAddr,
		"FK_GRPC_ADDR":       &c.GRPCHealthAddr,
		"FK_DATABASE_DSN":    &c.DatabaseDSN,
		"FK_CACHE_BACKEND":   &c.CacheBackend,
		"FK_REDIS_ADDR":      &c.RedisAddr,
		"FK_REDIS_PASSWORD":  &c.RedisPassword,
		"FK_STORAGE_BACKEND": &c.StorageBackend,
		"FOLDER_PATH":        &c.FolderPath,
		"FK_S3_BUCKET":       &c.S3Bucket,
		"FK_S3_REGION":       &c.S3Region,
		"FK_S3_ENDPOINT":     &c.S3BaseEndpoint,
		"FK_S3_ACCESS_KEY":   &c.S3AccessKey,
		"FK_S3_SECRET_KEY":   &c.S3SecretKey,
		"FK_LOG_LEVEL":       &c.LogLevel,
		"FK_LOG_FORMAT":      &c.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"FK_REDIS_DB":          &c.RedisDB,
		"FK_PAGE_SIZE":         &c.PageSize,
		"FK_BODY_LIMIT":        &c.BodyLimit,
		"FK_LOGIN_BURST":       &c.LoginBurst,
		"FK_THUMBNAIL_WORKERS": &c.ThumbnailWorkers,
	}
	for name, dst := range ints {
		if v, ok := os.LookupEnv(name); ok {
			n, err := cast.ToIntE(v)
			if err != nil {
				return fmt.Errorf("env %s: %w", name, err)
			}
			*dst = n
		}
	}

	if v, ok := os.LookupEnv("FK_LOGIN_RATE"); ok {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("env FK_LOGIN_RATE: %w", err)
		}
		c.LoginRatePerSecond = f
	}

	if v, ok := os.LookupEnv("FK_TOKEN_TTL"); ok {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return fmt.Errorf("env FK_TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}

	return nil
}
