package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/flagx"
	"github.com/spf13/cast"
)

// jsonDuration accepts both "1s" style strings and integer nanoseconds.
type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := cast.ToDurationE(raw)
	if err != nil {
		return err
	}
	*d = jsonDuration(v)
	return nil
}

// JsonConfig is the on-disk shape of the JSON config file. Pointer fields
// distinguish "absent" from zero values, so only keys present in the file
// override earlier layers.
type JsonConfig struct {
	HTTPAddr           *string       `json:"http_addr"`
	GRPCHealthAddr     *string       `json:"grpc_addr"`
	DatabaseDSN        *string       `json:"database_dsn"`
	CacheBackend       *string       `json:"cache_backend"`
	RedisAddr          *string       `json:"redis_addr"`
	RedisPassword      *string       `json:"redis_password"`
	RedisDB            *int          `json:"redis_db"`
	StorageBackend     *string       `json:"storage_backend"`
	FolderPath         *string       `json:"folder_path"`
	S3Bucket           *string       `json:"s3_bucket"`
	S3Region           *string       `json:"s3_region"`
	S3BaseEndpoint     *string       `json:"s3_base_endpoint"`
	S3AccessKey        *string       `json:"s3_access_key"`
	S3SecretKey        *string       `json:"s3_secret_key"`
	TokenTTL           *jsonDuration `json:"token_ttl"`
	PageSize           *int          `json:"page_size"`
	BodyLimit          *int          `json:"body_limit"`
	LoginRatePerSecond *float64      `json:"login_rate"`
	LoginBurst         *int          `json:"login_burst"`
	ThumbnailWorkers   *int          `json:"thumbnail_workers"`
	LogLevel           *string       `json:"log_level"`
	LogFormat          *string       `json:"log_format"`
}

// parseJson loads the file named by -c/-config, if any, and overlays its
// keys onto config.
func parseJson(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(&config.HTTPAddr, c.HTTPAddr)
	setStr(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setStr(&config.DatabaseDSN, c.DatabaseDSN)
	setStr(&config.CacheBackend, c.CacheBackend)
	setStr(&config.RedisAddr, c.RedisAddr)
	setStr(&config.RedisPassword, c.RedisPassword)
	setInt(&config.RedisDB, c.RedisDB)
	setStr(&config.StorageBackend, c.StorageBackend)
	setStr(&config.FolderPath, c.FolderPath)
	setStr(&config.S3Bucket, c.S3Bucket)
	setStr(&config.S3Region, c.S3Region)
	setStr(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setStr(&config.S3AccessKey, c.S3AccessKey)
	setStr(&config.S3SecretKey, c.S3SecretKey)
	if c.TokenTTL != nil {
		config.TokenTTL = time.Duration(*c.TokenTTL)
	}
	setInt(&config.PageSize, c.PageSize)
	setInt(&config.BodyLimit, c.BodyLimit)
	if c.LoginRatePerSecond != nil {
		config.LoginRatePerSecond = *c.LoginRatePerSecond
	}
	setInt(&config.LoginBurst, c.LoginBurst)
	setInt(&config.ThumbnailWorkers, c.ThumbnailWorkers)
	setStr(&config.LogLevel, c.LogLevel)
	setStr(&config.LogFormat, c.LogFormat)

	return nil
}
