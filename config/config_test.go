package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestApplyJSONSections(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"app": {"AppPort": "9000", "RateLimitPerMinute": 30, "AllowedOrigins": ["https://nephtys.example"]},
		"database": {"Driver": "sqlite", "DatabaseURI": "file::memory:"},
		"storage": {"AccountID": "acc", "Bucket": "covers", "SignedURLTTLSeconds": 120},
		"search": {"AppID": "APP", "APIKey": "admin", "SearchKey": "public"},
		"auth": {"JWTSecret": "s3cret"}
	}`), &raw))

	var c AppConfig
	applyJSONSections(raw, &c)
	applyDefaults(&c)

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, 30, c.RateLimitPerMinute)
	assert.Equal(t, []string{"https://nephtys.example"}, c.AllowedOrigins)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "covers", c.StorageBucket)
	assert.Equal(t, 120, c.SignedURLTTLSeconds)
	assert.Equal(t, "public", c.SearchPublicKey)
	assert.Equal(t, "s3cret", c.AuthJWTSecret)
	// untouched sections fall back to defaults
	assert.Equal(t, "webtoons_index", c.SearchIndexName)
	assert.Equal(t, "auto", c.StorageRegion)
	assert.Equal(t, 6379, c.RedisPort)
}

func TestDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "mysql", c.DBDriver)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, 3600, c.SignedURLTTLSeconds)
	assert.Equal(t, 60, c.SearchCacheTTL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ACCOUNT_ID", "abc123")
	t.Setenv("R2_ID_KEY", "id")
	t.Setenv("R2_SECRET_KEY", "secret")
	t.Setenv("AWS_BUCKET_NAME", "bucket")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("DB_DRIVER", "SQLite")

	c := AppConfig{RateLimitPerMinute: 60}
	applyEnvOverrides(&c)

	assert.Equal(t, "abc123", c.StorageAccountID)
	assert.Equal(t, "id", c.StorageAccessKeyID)
	assert.Equal(t, "secret", c.StorageSecretAccessKey)
	assert.Equal(t, "bucket", c.StorageBucket)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, 60, c.RateLimitPerMinute)
	assert.Equal(t, "sqlite", c.DBDriver)
}

func TestStorageEndpointURL(t *testing.T) {
	assert.Equal(t, "", AppConfig{}.StorageEndpointURL())
	assert.Equal(t, "https://acc.eu.r2.cloudflarestorage.com", AppConfig{StorageAccountID: "acc"}.StorageEndpointURL())
	assert.Equal(t, "http://localhost:9000", AppConfig{StorageAccountID: "acc", StorageEndpoint: "http://localhost:9000/"}.StorageEndpointURL())
}

func TestToGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, toGormLogLevel("debug"))
	assert.Equal(t, logger.Warn, toGormLogLevel("info"))
	assert.Equal(t, logger.Error, toGormLogLevel("error"))
	assert.Equal(t, logger.Silent, toGormLogLevel("silent"))
	assert.Equal(t, logger.Warn, toGormLogLevel("bogus"))
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(AppConfig{DBDriver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
