package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "newsagg-digests", cfg.DigestBucket)
	assert.Equal(t, "newsagg-users", cfg.UsersTable)
	assert.Equal(t, "newsagg-events", cfg.EventBusName)
	assert.Equal(t, time.Hour, cfg.DefaultCacheTTL)
	assert.Equal(t, "NewsAgg/Storage", cfg.MetricsNamespace)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("DIGEST_BUCKET", "custom-bucket")
	t.Setenv("DEFAULT_CACHE_TTL_SECONDS", "120")
	t.Setenv("ENABLE_METRICS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "custom-bucket", cfg.DigestBucket)
	assert.Equal(t, 2*time.Minute, cfg.DefaultCacheTTL)
	assert.True(t, cfg.EnableMetrics)
}

func TestLoadConfig_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ProductionWithSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_MissingBucket(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.Error(t, cfg.Validate())
}
