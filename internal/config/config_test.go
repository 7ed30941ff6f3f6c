package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("JOBS_IMAGE_SWEEP_CRON", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 24, cfg.JWT.TokenExpiry)
	assert.Equal(t, "Sign in to Events Manager", cfg.Wallet.SignInMessage)
	assert.False(t, cfg.Wallet.RequireAuth)
	assert.Equal(t, "devnet", cfg.Solana.Cluster)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "0 3 * * *", cfg.Jobs.ImageSweepCron)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_REQUIRE_WALLET", "true")
	t.Setenv("MINIO_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("JOBS_ORPHAN_GRACE_HOURS", "6")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.Wallet.RequireAuth)
	assert.False(t, cfg.MinIO.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 6, cfg.Jobs.OrphanGraceHours)
	assert.Equal(t, 0, cfg.Redis.DB, "unparsable values fall back to the default")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non positive token expiry", map[string]string{"JWT_EXPIRY_HOURS": "0"}},
		{"non positive orphan grace", map[string]string{"JOBS_ORPHAN_GRACE_HOURS": "-1"}},
		{"production with default secret", map[string]string{"APP_ENV": "production", "DB_PASSWORD": "pw"}},
		{"production without db password", map[string]string{"APP_ENV": "production", "JWT_SECRET": "s3cret", "DB_PASSWORD": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNECTIONS", "20")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, int32(20), cfg.MaxConns)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_PORT", "abc")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)

	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_MAX_RETRIES", "0")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)
}
