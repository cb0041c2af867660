package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_IsValidWithSecret(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.JWT.Secret = "secret"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, LimitPaginate, cfg.Paginate.Limit)
	assert.Equal(t, 28*24*time.Hour, cfg.Cache.TTLMin)
	assert.Equal(t, 56*24*time.Hour, cfg.Cache.TTLMax)
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	cfg := Default()
	err := applyEnv(&cfg, envFrom(map[string]string{
		"DB_HOST":              "db",
		"REDIS_PORT":           "6380",
		"CACHE_ENABLED":        "false",
		"CACHE_TTL_MIN":        "60",
		"CACHE_TTL_MAX":        "2m",
		"JWT_SECRET":           "s3cret",
		"PAGINATE_LIMIT":       "25",
		"RUN_MIGRATIONS":       "true",
		"CORS_ALLOWED_ORIGINS": "https://admin.example.com, http://localhost:3000,",
	}))
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTLMin)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTLMax)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 25, cfg.Paginate.Limit)
	assert.True(t, cfg.DB.RunMigrations)
	assert.Equal(t, []string{"https://admin.example.com", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	err := applyEnv(&cfg, envFrom(map[string]string{
		"CACHE_ENABLED":  "maybe",
		"PAGINATE_LIMIT": "ten",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_ENABLED")
	assert.Contains(t, err.Error(), "PAGINATE_LIMIT")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"missing secret in production", func(c *Config) { c.JWT.Secret = "" }, true},
		{"missing secret in development", func(c *Config) { c.JWT.Secret = ""; c.Env = "development" }, false},
		{"inverted ttl window", func(c *Config) { c.Cache.TTLMax = c.Cache.TTLMin - time.Second }, true},
		{"zero page size", func(c *Config) { c.Paginate.Limit = 0 }, true},
		{"unknown driver", func(c *Config) { c.DB.Driver = "oracle" }, true},
		{"sqlite driver", func(c *Config) { c.DB.Driver = "sqlite" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.JWT.Secret = "secret"
			tt.mutate(&cfg)

			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("http_addr: \":9090\"\njwt:\n  secret: from-file\ncache:\n  namespace: admin\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "admin", cfg.Cache.Namespace)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	// Defaults survive a partial file.
	assert.Equal(t, LimitPaginate, cfg.Paginate.Limit)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
