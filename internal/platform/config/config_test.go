package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.Equal(t, 10*time.Second, cfg.DataTimeout)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("DATA_BACKEND", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://localhost/hrms")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("DATA_TIMEOUT", "3s")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.DataBackend)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 3*time.Second, cfg.DataTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestParseRejectsMalformedValues(t *testing.T) {
	t.Setenv("PAGE_SIZE", "ten")
	_, err := Parse()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Parse()
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.DataBackend = "mongo" }, wantErr: "DATA_BACKEND must be one of memory, postgres, rest"},
		{name: "postgres without url", mutate: func(c *Config) { c.DataBackend = BackendPostgres }, wantErr: "DATABASE_URL is required when DATA_BACKEND is postgres"},
		{name: "rest without url", mutate: func(c *Config) { c.DataBackend = BackendREST; c.APIBaseURL = "" }, wantErr: "API_BASE_URL is required when DATA_BACKEND is rest"},
		{name: "production without secret", mutate: func(c *Config) { c.Environment = "production" }, wantErr: "SESSION_SECRET must be set to a strong value in production"},
		{
			name: "production insecure cookie",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.SessionSecret = "s"
				c.SessionSealKey = "k"
			},
			wantErr: "COOKIE_SECURE must be enabled in production",
		},
		{name: "small body limit", mutate: func(c *Config) { c.MaxBodyBytes = 10 }, wantErr: "MAX_BODY_BYTES must be at least 1024"},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: "PAGE_SIZE must be positive"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			assert.EqualError(t, cfg.Validate(), tc.wantErr)
		})
	}
}

func TestLoadEnvSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(present, []byte("HRMS_TEST_ONLY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HRMS_TEST_ONLY") })

	n, err := LoadEnv([]string{present, filepath.Join(dir, ".env.local")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "from-file", os.Getenv("HRMS_TEST_ONLY"))
}
