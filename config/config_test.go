package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vit0-9/link_redirector/pkg/store"
)

var envKeys = []string{
	"PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "DOCS_ENABLED", "SHUTDOWN_TIMEOUT",
	"STORE_BACKEND", "SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_ANON_KEY",
	"NEXT_PUBLIC_SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_ANON_KEY", "DATABASE_URL",
	"LOOKUP_TABLE", "LOOKUP_KEY_COLUMN", "LOOKUP_TIMEOUT", "FALLBACK_URL",
}

// clearEnv blanks every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.DocsEnabled)
	assert.Equal(t, store.BackendPostgREST, cfg.Store.Backend)
	assert.Equal(t, "urls", cfg.Store.Table)
	assert.Equal(t, "short", cfg.Store.KeyColumn)
	assert.Equal(t, 5*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://www.google.com", cfg.FallbackURL)
}

func TestLoadNextPublicAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "anon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co", cfg.Store.URL)
	assert.Equal(t, "anon", cfg.Store.Key)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("LOOKUP_TIMEOUT", "750ms")
	t.Setenv("DOCS_ENABLED", "true")
	t.Setenv("LOOKUP_TABLE", "links")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, store.BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 750*time.Millisecond, cfg.LookupTimeout)
	assert.True(t, cfg.DocsEnabled)
	assert.Equal(t, "links", cfg.Store.Table)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SUPABASE_URL=https://from-file.supabase.co\nSUPABASE_KEY=file-key\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("SUPABASE_URL")
		_ = os.Unsetenv("SUPABASE_KEY")
	})

	LoadDotEnv(path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://from-file.supabase.co", cfg.Store.URL)
	assert.Equal(t, "file-key", cfg.Store.Key)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:          "8080",
			Store:         store.Config{Backend: store.BackendPostgREST, URL: "https://p.supabase.co", Key: "k"},
			LookupTimeout: time.Second,
			FallbackURL:   "https://www.google.com",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing url", func(c *Config) { c.Store.URL = "" }, ErrMissingConfig},
		{"missing key", func(c *Config) { c.Store.Key = "" }, ErrMissingConfig},
		{"sql without dsn", func(c *Config) { c.Store.Backend = store.BackendMySQL }, ErrMissingConfig},
		{"sql with dsn", func(c *Config) { c.Store.Backend = store.BackendSQLite; c.Store.DSN = "links.db" }, nil},
		{"unknown backend", func(c *Config) { c.Store.Backend = "dynamo" }, store.ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	base := Config{
		Port:          "8080",
		Store:         store.Config{Backend: store.BackendPostgREST, URL: "https://p.supabase.co", Key: "k"},
		LookupTimeout: time.Second,
		FallbackURL:   "https://www.google.com",
	}

	badPort := base
	badPort.Port = "http"
	assert.Error(t, badPort.Validate())

	noTimeout := base
	noTimeout.LookupTimeout = 0
	assert.Error(t, noTimeout.Validate())

	relativeFallback := base
	relativeFallback.FallbackURL = "www.google.com"
	assert.Error(t, relativeFallback.Validate())
}
