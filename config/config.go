package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vit0-9/link_redirector/pkg/resolver"
	"github.com/vit0-9/link_redirector/pkg/store"
)

// ErrMissingConfig is returned when a required setting is absent. The
// process must not start serving in that case.
var ErrMissingConfig = errors.New("missing required configuration")

// Config holds all configuration for the application
type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	LogFormat       string
	DocsEnabled     bool
	ShutdownTimeout time.Duration

	Store         store.Config
	LookupTimeout time.Duration
	FallbackURL   string
}

// LoadDotEnv loads a .env file if present. A missing file is not an error.
func LoadDotEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		logrus.Warn("Error loading .env file, using environment variables from system if set.")
	}
}

// Load reads configuration from environment variables with fallback defaults.
func Load() (*Config, error) {
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("docs_enabled", false)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("store_backend", store.BackendPostgREST)
	v.SetDefault("lookup_table", store.DefaultTable)
	v.SetDefault("lookup_key_column", store.DefaultKeyColumn)
	v.SetDefault("lookup_timeout", resolver.DefaultLookupTimeout)
	v.SetDefault("fallback_url", resolver.DefaultFallbackURL)

	// The first variable found wins.
	_ = v.BindEnv("supabase_url", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")
	_ = v.BindEnv("supabase_key", "SUPABASE_KEY", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	return v
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("port"),
		GinMode:         v.GetString("gin_mode"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		DocsEnabled:     v.GetBool("docs_enabled"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		Store: store.Config{
			Backend:   strings.ToLower(v.GetString("store_backend")),
			URL:       v.GetString("supabase_url"),
			Key:       v.GetString("supabase_key"),
			DSN:       v.GetString("database_url"),
			Table:     v.GetString("lookup_table"),
			KeyColumn: v.GetString("lookup_key_column"),
		},
		LookupTimeout: v.GetDuration("lookup_timeout"),
		FallbackURL:   v.GetString("fallback_url"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.Errorf("PORT %q is not a valid number", c.Port)
	}

	switch c.Store.Backend {
	case store.BackendPostgREST:
		if c.Store.URL == "" {
			return errors.Wrap(ErrMissingConfig, "SUPABASE_URL")
		}
		if c.Store.Key == "" {
			return errors.Wrap(ErrMissingConfig, "SUPABASE_KEY")
		}
	case store.BackendPostgres, store.BackendMySQL, store.BackendSQLite:
		if c.Store.DSN == "" {
			return errors.Wrap(ErrMissingConfig, "DATABASE_URL")
		}
	default:
		return errors.Wrapf(store.ErrUnknownBackend, "STORE_BACKEND %q", c.Store.Backend)
	}

	if c.LookupTimeout <= 0 {
		return errors.Errorf("LOOKUP_TIMEOUT must be positive, got %s", c.LookupTimeout)
	}
	if !strings.HasPrefix(c.FallbackURL, "http://") && !strings.HasPrefix(c.FallbackURL, "https://") {
		return errors.Errorf("FALLBACK_URL %q must be an absolute http(s) URL", c.FallbackURL)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
