package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vit0-9/link_redirector/models"
)

const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
	BackendMySQL     = "mysql"
	BackendSQLite    = "sqlite"

	DefaultTable     = "urls"
	DefaultKeyColumn = "short"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Config selects and parameterizes a backend.
type Config struct {
	Backend   string
	URL       string // PostgREST project URL
	Key       string // PostgREST API key
	DSN       string // SQL backends
	Table     string
	KeyColumn string
	Timeout   time.Duration // transport-level ceiling for the PostgREST client
}

// Store is a read-only handle on the short-link table. Implementations are
// built once at startup and shared by all requests.
type Store interface {
	FindBySlug(ctx context.Context, slug string) (*models.RedirectRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// New builds the backend named in cfg.
func New(cfg Config) (Store, error) {
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.KeyColumn == "" {
		cfg.KeyColumn = DefaultKeyColumn
	}

	switch cfg.Backend {
	case "", BackendPostgREST:
		return NewPostgRESTStore(cfg.URL, cfg.Key, cfg.Table, cfg.KeyColumn, cfg.Timeout)
	case BackendPostgres:
		return NewSQLStore(UsePostgres(cfg.DSN), cfg.Table, cfg.KeyColumn)
	case BackendMySQL:
		return NewSQLStore(UseMySQL(cfg.DSN), cfg.Table, cfg.KeyColumn)
	case BackendSQLite:
		return NewSQLStore(UseSQLite(cfg.DSN), cfg.Table, cfg.KeyColumn)
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", cfg.Backend)
	}
}
