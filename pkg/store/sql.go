package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vit0-9/link_redirector/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DialectOption picks the gorm dialector for a SQL store.
type DialectOption func() (gorm.Dialector, error)

func UsePostgres(dsn string) DialectOption {
	return func() (gorm.Dialector, error) {
		if dsn == "" {
			return nil, errors.New("postgres store needs a DSN")
		}
		return postgres.Open(dsn), nil
	}
}

func UseMySQL(dsn string) DialectOption {
	return func() (gorm.Dialector, error) {
		if dsn == "" {
			return nil, errors.New("mysql store needs a DSN")
		}
		return mysql.Open(dsn), nil
	}
}

func UseSQLite(fileName string) DialectOption {
	return func() (gorm.Dialector, error) {
		if fileName == "" {
			return nil, errors.New("sqlite store needs a file name")
		}
		return sqlite.Open(fileName), nil
	}
}

// SQLStore reads the short-link table directly from a SQL database.
type SQLStore struct {
	db        *gorm.DB
	table     string
	keyColumn string
}

func NewSQLStore(useDialect DialectOption, table, keyColumn string) (*SQLStore, error) {
	dialector, err := useDialect()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect db failed")
	}
	return NewSQLStoreFromDB(db, table, keyColumn), nil
}

// NewSQLStoreFromDB wraps an already opened connection.
func NewSQLStoreFromDB(db *gorm.DB, table, keyColumn string) *SQLStore {
	if table == "" {
		table = DefaultTable
	}
	if keyColumn == "" {
		keyColumn = DefaultKeyColumn
	}
	return &SQLStore{db: db, table: table, keyColumn: keyColumn}
}

// FindBySlug implements Store.
func (s *SQLStore) FindBySlug(ctx context.Context, slug string) (*models.RedirectRecord, error) {
	// SELECT * FROM urls WHERE short = ? LIMIT 1
	sql, args, err := sq.
		Select("*").
		From(s.table).
		Where(sq.Eq{s.keyColumn: slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "to sql failed")
	}

	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query failed")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return recordFromRow(rows[0]), nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get core db failed")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "ping core db failed")
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get core db failed")
	}
	return sqlDB.Close()
}
