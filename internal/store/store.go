// Package store implements database access for the API: CRUD, filtered
// list queries and the financial rollups behind the dashboard.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/config"
	"github.com/khayaprop/khaya/internal/models"
)

// Store wraps the database handle used by all repositories.
type Store struct {
	db *gorm.DB
}

// New wraps an existing database handle, used by tests and the seeder.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects using the configured DSN, falling back to a local sqlite
// file when no Postgres URL is set.
func Open(cfg config.Config) (*Store, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.UsesPostgres() {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for the migration CLI and seeder.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping verifies the database connection is alive.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// AutoMigrate creates all registered tables. Development convenience; the
// migrate CLI owns the schema in deployments.
func (s *Store) AutoMigrate() error {
	dst := make([]interface{}, 0, len(models.ModelTypeRegistry))
	for _, m := range models.ModelTypeRegistry {
		dst = append(dst, m)
	}
	return s.db.AutoMigrate(dst...)
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource)
	}
	return apperr.Wrap(apperr.CodeUnknown, "query "+resource, err)
}

// exists reports whether a live row with the given id exists for model.
func (s *Store) exists(ctx context.Context, model interface{}, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// checkRef returns a REFERENCE_NOT_FOUND error when the referenced row is
// missing or deleted.
func (s *Store) checkRef(ctx context.Context, model interface{}, id uint, field string) error {
	ok, err := s.exists(ctx, model, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeUnknown, "check reference", err)
	}
	if !ok {
		return &apperr.Error{
			Code:    apperr.CodeReferenceNotFound,
			Message: "referenced record not found",
			Fields:  map[string]string{field: "does not exist"},
		}
	}
	return nil
}
