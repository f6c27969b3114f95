// Package gormstore persists documents through gorm. Embedded lists (menu
// items, cuisines, cart items) are stored as JSON text columns.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"food-ordering-api/models"
	"food-ordering-api/store"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects with the given dialector. Call Migrate before first use.
func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

func OpenSQLite(path string) (*Store, error) {
	return Open(sqlite.Open(path))
}

func OpenPostgres(dsn string) (*Store, error) {
	return Open(postgres.Open(dsn))
}

// OpenInMemory returns a migrated, process-local sqlite store. Data is lost
// when the store is closed.
func OpenInMemory() (*Store, error) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		return nil, err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	if err := s.Migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&restaurantRow{},
		&models.Order{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := s.reindexRestaurants(ctx); err != nil {
		return fmt.Errorf("failed to index restaurants: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	err := db.WithContext(ctx).Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// save overwrites an existing row and reports ErrNotFound when there is none.
func save(ctx context.Context, db *gorm.DB, value any, id string) error {
	res := db.WithContext(ctx).Model(value).Where("id = ?", id).Select("*").Updates(value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
