package config

import (
	"context"

	"food-ordering-api/store"
	"food-ordering-api/store/gormstore"
	"food-ordering-api/store/mongostore"
)

// OpenStore connects the backend selected by DB_DRIVER. The in-memory
// store comes back migrated; the others need Migrate.
func OpenStore(ctx context.Context, c *Config) (store.Store, error) {
	if err := c.ValidateStore(); err != nil {
		return nil, err
	}
	switch c.DBDriver {
	case DriverMemory:
		return gormstore.OpenInMemory()
	case DriverPostgres:
		return gormstore.OpenPostgres(c.DatabaseURL)
	case DriverMongoDB:
		return mongostore.Open(ctx, c.MongoURI, c.MongoDatabase)
	default:
		return gormstore.OpenSQLite(c.SQLitePath)
	}
}
