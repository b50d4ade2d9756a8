// Package database opens the configured document store and hands back the
// repositories together with the function that releases the connection.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iliyamo/storefront-api/internal/config"
	"github.com/iliyamo/storefront-api/internal/repository"
)

// Closer releases the store connection.
type Closer func(ctx context.Context) error

// OpenStore connects to the backend named by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*repository.Store, Closer, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to mongodb", "database", cfg.Mongo.Database)
		return repository.NewMongoStore(client.Database(cfg.Mongo.Database)), client.Disconnect, nil

	case config.DriverMySQL:
		db, err := OpenMySQL(ctx, cfg.MySQL)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.EnsureDocumentsTable(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("connected to mysql", "host", cfg.MySQL.Host, "database", cfg.MySQL.Name)
		return repository.NewMySQLStore(db), func(context.Context) error { return db.Close() }, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
