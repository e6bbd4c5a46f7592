package main

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/internal/snapshots"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/redis"
)

// storage is the durable backend selected by STOREFRONT_STORAGE_DRIVER.
type storage struct {
	store  snapshots.Store
	checks []controllers.ReadyCheck
	close  func() error
}

func openStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*storage, error) {
	driver, err := cfg.Storage.StorageDriver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case enums.StorageDriverMemory:
		if cfg.App.IsProd() {
			return nil, fmt.Errorf("memory storage is not allowed in %s", cfg.App.Env)
		}
		logg.Warn(ctx, "memory storage selected, vendor edits will not survive a restart")
		return &storage{store: snapshots.NewMemoryStore(), close: func() error { return nil }}, nil

	case enums.StorageDriverSQLite, enums.StorageDriverPostgres:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		store, err := snapshots.NewGormStore(ctx, client, cfg.Storage.AutoMigrate)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &storage{
			store:  store,
			checks: []controllers.ReadyCheck{{Name: "db", Pinger: client}},
			close:  client.Close,
		}, nil

	case enums.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		store, err := snapshots.NewRedisStore(client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &storage{
			store:  store,
			checks: []controllers.ReadyCheck{{Name: "redis", Pinger: client}},
			close:  client.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", driver)
}
