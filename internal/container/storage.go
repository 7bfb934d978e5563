package container

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/postgres"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// OpenStorage attaches the configured gateway to c and returns a release
// func to run on shutdown.
func (c *Container) OpenStorage(ctx context.Context, migrate bool) (func(), error) {
	switch c.Config.Storage {
	case StorageMemory:
		store := memory.New()
		c.Users, c.Posts = store.Users(), store.Posts()
		c.Ping = nil
		c.Logger.Warn("using in-memory storage; data is lost on restart")
		return func() {}, nil
	case StoragePostgres, "":
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Config.Storage)
	}

	cfg := c.Config
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB := pginfra.SQLDB(pool)
	release := func() {
		_ = sqlDB.Close()
		pool.Close()
	}
	if migrate {
		if err := pginfra.RunMigrations(sqlDB, cfg.MigrationsDir, c.Logger); err != nil {
			release()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	gdb, err := pginfra.OpenGorm(sqlDB, cfg.DBLogSQL)
	if err != nil {
		release()
		return nil, err
	}
	c.Users = pginfra.NewUserRepository(gdb)
	c.Posts = pginfra.NewPostRepository(gdb)
	c.Ping = pool.Ping
	return release, nil
}
