package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-composer/internal/documents"
)

func (c *Container) configureRepository(ctx context.Context) error {
	if c.repository != nil {
		return nil
	}

	storage := c.Config.Storage
	switch strings.ToLower(strings.TrimSpace(storage.Provider)) {
	case "memory":
		c.repository = documents.NewMemoryRepository()
	case "bun":
		db := c.bunDB
		if db == nil {
			opened, err := openBunDB(storage.Dialect, storage.DSN)
			if err != nil {
				return err
			}
			db = opened
			c.bunDB = opened
			c.closers = append(c.closers, opened.Close)
		}
		if err := documents.CreateSchema(ctx, db); err != nil {
			return fmt.Errorf("di: create document schema: %w", err)
		}
		c.repository = documents.NewBunRepositoryWithCache(db, c.cacheService, c.keySerializer)
	case "redis":
		repo, err := documents.NewRedisRepository(ctx, storage.RedisURL, storage.KeyPrefix)
		if err != nil {
			return fmt.Errorf("di: redis repository: %w", err)
		}
		c.closers = append(c.closers, repo.Close)
		c.repository = repo
	default:
		return fmt.Errorf("di: unsupported storage provider %q", storage.Provider)
	}
	return nil
}

// openBunDB opens dsn with the driver matching dialect.
func openBunDB(dialect, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres":
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "", "sqlite":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("di: unsupported storage dialect %q", dialect)
	}
}
