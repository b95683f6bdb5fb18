package app

import (
	"context"
	"fmt"

	"habit-analytics/internal/config"
	"habit-analytics/internal/domain/repository"
	"habit-analytics/internal/infrastructure/db"
	"habit-analytics/internal/infrastructure/postgres"
	"habit-analytics/internal/infrastructure/sqlite"
	"habit-analytics/internal/pkg/logger"
)

// storage is the repository set of the configured driver
type storage struct {
	habits     repository.HabitRepository
	logs       repository.HabitLogRepository
	categories repository.CategoryRepository
	applied    int
	close      func()
}

// openStorage connects to the configured database and applies pending
// migrations
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := db.NewPostgresPool(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}

		applied, err := db.MigratePostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("Connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Database, "migrations_applied", applied)

		return &storage{
			habits:     postgres.NewHabitRepository(pool),
			logs:       postgres.NewHabitLogRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			applied:    applied,
			close:      pool.Close,
		}, nil

	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}

		applied, err := db.MigrateSQLite(ctx, conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		log.Info("Opened SQLite database", "path", cfg.SQLite.Path, "migrations_applied", applied)

		store := sqlite.NewStore(conn)
		return &storage{
			habits:     sqlite.NewHabitRepository(store),
			logs:       sqlite.NewHabitLogRepository(store),
			categories: sqlite.NewCategoryRepository(store),
			applied:    applied,
			close: func() {
				if err := store.Close(); err != nil {
					log.Warn("failed to close sqlite database", "error", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
