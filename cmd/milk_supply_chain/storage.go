package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	"github.com/SscSPs/milk_supply_chain/internal/platform/config"
	"github.com/SscSPs/milk_supply_chain/internal/repositories/database/memory"
	"github.com/SscSPs/milk_supply_chain/internal/repositories/database/pgsql"
	"github.com/SscSPs/milk_supply_chain/internal/repositories/database/sqlite"
	"github.com/SscSPs/milk_supply_chain/pkg/database"
)

// openRepositories builds the ledger store selected by STORAGE_DRIVER.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("Using in-memory ledger store")
		return portsrepo.RepositoryProvider{LedgerRepo: memory.NewLedgerRepository()}, nil

	case config.StoragePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")

		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, fmt.Errorf("apply migrations: %w", err)
		}
		repos := pgsql.NewRepositoryProvider(dbPool)
		repos.Close = func() error {
			database.ClosePgxPool(dbPool)
			return nil
		}
		return repos, nil

	case config.StorageSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("SQLite ledger store opened", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(repo), nil

	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
