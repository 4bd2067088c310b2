package server

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"hrms/internal/apiclient"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/hr"
	"hrms/internal/domain/reports"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/store/cache"
	"hrms/internal/store/memory"
	"hrms/internal/store/postgres"
)

// Registrar creates level -1 accounts from the sign-up wizard.
type Registrar interface {
	Register(ctx context.Context, reg auth.Registration) (auth.Principal, error)
}

// Backend is the data and identity side of the console for one DATA_BACKEND.
type Backend struct {
	Name          string
	Store         hr.Store
	Bus           *hr.Bus
	Authenticator auth.Authenticator
	Registrar     Registrar
	// Reports is nil when reports are derived locally from Store.
	Reports reports.Source
	Pool    *pgxpool.Pool

	closers []func()
}

// Ready reports whether the backend can serve requests.
func (b *Backend) Ready(ctx context.Context) error {
	if b.Pool == nil {
		return nil
	}
	return b.Pool.Ping(ctx)
}

func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// OpenBackend connects the backend named by cfg.DataBackend. The postgres
// backend migrates and seeds according to RUN_MIGRATIONS and RUN_SEED.
func OpenBackend(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Backend, error) {
	b := &Backend{Name: cfg.DataBackend, Bus: hr.NewBus()}
	switch cfg.DataBackend {
	case config.BackendMemory:
		accounts, err := auth.HashDemoAccounts()
		if err != nil {
			return nil, fmt.Errorf("hash demo accounts: %w", err)
		}
		directory := auth.NewDirectory(accounts...)
		service := auth.NewService(directory)
		b.Store = memory.NewSeeded()
		b.Authenticator = service
		b.Registrar = service

	case config.BackendPostgres:
		pool, err := ConnectDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		b.Pool = pool
		b.closers = append(b.closers, pool.Close)

		records := postgres.New(pool)
		accounts := auth.NewStore(pool)
		if cfg.RunSeed {
			if err := db.Seed(ctx, records, accounts, time.Now()); err != nil {
				b.Close()
				return nil, fmt.Errorf("seed: %w", err)
			}
			logger.Info("seed complete")
		}
		cached := cache.New(records, b.Bus, cfg.CacheTTL)
		b.closers = append(b.closers, cached.Close)

		service := auth.NewService(accounts)
		b.Store = cached
		b.Authenticator = service
		b.Registrar = service

	case config.BackendREST:
		client, err := apiclient.New(cfg.APIBaseURL, nil)
		if err != nil {
			return nil, err
		}
		b.Store = client
		b.Authenticator = client
		b.Registrar = client
		b.Reports = client

	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
	logger.WithField("backend", b.Name).Info("data backend ready")
	return b, nil
}

// ConnectDatabase opens the pool and applies pending migrations when enabled.
func ConnectDatabase(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*pgxpool.Pool, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, db.Migrations); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		logger.Info("migrations applied")
	}
	return pool, nil
}
