// Package storage opens the configured persistence backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/app"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/storage/postgres"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/storage/sqlite"
	"github.com/AstroPolly/LyfeStylerWebApp-main/migrations"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and configures a backend.
//
// Driver values:
//   - "postgres": DatabaseURL is a pgx DSN; migrations run on open
//   - "sqlite": Path is the database file; the schema is created on open
type Config struct {
	Driver      string
	DatabaseURL string
	Path        string
	BusyTimeout time.Duration
}

// Backend bundles the repositories of one open store.
type Backend struct {
	Driver string
	Events app.EventRepository
	Users  app.UserRepository

	ping  func(context.Context) error
	close func()
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.ping(ctx)
}

func (b *Backend) Close() {
	b.close()
}

// NormalizeDriver maps aliases onto the supported driver names.
func NormalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", errors.New("unknown storage driver: " + driver)
	}
}

// Open connects to the configured backend and brings its schema up to date.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (*Backend, error) {
	driver, err := NormalizeDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	default:
		return openPostgres(ctx, cfg, logger)
	}
}

func openPostgres(ctx context.Context, cfg Config, logger zerolog.Logger) (*Backend, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	applied, err := migrations.Apply(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	if len(applied) > 0 {
		logger.Info().Strs("migrations", applied).Msg("migrations applied")
	}

	return &Backend{
		Driver: DriverPostgres,
		Events: postgres.NewEventRepository(pool),
		Users:  postgres.NewUserRepository(pool),
		ping:   pool.Ping,
		close:  pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg Config, logger zerolog.Logger) (*Backend, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Path, BusyTimeout: cfg.BusyTimeout})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", cfg.Path).Msg("sqlite store opened")

	return &Backend{
		Driver: DriverSQLite,
		Events: sqlite.NewEventRepository(db),
		Users:  sqlite.NewUserRepository(db),
		ping:   db.Ping,
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("sqlite close failed")
			}
		},
	}, nil
}
