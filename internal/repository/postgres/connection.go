package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cassiomorais/corebank/internal/infrastructure/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	poolIdleTimeout       = 30 * time.Minute
	poolHealthCheckPeriod = time.Minute
)

// NewPool opens a pgx pool sized from configuration and verifies the
// database is reachable before handing it out.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	pc.MaxConns = int32(cfg.MaxConnections)
	pc.MinConns = int32(cfg.MinConnections)
	pc.MaxConnLifetime = cfg.ConnMaxLifetime
	pc.MaxConnIdleTime = poolIdleTimeout
	pc.HealthCheckPeriod = poolHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
