package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/salon-inventario-api/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// SharedPool pool único del proceso: se crea en el primer Get y vive hasta Close.
type SharedPool struct {
	cfg  config.DBConfig
	once sync.Once
	pool *pgxpool.Pool
	err  error
}

// NewSharedPool no abre conexiones; la primera llamada a Get lo hace.
func NewSharedPool(cfg config.DBConfig) *SharedPool {
	return &SharedPool{cfg: cfg}
}

// Get devuelve el pool, creándolo una sola vez. Un fallo inicial queda memorizado.
func (s *SharedPool) Get(ctx context.Context) (*pgxpool.Pool, error) {
	s.once.Do(func() {
		s.pool, s.err = NewPool(ctx, s.cfg)
	})
	return s.pool, s.err
}

// Close cierra el pool si llegó a crearse.
func (s *SharedPool) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
