package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"eshoplite/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          SERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       NUMERIC(10,2) NOT NULL DEFAULT 0,
	image_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS stores (
	id    SERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	city  TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	hours TEXT NOT NULL DEFAULT ''
);
`

// EnsurePostgresSchema crea las tablas y carga datos iniciales si estan vacias.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		for _, p := range SeedProducts {
			if _, err := pool.Exec(ctx,
				`INSERT INTO products (name, description, price, image_url) VALUES ($1, $2, $3, $4)`,
				p.Name, p.Description, p.Price, p.ImageURL,
			); err != nil {
				return fmt.Errorf("seed product %q: %w", p.Name, err)
			}
		}
	}

	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return fmt.Errorf("count stores: %w", err)
	}
	if count == 0 {
		for _, s := range SeedStores {
			if _, err := pool.Exec(ctx,
				`INSERT INTO stores (name, city, state, hours) VALUES ($1, $2, $3, $4)`,
				s.Name, s.City, s.State, s.Hours,
			); err != nil {
				return fmt.Errorf("seed store %q: %w", s.Name, err)
			}
		}
	}
	return nil
}
