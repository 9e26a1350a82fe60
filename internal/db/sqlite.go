package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       REAL NOT NULL DEFAULT 0,
	image_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS stores (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL,
	city  TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	hours TEXT NOT NULL DEFAULT ''
);
`

// OpenSQLite abre la base SQLite del catalogo, crea el esquema y carga datos iniciales.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializa escrituras; un solo writer evita "database is locked".
	conn.SetMaxOpenConns(1)

	if err := EnsureSQLiteSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func EnsureSQLiteSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var count int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		for _, p := range SeedProducts {
			if _, err := conn.ExecContext(ctx,
				`INSERT INTO products (name, description, price, image_url) VALUES (?, ?, ?, ?)`,
				p.Name, p.Description, p.Price, p.ImageURL,
			); err != nil {
				return fmt.Errorf("seed product %q: %w", p.Name, err)
			}
		}
	}

	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return fmt.Errorf("count stores: %w", err)
	}
	if count == 0 {
		for _, s := range SeedStores {
			if _, err := conn.ExecContext(ctx,
				`INSERT INTO stores (name, city, state, hours) VALUES (?, ?, ?, ?)`,
				s.Name, s.City, s.State, s.Hours,
			); err != nil {
				return fmt.Errorf("seed store %q: %w", s.Name, err)
			}
		}
	}
	return nil
}
