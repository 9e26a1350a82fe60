package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eshoplite/internal/domain"
)

type StoreRepository interface {
	List(ctx context.Context) ([]domain.StoreInfo, error)
	GetByID(ctx context.Context, id int) (domain.StoreInfo, error)
}

type PgStoreRepository struct {
	pool *pgxpool.Pool
}

func NewPgStoreRepository(pool *pgxpool.Pool) *PgStoreRepository {
	return &PgStoreRepository{pool: pool}
}

func (r *PgStoreRepository) List(ctx context.Context) ([]domain.StoreInfo, error) {
	const query = `
		SELECT id, name, city, state, hours
		FROM stores
		ORDER BY id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := []domain.StoreInfo{}
	for rows.Next() {
		var s domain.StoreInfo
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.Hours); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *PgStoreRepository) GetByID(ctx context.Context, id int) (domain.StoreInfo, error) {
	const query = `
		SELECT id, name, city, state, hours
		FROM stores
		WHERE id = $1
	`
	var s domain.StoreInfo
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.City, &s.State, &s.Hours)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StoreInfo{}, ErrNotFound
	}
	return s, err
}

type SQLiteStoreRepository struct {
	db *sql.DB
}

func NewSQLiteStoreRepository(db *sql.DB) *SQLiteStoreRepository {
	return &SQLiteStoreRepository{db: db}
}

func (r *SQLiteStoreRepository) List(ctx context.Context) ([]domain.StoreInfo, error) {
	const query = `
		SELECT id, name, city, state, hours
		FROM stores
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := []domain.StoreInfo{}
	for rows.Next() {
		var s domain.StoreInfo
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.Hours); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *SQLiteStoreRepository) GetByID(ctx context.Context, id int) (domain.StoreInfo, error) {
	const query = `
		SELECT id, name, city, state, hours
		FROM stores
		WHERE id = ?
	`
	var s domain.StoreInfo
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.City, &s.State, &s.Hours)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoreInfo{}, ErrNotFound
	}
	return s, err
}
