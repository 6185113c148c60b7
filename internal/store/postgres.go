package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

const (
	postgresCodeConstraint = "mappings_pkey"
	postgresURLConstraint  = "mappings_original_url_key"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS mappings (
		short_code   TEXT NOT NULL,
		original_url TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT mappings_pkey PRIMARY KEY (short_code),
		CONSTRAINT mappings_original_url_key UNIQUE (original_url)
	)
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed mapping store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create mappings table: %w", err)
	}

	return nil
}

func (p *PostgresStore) Insert(ctx context.Context, mapping *shortener.Mapping) error {
	query := `
		INSERT INTO mappings (short_code, original_url, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := p.pool.Exec(ctx, query,
		string(mapping.Code),
		mapping.OriginalURL,
		mapping.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case postgresURLConstraint:
				return shortener.NewConflictError(shortener.URLConflict, err)
			case postgresCodeConstraint:
				return shortener.NewConflictError(shortener.CodeConflict, err)
			}
		}

		return fmt.Errorf("insert mapping: %w", err)
	}

	return nil
}

func (p *PostgresStore) FindByCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	query := `
		SELECT short_code, original_url, created_at
		FROM mappings
		WHERE short_code = $1
	`

	return p.findOne(ctx, query, string(code))
}

func (p *PostgresStore) FindByURL(ctx context.Context, url string) (*shortener.Mapping, error) {
	query := `
		SELECT short_code, original_url, created_at
		FROM mappings
		WHERE original_url = $1
	`

	return p.findOne(ctx, query, url)
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Shutdown closes the connection pool.
func (p *PostgresStore) Shutdown() error {
	p.pool.Close()

	return nil
}

func (p *PostgresStore) findOne(ctx context.Context, query, arg string) (*shortener.Mapping, error) {
	var mapping shortener.Mapping

	var code string

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&code,
		&mapping.OriginalURL,
		&mapping.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("select mapping: %w", err)
	}

	mapping.Code = shortener.Code(code)

	return &mapping, nil
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
