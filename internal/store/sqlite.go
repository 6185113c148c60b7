package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/serroba/shortlink/internal/shortener"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS mappings (
		short_code   TEXT PRIMARY KEY,
		original_url TEXT NOT NULL UNIQUE,
		created_at   TIMESTAMP NOT NULL
	)
`

// SQLiteStore is a SQLite implementation of shortener.Repository.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database at dsn, e.g.
// "file:url_mappings.db?_journal_mode=WAL&_busy_timeout=5000".
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	return NewSQLiteStore(db), nil
}

// NewSQLiteStore creates a new SQLite-backed mapping store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create mappings table: %w", err)
	}

	return nil
}

func (s *SQLiteStore) FindByURL(ctx context.Context, url string) (*shortener.Mapping, error) {
	query := `
		SELECT short_code, original_url, created_at
		FROM mappings
		WHERE original_url = ?
	`

	return s.findOne(ctx, query, url)
}

func (s *SQLiteStore) FindByCode(ctx context.Context, code shortener.Code) (*shortener.Mapping, error) {
	query := `
		SELECT short_code, original_url, created_at
		FROM mappings
		WHERE short_code = ?
	`

	return s.findOne(ctx, query, string(code))
}

func (s *SQLiteStore) Insert(ctx context.Context, mapping *shortener.Mapping) error {
	query := `
		INSERT INTO mappings (short_code, original_url, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		string(mapping.Code),
		mapping.OriginalURL,
		mapping.CreatedAt,
	)
	if err != nil {
		if kind, ok := sqliteConflictKind(err); ok {
			return shortener.NewConflictError(kind, err)
		}

		return fmt.Errorf("insert mapping: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Shutdown closes the underlying database.
func (s *SQLiteStore) Shutdown() error {
	return s.db.Close()
}

func (s *SQLiteStore) findOne(ctx context.Context, query string, arg string) (*shortener.Mapping, error) {
	var (
		mapping   shortener.Mapping
		code      string
		createdAt time.Time
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&code, &mapping.OriginalURL, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("select mapping: %w", err)
	}

	mapping.Code = shortener.Code(code)
	mapping.CreatedAt = createdAt

	return &mapping, nil
}

// sqliteConflictKind maps a unique constraint failure to the column that caused it.
// SQLite reports "UNIQUE constraint failed: mappings.<column>".
func sqliteConflictKind(err error) (shortener.ConflictKind, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return 0, false
	}

	switch {
	case strings.Contains(sqliteErr.Error(), "mappings.original_url"):
		return shortener.URLConflict, true
	case strings.Contains(sqliteErr.Error(), "mappings.short_code"),
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
		return shortener.CodeConflict, true
	default:
		return 0, false
	}
}

// Compile-time check.
var _ shortener.Repository = (*SQLiteStore)(nil)
