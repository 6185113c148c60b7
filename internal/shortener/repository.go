package shortener

import "context"

// Repository persists mappings and enforces uniqueness of both code and URL.
type Repository interface {
	// FindByURL returns the mapping for an exact URL match or ErrNotFound.
	FindByURL(ctx context.Context, url string) (*Mapping, error)

	// FindByCode returns the mapping for an exact code match or ErrNotFound.
	FindByCode(ctx context.Context, code Code) (*Mapping, error)

	// Insert atomically stores a new mapping. A violated uniqueness constraint
	// is reported as a *ConflictError carrying the matching ConflictKind.
	Insert(ctx context.Context, mapping *Mapping) error

	// EnsureSchema creates the underlying storage structure if absent.
	EnsureSchema(ctx context.Context) error

	// Ping checks connectivity to the backing store.
	Ping(ctx context.Context) error
}
