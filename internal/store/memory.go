package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	byCode map[shortener.Code]shortener.Mapping
	byURL  map[string]shortener.Code
}

// NewMemoryStore creates a new in-memory mapping store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode: make(map[shortener.Code]shortener.Mapping),
		byURL:  make(map[string]shortener.Code),
	}
}

func (m *MemoryStore) FindByURL(_ context.Context, url string) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.byURL[url]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	mapping := m.byCode[code]

	return &mapping, nil
}

func (m *MemoryStore) FindByCode(_ context.Context, code shortener.Code) (*shortener.Mapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mapping, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &mapping, nil
}

func (m *MemoryStore) Insert(_ context.Context, mapping *shortener.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byCode[mapping.Code]; ok {
		return shortener.NewConflictError(shortener.CodeConflict, nil)
	}

	if _, ok := m.byURL[mapping.OriginalURL]; ok {
		return shortener.NewConflictError(shortener.URLConflict, nil)
	}

	m.byCode[mapping.Code] = *mapping
	m.byURL[mapping.OriginalURL] = mapping.Code

	return nil
}

// EnsureSchema is a no-op for the in-memory store.
func (m *MemoryStore) EnsureSchema(context.Context) error {
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored mappings.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byCode)
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
