package handlers_test

import (
	"context"
	"errors"

	"github.com/serroba/shortlink/internal/shortener"
)

var errMock = errors.New("connection reset")

const testURL = "https://example.com/very/long/path"

// failingStore is a shortener.Repository whose every read fails with err.
type failingStore struct {
	err error
}

func (f *failingStore) FindByURL(context.Context, string) (*shortener.Mapping, error) {
	return nil, f.err
}

func (f *failingStore) FindByCode(context.Context, shortener.Code) (*shortener.Mapping, error) {
	return nil, f.err
}

func (f *failingStore) Insert(context.Context, *shortener.Mapping) error {
	return f.err
}

func (f *failingStore) EnsureSchema(context.Context) error { return nil }

func (f *failingStore) Ping(context.Context) error { return f.err }
