// Package requestid carries a per-request correlation ID through contexts.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the ID is read from and echoed in.
const Header = "X-Request-ID"

type key struct{}

// New returns a fresh random ID.
func New() string {
	return uuid.NewString()
}

// With returns a copy of ctx carrying id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key{}, id)
}

// From returns the ID stored in ctx, or "" when there is none.
func From(ctx context.Context) string {
	if v, ok := ctx.Value(key{}).(string); ok {
		return v
	}

	return ""
}
