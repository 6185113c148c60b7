package shortener

import "time"

// Code represents a short URL code.
type Code string

// Mapping pairs a short code with the original URL it stands in for.
// Mappings are created once and never mutated.
type Mapping struct {
	Code        Code
	OriginalURL string
	CreatedAt   time.Time
}
