package shortener

import (
	"fmt"
	"net/url"
)

// ValidateURL accepts only absolute URLs with both a scheme and a host.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, rawURL)
	}

	return nil
}
