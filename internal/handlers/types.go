package handlers

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		OriginalURL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"original_url"`
	}
}

// ShortenResponse carries the short URL for the submitted address.
type ShortenResponse struct {
	Body struct {
		ShortURL string `doc:"The full short URL" example:"http://localhost:8080/aZ3k9Q" json:"short_url"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aZ3k9Q" path:"code"`
}

// RedirectResponse is a temporary redirect to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
}
