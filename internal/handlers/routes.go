package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ReservedCodes are single path segments served by other routes, which would
// shadow a short code of the same name.
var ReservedCodes = []string{"shorten", "health", "metrics", "docs", "schemas"}

// RegisterRoutes registers the shortening and redirect routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "shorten",
		Method:      http.MethodPost,
		Path:        "/shorten",
		Summary:     "Create short URL",
		Description: "Returns the short URL for the given address, creating it on first use. " +
			"Submitting the same address again returns the same short URL.",
		Tags: []string{"URLs"},
		Errors: []int{
			http.StatusBadRequest,
			http.StatusInternalServerError,
		},
	}, urlHandler.CreateShortURL)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect",
		Method:        http.MethodGet,
		Path:          "/{code}",
		Summary:       "Redirect to original URL",
		Description:   "Redirects to the original URL associated with the short code.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusFound,
		Errors: []int{
			http.StatusNotFound,
			http.StatusInternalServerError,
		},
	}, urlHandler.RedirectToURL)
}

// NewConfig returns the huma configuration for the service. Schema links are
// left out so response bodies carry only their documented fields.
func NewConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil
	config.Transformers = nil

	return config
}
