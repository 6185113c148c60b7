package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/requestid"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

const (
	msgInvalidURL = "Invalid URL"
	msgNotFound   = "URL not found"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service               *shortener.Service
	baseURL               string
	publishMappingCreated messaging.Publish[events.MappingCreatedEvent]
	logger                *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	baseURL string,
	publishMappingCreated messaging.Publish[events.MappingCreatedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:               service,
		baseURL:               baseURL,
		publishMappingCreated: publishMappingCreated,
		logger:                logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	mapping, created, err := h.service.Shorten(ctx, req.Body.OriginalURL)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidURL) {
			return nil, huma.Error400BadRequest(msgInvalidURL)
		}

		return nil, h.storeError(ctx, "shorten", err)
	}

	if created {
		h.publishCreated(ctx, mapping)
	}

	resp := &ShortenResponse{}
	resp.Body.ShortURL = h.baseURL + "/" + string(mapping.Code)

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	mapping, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound(msgNotFound)
		}

		return nil, h.storeError(ctx, "resolve", err)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: mapping.OriginalURL,
	}, nil
}

func (h *URLHandler) storeError(ctx context.Context, op string, err error) error {
	h.logger.Error("store failure",
		zap.String("operation", op),
		zap.String("request_id", requestid.From(ctx)),
		zap.Error(err),
	)

	return huma.Error500InternalServerError(fmt.Sprintf("Database error: %v", err))
}

func (h *URLHandler) publishCreated(ctx context.Context, mapping *shortener.Mapping) {
	event := &events.MappingCreatedEvent{
		Code:        string(mapping.Code),
		OriginalURL: mapping.OriginalURL,
		CreatedAt:   mapping.CreatedAt,
		RequestID:   requestid.From(ctx),
	}

	if err := h.publishMappingCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish mapping created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}
}
