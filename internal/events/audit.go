package events

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

var errEmptyCode = errors.New("mapping created event without code")

// AuditLog writes one log line per created mapping.
type AuditLog struct {
	logger *zap.Logger
}

// NewAuditLog creates an audit log handler.
func NewAuditLog(logger *zap.Logger) *AuditLog {
	return &AuditLog{logger: logger}
}

// HandleMappingCreated records event. Events without a code are rejected so
// the message is redelivered rather than silently dropped.
func (a *AuditLog) HandleMappingCreated(_ context.Context, event *MappingCreatedEvent) error {
	if event.Code == "" {
		return errEmptyCode
	}

	a.logger.Info("mapping created",
		zap.String("code", event.Code),
		zap.String("originalUrl", event.OriginalURL),
		zap.Time("createdAt", event.CreatedAt),
		zap.String("requestId", event.RequestID),
	)

	return nil
}
