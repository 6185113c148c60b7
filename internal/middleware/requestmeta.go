// Package middleware holds huma middlewares shared by every operation.
package middleware

import (
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/requestid"
	"go.uber.org/zap"
)

// RequestID puts a request ID into the context and echoes it in the
// response. A well-formed X-Request-ID from the client is reused.
func RequestID(ctx huma.Context, next func(huma.Context)) {
	id := ctx.Header(requestid.Header)
	if !validRequestID(id) {
		id = requestid.New()
	}

	ctx.SetHeader(requestid.Header, id)

	next(huma.WithContext(ctx, requestid.With(ctx.Context(), id)))
}

// AccessLog writes one log line per request once the handler has finished.
func AccessLog(logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		logger.Info("request",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.URL().Path),
			zap.Int("status", ctx.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", extractClientIP(ctx)),
			zap.String("request_id", requestid.From(ctx.Context())),
		)
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}

	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return false
		}
	}

	return true
}

func extractClientIP(ctx huma.Context) string {
	// Check X-Forwarded-For first (may contain multiple IPs)
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// Take the first IP (original client)
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	return ctx.RemoteAddr()
}
