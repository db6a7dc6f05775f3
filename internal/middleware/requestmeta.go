package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portal-api/internal/handlers"
)

// RequestIDHeader carries the request ID back to the caller.
const RequestIDHeader = "X-Request-ID"

// RequestMeta is a middleware that adds a request ID, client IP, user-agent,
// and referrer to the request context. An incoming X-Request-ID is kept.
func RequestMeta(newID func() string, clientIPHeader string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = newID()
		}

		meta := handlers.RequestMeta{
			RequestID: requestID,
			ClientIP:  ClientID(ctx, clientIPHeader),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		ctx.SetHeader(RequestIDHeader, requestID)

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}
