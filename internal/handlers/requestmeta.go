package handlers

import (
	"context"

	"github.com/serroba/portal-api/internal/analytics"
)

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata for analytics.
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

// baseEvent returns an analytics event prefilled from the request metadata.
func baseEvent(ctx context.Context) analytics.Event {
	meta := RequestMetaFromContext(ctx)

	return analytics.Event{
		RequestID: meta.RequestID,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}
}
