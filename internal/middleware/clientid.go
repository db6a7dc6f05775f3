package middleware

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// DefaultClientIPHeader is the header set by the edge proxy with the
// connecting client address.
const DefaultClientIPHeader = "CF-Connecting-IP"

// UnknownClient is the identity shared by requests without any client header.
const UnknownClient = "unknown"

// ClientID derives the rate limit identity of a request from proxy headers,
// in order: the trusted header, the first X-Forwarded-For hop, X-Real-IP.
// Requests carrying none of them share the UnknownClient identity.
//
// Headers are client controlled unless the edge overwrites them, so the
// identity is only as trustworthy as the proxy in front of the service.
func ClientID(ctx huma.Context, trustedHeader string) string {
	if trustedHeader != "" {
		if ip := strings.TrimSpace(ctx.Header(trustedHeader)); ip != "" {
			return ip
		}
	}

	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(ctx.Header("X-Real-IP")); xri != "" {
		return xri
	}

	return UnknownClient
}
