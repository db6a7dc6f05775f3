package ratelimit

import "github.com/danielgtaylor/huma/v2"

// MetadataKey is the key used to store rate limit config in operation metadata.
const MetadataKey = "rateLimit"

// EndpointConfig defines per-endpoint rate limit configuration.
// This can be attached to Huma operations via the Metadata field.
type EndpointConfig struct {
	// Policy names the limit applied to the endpoint. Empty or unknown names
	// resolve to the default policy.
	Policy string

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// Metadata returns operation metadata carrying cfg.
func Metadata(cfg EndpointConfig) map[string]any {
	return map[string]any{MetadataKey: cfg}
}

// GetEndpointConfig extracts the EndpointConfig from operation metadata, if present.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// ResolvePolicy returns the policy name for the operation behind ctx and
// whether limiting applies to it at all.
func ResolvePolicy(ctx huma.Context) (string, bool) {
	cfg := GetEndpointConfig(ctx)
	if cfg == nil {
		return "", true
	}

	if cfg.Disabled {
		return "", false
	}

	return cfg.Policy, true
}
