package ratelimit

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a limit configuration cannot be enforced.
var ErrInvalidConfig = errors.New("invalid rate limit config")

// Config describes one independent rate limit namespace.
type Config struct {
	// Limit is the maximum number of requests allowed per window.
	Limit int
	// WindowSeconds is the length of the fixed window.
	WindowSeconds int
	// Identifier names the limited operation, e.g. "search-api".
	Identifier string
}

// Validate reports whether the config can be enforced.
func (c Config) Validate() error {
	if c.Identifier == "" {
		return fmt.Errorf("%w: identifier is required", ErrInvalidConfig)
	}

	if c.Limit <= 0 {
		return fmt.Errorf("%w: %s: limit must be positive, got %d", ErrInvalidConfig, c.Identifier, c.Limit)
	}

	if c.WindowSeconds <= 0 {
		return fmt.Errorf("%w: %s: window must be positive, got %ds", ErrInvalidConfig, c.Identifier, c.WindowSeconds)
	}

	return nil
}

// Key returns the counter key for a client within this namespace.
func (c Config) Key(clientID string) string {
	return c.Identifier + ":" + clientID
}
