package ratelimit

import (
	"strconv"
	"time"
)

// Response header names.
const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

// ExceededMessage is the error reported in denial bodies.
const ExceededMessage = "Rate limit exceeded"

// HeaderSetter is satisfied by huma.Context.
type HeaderSetter interface {
	SetHeader(name, value string)
}

// ExceededBody is the JSON body of a 429 response.
type ExceededBody struct {
	Error      string `json:"error"`
	RetryAfter int64  `json:"retryAfter"`
}

// SetHeaders exposes the quota of result, whether or not it was allowed.
func SetHeaders(h HeaderSetter, result Result) {
	h.SetHeader(HeaderLimit, strconv.FormatInt(result.Limit, 10))
	h.SetHeader(HeaderRemaining, strconv.FormatInt(result.Remaining, 10))
	h.SetHeader(HeaderReset, strconv.FormatInt(result.ResetAt, 10))
}

// RetryAfter returns the whole seconds until the window of result resets.
func RetryAfter(result Result, now time.Time) int64 {
	return max(0, result.ResetAt-now.Unix())
}

// Exceeded builds the denial body for result.
func Exceeded(result Result, now time.Time) ExceededBody {
	return ExceededBody{
		Error:      ExceededMessage,
		RetryAfter: RetryAfter(result, now),
	}
}
