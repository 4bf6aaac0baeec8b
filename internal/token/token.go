// Package token carries the inbound request's bearer credential through the
// request context so outbound peer calls can forward it. The credential is
// threaded explicitly; nothing here reads global state, and nothing here
// validates the token (that is the gateway's job).
package token

import (
	"context"
	"strings"
)

type ctxKey int

const (
	savedTokenKey ctxKey = iota
	authHeaderKey
)

// bearerPrefix is matched case-sensitively, single space included.
const bearerPrefix = "Bearer "

// WithToken returns a context carrying a token captured by the
// authentication layer for this request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, savedTokenKey, token)
}

// WithAuthorizationHeader returns a context carrying the raw Authorization
// header value of the inbound request. Used as a fallback when no token was
// saved for the security context.
func WithAuthorizationHeader(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, authHeaderKey, header)
}

// Extract returns the bearer token for the current request, if any.
// Lookup order: the saved-token slot first, then the raw Authorization
// header with the "Bearer " prefix stripped and surrounding whitespace
// trimmed. A missing token is not an error; the second return is false and
// callers proceed unauthenticated. Safe on a nil or background context.
func Extract(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	if saved, ok := ctx.Value(savedTokenKey).(string); ok && saved != "" {
		return saved, true
	}

	header, ok := ctx.Value(authHeaderKey).(string)
	if !ok || header == "" {
		return "", false
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	t := strings.TrimSpace(header[len(bearerPrefix):])
	if t == "" {
		return "", false
	}
	return t, true
}

// ParseBearer extracts the token from a raw Authorization header value.
// It applies the same prefix and trimming rules as Extract.
func ParseBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	t := strings.TrimSpace(header[len(bearerPrefix):])
	if t == "" {
		return "", false
	}
	return t, true
}
