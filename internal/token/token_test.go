package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_SavedTokenWins(t *testing.T) {
	ctx := WithToken(context.Background(), "saved-token")
	ctx = WithAuthorizationHeader(ctx, "Bearer header-token")

	tok, ok := Extract(ctx)
	assert.True(t, ok)
	assert.Equal(t, "saved-token", tok)
}

func TestExtract_HeaderFallback(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
		found    bool
	}{
		{
			name:     "plain bearer header",
			header:   "Bearer abc123",
			expected: "abc123",
			found:    true,
		},
		{
			name:     "surrounding whitespace trimmed",
			header:   "Bearer   abc123  ",
			expected: "abc123",
			found:    true,
		},
		{
			name:   "prefix is case-sensitive",
			header: "bearer abc123",
			found:  false,
		},
		{
			name:   "wrong scheme",
			header: "Basic dXNlcjpwYXNz",
			found:  false,
		},
		{
			name:   "prefix without token",
			header: "Bearer ",
			found:  false,
		},
		{
			name:   "empty header",
			header: "",
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithAuthorizationHeader(context.Background(), tt.header)

			tok, ok := Extract(ctx)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, tok)
		})
	}
}

func TestExtract_NoToken(t *testing.T) {
	tok, ok := Extract(context.Background())
	assert.False(t, ok)
	assert.Empty(t, tok)
}

func TestExtract_NilContext(t *testing.T) {
	// Background work has no inbound request context at all.
	tok, ok := Extract(nil)
	assert.False(t, ok)
	assert.Empty(t, tok)
}

func TestExtract_EmptySavedTokenFallsThrough(t *testing.T) {
	ctx := WithToken(context.Background(), "")
	ctx = WithAuthorizationHeader(ctx, "Bearer abc123")

	tok, ok := Extract(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)
}

func TestParseBearer(t *testing.T) {
	tok, ok := ParseBearer("Bearer abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", tok)

	_, ok = ParseBearer("abc123")
	assert.False(t, ok)
}
