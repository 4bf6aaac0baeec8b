package client

import (
	"net/http"
	"time"

	"shopping-cart/internal/token"

	"github.com/rs/zerolog"
)

// Identifying headers attached to every outbound peer call so the receiving
// service can attribute traffic in its own diagnostics.
const (
	userAgent              = "shopping-cart-api/1.0"
	forwardedServiceName   = "shopping-cart"
	headerForwardedService = "X-Forwarded-Service"
)

// Relay is an http.RoundTripper that decorates every outbound peer call.
// It forwards the inbound request's bearer credential (when one is present
// in the outbound request's context), attaches the identifying headers, and
// records the outcome. Transport failures propagate unchanged; a missing
// credential never fails the call.
type Relay struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

// NewRelay creates a relay around the given base transport. A nil base
// falls back to http.DefaultTransport.
func NewRelay(base http.RoundTripper, logger zerolog.Logger) *Relay {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Relay{
		base:   base,
		logger: logger.With().Str("component", "relay").Logger(),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Relay) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTripper contract: never mutate the caller's request.
	out := req.Clone(req.Context())

	if tok, ok := token.Extract(req.Context()); ok {
		out.Header.Set("Authorization", "Bearer "+tok)
	} else {
		t.logger.Debug().
			Str("url", req.URL.String()).
			Msg("no inbound credential found, dispatching unauthenticated")
	}

	out.Header.Set("User-Agent", userAgent)
	out.Header.Set(headerForwardedService, forwardedServiceName)

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		t.logger.Error().
			Err(err).
			Str("url", req.URL.String()).
			Msg("peer call failed")
		return nil, err
	}

	t.logger.Debug().
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("peer call completed")

	return resp, nil
}

// NewHTTPClient builds the shared peer HTTP client: relay transport plus a
// fixed per-peer timeout. Retry policy, if any, belongs here and not in the
// relay; none is configured.
func NewHTTPClient(timeout time.Duration, logger zerolog.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewRelay(nil, logger),
	}
}
