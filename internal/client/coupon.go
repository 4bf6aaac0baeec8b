package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"shopping-cart/internal/model"

	"github.com/rs/zerolog"
)

// couponClient implements CouponClient over HTTP.
type couponClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewCouponClient creates an HTTP client for the Coupon peer service.
func NewCouponClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) CouponClient {
	return &couponClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.With().Str("client", "coupon").Logger(),
	}
}

// GetByCode retrieves a coupon by its code from the Coupon peer.
func (c *couponClient) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	endpoint := fmt.Sprintf("%s/api/coupons/%s", c.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build coupon request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coupon peer call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug().Str("coupon_code", code).Msg("coupon not found on peer")
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Str("coupon_code", code).
			Int("status", resp.StatusCode).
			Msg("coupon peer returned unexpected status")
		return nil, fmt.Errorf("coupon peer returned status %d", resp.StatusCode)
	}

	var coupon model.Coupon
	if err := json.NewDecoder(resp.Body).Decode(&coupon); err != nil {
		return nil, fmt.Errorf("failed to decode coupon response: %w", err)
	}

	return &coupon, nil
}
