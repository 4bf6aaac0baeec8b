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

// productClient implements ProductClient over HTTP.
type productClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewProductClient creates an HTTP client for the Product peer service.
func NewProductClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) ProductClient {
	return &productClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.With().Str("client", "product").Logger(),
	}
}

// GetByID retrieves a product by its ID from the Product peer.
func (c *productClient) GetByID(ctx context.Context, id string) (*model.Product, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product peer call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug().Str("product_id", id).Msg("product not found on peer")
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Str("product_id", id).
			Int("status", resp.StatusCode).
			Msg("product peer returned unexpected status")
		return nil, fmt.Errorf("product peer returned status %d", resp.StatusCode)
	}

	var product model.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}

	return &product, nil
}
