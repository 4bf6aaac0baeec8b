package client

import (
	"context"

	"shopping-cart/internal/model"
)

// ProductClient fetches product details from the Product peer service.
type ProductClient interface {
	// GetByID retrieves a product by its ID. Returns (nil, nil) when the
	// peer does not know the product.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CouponClient resolves discounts from the Coupon peer service.
type CouponClient interface {
	// GetByCode retrieves a coupon by its code. Returns (nil, nil) when the
	// peer does not know the code.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
}
