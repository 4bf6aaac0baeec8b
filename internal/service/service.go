package service

import (
	"context"

	"shopping-cart/internal/model"
)

// CartService defines operations for cart management. Reads compose the
// cart on demand: persisted rows hold structure only, product details and
// discount are resolved live from the peer services.
type CartService interface {
	// GetCart retrieves a user's hydrated cart. A user with no cart gets
	// model.ErrCartNotFound; reads never create a cart.
	GetCart(ctx context.Context, userID string) (*model.Cart, error)

	// AddItem adds count units of a product to the user's cart, creating the
	// cart on first add. Repeated adds for the same product accumulate into
	// a single line.
	AddItem(ctx context.Context, userID, productID string, count int) (*model.Cart, error)

	// RemoveItem removes a product's line entirely. The header survives even
	// when its last line goes.
	RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error)

	// ApplyCoupon sets the cart's coupon code; an empty code clears it. The
	// code is not checked against the Coupon peer here.
	ApplyCoupon(ctx context.Context, userID, couponCode string) (*model.Cart, error)

	// RemoveCoupon clears the cart's coupon code.
	RemoveCoupon(ctx context.Context, userID string) (*model.Cart, error)

	// ClearCart deletes the cart header; the cascade removes its lines.
	ClearCart(ctx context.Context, userID string) error
}
