package repository

import (
	"context"

	"shopping-cart/internal/model"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart data access operations.
// Not-found reads return (nil, nil). The storage layer is the last line of
// defence for the (cart_header_id, product_id) uniqueness invariant and the
// header-to-details cascade; the service does not re-validate them.
type CartRepository interface {
	// GetHeaderByUserID retrieves a user's cart header.
	GetHeaderByUserID(ctx context.Context, userID string) (*model.CartHeader, error)

	// CreateHeader inserts a new cart header.
	CreateHeader(ctx context.Context, header *model.CartHeader) error

	// UpdateCouponCode sets or clears (nil) the coupon code on a header.
	UpdateCouponCode(ctx context.Context, headerID uuid.UUID, couponCode *string) error

	// DeleteHeader removes a header; the cascade removes its details.
	DeleteHeader(ctx context.Context, headerID uuid.UUID) error

	// GetDetails retrieves all line items of a cart.
	GetDetails(ctx context.Context, headerID uuid.UUID) ([]model.CartDetail, error)

	// GetDetail retrieves the line item for one product in a cart.
	GetDetail(ctx context.Context, headerID uuid.UUID, productID string) (*model.CartDetail, error)

	// InsertDetail inserts a new line item. A concurrent insert for the same
	// (header, product) pair surfaces as model.ErrDuplicateItem.
	InsertDetail(ctx context.Context, detail *model.CartDetail) error

	// IncrementDetailCount adds to an existing line's count. Returns false
	// when the row no longer exists.
	IncrementDetailCount(ctx context.Context, detailID uuid.UUID, by int) (bool, error)

	// DeleteDetail removes the line item for one product. Returns false when
	// no row matched.
	DeleteDetail(ctx context.Context, headerID uuid.UUID, productID string) (bool, error)
}
