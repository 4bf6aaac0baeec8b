package model

import (
	"github.com/google/uuid"
)

// CartHeader is the per-owner cart record. Discount and CartTotal are
// derived at read time and never persisted.
type CartHeader struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	CouponCode *string   `json:"couponCode,omitempty" db:"coupon_code"`
}

// CartDetail is one product-and-quantity row belonging to a CartHeader.
// The pair (CartHeaderID, ProductID) is unique; Count is always positive.
type CartDetail struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CartHeaderID uuid.UUID `json:"-" db:"cart_header_id"`
	ProductID    string    `json:"productId" db:"product_id"`
	Count        int       `json:"count" db:"count"`
}

// EnrichmentStatus records how a derived field was resolved: from the peer,
// absent by design (e.g. no coupon code set), or the peer was unavailable
// and the read degraded.
type EnrichmentStatus string

const (
	EnrichmentOK          EnrichmentStatus = "ok"
	EnrichmentAbsent      EnrichmentStatus = "absent"
	EnrichmentUnavailable EnrichmentStatus = "unavailable"
)

// CartLine is a CartDetail hydrated with product details from the Product
// peer. LineTotal is zero when the product could not be resolved.
type CartLine struct {
	CartDetail
	Product       *Product         `json:"product,omitempty"`
	ProductStatus EnrichmentStatus `json:"productStatus"`
	LineTotal     float64          `json:"lineTotal"`
}

// Cart is the fully hydrated read model returned by the cart service.
type Cart struct {
	ID             uuid.UUID        `json:"id"`
	UserID         string           `json:"userId"`
	CouponCode     *string          `json:"couponCode,omitempty"`
	Items          []CartLine       `json:"items"`
	Discount       float64          `json:"discount"`
	DiscountStatus EnrichmentStatus `json:"discountStatus"`
	Total          float64          `json:"total"`
}

// AddItemRequest is the request payload for adding a product to a cart.
// Count is a pointer so an omitted field (defaults to 1) can be told apart
// from an explicit zero, which is invalid.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Count     *int   `json:"count,omitempty"`
}

// ApplyCouponRequest is the request payload for applying a coupon code.
type ApplyCouponRequest struct {
	CouponCode string `json:"couponCode"`
}
