package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingUserID    = "MISSING_USER_ID"
	ErrCodeMissingProductID = "MISSING_PRODUCT_ID"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidCoupon    = "INVALID_COUPON_CODE"
	ErrCodeCartNotFound     = "CART_NOT_FOUND"
	ErrCodeItemNotFound     = "ITEM_NOT_FOUND"
	ErrCodeDuplicateItem    = "DUPLICATE_ITEM"
	ErrCodeDuplicateCart    = "DUPLICATE_CART"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingUserID    = NewDomainError(ErrCodeMissingUserID, "User ID is required")
	ErrMissingProductID = NewDomainError(ErrCodeMissingProductID, "Product ID is required")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Count must be greater than zero")
	ErrInvalidCoupon    = NewDomainError(ErrCodeInvalidCoupon, "Coupon code must be at most 50 characters")
	ErrCartNotFound     = NewDomainError(ErrCodeCartNotFound, "Cart not found for user")
	ErrItemNotFound     = NewDomainError(ErrCodeItemNotFound, "Product not in cart")

	// ErrDuplicateItem signals a unique-constraint violation on
	// (cart_header_id, product_id); the service retries it as an increment.
	ErrDuplicateItem = NewDomainError(ErrCodeDuplicateItem, "Product already present in cart")

	// ErrDuplicateCart signals a unique-index violation on
	// cart_headers.user_id; a concurrent first add already created the
	// header and the caller re-reads it.
	ErrDuplicateCart = NewDomainError(ErrCodeDuplicateCart, "Cart already exists for user")
)
