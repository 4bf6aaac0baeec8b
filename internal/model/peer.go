package model

// Product is the shape of a catalogue product as consumed from the Product
// peer service. The cart references products by ID only and resolves them
// live on every read.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Coupon is the discount record resolved from the Coupon peer service.
type Coupon struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	MinAmount      float64 `json:"minAmount"`
}
