package service

import (
	"context"
	"errors"
	"fmt"

	"shopping-cart/internal/client"
	"shopping-cart/internal/model"
	"shopping-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxUpsertAttempts bounds the read-modify-write retry when a concurrent
// add for the same (header, product) pair loses the race to the unique
// index.
const maxUpsertAttempts = 3

const maxCouponCodeLength = 50

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	products client.ProductClient
	coupons  client.CouponClient
	logger   zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	products client.ProductClient,
	coupons client.CouponClient,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		products: products,
		coupons:  coupons,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// GetCart retrieves a user's hydrated cart.
func (s *cartService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	if userID == "" {
		return nil, model.ErrMissingUserID
	}

	header, err := s.cartRepo.GetHeaderByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get cart header")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if header == nil {
		s.logger.Debug().Str("user_id", userID).Msg("cart not found")
		return nil, model.ErrCartNotFound
	}

	return s.hydrate(ctx, header)
}

// AddItem adds count units of a product to the user's cart.
func (s *cartService) AddItem(ctx context.Context, userID, productID string, count int) (*model.Cart, error) {
	if userID == "" {
		return nil, model.ErrMissingUserID
	}
	if productID == "" {
		return nil, model.ErrMissingProductID
	}
	if count <= 0 {
		s.logger.Warn().
			Str("user_id", userID).
			Str("product_id", productID).
			Int("count", count).
			Msg("invalid count")
		return nil, model.ErrInvalidQuantity
	}

	// The product ID is not checked against the Product peer: cart writes
	// stay available when the peer is not, and the ID resolves at read time.
	header, err := s.cartRepo.GetHeaderByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	if header == nil {
		// First successful add creates the header. Reads never do.
		header, err = s.createOrAdoptHeader(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.upsertDetail(ctx, header.ID, productID, count); err != nil {
		return nil, err
	}

	return s.hydrate(ctx, header)
}

// createOrAdoptHeader inserts a fresh header for the user. When a concurrent
// first add wins the race to the unique index on user_id, the winner's
// header is re-read and adopted instead.
func (s *cartService) createOrAdoptHeader(ctx context.Context, userID string) (*model.CartHeader, error) {
	header := &model.CartHeader{
		ID:     uuid.New(),
		UserID: userID,
	}

	err := s.cartRepo.CreateHeader(ctx, header)
	if err == nil {
		s.logger.Info().
			Str("user_id", userID).
			Str("cart_header_id", header.ID.String()).
			Msg("cart created on first add")
		return header, nil
	}
	if !errors.Is(err, model.ErrDuplicateCart) {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Msg("lost header create race, adopting existing cart")

	header, err = s.cartRepo.GetHeaderByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	if header == nil {
		return nil, fmt.Errorf("failed to add item: cart for user %q disappeared after create conflict", userID)
	}
	return header, nil
}

// upsertDetail accumulates count onto the (header, product) line, creating
// it when absent. A duplicate-insert conflict from a concurrent request is
// retried as an increment; an increment hitting a concurrently deleted row
// is retried as an insert. Attempts are bounded.
func (s *cartService) upsertDetail(ctx context.Context, headerID uuid.UUID, productID string, count int) error {
	for attempt := 1; attempt <= maxUpsertAttempts; attempt++ {
		detail, err := s.cartRepo.GetDetail(ctx, headerID, productID)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		if detail != nil {
			ok, err := s.cartRepo.IncrementDetailCount(ctx, detail.ID, count)
			if err != nil {
				return fmt.Errorf("failed to add item: %w", err)
			}
			if ok {
				return nil
			}
			// Row deleted under us; retry as insert.
			continue
		}

		err = s.cartRepo.InsertDetail(ctx, &model.CartDetail{
			ID:           uuid.New(),
			CartHeaderID: headerID,
			ProductID:    productID,
			Count:        count,
		})
		if errors.Is(err, model.ErrDuplicateItem) {
			s.logger.Debug().
				Str("cart_header_id", headerID.String()).
				Str("product_id", productID).
				Int("attempt", attempt).
				Msg("lost insert race, retrying as increment")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}
		return nil
	}

	s.logger.Error().
		Str("cart_header_id", headerID.String()).
		Str("product_id", productID).
		Msg("add item exhausted upsert attempts")
	return fmt.Errorf("failed to add item after %d attempts", maxUpsertAttempts)
}

// RemoveItem removes a product's line entirely.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	if userID == "" {
		return nil, model.ErrMissingUserID
	}
	if productID == "" {
		return nil, model.ErrMissingProductID
	}

	header, err := s.cartRepo.GetHeaderByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}
	if header == nil {
		return nil, model.ErrCartNotFound
	}

	removed, err := s.cartRepo.DeleteDetail(ctx, header.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}
	if !removed {
		s.logger.Debug().
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("remove item: no such line")
		return nil, model.ErrItemNotFound
	}

	return s.hydrate(ctx, header)
}

// ApplyCoupon sets the cart's coupon code; an empty code clears it.
func (s *cartService) ApplyCoupon(ctx context.Context, userID, couponCode string) (*model.Cart, error) {
	if userID == "" {
		return nil, model.ErrMissingUserID
	}
	if len(couponCode) > maxCouponCodeLength {
		return nil, model.ErrInvalidCoupon
	}

	header, err := s.cartRepo.GetHeaderByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}
	if header == nil {
		return nil, model.ErrCartNotFound
	}

	var code *string
	if couponCode != "" {
		code = &couponCode
	}

	if err := s.cartRepo.UpdateCouponCode(ctx, header.ID, code); err != nil {
		if errors.Is(err, model.ErrCartNotFound) {
			return nil, model.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}

	header.CouponCode = code
	s.logger.Info().
		Str("user_id", userID).
		Str("coupon_code", couponCode).
		Msg("coupon updated")

	return s.hydrate(ctx, header)
}

// RemoveCoupon clears the cart's coupon code.
func (s *cartService) RemoveCoupon(ctx context.Context, userID string) (*model.Cart, error) {
	return s.ApplyCoupon(ctx, userID, "")
}

// ClearCart deletes the cart header; the cascade removes its lines.
func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return model.ErrMissingUserID
	}

	header, err := s.cartRepo.GetHeaderByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if header == nil {
		return model.ErrCartNotFound
	}

	if err := s.cartRepo.DeleteHeader(ctx, header.ID); err != nil {
		if errors.Is(err, model.ErrCartNotFound) {
			return model.ErrCartNotFound
		}
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("cart cleared")
	return nil
}

// hydrate builds the read model: structural rows from the store, product
// details and discount live from the peers. Enrichment failures degrade the
// read instead of failing it; only store errors are fatal here.
func (s *cartService) hydrate(ctx context.Context, header *model.CartHeader) (*model.Cart, error) {
	details, err := s.cartRepo.GetDetails(ctx, header.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart details: %w", err)
	}

	cart := &model.Cart{
		ID:             header.ID,
		UserID:         header.UserID,
		CouponCode:     header.CouponCode,
		Items:          make([]model.CartLine, 0, len(details)),
		DiscountStatus: model.EnrichmentAbsent,
	}

	var sum float64
	for _, d := range details {
		line := model.CartLine{CartDetail: d}

		product, err := s.products.GetByID(ctx, d.ProductID)
		switch {
		case err != nil:
			// Degraded read: line kept, price counts as zero.
			line.ProductStatus = model.EnrichmentUnavailable
			s.logger.Warn().
				Err(err).
				Str("product_id", d.ProductID).
				Msg("product enrichment failed, returning degraded line")
		case product == nil:
			line.ProductStatus = model.EnrichmentAbsent
			s.logger.Warn().
				Str("product_id", d.ProductID).
				Msg("product unknown to peer")
		default:
			line.Product = product
			line.ProductStatus = model.EnrichmentOK
			line.LineTotal = product.Price * float64(d.Count)
			sum += line.LineTotal
		}

		cart.Items = append(cart.Items, line)
	}

	cart.Discount = s.resolveDiscount(ctx, cart, sum)
	cart.Total = sum - cart.Discount

	return cart, nil
}

// resolveDiscount asks the Coupon peer for the header's code. No code means
// no discount by design; a peer failure means zero discount and a degraded
// read, never a failed one.
func (s *cartService) resolveDiscount(ctx context.Context, cart *model.Cart, sum float64) float64 {
	if cart.CouponCode == nil || *cart.CouponCode == "" {
		cart.DiscountStatus = model.EnrichmentAbsent
		return 0
	}

	coupon, err := s.coupons.GetByCode(ctx, *cart.CouponCode)
	if err != nil {
		cart.DiscountStatus = model.EnrichmentUnavailable
		s.logger.Warn().
			Err(err).
			Str("coupon_code", *cart.CouponCode).
			Msg("coupon enrichment failed, discount reported as zero")
		return 0
	}

	if coupon == nil {
		cart.DiscountStatus = model.EnrichmentAbsent
		s.logger.Debug().
			Str("coupon_code", *cart.CouponCode).
			Msg("coupon unknown to peer")
		return 0
	}

	cart.DiscountStatus = model.EnrichmentOK
	if sum < coupon.MinAmount {
		return 0
	}
	return coupon.DiscountAmount
}
