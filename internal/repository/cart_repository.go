package repository

import (
	"context"
	"errors"
	"fmt"

	"shopping-cart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the SQLSTATE raised when the unique index on
// (cart_header_id, product_id) rejects a duplicate insert.
const uniqueViolation = "23505"

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetHeaderByUserID retrieves a user's cart header.
func (r *cartRepository) GetHeaderByUserID(ctx context.Context, userID string) (*model.CartHeader, error) {
	query := `
		SELECT id, user_id, coupon_code
		FROM cart_headers
		WHERE user_id = $1
	`

	var header model.CartHeader
	err := r.pool.QueryRow(ctx, query, userID).Scan(&header.ID, &header.UserID, &header.CouponCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", userID).Msg("cart header not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart header")
		return nil, fmt.Errorf("failed to query cart header: %w", err)
	}

	return &header, nil
}

// CreateHeader inserts a new cart header, mapping a unique-index violation
// on user_id to model.ErrDuplicateCart so the service can re-read the
// header a concurrent request created.
func (r *cartRepository) CreateHeader(ctx context.Context, header *model.CartHeader) error {
	query := `
		INSERT INTO cart_headers (id, user_id, coupon_code)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, header.ID, header.UserID, header.CouponCode)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().
				Str("user_id", header.UserID).
				Msg("duplicate cart header insert rejected by unique index")
			return model.ErrDuplicateCart
		}

		r.logger.Error().
			Err(err).
			Str("user_id", header.UserID).
			Msg("failed to create cart header")
		return fmt.Errorf("failed to create cart header: %w", err)
	}

	r.logger.Debug().
		Str("cart_header_id", header.ID.String()).
		Str("user_id", header.UserID).
		Msg("cart header created")

	return nil
}

// UpdateCouponCode sets or clears the coupon code on a header.
func (r *cartRepository) UpdateCouponCode(ctx context.Context, headerID uuid.UUID, couponCode *string) error {
	query := `
		UPDATE cart_headers
		SET coupon_code = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, headerID, couponCode)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_header_id", headerID.String()).
			Msg("failed to update coupon code")
		return fmt.Errorf("failed to update coupon code: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartNotFound
	}

	return nil
}

// DeleteHeader removes a header; ON DELETE CASCADE removes its details.
func (r *cartRepository) DeleteHeader(ctx context.Context, headerID uuid.UUID) error {
	query := `DELETE FROM cart_headers WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, headerID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_header_id", headerID.String()).
			Msg("failed to delete cart header")
		return fmt.Errorf("failed to delete cart header: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCartNotFound
	}

	r.logger.Debug().
		Str("cart_header_id", headerID.String()).
		Msg("cart header deleted")

	return nil
}

// GetDetails retrieves all line items of a cart.
func (r *cartRepository) GetDetails(ctx context.Context, headerID uuid.UUID) ([]model.CartDetail, error) {
	query := `
		SELECT id, cart_header_id, product_id, count
		FROM cart_details
		WHERE cart_header_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, query, headerID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_header_id", headerID.String()).
			Msg("failed to query cart details")
		return nil, fmt.Errorf("failed to query cart details: %w", err)
	}
	defer rows.Close()

	var details []model.CartDetail
	for rows.Next() {
		var d model.CartDetail
		err := rows.Scan(&d.ID, &d.CartHeaderID, &d.ProductID, &d.Count)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart detail row")
			return nil, fmt.Errorf("failed to scan cart detail: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart detail rows")
		return nil, fmt.Errorf("error iterating cart details: %w", err)
	}

	return details, nil
}

// GetDetail retrieves the line item for one product in a cart.
func (r *cartRepository) GetDetail(ctx context.Context, headerID uuid.UUID, productID string) (*model.CartDetail, error) {
	query := `
		SELECT id, cart_header_id, product_id, count
		FROM cart_details
		WHERE cart_header_id = $1 AND product_id = $2
	`

	var d model.CartDetail
	err := r.pool.QueryRow(ctx, query, headerID, productID).Scan(&d.ID, &d.CartHeaderID, &d.ProductID, &d.Count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("cart_header_id", headerID.String()).
			Str("product_id", productID).
			Msg("failed to query cart detail")
		return nil, fmt.Errorf("failed to query cart detail: %w", err)
	}

	return &d, nil
}

// InsertDetail inserts a new line item, mapping a unique-index violation to
// model.ErrDuplicateItem so the service can retry it as an increment.
func (r *cartRepository) InsertDetail(ctx context.Context, detail *model.CartDetail) error {
	query := `
		INSERT INTO cart_details (id, cart_header_id, product_id, count)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, detail.ID, detail.CartHeaderID, detail.ProductID, detail.Count)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().
				Str("cart_header_id", detail.CartHeaderID.String()).
				Str("product_id", detail.ProductID).
				Msg("duplicate cart detail insert rejected by unique index")
			return model.ErrDuplicateItem
		}

		r.logger.Error().
			Err(err).
			Str("cart_header_id", detail.CartHeaderID.String()).
			Str("product_id", detail.ProductID).
			Msg("failed to insert cart detail")
		return fmt.Errorf("failed to insert cart detail: %w", err)
	}

	r.logger.Debug().
		Str("cart_detail_id", detail.ID.String()).
		Str("product_id", detail.ProductID).
		Int("count", detail.Count).
		Msg("cart detail inserted")

	return nil
}

// IncrementDetailCount adds to an existing line's count.
func (r *cartRepository) IncrementDetailCount(ctx context.Context, detailID uuid.UUID, by int) (bool, error) {
	query := `
		UPDATE cart_details
		SET count = count + $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, detailID, by)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_detail_id", detailID.String()).
			Int("by", by).
			Msg("failed to increment cart detail count")
		return false, fmt.Errorf("failed to increment cart detail count: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteDetail removes the line item for one product.
func (r *cartRepository) DeleteDetail(ctx context.Context, headerID uuid.UUID, productID string) (bool, error) {
	query := `
		DELETE FROM cart_details
		WHERE cart_header_id = $1 AND product_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, headerID, productID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_header_id", headerID.String()).
			Str("product_id", productID).
			Msg("failed to delete cart detail")
		return false, fmt.Errorf("failed to delete cart detail: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
