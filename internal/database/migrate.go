package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the cart's on-disk contract. The varchar bounds, the unique
// indexes on user_id and on (cart_header_id, product_id), and the cascade
// from header to details must be preserved for compatibility with existing
// data. One header per owner is enforced here so concurrent first adds
// cannot each create one.
const Schema = `
	CREATE TABLE IF NOT EXISTS cart_headers (
		id UUID PRIMARY KEY,
		user_id VARCHAR(450) NOT NULL,
		coupon_code VARCHAR(50)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS ix_cart_headers_user_id
		ON cart_headers (user_id);

	CREATE INDEX IF NOT EXISTS ix_cart_headers_coupon_code
		ON cart_headers (coupon_code);

	CREATE TABLE IF NOT EXISTS cart_details (
		id UUID PRIMARY KEY,
		cart_header_id UUID NOT NULL REFERENCES cart_headers(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 1 CHECK (count > 0)
	);

	CREATE INDEX IF NOT EXISTS ix_cart_details_cart_header_id
		ON cart_details (cart_header_id);

	CREATE INDEX IF NOT EXISTS ix_cart_details_product_id
		ON cart_details (product_id);

	CREATE UNIQUE INDEX IF NOT EXISTS ix_cart_details_cart_header_id_product_id
		ON cart_details (cart_header_id, product_id);
`

// migrateRetryDelay is the pause between startup migration attempts while
// the database container comes up.
const migrateRetryDelay = 5 * time.Second

// Migrate applies the cart schema. The statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply cart schema: %w", err)
	}

	logger.Info().Msg("cart schema applied")
	return nil
}

// MigrateWithRetry applies the cart schema with a bounded retry, covering
// the window where the service starts before the database accepts
// connections. The last error is returned when all attempts fail.
func MigrateWithRetry(ctx context.Context, pool *pgxpool.Pool, attempts int, logger zerolog.Logger) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		logger.Info().
			Int("attempt", i).
			Int("max_attempts", attempts).
			Msg("applying cart schema")

		if err = pool.Ping(ctx); err == nil {
			if err = Migrate(ctx, pool, logger); err == nil {
				return nil
			}
		}

		logger.Warn().
			Err(err).
			Int("attempt", i).
			Msg("schema migration attempt failed")

		if i == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(migrateRetryDelay):
		}
	}

	return fmt.Errorf("schema migration failed after %d attempts: %w", attempts, err)
}
