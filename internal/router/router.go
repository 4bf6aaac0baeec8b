package router

import (
	"net/http"

	"shopping-cart/internal/handler"
	"shopping-cart/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// The health endpoint is public; every cart route requires a bearer
// credential, which BearerAuth captures for forwarding to peers.
func New(cartHandler *handler.CartHandler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.BearerAuth(logger))

		r.Get("/{userId}", cartHandler.GetCart)
		r.Delete("/{userId}", cartHandler.ClearCart)
		r.Post("/{userId}/items", cartHandler.AddItem)
		r.Delete("/{userId}/items/{productId}", cartHandler.RemoveItem)
		r.Post("/{userId}/coupon", cartHandler.ApplyCoupon)
		r.Delete("/{userId}/coupon", cartHandler.RemoveCoupon)
	})

	return r
}
