package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"travel-booking-platform/internal/services"
	"travel-booking-platform/internal/session"
)

// CartValidation loads the session cart, recomputes its warnings and errors and puts it in
// the request context. Must run after Sessions.
func CartValidation(carts services.CartServiceInterface, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r.Context())
			if s == nil {
				next.ServeHTTP(w, r)
				return
			}

			cart, err := session.GetCart(s)
			if err != nil {
				logger.Warn("discarding unreadable cart", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
				cart = nil
			}
			if cart != nil {
				if err := carts.Validate(r.Context(), cart); err != nil {
					logger.Error("failed to validate cart", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
				}
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), cartKey, cart)))
		})
	}
}
