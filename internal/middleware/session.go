package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"travel-booking-platform/internal/session"
)

// Sessions loads the visitor session, makes sure it carries a CSRF token and consumes
// the pending flash. All three are put in the request context.
func Sessions(store sessions.Store, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := session.Get(store, r)
			if err != nil {
				// undecodable cookie: continue with the fresh session gorilla returns
				logger.Debug("discarding invalid session cookie",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err))
			}

			token, created := session.CSRFToken(s)
			flash := session.ConsumeFlash(s)
			if created || flash != nil {
				if err := s.Save(r, w); err != nil {
					logger.Error("failed to save session", zap.Error(err))
				}
			}

			ctx := context.WithValue(r.Context(), sessionKey, s)
			ctx = context.WithValue(ctx, csrfTokenKey, token)
			if flash != nil {
				ctx = context.WithValue(ctx, flashKey, flash)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SecureHeaders adds security headers to responses
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// ShowTests enables page tests for ?test=1 outside production
func ShowTests(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			show := !production && r.URL.Query().Get("test") == "1"
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), showTestsKey, show)))
		})
	}
}
