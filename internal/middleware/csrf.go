package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// formMemory bounds the multipart data kept in memory while reading the token
const formMemory = 10 << 20

// CSRFProtection rejects state-changing requests whose token does not match the session's.
// The token is read from the X-CSRF-Token header or the csrf_token form field.
// Must run after Sessions.
func CSRFProtection(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			sessionToken := GetCSRFToken(r.Context())

			requestToken := r.Header.Get("X-CSRF-Token")
			if requestToken == "" {
				if err := parseBody(r); err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						logger.Warn("request body too large",
							zap.String("request_id", GetRequestID(r.Context())),
							zap.String("path", r.URL.Path),
							zap.Int64("limit", tooLarge.Limit))
						http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
						return
					}
				}
				requestToken = r.FormValue("csrf_token")
			}

			if sessionToken == "" || subtle.ConstantTimeCompare([]byte(requestToken), []byte(sessionToken)) != 1 {
				logger.Warn("csrf token mismatch",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path))

				if IsXHR(r) || AcceptsJSON(r) {
					writeJSONError(w, http.StatusForbidden, "Security token mismatch. Please refresh the page and try again.")
					return
				}
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseBody(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(formMemory)
	}
	return r.ParseForm()
}
