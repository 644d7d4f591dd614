package middleware

import (
	"net"
	"net/http"
	"strings"
)

// AdminHost sends requests for the admin. subdomain to admin and everything else to next
func AdminHost(admin http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsAdminHost(r.Host) {
				admin.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdminHost reports whether host, with or without a port, is on the admin subdomain
func IsAdminHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.HasPrefix(strings.ToLower(host), "admin.")
}
