// Package auth provides HTTP middleware for bearer token authentication on
// the host-facing surface.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// NewAuthMiddleware returns an HTTP middleware that enforces bearer token
// authentication. If the configured token is empty, authentication is disabled
// and all requests pass through to the next handler unconditionally.
//
// When enabled, the incoming request must carry an Authorization header of
// the exact form "Bearer <token>": case-sensitive prefix, a single space, and
// a non-empty token that matches the configured one. Token comparison is
// constant-time. Any deviation results in a 401 Unauthorized response and the
// next handler is never called.
func NewAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Auth disabled when no token is configured.
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || provided == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
