package middleware

import (
	"net/http"
)

// APIKey protects mutating endpoints with a shared key carried in the
// X-API-Key header.
func APIKey(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-Key") != expected {
				http.Error(w, "Forbidden: Invalid API Key", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
