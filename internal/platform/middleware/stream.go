package middleware

import (
	"net/http"
	"strings"
	"time"
)

// Streaming lifts the server write timeout for requests whose path ends in one of
// suffixes, so long-lived event streams are not cut off.
func Streaming(suffixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, s := range suffixes {
				if strings.HasSuffix(r.URL.Path, s) {
					_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
					break
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
