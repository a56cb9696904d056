package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// MaxBody caps request bodies at n bytes. Non-positive n disables the cap.
func MaxBody(n int64) Middleware {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

// Gzip compresses responses for clients that accept it. Disabled returns the
// handler unchanged.
func Gzip(enabled bool) Middleware {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return gzhttp.GzipHandler(next)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code}) //nolint:errcheck
}
