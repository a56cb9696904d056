package middleware

import (
	"net/http"

	"github.com/heartmarshall/orbis-catalog/pkg/ctxutil"
)

// ActorHeader carries the id of the user performing a mutation.
const ActorHeader = "X-User-Id"

// Actor stores the X-User-Id header in the request context. Requests without
// it are attributed to the configured default actor downstream.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := r.Header.Get(ActorHeader); actor != "" {
			r = r.WithContext(ctxutil.WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}
