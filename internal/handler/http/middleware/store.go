package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/response"
)

type contextKey string

const storeIDKey contextKey = "store_id"

// StoreContext resolves the caller's store from the token claims and
// threads it through the request context. Every data access below this
// point takes an explicit storeID; there is no ambient "current store".
func StoreContext(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		storeID, ok := claims["store_id"].(string)
		if !ok || storeID == "" {
			response.Unauthorized(w, "Token has no store binding")
			return
		}

		ctx := context.WithValue(r.Context(), storeIDKey, storeID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}

// StoreIDFromContext returns the store id set by StoreContext.
func StoreIDFromContext(ctx context.Context) string {
	storeID, _ := ctx.Value(storeIDKey).(string)
	return storeID
}
