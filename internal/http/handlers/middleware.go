package handlers

import (
	"context"
	"net/http"

	"github.com/minipos/minipos/internal/auth"
	"github.com/minipos/minipos/internal/pos"
)

type contextKey string

const accountEmailKey = contextKey("account_email")

// AuthMiddleware validates the bearer token and puts the account email into
// the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		email, ok := claims["sub"].(string)
		if !ok || email == "" {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), accountEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountEmail returns the authenticated account email for the request.
func AccountEmail(r *http.Request) string {
	if val, ok := r.Context().Value(accountEmailKey).(string); ok {
		return val
	}
	return ""
}

// session resolves the authenticated account's POS session.
func session(r *http.Request) (*pos.Session, error) {
	return sessions.Get(r.Context(), AccountEmail(r))
}
