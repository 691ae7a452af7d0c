// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"bayou-blog/internal/auth"
	"bayou-blog/internal/database"
	"bayou-blog/internal/messages"
	"bayou-blog/internal/models"
)

// Define a custom context key type to avoid collisions
type contextKey string

const userKey contextKey = "current_user"

// WithUser saves the authenticated user in the request context
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the authenticated user from the context
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// Authenticate validates the bearer token and loads the current user into
// the request context. Every failure answers 403 with a fixed message;
// clients cannot distinguish a malformed token from an expired one.
func Authenticate(tokens *auth.TokenService, store database.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				forbid(w, messages.NotAuthenticated)
				return
			}
			if !strings.HasPrefix(header, "Bearer ") {
				forbid(w, messages.InvalidAuthScheme)
				return
			}

			email, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				forbid(w, messages.TokenDecodeError)
				return
			}

			user, err := store.GetUserByEmail(r.Context(), email)
			if err != nil {
				forbid(w, messages.CredentialsIncorrect)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func forbid(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
