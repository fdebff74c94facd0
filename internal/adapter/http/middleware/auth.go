package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/auth"
	"github.com/Aditya-Sharma03/spendwise/internal/infrastructure/logger"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"

	// UserIDHeader names the caller when authentication is disabled.
	UserIDHeader = "X-User-ID"

	// DefaultLocalUser owns requests that carry no identity in local mode.
	DefaultLocalUser = "local"
)

// AuthMiddleware creates an authentication middleware
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, domain.ErrExpiredToken) {
					msg = "token has expired"
				}
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), claims.User())))
		})
	}
}

// LocalIdentity trusts the X-User-ID header and falls back to defaultUser.
// It stands in for AuthMiddleware when authentication is disabled.
func LocalIdentity(defaultUser string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if id == "" {
				id = defaultUser
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), &domain.User{ID: id})))
		})
	}
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}

func withUser(ctx context.Context, user *domain.User) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, user)
	return logger.WithFields(ctx, logger.FromContext(ctx, zerolog.Nop()), "", user.ID)
}
