package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"chirp/auth"
	"chirp/models"
	"chirp/repositories"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware resolves the bearer token on protected routes into the
// caller's user row. Verification failures are terminal for the request.
type AuthMiddleware struct {
	issuer   *auth.Issuer
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(issuer *auth.Issuer, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer, userRepo: userRepo}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthenticated(w)
			return
		}

		claims, err := m.issuer.ValidateToken(token)
		if err != nil {
			unauthenticated(w)
			return
		}

		// A valid token for a user that no longer resolves is treated the
		// same as a bad token.
		user, err := m.userRepo.FindByUsername(claims.Username)
		if err != nil {
			logrus.WithField("username", claims.Username).Warn("Token subject not found")
			unauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthenticated(w http.ResponseWriter) {
	http.Error(w, `{"status": 401, "error_msg": "Invalid Access Token"}`, http.StatusUnauthorized)
}

// IdentityFromContext returns the authenticated user set by Authenticate.
func IdentityFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(identityKey).(*models.User)
	return user, ok
}
