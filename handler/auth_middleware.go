package handler

import (
	"context"
	"net/http"
	"predictions-api/common"
	"predictions-api/model"
	"predictions-api/repository"
	"predictions-api/service"
	"strings"
)

type contextKey string

const UserEmailKey contextKey = "userEmail"

// Paths that never require an established identity.
var publicPaths = map[string]struct{}{
	"/auth/register":        {},
	"/auth/login":           {},
	"/auth/send-verify-otp": {},
	"/auth/verify-otp":      {},
	"/auth/refresh":         {},
	"/health":               {},
}

func isPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	return strings.HasPrefix(path, "/swagger/")
}

// AuthMiddleware establishes the caller's identity for each request. It never
// rejects a request itself: a missing, invalid or expired token just forwards
// the request unauthenticated, and RequireAuth rejects downstream.
type AuthMiddleware struct {
	tokens   *service.TokenService
	userRepo repository.IUserRepository
}

func NewAuthMiddleware(tokens *service.TokenService, userRepo repository.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := extractToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokens.Parse(tokenString)
		if err != nil || claims.Class != model.TokenClassAccess || m.tokens.IsExpired(claims) {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.userRepo.GetUserByEmail(claims.Subject)
		if err != nil || user.Email != claims.Subject {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailKey, user.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken prefers a Bearer Authorization header over the access cookie.
// A non-Bearer header (a proxy's Basic auth, for instance) is ignored and the
// cookie is still consulted.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) == 2 && strings.EqualFold(headerParts[0], "bearer") {
			return headerParts[1]
		}
	}

	if cookie, err := r.Cookie(service.AccessCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth rejects requests that reach a protected route without an
// identity established by Authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentEmail(r.Context()) == "" {
			common.NewAppError(http.StatusUnauthorized, "Authentication required", nil).Send(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentEmail returns the authenticated caller's email, or "" when the
// request is unauthenticated.
func CurrentEmail(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}
