package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

type claimsKey struct{}

// RoleLookup resolves an identity to its admin status. Implementations must
// never error: an unknown identity is simply not an admin.
type RoleLookup interface {
	IsAdmin(ctx context.Context, email string) bool
}

// Authenticate is the first gate stage. It requires a bearer token in the
// Authorization header, validates it, and stores the decoded claims in the
// request context. A missing header and an invalid or expired token both
// terminate the request with 401 before the handler runs.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger.WithCtx(r.Context()).Debug("token rejected", "error", err)
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly is the second gate stage, composed after Authenticate on
// admin-only routes. It resolves the caller's stored role and rejects with
// 403 unless that role is admin.
func AdminOnly(roles RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromCtx(r.Context())
			if !ok || !roles.IsAdmin(r.Context(), email) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromCtx returns the decoded token claims stored by Authenticate.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// EmailFromCtx returns the authenticated caller's email.
func EmailFromCtx(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromCtx(ctx)
	if !ok {
		return "", false
	}
	return claims.Email, true
}

// WithClaims injects claims into ctx. Exposed for handler tests.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
