package services

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/logger"
)

// UserFinder is the slice of the user repository the auth service needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService issues session tokens and resolves stored roles. It satisfies
// middleware.RoleLookup.
type AuthService struct {
	users UserFinder
}

func NewAuthService(users UserFinder) *AuthService {
	return &AuthService{users: users}
}

// IssueToken signs a one-hour session token for the given identity.
func (s *AuthService) IssueToken(email, name string) (string, error) {
	return auth.GenerateToken(email, name)
}

// IsAdmin reports whether the stored record for email carries the admin
// role. It never errors: a missing record, a non-admin role, or even a
// store failure all mean "not admin".
func (s *AuthService) IsAdmin(ctx context.Context, email string) bool {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		logger.WithCtx(ctx).Error("role lookup failed", "email", email, "error", err)
		return false
	}
	return user.IsAdmin()
}
