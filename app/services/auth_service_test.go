package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/auth"
)

type fakeUserFinder struct {
	user *models.User
	err  error
}

func (f *fakeUserFinder) FindByEmail(context.Context, string) (*models.User, error) {
	return f.user, f.err
}

func TestIssueTokenIsValid(t *testing.T) {
	svc := NewAuthService(&fakeUserFinder{})

	token, err := svc.IssueToken("diner@example.com", "Diner")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "diner@example.com", claims.Email)
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		finder *fakeUserFinder
		want   bool
	}{
		{"admin role", &fakeUserFinder{user: &models.User{Email: "a@b.c", Role: models.RoleAdmin}}, true},
		{"plain user", &fakeUserFinder{user: &models.User{Email: "a@b.c", Role: "user"}}, false},
		{"no record", &fakeUserFinder{}, false},
		{"store failure", &fakeUserFinder{err: errors.New("server selection timeout")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(tc.finder)
			assert.Equal(t, tc.want, svc.IsAdmin(ctx, "a@b.c"))
		})
	}
}
