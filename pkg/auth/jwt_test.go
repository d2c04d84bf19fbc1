package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/auth"
)

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", claims.Email)
	}
	if claims.Name != "Alice" {
		t.Errorf("name = %q, want Alice", claims.Name)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected iat and exp to be set")
	}
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != auth.TokenTTL {
		t.Errorf("ttl = %v, want %v", ttl, auth.TokenTTL)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	// Sign an already-expired token with the same secret the package uses.
	now := time.Now().Add(-2 * time.Hour)
	claims := auth.Claims{
		Email: "bob@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateRejectsTamperedSignature(t *testing.T) {
	claims := auth.Claims{
		Email: "mallory@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("a-different-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("expected foreign-signed token to be rejected")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := auth.ValidateToken(tok); err == nil {
			t.Errorf("expected %q to be rejected", tok)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !auth.CheckPassword(hash, "hunter22") {
		t.Error("expected matching password to verify")
	}
	if auth.CheckPassword(hash, "hunter23") {
		t.Error("expected wrong password to fail")
	}
}
