package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gotest.tools/assert"

	"github.com/team2shop/storefront/config"
)

func testService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NilError(t, err)
	cfg := *config.DefaultAppConfig
	cfg.Users = []config.UserConfig{
		{Email: "maya@example.com", Name: "Maya", PasswordHash: string(hash), Role: RoleAdmin},
	}
	return NewService(&cfg)
}

func TestAuthenticate(t *testing.T) {
	s := testService(t)

	u, err := s.Authenticate("  Maya@Example.com ", "s3cret")
	assert.NilError(t, err)
	assert.Equal(t, "Maya", u.Name)
	assert.Assert(t, u.IsAdmin())

	_, err = s.Authenticate("maya@example.com", "wrong")
	assert.Assert(t, err == ErrInvalidCredentials)

	_, err = s.Authenticate("nobody@example.com", "s3cret")
	assert.Assert(t, err == ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	s := testService(t)

	u, err := s.Authenticate("maya@example.com", "s3cret")
	assert.NilError(t, err)

	token, err := s.IssueToken(u)
	assert.NilError(t, err)

	claims, err := s.ParseToken(token)
	assert.NilError(t, err)
	assert.Equal(t, "maya@example.com", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = s.ParseToken(token + "x")
	assert.Assert(t, err != nil)
}

func TestDefaultUsers(t *testing.T) {
	s := NewService(config.DefaultAppConfig)
	u, err := s.Authenticate("admin@shop.dev", "admin123")
	assert.NilError(t, err)
	assert.Assert(t, u.IsAdmin())
}
