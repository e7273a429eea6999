// Package auth supplies the storefront's demo identities. It exists to
// hand the rest of the system a boolean admin capability; it is not an
// account system.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"

	"github.com/team2shop/storefront/config"
)

// RoleAdmin unlocks the admin API and disables the cart
const RoleAdmin = "admin"

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// User is an authenticated identity
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Claims is the JWT payload issued at login
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service validates demo credentials and issues tokens.
type Service struct {
	users    []config.UserConfig
	secret   []byte
	tokenTTL time.Duration
}

func NewService(cfg *config.AppConfig) *Service {
	s := &Service{
		users:    cfg.Users,
		secret:   []byte(cfg.Web.Secret),
		tokenTTL: 24 * time.Hour,
	}
	if len(s.users) == 0 {
		s.users = defaultUsers()
	}
	return s
}

// defaultUsers keeps the demo usable with an empty configuration.
func defaultUsers() []config.UserConfig {
	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("auth: hash default password", zap.Error(err))
			return ""
		}
		return string(h)
	}
	return []config.UserConfig{
		{Email: "admin@shop.dev", Name: "Admin", PasswordHash: hash("admin123"), Role: RoleAdmin},
		{Email: "shopper@shop.dev", Name: "Shopper", PasswordHash: hash("shopper123"), Role: "customer"},
	}
}

// Authenticate verifies email and password against the configured users.
func (s *Service) Authenticate(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if strings.ToLower(u.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return &User{Email: u.Email, Name: u.Name, Role: u.Role}, nil
	}
	return nil, ErrInvalidCredentials
}

// IssueToken signs a short-lived HS256 token carrying the user's role.
func (s *Service) IssueToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	return signed, errors.Wrap(err, "auth: sign token")
}

// ParseToken validates a token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "auth: parse token")
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}
	return claims, nil
}
