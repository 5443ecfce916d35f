package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("no account matches that email")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserAuthenticator is the slice of the catalog the auth service needs
type UserAuthenticator interface {
	Authenticate(ctx context.Context, email string) (*domain.User, error)
}

// AuthService defines the interface for the demo's mock authentication.
// Login matches an email against the seeded users with no credential check;
// the session token carries the full user snapshot so no server-side session
// state exists, mirroring how the original demo kept the logged-in user in
// browser storage.
type AuthService interface {
	Login(ctx context.Context, email string) (token string, user *domain.User, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents the JWT claims
type Claims struct {
	UserID    uuid.UUID   `json:"user_id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	users        UserAuthenticator
	jwtSecret    string
	accessExpiry time.Duration
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(users UserAuthenticator, jwtSecret string, accessExpiry time.Duration) AuthService {
	return &authService{
		users:        users,
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
	}
}

// Login looks the email up in the user collection and issues a session token.
// Any seeded email logs in; there are no passwords in this system.
func (s *authService) Login(ctx context.Context, email string) (string, *domain.User, error) {
	user, err := s.users.Authenticate(ctx, email)
	if err != nil {
		if errors.Is(err, catalog.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// generateToken signs a token carrying the user snapshot
func (s *authService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
