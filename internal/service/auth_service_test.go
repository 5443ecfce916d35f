package service

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mock user source for testing
type mockUserSource struct {
	users map[string]*domain.User
}

func newMockUserSource(users ...*domain.User) *mockUserSource {
	m := &mockUserSource{users: make(map[string]*domain.User)}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *mockUserSource) Authenticate(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, catalog.ErrUserNotFound
	}
	return user, nil
}

func testUser(email string, role domain.Role) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:        uuid.New(),
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Tokens issued on login validate and carry the full user snapshot.
func TestProperty_LoginTokenRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("issued tokens decode back to the logged-in user", prop.ForAll(
		func(email string, role string) bool {
			user := testUser(email, domain.Role(role))
			auth := NewAuthService(newMockUserSource(user), "test-secret", time.Hour)
			ctx := context.Background()

			token, loggedIn, err := auth.Login(ctx, email)
			if err != nil {
				t.Logf("FAIL: login failed: %v", err)
				return false
			}
			if loggedIn.ID != user.ID {
				t.Logf("FAIL: login returned the wrong user")
				return false
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				t.Logf("FAIL: token validation failed: %v", err)
				return false
			}

			if claims.UserID != user.ID {
				t.Logf("FAIL: user id claim mismatch")
				return false
			}
			if claims.Email != email {
				t.Logf("FAIL: email claim mismatch")
				return false
			}
			if claims.Role != domain.Role(role) {
				t.Logf("FAIL: role claim mismatch")
				return false
			}
			if claims.ExpiresAt == nil || claims.IssuedAt == nil {
				t.Logf("FAIL: missing registered claims")
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.OneConstOf("customer", "seller", "admin"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLogin_UnknownEmail(t *testing.T) {
	auth := NewAuthService(newMockUserSource(testUser("known@example.com", domain.RoleCustomer)), "test-secret", time.Hour)

	_, _, err := auth.Login(context.Background(), "unknown@example.com")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := testUser("user@example.com", domain.RoleSeller)
	issuer := NewAuthService(newMockUserSource(user), "secret-a", time.Hour)
	verifier := NewAuthService(newMockUserSource(user), "secret-b", time.Hour)

	token, _, err := issuer.Login(context.Background(), user.Email)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	auth := NewAuthService(newMockUserSource(), "test-secret", time.Hour)

	if _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token should not validate")
	}
}
