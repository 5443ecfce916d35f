package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/fixture"
	"shopfront/internal/middleware"
	"shopfront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newTestRouter wires a zero-latency store and real middleware into a chi
// router, the same shape the server package builds.
func newTestRouter(t *testing.T) (*chi.Mux, *catalog.Store, service.AuthService) {
	t.Helper()

	store := catalog.New(fixture.Generate(1, 25), 0)
	auth := service.NewAuthService(store, "test-secret", time.Hour)
	logger := zap.NewNop()

	authMiddleware := middleware.AuthMiddleware(auth, logger)
	sellerMiddleware := middleware.RequireSeller(logger)

	router := chi.NewRouter()
	NewAuthHandler(auth, logger).RegisterRoutes(router, authMiddleware)
	NewProductHandler(store, logger).RegisterRoutes(router, authMiddleware, sellerMiddleware)

	return router, store, auth
}

func loginAs(t *testing.T, router http.Handler, email string) (string, UserProfile) {
	t.Helper()

	body, _ := json.Marshal(LoginRequest{Email: email})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login as %s failed with status %d: %s", email, w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return resp.Token, resp.User
}

func TestLogin(t *testing.T) {
	router, _, _ := newTestRouter(t)

	token, user := loginAs(t, router, "seller@example.com")
	if token == "" {
		t.Error("expected a session token")
	}
	if user.Email != "seller@example.com" || user.Role != "seller" {
		t.Errorf("unexpected user in login response: %+v", user)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body, _ := json.Marshal(LoginRequest{Email: "stranger@example.com"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown email, got %d", w.Code)
	}
}

func TestLogin_InvalidBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty email", `{"email":""}`},
		{"not an email", `{"email":"not-an-email"}`},
		{"malformed json", `{"email"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token, _ := loginAs(t, router, "customer@example.com")

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var profile UserProfile
	if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Email != "customer@example.com" || profile.Role != "customer" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestProfile_RequiresToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", w.Code)
	}
}
