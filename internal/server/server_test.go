package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/fixture"

	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", Env: "development"},
		Catalog: config.CatalogConfig{
			Seed:         1,
			ProductCount: 25,
		},
		JWT: config.JWTConfig{Secret: "test-secret", AccessExpiry: 60},
		RateLimit: config.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
		},
	}
}

func TestServerWiring(t *testing.T) {
	store := catalog.New(fixture.Generate(1, 25), 0)
	srv := New(testConfig(), zap.NewNop(), store, nil)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/products", http.StatusOK},
		{"GET", "/api/categories", http.StatusOK},
		{"GET", "/api/auth/profile", http.StatusUnauthorized},
		{"POST", "/api/products", http.StatusUnauthorized},
		{"GET", "/no-such-route", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
