package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forno-app/forno/internal/config"
	"github.com/forno-app/forno/internal/metrics"
)

func newTestRouter(t *testing.T, security *config.SecurityConfig) (*Router, *testEnv) {
	t.Helper()
	env := newTestEnv()
	router := NewRouter(RouterConfig{
		Guard:      env.guard,
		Users:      env.users,
		Items:      env.items,
		Categories: env.categories,
		Orders:     env.orders,
		Hub:        NewHub(),
		Metrics:    metrics.NewCollector(),
		Security:   security,
	})
	t.Cleanup(router.Stop)
	return router, env
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header missing")
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/me", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		token      string
		wantStatus int
	}{
		{"menu list is public", http.MethodGet, "/api/menu-items", "", http.StatusOK},
		{"category list is public", http.MethodGet, "/api/categories", "", http.StatusOK},
		{"me requires a token", http.MethodGet, "/api/me", "", http.StatusUnauthorized},
		{"orders require a token", http.MethodGet, "/api/orders", "", http.StatusUnauthorized},
		{"users require admin", http.MethodGet, "/api/users", "user-token", http.StatusForbidden},
		{"admin reaches users", http.MethodGet, "/api/users", "admin-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, nil)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	// Generate one request, then scrape.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "forno_http_requests_total") {
		t.Error("request counter not exposed")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router, _ := newTestRouter(t, &config.SecurityConfig{
		RateLimit: config.RateLimitConfig{
			Enabled:                true,
			RequestsPerMinute:      60,
			Burst:                  2,
			OrderRequestsPerMinute: 1,
		},
	})

	get := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/menu-items", nil)
		req.RemoteAddr = "3.3.3.3:50000"
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := get(); got != http.StatusOK {
		t.Fatalf("first request = %d", got)
	}
	if got := get(); got != http.StatusOK {
		t.Fatalf("second request = %d", got)
	}
	if got := get(); got != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", got)
	}
}

func TestRouter_Preflight(t *testing.T) {
	router, _ := newTestRouter(t, &config.SecurityConfig{
		CORSAllowedOrigins: []string{"https://app.example.com"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestRouter_OrderRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	body := `{"items":[{"menuItemId":"item-a","name":"Margherita","quantity":1,"unitPrice":9.5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+created.ID, nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
