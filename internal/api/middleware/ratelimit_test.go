package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFixedWindowLimits(t *testing.T) {
	limiter := NewFixedWindow(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("request over the limit should be rejected")
	}

	// A different client has its own budget.
	if !limiter.Allow("5.6.7.8") {
		t.Error("other clients should not share the window")
	}
}

func TestFixedWindowResets(t *testing.T) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewFixedWindow(1, 10*time.Second)
	limiter.now = func() time.Time { return current }

	if !limiter.Allow("client") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("client") {
		t.Fatal("second request in the same window should be rejected")
	}

	current = current.Add(11 * time.Second)
	if !limiter.Allow("client") {
		t.Error("request after window rollover should be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewFixedWindow(1, time.Minute)
	handler := RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), limiter)

	req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Errorf("first request: expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", second.Code)
	}
}

func TestClientKeyPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if key := clientKey(req); key != "203.0.113.7" {
		t.Errorf("expected first forwarded hop, got %q", key)
	}

	req.Header.Del("X-Forwarded-For")
	if key := clientKey(req); key != "10.0.0.1" {
		t.Errorf("expected remote host, got %q", key)
	}
}
