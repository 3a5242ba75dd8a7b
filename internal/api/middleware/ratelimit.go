package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter decides whether a request identified by key may proceed. It is
// injected into the middleware so the in-process implementation can be
// swapped for a distributed one without touching call sites.
type Limiter interface {
	Allow(key string) bool
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow is a fixed-window request counter: up to limit requests per
// key per window, then rejection until the window rolls over.
type FixedWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*window
	now     func() time.Time
}

// NewFixedWindow creates a limiter allowing limit requests per window.
func NewFixedWindow(limit int, windowSize time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		window:  windowSize,
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow reports whether the request counted against key fits in the current
// window, incrementing the counter when it does.
func (f *FixedWindow) Allow(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	entry, ok := f.entries[key]
	if !ok || now.After(entry.resetAt) {
		f.entries[key] = &window{count: 1, resetAt: now.Add(f.window)}
		return true
	}
	if entry.count >= f.limit {
		return false
	}
	entry.count++
	return true
}

// RateLimit rejects requests over the limiter's budget with a 429. Clients
// are keyed by the first X-Forwarded-For hop when present, else by the
// remote address.
func RateLimit(next http.Handler, limiter Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientKey(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
