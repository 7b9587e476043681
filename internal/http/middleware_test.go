package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiterPerClient(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newIPRateLimiter(rate.Every(time.Minute), 1, 10*time.Minute)
	l.now = func() time.Time { return now }

	if !l.allow("10.0.0.1") {
		t.Fatalf("first request should pass")
	}
	if l.allow("10.0.0.1") {
		t.Fatalf("second request inside the window should be limited")
	}
	if !l.allow("10.0.0.2") {
		t.Fatalf("other clients have their own bucket")
	}

	now = now.Add(2 * time.Minute)
	if !l.allow("10.0.0.1") {
		t.Fatalf("bucket should refill")
	}
}

func TestIPRateLimiterSweepsIdleClients(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newIPRateLimiter(rate.Every(time.Hour), 1, time.Minute)
	l.now = func() time.Time { return now }

	l.allow("10.0.0.1")
	now = now.Add(2 * time.Minute)
	l.allow("10.0.0.2")

	if _, ok := l.entries["10.0.0.1"]; ok {
		t.Fatalf("idle client should have been swept")
	}
	if len(l.entries) != 1 {
		t.Fatalf("expected one live entry, got %d", len(l.entries))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.7:5555"
	if got := clientIP(r); got != "192.0.2.7" {
		t.Fatalf("expected remote host, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded address, got %q", got)
	}
}
