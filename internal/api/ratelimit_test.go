package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("other clients keep their own budget")
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	rl.Allow("a")
	rl.Allow("b")
	if rl.tracked() != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", rl.tracked())
	}

	now = now.Add(clientIdleTTL + sweepInterval)
	rl.Allow("c")
	if rl.tracked() != 1 {
		t.Fatalf("expected idle clients swept, got %d tracked", rl.tracked())
	}
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	if got := clientKey(r); got != "192.0.2.1" {
		t.Fatalf("expected host only, got %q", got)
	}
	r.RemoteAddr = "192.0.2.1"
	if got := clientKey(r); got != "192.0.2.1" {
		t.Fatalf("expected raw address, got %q", got)
	}
}
