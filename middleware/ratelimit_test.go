package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestRateLimiterRateFromWindow(t *testing.T) {
	rl := NewRateLimiter(120, time.Minute)

	if rl.limit != rate.Limit(2) {
		t.Errorf("expected 2 tokens per second, got %v", rl.limit)
	}
	if rl.burst != 120 {
		t.Errorf("expected burst 120, got %d", rl.burst)
	}
}

func TestRateLimiterBurstThenBlocks(t *testing.T) {
	tests := []struct {
		name  string
		burst int
	}{
		{"single", 1},
		{"small", 3},
		{"storefront default", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.burst, time.Minute)
			for i := 0; i < tt.burst; i++ {
				if !rl.allow("10.0.0.1") {
					t.Fatalf("request %d of the burst was blocked", i+1)
				}
			}
			if rl.allow("10.0.0.1") {
				t.Fatal("request past the burst should be blocked")
			}
		})
	}
}

func TestRateLimiterRefillsGradually(t *testing.T) {
	// Two tokens per 200ms: one token comes back every 100ms.
	rl := NewRateLimiter(2, 200*time.Millisecond)
	rl.allow("10.0.0.1")
	rl.allow("10.0.0.1")

	time.Sleep(120 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Fatal("expected one token to have refilled")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("expected the bucket to refill one token at a time")
	}
}

func TestRateLimiterBucketPerClient(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.allow("10.0.0.1")

	if !rl.allow("10.0.0.2") {
		t.Fatal("a second client should have its own bucket")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("the first client should still be limited")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.allow("10.0.0.1")
	time.Sleep(5 * time.Millisecond)

	rl.Cleanup(time.Millisecond)

	rl.mu.Lock()
	n := len(rl.clients)
	rl.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected idle client to be dropped, got %d", n)
	}
	if !rl.allow("10.0.0.1") {
		t.Fatal("dropped client should start with a full bucket")
	}
}

func TestRateLimiterCleanupKeepsActiveClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.allow("10.0.0.1")

	rl.Cleanup(time.Hour)

	if rl.allow("10.0.0.1") {
		t.Fatal("active client should keep its drained bucket")
	}
}

func TestRateLimiterMiddlewareRejectsWithJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, time.Minute)

	handled := 0
	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/cart/add", func(c *gin.Context) {
		handled++
		c.Status(http.StatusSeeOther)
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest("POST", "/cart/add", nil))
	if w1.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("POST", "/cart/add", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w2.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Errorf("expected a JSON error body, got %q", w2.Body.String())
	}
	if handled != 1 {
		t.Errorf("expected the handler to run once, ran %d times", handled)
	}
}
