package session

import (
	"context"
	"testing"
	"time"

	"dessert-cart/models"
	"dessert-cart/views"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestRegistry(t *testing.T, ttl time.Duration) *Registry {
	tmpl, err := views.Templates()
	if err != nil {
		t.Fatal(err)
	}
	return NewRegistry(ttl, tmpl, nil)
}

func TestCreateSession(t *testing.T) {
	r := newTestRegistry(t, time.Hour)
	s := r.Create()

	if s.ID == uuid.Nil {
		t.Error("expected non-nil session ID")
	}
	if s.Store == nil || s.Summary == nil || s.CartView == nil {
		t.Fatal("expected store, summary and cart view")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 session, got %d", r.Len())
	}
}

func TestCartViewFollowsStore(t *testing.T) {
	r := newTestRegistry(t, time.Hour)
	s := r.Create()

	s.Store.AddToCart(models.Product{Name: "Waffle", Category: "Waffle", Price: decimal.RequireFromString("6.50"), Image: models.ProductImage{Mobile: "w.jpg"}})

	model := s.CartView.Model()
	if model.Empty || model.CountLabel != "(1)" || model.Total != "$6.50" {
		t.Errorf("expected cart view to re-render after add, got %+v", model)
	}
}

func TestGetOrCreate(t *testing.T) {
	r := newTestRegistry(t, time.Hour)
	first := r.Create()

	same, created := r.GetOrCreate(first.ID)
	if created || same != first {
		t.Error("expected existing session to be returned")
	}

	other, created := r.GetOrCreate(uuid.New())
	if !created || other == first {
		t.Error("expected unknown ID to create a new session")
	}

	_, created = r.GetOrCreate(uuid.Nil)
	if !created {
		t.Error("expected nil ID to create a new session")
	}
	if r.Len() != 3 {
		t.Errorf("expected 3 sessions, got %d", r.Len())
	}
}

func TestCleanupIdle(t *testing.T) {
	r := newTestRegistry(t, 30*time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	stale := r.Create()
	now = now.Add(20 * time.Minute)
	fresh := r.Create()
	now = now.Add(15 * time.Minute)

	if removed := r.CleanupIdle(); removed != 1 {
		t.Fatalf("expected 1 eviction, got %d", removed)
	}
	if _, ok := r.Get(stale.ID); ok {
		t.Error("expected stale session to be evicted")
	}
	if _, ok := r.Get(fresh.ID); !ok {
		t.Error("expected fresh session to survive")
	}
}

func TestGetRefreshesLastSeen(t *testing.T) {
	r := newTestRegistry(t, 30*time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	s := r.Create()
	now = now.Add(25 * time.Minute)
	r.Get(s.ID)
	now = now.Add(25 * time.Minute)

	r.CleanupIdle()
	if _, ok := r.Get(s.ID); !ok {
		t.Error("expected recently used session to survive")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	r := newTestRegistry(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
