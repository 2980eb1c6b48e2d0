package session

import (
	"context"
	"html/template"
	"sync"
	"time"

	"dessert-cart/cart"
	"dessert-cart/views"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one shopper's cart, order summary and rendered cart view.
type Session struct {
	ID       uuid.UUID
	Store    *cart.Store
	Summary  *cart.Summary
	CartView *views.CartView
	lastSeen time.Time
}

// Registry keeps sessions in memory and evicts idle ones.
type Registry struct {
	sessions map[uuid.UUID]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	tmpl     *template.Template
	logger   *zap.Logger
	now      func() time.Time
}

func NewRegistry(ttl time.Duration, tmpl *template.Template, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		tmpl:     tmpl,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns a live session and marks it as seen.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, false
	}
	s.lastSeen = r.now()
	return s, true
}

// Create starts a new session with an empty cart. The cart view is
// subscribed to the store for the whole life of the session.
func (r *Registry) Create() *Session {
	store := cart.NewStore(r.logger)
	s := &Session{
		ID:       uuid.New(),
		Store:    store,
		Summary:  cart.NewSummary(store, r.logger),
		CartView: views.NewCartView(r.tmpl, r.logger),
	}
	store.Subscribe(s.CartView.Render)

	r.mu.Lock()
	defer r.mu.Unlock()

	s.lastSeen = r.now()
	r.sessions[s.ID] = s
	r.logger.Debug("session created", zap.String("session_id", s.ID.String()))
	return s
}

// GetOrCreate returns the session for id, or a new one when id is unknown or
// expired.
func (r *Registry) GetOrCreate(id uuid.UUID) (*Session, bool) {
	if id != uuid.Nil {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CleanupIdle removes sessions not seen within the TTL.
func (r *Registry) CleanupIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("evicted idle sessions", zap.Int("count", removed))
	}
	return removed
}

// Run evicts idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.CleanupIdle()
		}
	}
}
