package cart

import (
	"math"
	"sync"

	"dessert-cart/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Listener receives the cart snapshot after every mutation.
// Listeners run while the store is locked and must not call back into it.
type Listener func(models.CartSnapshot)

type subscription struct {
	id int
	fn Listener
}

// Store owns one cart. All operations are serialised, so each mutation and
// its notifications complete before the next mutation starts.
type Store struct {
	mu        sync.Mutex
	items     []models.CartLineItem
	listeners []subscription
	nextID    int
	logger    *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// AddToCart increments the quantity of the product's line item, or appends a
// new line item with quantity 1.
func (s *Store) AddToCart(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.Name); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, models.CartLineItem{Product: product, Quantity: 1})
	}

	s.logger.Debug("added to cart", zap.String("product", product.Name))
	s.notify()
}

// RemoveFromCart deletes the line item for name. Unknown names are ignored.
func (s *Store) RemoveFromCart(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(name)
	s.notify()
}

// ChangeQuantity adds delta to the quantity of name's line item. A resulting
// quantity of zero or less removes the line item. Unknown names are ignored.
func (s *Store) ChangeQuantity(name string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return
	}

	qty := s.items[i].Quantity
	switch {
	case delta <= -qty:
		s.remove(name)
	case delta > math.MaxInt-qty:
		s.items[i].Quantity = math.MaxInt
	default:
		s.items[i].Quantity += delta
	}

	s.logger.Debug("changed quantity", zap.String("product", name), zap.Int("delta", delta))
	s.notify()
}

// Reset empties the cart.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.notify()
}

// Snapshot returns a copy of the cart with its derived total and item count.
func (s *Store) Snapshot() models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Subscribe registers l for change notifications and returns a function that
// removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: l})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) indexOf(name string) int {
	for i, item := range s.items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) remove(name string) {
	if i := s.indexOf(name); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

func (s *Store) snapshot() models.CartSnapshot {
	items := make([]models.CartLineItem, len(s.items))
	copy(items, s.items)

	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.LineTotal())
		count += item.Quantity
	}

	return models.CartSnapshot{Items: items, Total: total, Count: count}
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshot()
	for _, sub := range s.listeners {
		sub.fn(snap)
	}
}
