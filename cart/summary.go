package cart

import (
	"sync"
	"time"

	"dessert-cart/models"

	"go.uber.org/zap"
)

type SummaryState int

const (
	SummaryHidden SummaryState = iota
	SummaryVisible
)

func (s SummaryState) String() string {
	switch s {
	case SummaryHidden:
		return "hidden"
	case SummaryVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Summary is the order confirmation modal. Closing it, either by starting a
// new order or by dismissing it, always resets the cart first.
type Summary struct {
	mu      sync.Mutex
	store   *Store
	state   SummaryState
	current *models.OrderSummary
	now     func() time.Time
	logger  *zap.Logger
}

func NewSummary(store *Store, logger *zap.Logger) *Summary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summary{
		store:  store,
		state:  SummaryHidden,
		now:    time.Now,
		logger: logger,
	}
}

// Confirm copies the current cart into a summary and shows it. Confirming
// while already visible refreshes the copy from the cart.
func (s *Summary) Confirm() (models.OrderSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Snapshot()
	if snap.IsEmpty() {
		return models.OrderSummary{}, ErrEmptyCart
	}

	order := models.NewOrderSummary(snap, s.now())
	s.current = &order
	s.state = SummaryVisible

	s.logger.Info("order confirmed",
		zap.String("order_id", order.ID.String()),
		zap.Int("items", order.Count),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// StartNewOrder resets the cart and hides the summary.
func (s *Summary) StartNewOrder() error {
	return s.close("new_order")
}

// Dismiss has the same effect as StartNewOrder; there is no way to hide the
// summary and keep the cart.
func (s *Summary) Dismiss() error {
	return s.close("dismissed")
}

func (s *Summary) close(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SummaryVisible {
		return ErrSummaryHidden
	}

	s.store.Reset()
	s.logger.Info("order summary closed",
		zap.String("order_id", s.current.ID.String()),
		zap.String("reason", reason),
	)
	s.current = nil
	s.state = SummaryHidden
	return nil
}

func (s *Summary) State() SummaryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the shown summary, if any.
func (s *Summary) Current() (models.OrderSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.OrderSummary{}, false
	}
	return *s.current, true
}
