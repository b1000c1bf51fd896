package service

import (
	"slices"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/state"
	"github.com/shopspring/decimal"
)

// CartService holds the lines of the session's cart. Totals are derived from
// the lines on every read. Subscribers must not mutate the cart from inside
// their callback.
type CartService struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	lines   []models.CartLine
	changes *state.Broadcaster[models.CartSnapshot]
	now     func() time.Time
}

func NewCartService() *CartService {
	return &CartService{
		changes: state.NewBroadcaster[models.CartSnapshot](),
		now:     time.Now,
	}
}

// Add puts one more unit of product in the cart, appending a new line the
// first time the product is seen.
func (s *CartService) Add(product models.Product) {
	s.mutate(func() bool {
		if i := s.indexOf(product.ID); i >= 0 {
			s.lines[i].Quantity++
			return true
		}

		s.lines = append(s.lines, models.CartLine{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Image:    product.Image,
			Quantity: 1,
		})
		return true
	})
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or less
// removes the line.
func (s *CartService) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.Remove(id)
		return
	}

	s.mutate(func() bool {
		i := s.indexOf(id)
		if i < 0 || s.lines[i].Quantity == quantity {
			return false
		}

		s.lines[i].Quantity = quantity
		return true
	})
}

func (s *CartService) Remove(id string) {
	s.mutate(func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}

		s.lines = slices.Delete(s.lines, i, i+1)
		return true
	})
}

func (s *CartService) Clear() {
	s.mutate(func() bool {
		if len(s.lines) == 0 {
			return false
		}

		s.lines = nil
		return true
	})
}

// Checkout empties the cart and returns what was in it. An empty cart is
// left alone and reported as an error.
func (s *CartService) Checkout() (*models.Receipt, error) {
	var receipt *models.Receipt

	s.mutate(func() bool {
		if len(s.lines) == 0 {
			return false
		}

		receipt = &models.Receipt{
			Lines:      s.lines,
			TotalItems: totalItems(s.lines),
			TotalPrice: totalPrice(s.lines).InexactFloat64(),
			PlacedAt:   s.now().UTC(),
		}
		s.lines = nil
		return true
	})

	if receipt == nil {
		return nil, errors.EmptyCartError()
	}

	return receipt, nil
}

func (s *CartService) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.lines)
}

func (s *CartService) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return totalItems(s.lines)
}

func (s *CartService) TotalPrice() float64 {
	return s.TotalPriceDecimal().InexactFloat64()
}

func (s *CartService) TotalPriceDecimal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return totalPrice(s.lines)
}

func (s *CartService) Snapshot() models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *CartService) Subscribe(fn func(models.CartSnapshot)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// mutate applies fn and, when it reports a change, publishes the new state
// before the next mutation may start.
func (s *CartService) mutate(fn func() bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	changed := fn()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.changes.Publish(snapshot)
	}
}

func (s *CartService) snapshotLocked() models.CartSnapshot {
	lines := slices.Clone(s.lines)
	if lines == nil {
		lines = []models.CartLine{}
	}

	return models.CartSnapshot{
		Lines:      lines,
		TotalItems: totalItems(s.lines),
		TotalPrice: totalPrice(s.lines).InexactFloat64(),
	}
}

func (s *CartService) indexOf(id string) int {
	return slices.IndexFunc(s.lines, func(l models.CartLine) bool {
		return l.ID == id
	})
}

func totalItems(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}

	return n
}

func totalPrice(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	return total
}
