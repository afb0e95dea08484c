package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kevscue/storefront/internal/core/domain"
	"github.com/kevscue/storefront/internal/port"
)

// CartService is the shopper's working cart: an in-memory set of lines,
// unique by product ID, written through to the snapshot store after every
// mutation so the cart survives restarts.
type CartService struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	snapshots port.SnapshotRepository
	key       string
	logger    zerolog.Logger
}

// NewCartService restores the cart from its snapshot. A missing snapshot
// starts empty; a corrupt one is logged and discarded, also starting empty.
func NewCartService(ctx context.Context, snapshots port.SnapshotRepository, key string, logger zerolog.Logger) *CartService {
	s := &CartService{
		snapshots: snapshots,
		key:       key,
		logger:    logger,
	}
	s.restore(ctx)
	return s
}

func (s *CartService) restore(ctx context.Context) {
	blob, err := s.snapshots.Load(ctx, s.key)
	if err != nil {
		s.logger.Warn().Err(err).Str("cart_key", s.key).Msg("cart snapshot load failed, starting empty")
		return
	}
	if blob == nil {
		return
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(blob, &lines); err != nil {
		s.logger.Warn().Err(err).Str("cart_key", s.key).Msg("cart snapshot corrupt, starting empty")
		return
	}
	s.lines = lines
}

// AddItem puts qty units of product into the cart, merging into an existing
// line for the same product. The quantity is clamped to the product's stock;
// the returned flag reports whether clamping happened. Capping never rejects
// the operation.
func (s *CartService) AddItem(ctx context.Context, product domain.Product, qty int) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := 0
	idx := s.find(product.ID)
	if idx >= 0 {
		existing = s.lines[idx].Quantity
	}

	allowed, capped := domain.AdmissibleQuantity(qty, existing, product.Stock)
	line := domain.CartLine{Product: product, Quantity: allowed}
	if idx >= 0 {
		s.lines[idx] = line
	} else {
		s.lines = append(s.lines, line)
	}

	if capped {
		s.logger.Info().
			Str("product_id", product.ID).
			Int("requested", qty+existing).
			Int("stock", product.Stock).
			Msg("stock limit reached")
	}

	s.persist(ctx)
	return line, capped
}

// RemoveItem deletes the line for productID. Removing an absent line is a
// no-op.
func (s *CartService) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(productID)
	if idx < 0 {
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.persist(ctx)
}

// SetQuantity replaces the quantity of an existing line, clamped against the
// stock snapshot stored with the line. qty < 1 removes the line; an unknown
// productID is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, productID string, qty int) (domain.CartLine, bool) {
	if qty < 1 {
		s.RemoveItem(ctx, productID)
		return domain.CartLine{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(productID)
	if idx < 0 {
		return domain.CartLine{}, false
	}

	allowed, capped := domain.AdmissibleQuantity(qty, 0, s.lines[idx].Product.Stock)
	s.lines[idx].Quantity = allowed

	if capped {
		s.logger.Info().
			Str("product_id", productID).
			Int("requested", qty).
			Int("stock", s.lines[idx].Product.Stock).
			Msg("stock limit reached")
	}

	s.persist(ctx)
	return s.lines[idx], capped
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the current lines in insertion order.
func (s *CartService) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the sum of unit price times quantity over all lines.
func (s *CartService) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, l := range s.lines {
		total += l.LineTotal()
	}
	return total
}

// Count is the sum of quantities over all lines.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// find returns the index of the line for productID, -1 when absent.
// Callers hold the mutex.
func (s *CartService) find(productID string) int {
	for i, l := range s.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// persist writes the full cart snapshot. A failed write is logged, not
// surfaced: the in-memory cart stays usable and the next mutation retries.
// Callers hold the mutex.
func (s *CartService) persist(ctx context.Context) {
	blob, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Warn().Err(err).Str("cart_key", s.key).Msg("cart snapshot encode failed")
		return
	}
	if err := s.snapshots.Save(ctx, s.key, blob); err != nil {
		s.logger.Warn().Err(err).Str("cart_key", s.key).Msg("cart snapshot save failed")
	}
}
