package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/deal"
	"storefront/internal/pricing"
)

// Store owns every user's cart. In-memory state is authoritative: each
// mutation updates memory first and then writes through to Storage, so a
// read immediately after a write always sees the new lines even when the
// write-through failed. Storage failures are logged and never surfaced as
// blocking errors.
type Store struct {
	storage Storage
	log     *zap.Logger

	// Now is the clock used for add-time stamps and deal expiry checks.
	// Tests swap it for a fixed time.
	Now func() time.Time

	mu    sync.Mutex
	carts map[int64]*cart.Cart
}

func NewStore(storage Storage, log *zap.Logger) *Store {
	return &Store{
		storage: storage,
		log:     log,
		Now:     time.Now,
		carts:   make(map[int64]*cart.Cart),
	}
}

// Get returns a snapshot of the user's cart, hydrating from storage on
// first access.
func (s *Store) Get(ctx context.Context, userID int64) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.hydrate(ctx, userID))
}

// AddLine adds qty units of the selection. An existing line with the same
// product+variant+flavor identity absorbs the quantity; otherwise a new line
// is appended with its unit price resolved now (deal discount locked in at
// add time). Selections with no sellable stock are refused outright.
func (s *Store) AddLine(ctx context.Context, userID int64, sel pricing.Selection, qty int, d *deal.Deal) (cart.Cart, error) {
	if qty < 1 {
		return cart.Cart{}, ErrInvalidQuantity
	}
	if !pricing.InStock(sel) {
		return cart.Cart{}, ErrProductOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.hydrate(ctx, userID)
	if line := c.FindLine(sel.Product.ID, sel.VariantID(), sel.FlavorID()); line != nil {
		line.Quantity += qty
	} else {
		c.Lines = append(c.Lines, s.newLine(sel, qty, d))
	}
	c.Count = c.TotalQuantity()

	s.persist(ctx, userID, c)
	return snapshot(c), nil
}

// UpdateQuantity sets the line's quantity. qty <= 0 removes the line. A qty
// above the currently available stock is clamped to it and reported as a
// StockUnavailableError carrying the available count, so the caller can show
// the shopper how many were actually granted; the returned snapshot already
// reflects the clamp.
func (s *Store) UpdateQuantity(ctx context.Context, userID int64, sel pricing.Selection, qty int) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.hydrate(ctx, userID)
	line := c.FindLine(sel.Product.ID, sel.VariantID(), sel.FlavorID())
	if line == nil {
		return snapshot(c), ErrLineNotFound
	}

	var stockErr error
	if avail := pricing.AvailableStock(sel); qty > avail {
		stockErr = &StockUnavailableError{Available: avail}
		qty = avail
	}

	if qty <= 0 {
		s.removeLine(c, sel.Product.ID, sel.VariantID(), sel.FlavorID())
	} else {
		line.Quantity = qty
		line.StockQty = pricing.AvailableStock(sel)
	}
	c.Count = c.TotalQuantity()

	s.persist(ctx, userID, c)
	return snapshot(c), stockErr
}

// RemoveLine deletes the matching line unconditionally.
func (s *Store) RemoveLine(ctx context.Context, userID, productID int64, variantID, flavorID *int64) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.hydrate(ctx, userID)
	s.removeLine(c, productID, variantID, flavorID)
	c.Count = c.TotalQuantity()

	s.persist(ctx, userID, c)
	return snapshot(c)
}

// Clear empties the user's cart and drops the persisted copy.
func (s *Store) Clear(ctx context.Context, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = &cart.Cart{}
	if err := s.storage.Delete(ctx, userID); err != nil {
		s.log.Warn("cart: clear persisted copy", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (s *Store) newLine(sel pricing.Selection, qty int, d *deal.Deal) cart.Line {
	now := s.Now()
	line := cart.Line{
		ProductID: sel.Product.ID,
		Name:      sel.Product.Name,
		Image:     sel.Product.MainImage(),
		StockQty:  pricing.AvailableStock(sel),
		HasStock:  sel.Product.HasStock,
		Intensity: sel.Product.Intensity,
		Quantity:  qty,
		UnitPrice: pricing.UnitPrice(sel, d, now),
		AddedAt:   now,
	}
	if sel.Variant != nil {
		v := *sel.Variant
		line.Variant = &v
	}
	if sel.Flavor != nil {
		f := *sel.Flavor
		line.Flavor = &f
	}
	if d != nil && d.ActiveAt(now) && d.Covers(sel.Product.ID, sel.VariantID(), sel.FlavorID()) {
		id := d.ID
		line.DealID = &id
	}
	return line
}

func (s *Store) removeLine(c *cart.Cart, productID int64, variantID, flavorID *int64) {
	for i := range c.Lines {
		if c.Lines[i].SameSelection(productID, variantID, flavorID) {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// hydrate loads the user's cart from storage on first access. Corrupt or
// unreadable data degrades to an empty cart; the shopper keeps a working
// in-memory cart for the session either way. Callers must hold s.mu.
func (s *Store) hydrate(ctx context.Context, userID int64) *cart.Cart {
	if c, ok := s.carts[userID]; ok {
		return c
	}

	c := &cart.Cart{}
	defer func() {
		c.Count = c.TotalQuantity()
		s.carts[userID] = c
	}()

	data, err := s.storage.Load(ctx, userID)
	if err != nil {
		s.log.Warn("cart: hydrate", zap.Int64("user_id", userID), zap.Error(err))
		return c
	}
	if len(data) == 0 {
		return c
	}
	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		s.log.Warn("cart: discarding corrupt persisted cart", zap.Int64("user_id", userID), zap.Error(err))
		return c
	}
	c.Lines = lines
	return c
}

// persist writes the mutated cart through to storage. Failures are logged
// only: the in-memory cart stays usable for the rest of the session.
// Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, userID int64, c *cart.Cart) {
	data, err := json.Marshal(c.Lines)
	if err != nil {
		s.log.Error("cart: marshal", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	if err := s.storage.Save(ctx, userID, data); err != nil {
		s.log.Warn("cart: persist", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func snapshot(c *cart.Cart) cart.Cart {
	out := cart.Cart{Count: c.Count}
	out.Lines = make([]cart.Line, len(c.Lines))
	copy(out.Lines, c.Lines)
	return out
}
