// Package cart owns the shopping cart: product references plus
// quantities, persisted entirely to the local store, write-through on
// every mutation.
package cart

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/3xa-store/storefront/internal/localstore"
	"github.com/3xa-store/storefront/internal/models"
)

// Resolver looks a product up in the live catalog. Lines keep only the
// product identity; prices are resolved at read time.
type Resolver func(id string) (models.Product, bool)

type Manager struct {
	store   *localstore.Store
	resolve Resolver
	log     *slog.Logger

	mu    sync.Mutex
	lines []models.CartLine
}

// New restores the cart from the local snapshot. A malformed snapshot
// is treated as an empty cart.
func New(store *localstore.Store, resolve Resolver, log *slog.Logger) *Manager {
	m := &Manager{
		store:   store,
		resolve: resolve,
		log:     log.With("component", "cart"),
	}
	if raw, ok := store.Read(localstore.KeyCart); ok {
		if err := json.Unmarshal(raw, &m.lines); err != nil {
			m.log.Warn("cart_snapshot_malformed", "error", err)
			m.lines = nil
		}
	}
	return m
}

// AddItem merges into the existing line for the product, or appends a
// new one. Quantities below one count as one.
func (m *Manager) AddItem(product models.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lines {
		if m.lines[i].ProductID == product.ID {
			m.lines[i].Quantity += qty
			m.persist()
			return
		}
	}
	m.lines = append(m.lines, models.CartLine{ProductID: product.ID, Quantity: qty})
	m.persist()
}

// UpdateQuantity sets the quantity for the product's line. Quantities
// below one are ignored; removal goes through RemoveItem.
func (m *Manager) UpdateQuantity(productID string, qty int) {
	if qty < 1 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lines {
		if m.lines[i].ProductID == productID {
			m.lines[i].Quantity = qty
			m.persist()
			return
		}
	}
}

func (m *Manager) RemoveItem(productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.lines[:0]
	for _, l := range m.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	m.lines = kept
	m.persist()
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
	m.persist()
}

// Total sums resolved price times quantity. Lines whose product no
// longer resolves contribute zero; a stale cart is not an error.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, l := range m.lines {
		if p, ok := m.resolve(l.ProductID); ok {
			total += p.Price * float64(l.Quantity)
		}
	}
	return total
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int
	for _, l := range m.lines {
		count += l.Quantity
	}
	return count
}

func (m *Manager) Lines() []models.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

// persist writes the whole cart through. Callers hold m.mu.
func (m *Manager) persist() {
	raw, err := json.Marshal(m.lines)
	if err != nil {
		m.log.Error("cart_persist_marshal_failed", "error", err)
		return
	}
	if err := m.store.Write(localstore.KeyCart, raw); err != nil {
		m.log.Error("cart_persist_write_failed", "error", err)
	}
}
