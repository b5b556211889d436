// Package orders keeps the order history, most recent first. Orders
// are written once at checkout and never mutated; persistence is
// local-only.
package orders

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/3xa-store/storefront/internal/localstore"
	"github.com/3xa-store/storefront/internal/models"
)

type Manager struct {
	store *localstore.Store
	log   *slog.Logger

	mu     sync.Mutex
	orders []models.Order
}

func New(store *localstore.Store, log *slog.Logger) *Manager {
	m := &Manager{
		store: store,
		log:   log.With("component", "orders"),
	}
	if raw, ok := store.Read(localstore.KeyOrders); ok {
		if err := json.Unmarshal(raw, &m.orders); err != nil {
			m.log.Warn("orders_snapshot_malformed", "error", err)
			m.orders = nil
		}
	}
	return m
}

// AddOrder prepends the order and persists the full history.
func (m *Manager) AddOrder(o models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]models.Order{o}, m.orders...)
	m.persist()
}

func (m *Manager) GetOrderByID(id string) (models.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

func (m *Manager) List() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

// persist writes the whole history. Callers hold m.mu.
func (m *Manager) persist() {
	raw, err := json.Marshal(m.orders)
	if err != nil {
		m.log.Error("orders_persist_marshal_failed", "error", err)
		return
	}
	if err := m.store.Write(localstore.KeyOrders, raw); err != nil {
		m.log.Error("orders_persist_write_failed", "error", err)
	}
}
