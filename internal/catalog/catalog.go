// Package catalog owns the in-memory product list and its dual-backend
// persistence: the remote gateway when configured, the local snapshot
// store otherwise, with the bundled seed as the last tier.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/3xa-store/storefront/internal/gateway"
	"github.com/3xa-store/storefront/internal/localstore"
	"github.com/3xa-store/storefront/internal/mapper"
	"github.com/3xa-store/storefront/internal/models"
	"github.com/3xa-store/storefront/internal/mykafka"
)

// Gateway is the slice of the remote client the catalog needs. Tests
// substitute stubs for it.
type Gateway interface {
	Select(ctx context.Context, table string, filter map[string]any, orderBy string) ([]map[string]any, error)
	Insert(ctx context.Context, table string, row map[string]any) (map[string]any, error)
	Update(ctx context.Context, table string, id string, patch map[string]any) error
	Delete(ctx context.Context, table string, id string) error
}

type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusReady         Status = "ready"
)

// ErrFetchTimeout marks a remote fetch that exceeded the bounded wait.
// The in-flight request is abandoned, not cancelled: a late result is
// discarded.
var ErrFetchTimeout = errors.New("remote fetch timed out")

const productsTable = "products"

type Manager struct {
	gw       Gateway // nil when the remote tier is not configured
	store    *localstore.Store
	producer *mykafka.Producer
	log      *slog.Logger
	timeout  time.Duration

	mu       sync.RWMutex
	products []models.Product
	status   Status
	lastErr  error
}

// New builds an uninitialized manager. gw may be nil; the manager then
// treats the remote tier as permanently unavailable for the session.
func New(gw Gateway, store *localstore.Store, producer *mykafka.Producer, log *slog.Logger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Manager{
		gw:       gw,
		store:    store,
		producer: producer,
		log:      log.With("component", "catalog"),
		timeout:  timeout,
		status:   StatusUninitialized,
	}
}

// Refresh repopulates the product list through the fallback chain:
// remote select, local snapshot, bundled seed. It always terminates in
// StatusReady with a non-empty chain outcome; failures along the way
// are recorded in LastError for display, never returned.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	m.status = StatusLoading
	m.lastErr = nil
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.status = StatusReady
		m.mu.Unlock()
	}()

	if m.gw != nil {
		rows, err := m.selectBounded(ctx)
		if err == nil {
			// An empty remote result is authoritative; it does not
			// trigger the fallback.
			products := make([]models.Product, 0, len(rows))
			for _, row := range rows {
				products = append(products, mapper.FromRow(row))
			}
			m.replace(products)
			m.log.Info("refresh_remote_success", "count", len(products))
			return
		}
		m.recordErr(err)
		m.log.Warn("refresh_remote_failed", "error", err)
	}

	if raw, ok := m.store.Read(localstore.KeyProducts); ok {
		var saved []models.Product
		if err := json.Unmarshal(raw, &saved); err != nil {
			// Malformed snapshot counts as no snapshot.
			m.log.Warn("refresh_snapshot_malformed", "error", err)
		} else if len(saved) > 0 {
			m.replace(saved)
			m.log.Info("refresh_snapshot_success", "count", len(saved))
			return
		}
	}

	seed := SeedProducts()
	m.replace(seed)
	m.persistLocal()
	m.log.Info("refresh_seeded", "count", len(seed))
}

// selectBounded races the remote select against the fetch timeout. The
// result channel is buffered so an abandoned request can still complete
// and be dropped without leaking the goroutine.
func (m *Manager) selectBounded(ctx context.Context) ([]map[string]any, error) {
	type outcome struct {
		rows []map[string]any
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		rows, err := m.gw.Select(ctx, productsTable, nil, "created_at DESC")
		ch <- outcome{rows: rows, err: err}
	}()

	select {
	case out := <-ch:
		return out.rows, out.err
	case <-time.After(m.timeout):
		return nil, ErrFetchTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// LastError reports the most recent recorded failure, nil when the last
// refresh or mutation ran clean. Recorded errors never block readiness.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Products returns a copy of the in-memory list.
func (m *Manager) Products() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, len(m.products))
	copy(out, m.products)
	return out
}

// GetByID looks the product up in the already-loaded list. Freshness
// comes from an explicit Refresh, not from per-lookup remote queries.
func (m *Manager) GetByID(id string) (models.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (m *Manager) GetFeatured() []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Product
	for _, p := range m.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// GetRelated returns up to limit products sharing the category of the
// given product, excluding it, in encounter order.
func (m *Manager) GetRelated(productID string, limit int) []models.Product {
	if limit <= 0 {
		limit = 4
	}
	current, ok := m.GetByID(productID)
	if !ok {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Product
	for _, p := range m.products {
		if p.ID == productID || p.Category != current.Category {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Add stores a new product. The remote gateway is attempted first; on
// availability failure the mutation still lands in memory and the local
// store with a locally generated identity. Only validation failures
// (slug conflict after the automatic suffix retry) reach the caller.
func (m *Manager) Add(ctx context.Context, p models.Product) (models.Product, error) {
	row := mapper.ToRow(p, m.slugs(""))

	if m.gw != nil {
		stored, err := m.gw.Insert(ctx, productsTable, row)
		if err == nil {
			created := mapper.FromRow(stored)
			m.mu.Lock()
			m.products = append(m.products, created)
			m.mu.Unlock()
			m.persistLocal()
			m.publish(ctx, "product_created", created.ID, created.Name)
			return created, nil
		}
		if gateway.IsConflict(err) {
			return models.Product{}, fmt.Errorf("slug already in use: %w", err)
		}
		m.recordErr(err)
		m.log.Warn("add_remote_failed", "error", err)
	}

	created := mapper.FromRow(row)
	created.ID = uuid.NewString()
	m.mu.Lock()
	m.products = append(m.products, created)
	m.mu.Unlock()
	m.persistLocal()
	m.publish(ctx, "product_created", created.ID, created.Name)
	return created, nil
}

// Update replaces the stored product keyed by identity. Unknown ids are
// a silent no-op in memory, mirroring the remote row-match semantics.
func (m *Manager) Update(ctx context.Context, p models.Product) (models.Product, error) {
	patch := mapper.ToRow(p, m.slugs(p.ID))
	updated := mapper.FromRow(patch)
	updated.ID = p.ID

	if m.gw != nil {
		err := m.gw.Update(ctx, productsTable, p.ID, patch)
		if err != nil {
			if gateway.IsConflict(err) {
				return models.Product{}, fmt.Errorf("slug already in use: %w", err)
			}
			m.recordErr(err)
			m.log.Warn("update_remote_failed", "id", p.ID, "error", err)
		}
	}

	m.mu.Lock()
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = updated
			break
		}
	}
	m.mu.Unlock()
	m.persistLocal()
	m.publish(ctx, "product_updated", updated.ID, updated.Name)
	return updated, nil
}

// Delete removes the product everywhere it can reach. Remote failures
// degrade to a local-only delete.
func (m *Manager) Delete(ctx context.Context, id string) {
	if m.gw != nil {
		if err := m.gw.Delete(ctx, productsTable, id); err != nil {
			m.recordErr(err)
			m.log.Warn("delete_remote_failed", "id", id, "error", err)
		}
	}

	m.mu.Lock()
	kept := m.products[:0]
	for _, p := range m.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.products = kept
	m.mu.Unlock()
	m.persistLocal()
	m.publish(ctx, "product_deleted", id, "")
}

func (m *Manager) replace(products []models.Product) {
	m.mu.Lock()
	m.products = products
	m.mu.Unlock()
}

func (m *Manager) recordErr(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

// slugs returns the slugs currently taken, excluding the product with
// excludeID so an update does not collide with itself.
func (m *Manager) slugs(excludeID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.products))
	for _, p := range m.products {
		if p.ID == excludeID {
			continue
		}
		out = append(out, p.Slug)
	}
	return out
}

func (m *Manager) persistLocal() {
	m.mu.RLock()
	raw, err := json.Marshal(m.products)
	m.mu.RUnlock()
	if err != nil {
		m.log.Error("persist_marshal_failed", "error", err)
		return
	}
	if err := m.store.Write(localstore.KeyProducts, raw); err != nil {
		m.log.Error("persist_write_failed", "error", err)
	}
}

func (m *Manager) publish(ctx context.Context, eventType, productID, name string) {
	event := map[string]any{
		"type":      eventType,
		"productID": productID,
	}
	if name != "" {
		event["name"] = name
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := m.producer.PublishEvent(pubCtx, "product_events", productID, event); err != nil {
		m.log.Error("kafka_publish_failed", "topic", "product_events", "error", err)
	}
}
