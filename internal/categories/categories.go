// Package categories serves the category list: remote when the gateway
// is configured and reachable, builtin fallback otherwise.
package categories

import (
	"context"
	"log/slog"

	"github.com/3xa-store/storefront/internal/mapper"
	"github.com/3xa-store/storefront/internal/models"
)

type Gateway interface {
	Select(ctx context.Context, table string, filter map[string]any, orderBy string) ([]map[string]any, error)
}

type Manager struct {
	gw  Gateway // nil when the remote tier is not configured
	log *slog.Logger
}

func New(gw Gateway, log *slog.Logger) *Manager {
	return &Manager{gw: gw, log: log.With("component", "categories")}
}

// List returns the remote categories ordered by name, or the builtin
// list when the remote tier is unavailable.
func (m *Manager) List(ctx context.Context) []models.Category {
	if m.gw != nil {
		rows, err := m.gw.Select(ctx, "categories", nil, "name ASC")
		if err == nil {
			out := make([]models.Category, 0, len(rows))
			for _, row := range rows {
				out = append(out, fromRow(row))
			}
			return out
		}
		m.log.Warn("categories_remote_failed", "error", err)
	}
	return Builtin()
}

func fromRow(row map[string]any) models.Category {
	c := models.Category{}
	if v, ok := row["id"].(string); ok {
		c.ID = v
	}
	if v, ok := row["name"].(string); ok {
		c.Name = v
	}
	if v, ok := row["slug"].(string); ok {
		c.Slug = v
	}
	if v, ok := row["description"].(string); ok {
		c.Description = v
	}
	if c.Slug == "" {
		c.Slug = mapper.Slugify(c.Name)
	}
	return c
}

// Builtin is the fixed category list used without a remote backend.
func Builtin() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Electronics", Slug: "electronics", Description: "Electronic devices"},
		{ID: "2", Name: "Clothing", Slug: "clothing", Description: "Apparel and accessories"},
		{ID: "3", Name: "Home & Kitchen", Slug: "home-kitchen", Description: "Home goods and furniture"},
		{ID: "4", Name: "Books", Slug: "books", Description: "Books and publications"},
		{ID: "5", Name: "Toys & Games", Slug: "toys-games", Description: "Toys and games for all ages"},
	}
}
