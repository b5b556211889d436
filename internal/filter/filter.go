// Package filter narrows the in-memory catalog with declarative
// criteria. Pure functions over the already-loaded list; nothing here
// touches a backend.
package filter

import (
	"strings"

	"github.com/3xa-store/storefront/internal/models"
)

// Criteria are conjunctive: every present criterion must hold. There is
// no brand facet; Product carries no brand attribute.
type Criteria struct {
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    bool
	OnDaraz    bool
}

// FilterProducts applies the free-text query and the criteria. The
// query is a case-insensitive substring match over name, description
// and category.
func FilterProducts(products []models.Product, query string, c *Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range products {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if c != nil && !matchesCriteria(p, c) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p models.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func matchesCriteria(p models.Product, c *Criteria) bool {
	if len(c.Categories) > 0 {
		found := false
		for _, cat := range c.Categories {
			if p.Category == cat {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.InStock && p.Stock <= 0 {
		return false
	}
	if c.OnDaraz && p.DarazLink == "" {
		return false
	}
	return true
}
