package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3xa-store/storefront/internal/models"
)

func fixtures() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Wireless Bluetooth Headphones", Description: "Noise cancellation", Category: "electronics", Price: 12999, Stock: 15, DarazLink: "https://daraz.pk/p/1"},
		{ID: "2", Name: "Smart Watch Series 5", Description: "Fitness tracking", Category: "electronics", Price: 19999, Stock: 8, DarazLink: "https://daraz.pk/p/2"},
		{ID: "3", Name: "Ergonomic Office Chair", Description: "Lumbar support", Category: "home", Price: 24999, Stock: 0},
		{ID: "4", Name: "Yoga Mat", Description: "Non-slip surface", Category: "fitness", Price: 2499, Stock: 30},
	}
}

func TestQueryMatchesNameDescriptionCategory(t *testing.T) {
	products := fixtures()

	got := FilterProducts(products, "headphones", nil)
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].ID)

	got = FilterProducts(products, "lumbar", nil)
	require.Len(t, got, 1)
	require.Equal(t, "3", got[0].ID)

	got = FilterProducts(products, "ELECTRONICS", nil)
	require.Len(t, got, 2)
}

func TestEmptyQueryMatchesAll(t *testing.T) {
	products := fixtures()
	require.Len(t, FilterProducts(products, "", nil), 4)
	require.Len(t, FilterProducts(products, "   ", nil), 4)
}

func TestCategoryCriterion(t *testing.T) {
	got := FilterProducts(fixtures(), "", &Criteria{Categories: []string{"fitness", "home"}})
	require.Len(t, got, 2)
	require.Equal(t, "3", got[0].ID)
	require.Equal(t, "4", got[1].ID)
}

func TestPriceRange(t *testing.T) {
	min, max := 10000.0, 20000.0
	got := FilterProducts(fixtures(), "", &Criteria{MinPrice: &min, MaxPrice: &max})
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "2", got[1].ID)

	// Boundaries are inclusive.
	exact := 2499.0
	got = FilterProducts(fixtures(), "", &Criteria{MinPrice: &exact, MaxPrice: &exact})
	require.Len(t, got, 1)
	require.Equal(t, "4", got[0].ID)
}

func TestInStock(t *testing.T) {
	got := FilterProducts(fixtures(), "", &Criteria{InStock: true})
	require.Len(t, got, 3)
	for _, p := range got {
		require.Positive(t, p.Stock)
	}
}

func TestOnDaraz(t *testing.T) {
	got := FilterProducts(fixtures(), "", &Criteria{OnDaraz: true})
	require.Len(t, got, 2)
	for _, p := range got {
		require.NotEmpty(t, p.DarazLink)
	}
}

func TestCriteriaAreConjunctive(t *testing.T) {
	min := 15000.0
	got := FilterProducts(fixtures(), "smart", &Criteria{
		Categories: []string{"electronics"},
		MinPrice:   &min,
		InStock:    true,
		OnDaraz:    true,
	})
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	// Tighten one criterion and the intersection empties.
	max := 15000.0
	got = FilterProducts(fixtures(), "smart", &Criteria{MaxPrice: &max})
	require.Empty(t, got)
}
