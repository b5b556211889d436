package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3xa-store/storefront/internal/models"
)

type productPage struct {
	Data []models.Product `json:"data"`
	Meta struct {
		Page       int  `json:"page"`
		Size       int  `json:"size"`
		Total      int  `json:"total"`
		TotalPages int  `json:"total_pages"`
		HasPrev    bool `json:"has_prev"`
		HasNext    bool `json:"has_next"`
	} `json:"meta"`
}

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[productPage](t, rec)
	require.Len(t, page.Data, 8)
	require.Equal(t, 8, page.Meta.Total)
	require.False(t, page.Meta.HasPrev)
	require.False(t, page.Meta.HasNext)
}

func TestGetProductsPagination(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/products?page=2&size=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[productPage](t, rec)
	require.Len(t, page.Data, 3)
	require.Equal(t, 2, page.Meta.Page)
	require.Equal(t, 3, page.Meta.TotalPages)
	require.True(t, page.Meta.HasPrev)
	require.True(t, page.Meta.HasNext)
	require.Equal(t, "4", page.Data[0].ID)
}

func TestGetProductsQueryAndCriteria(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/products?q=yoga", nil)
	page := decode[productPage](t, rec)
	require.Len(t, page.Data, 1)
	require.Equal(t, "8", page.Data[0].ID)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products?categories=electronics", nil)
	page = decode[productPage](t, rec)
	require.Len(t, page.Data, 4)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products?onDaraz=true", nil)
	page = decode[productPage](t, rec)
	require.Len(t, page.Data, 5)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products?minPrice=10000&maxPrice=30000", nil)
	page = decode[productPage](t, rec)
	require.Len(t, page.Data, 3)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products?q=wireless&categories=electronics&inStock=true", nil)
	page = decode[productPage](t, rec)
	require.Len(t, page.Data, 2)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[models.Product](t, rec)
	require.Equal(t, "Wireless Bluetooth Headphones", p.Name)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFeatured(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/products/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	featured := decode[[]models.Product](t, rec)
	require.Len(t, featured, 5)
}

func TestGetRelated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/products/1/related", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	related := decode[[]models.Product](t, rec)
	require.Len(t, related, 3)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products/1/related?limit=2", nil)
	related = decode[[]models.Product](t, rec)
	require.Len(t, related, 2)
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[[]models.Category](t, rec)
	require.Len(t, cats, 5)
	require.Equal(t, "Electronics", cats[0].Name)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/products", models.Product{Name: "X", Price: 1})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(t, http.MethodDelete, "/api/v1/admin/products/1", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/products", models.Product{
		Name:     "Mechanical Keyboard",
		Price:    8999,
		Category: "electronics",
		Stock:    10,
	}, ck)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[models.Product](t, rec)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "mechanical-keyboard", created.Slug)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)

	cases := []models.Product{
		{Name: "", Price: 10},
		{Name: "Bad Price", Price: -1},
		{Name: "Bad Rating", Price: 10, Rating: 6},
		{Name: "Bad Stock", Price: 10, Stock: -5},
	}
	for _, body := range cases {
		rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/products", body, ck)
		require.Equal(t, http.StatusBadRequest, rec.Code, "product %+v", body)
	}
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)

	body := models.Product{Name: "Renamed Headphones", Price: 10999, Category: "electronics", Stock: 4}
	rec := env.doJSON(t, http.MethodPut, "/api/v1/admin/products/1", body, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[models.Product](t, rec)
	require.Equal(t, "1", updated.ID)
	require.Equal(t, "Renamed Headphones", updated.Name)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products/1", nil)
	got := decode[models.Product](t, rec)
	require.Equal(t, "Renamed Headphones", got.Name)

	rec = env.doJSON(t, http.MethodPut, "/api/v1/admin/products/999", body, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)

	rec := env.doJSON(t, http.MethodDelete, "/api/v1/admin/products/1", nil, ck)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/api/v1/products/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshProducts(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/products/refresh", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[map[string]any](t, rec)
	require.Equal(t, "ready", resp["status"])
	require.Equal(t, float64(8), resp["count"])
	require.NotContains(t, resp, "warning")
}

func TestGatewayStatusUnconfigured(t *testing.T) {
	env := newTestEnv(t)
	ck := env.login(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/admin/gateway/status", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[map[string]any](t, rec)
	require.Equal(t, false, resp["configured"])
	require.Equal(t, false, resp["ok"])
}
