package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/3xa-store/storefront/internal/catalog"
	"github.com/3xa-store/storefront/internal/categories"
	"github.com/3xa-store/storefront/internal/filter"
	"github.com/3xa-store/storefront/internal/gateway"
	"github.com/3xa-store/storefront/internal/logging"
	"github.com/3xa-store/storefront/internal/models"
	"github.com/3xa-store/storefront/internal/util"
)

type ProductHandler struct {
	Catalog    *catalog.Manager
	Categories *categories.Manager
	Gateway    *gateway.Client // nil when the remote tier is not configured
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	crit := criteriaFromQuery(c)
	q := c.QueryParam("q")
	filtered := filter.FilterProducts(h.Catalog.Products(), q, crit)

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	l.Info("get_products_success", "total", total, "page", page)
	return c.JSON(http.StatusOK, map[string]any{
		"data": filtered[offset:end],
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    end < total,
		},
	})
}

func criteriaFromQuery(c echo.Context) *filter.Criteria {
	crit := &filter.Criteria{
		InStock: c.QueryParam("inStock") == "true",
		OnDaraz: c.QueryParam("onDaraz") == "true",
	}
	if raw := c.QueryParam("categories"); raw != "" {
		crit.Categories = strings.Split(raw, ",")
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		min := float64(util.ParseIntDefault(raw, 0))
		crit.MinPrice = &min
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		max := float64(util.ParseIntDefault(raw, 0))
		crit.MaxPrice = &max
	}
	return crit
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, ok := h.Catalog.GetByID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetFeatured(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.GetFeatured())
}

func (h *ProductHandler) GetRelated(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), 4)
	return c.JSON(http.StatusOK, h.Catalog.GetRelated(c.Param("id"), limit))
}

func (h *ProductHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Categories.List(c.Request().Context()))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req models.Product
	if err := c.Bind(&req); err != nil {
		l.Error("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := validateProduct(&req); err != nil {
		l.Error("product_create_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.Catalog.Add(ctx, req)
	if err != nil {
		l.Error("product_create_error", "status", 409, "reason", "slug conflict", "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	l.Info("create_product_success", "productID", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id := c.Param("id")
	if _, ok := h.Catalog.GetByID(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	var req models.Product
	if err := c.Bind(&req); err != nil {
		l.Error("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.ID = id
	if err := validateProduct(&req); err != nil {
		l.Error("product_update_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.Catalog.Update(ctx, req)
	if err != nil {
		l.Error("product_update_error", "status", 409, "reason", "slug conflict", "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	l.Info("update_product_success", "productID", id)
	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id := c.Param("id")
	h.Catalog.Delete(ctx, id)

	l.Info("delete_product_success", "productID", id)
	return c.NoContent(http.StatusNoContent)
}

// RefreshProducts re-runs the fallback chain and reports where the
// catalog ended up. A recorded failure is returned as a dismissible
// warning, not an error status.
func (h *ProductHandler) RefreshProducts(c echo.Context) error {
	ctx := c.Request().Context()
	h.Catalog.Refresh(ctx)

	resp := map[string]any{
		"status": h.Catalog.Status(),
		"count":  len(h.Catalog.Products()),
	}
	if err := h.Catalog.LastError(); err != nil {
		resp["warning"] = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

// GatewayStatus runs the diagnostic connectivity probe. It never
// influences routing; the fallback decision was made at startup.
func (h *ProductHandler) GatewayStatus(c echo.Context) error {
	if h.Gateway == nil {
		return c.JSON(http.StatusOK, map[string]any{
			"configured": false,
			"ok":         false,
			"message":    gateway.ErrNotConfigured.Error(),
		})
	}
	ok, message := h.Gateway.Probe(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"configured": true,
		"ok":         ok,
		"message":    message,
	})
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return errEmptyName
	}
	if p.Price < 0 {
		return errNegativePrice
	}
	if p.SalePrice != nil && *p.SalePrice < 0 {
		return errNegativePrice
	}
	if p.Rating < 0 || p.Rating > 5 {
		return errRatingRange
	}
	if p.Stock < 0 {
		return errNegativeStock
	}
	return nil
}
