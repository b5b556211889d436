package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/3xa-store/storefront/internal/cart"
	"github.com/3xa-store/storefront/internal/catalog"
	"github.com/3xa-store/storefront/internal/logging"
	"github.com/3xa-store/storefront/internal/models"
	"github.com/3xa-store/storefront/internal/mykafka"
)

type CartHandler struct {
	Cart     *cart.Manager
	Catalog  *catalog.Manager
	Producer *mykafka.Producer
}

// cartLineView is a cart line with its product resolved against the
// live catalog. Product is null when it no longer resolves.
type cartLineView struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   *models.Product `json:"product,omitempty"`
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", "cart", event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "topic", "cart_events", "error", err)
	}
}

func (h *CartHandler) summary() map[string]any {
	lines := h.Cart.Lines()
	views := make([]cartLineView, 0, len(lines))
	for _, l := range lines {
		view := cartLineView{ProductID: l.ProductID, Quantity: l.Quantity}
		if p, ok := h.Catalog.GetByID(l.ProductID); ok {
			view.Product = &p
		}
		views = append(views, view)
	}
	return map[string]any{
		"items": views,
		"total": h.Cart.Total(),
		"count": h.Cart.Count(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.summary())
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, ok := h.Catalog.GetByID(req.ProductID)
	if !ok {
		l.Warn("add_to_cart_error", "status", 404, "reason", "unknown product", "productID", req.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.Cart.AddItem(product, req.Quantity)
	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"productID": req.ProductID,
		"quantity":  req.Quantity,
	})
	return c.JSON(http.StatusOK, h.summary())
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// Quantities below one are ignored by the manager; the cart stays
	// as it was and the response reflects that.
	productID := c.Param("id")
	h.Cart.UpdateQuantity(productID, req.Quantity)
	h.publish(c, map[string]any{
		"type":      "cart_quantity_updated",
		"productID": productID,
		"quantity":  req.Quantity,
	})
	return c.JSON(http.StatusOK, h.summary())
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID := c.Param("id")
	h.Cart.RemoveItem(productID)
	h.publish(c, map[string]any{
		"type":      "cart_item_removed",
		"productID": productID,
	})
	return c.JSON(http.StatusOK, h.summary())
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	h.Cart.Clear()
	h.publish(c, map[string]any{"type": "cart_cleared"})
	return c.JSON(http.StatusOK, h.summary())
}
