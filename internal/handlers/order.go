package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/3xa-store/storefront/internal/cart"
	"github.com/3xa-store/storefront/internal/catalog"
	"github.com/3xa-store/storefront/internal/logging"
	"github.com/3xa-store/storefront/internal/models"
	"github.com/3xa-store/storefront/internal/mykafka"
	"github.com/3xa-store/storefront/internal/orders"
)

type OrderHandler struct {
	Orders   *orders.Manager
	Cart     *cart.Manager
	Catalog  *catalog.Manager
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", "orders", event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "topic", "order_events", "error", err)
	}
}

// Checkout turns the current cart into an order: line items are copied
// out of the catalog (denormalized, so later product edits cannot
// rewrite history), the cart is cleared, and the order lands first in
// the history.
func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}
	if err := c.Bind(&req); err != nil {
		l.Error("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	lines := h.Cart.Lines()
	if len(lines) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := h.Catalog.GetByID(line.ProductID)
		if !ok {
			// Stale line; it contributes nothing to the order.
			continue
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Image:     product.Image,
		})
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
	}

	order := models.Order{
		ID:              uuid.NewString(),
		Date:            time.Now().UTC().Format(time.RFC3339),
		Items:           items,
		Total:           h.Cart.Total(),
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	h.Orders.AddOrder(order)
	h.Cart.Clear()

	h.publish(c, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.Total,
		"items":   len(order.Items),
	})
	l.Info("checkout_success", "orderID", order.ID, "total", order.Total)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Orders.List())
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, ok := h.Orders.GetOrderByID(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	return c.JSON(http.StatusOK, order)
}
