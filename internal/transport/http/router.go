package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/3xa-store/storefront/internal/handlers"
)

type Deps struct {
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	AuthHandler    *handlers.AuthHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/featured", d.ProductHandler.GetFeatured)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/:id/related", d.ProductHandler.GetRelated)

	v1.GET("/categories", d.ProductHandler.GetCategories)

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.ClearCart)

	v1.POST("/checkout", d.OrderHandler.Checkout)
	v1.GET("/orders", d.OrderHandler.ListOrders)
	v1.GET("/orders/:id", d.OrderHandler.GetOrder)

	v1.POST("/admin/login", d.AuthHandler.Login)
	v1.POST("/admin/logout", d.AuthHandler.Logout)

	admin := v1.Group("/admin", d.AuthHandler.RequireAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/products/refresh", d.ProductHandler.RefreshProducts)
	admin.GET("/gateway/status", d.ProductHandler.GatewayStatus)
}
