package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/3xa-store/storefront/internal/cart"
	"github.com/3xa-store/storefront/internal/catalog"
	"github.com/3xa-store/storefront/internal/categories"
	"github.com/3xa-store/storefront/internal/config"
	"github.com/3xa-store/storefront/internal/gateway"
	"github.com/3xa-store/storefront/internal/handlers"
	"github.com/3xa-store/storefront/internal/localstore"
	"github.com/3xa-store/storefront/internal/logging"
	"github.com/3xa-store/storefront/internal/models"
	"github.com/3xa-store/storefront/internal/mykafka"
	"github.com/3xa-store/storefront/internal/orders"
	httpserver "github.com/3xa-store/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	store, err := localstore.Open(configuration.LOCAL_STORE_PATH)
	if err != nil {
		log.Fatalf("local store init error: %v", err)
	}

	// The remote tier is resolved exactly once per process. Anything
	// short of a working connection routes the whole session to the
	// local store.
	var gw *gateway.Client
	if configuration.RemoteConfigured() {
		gw, err = gateway.New(context.Background(), configuration.DATABASE_URL, configuration.DATABASE_KEY)
		if err != nil {
			logger.Warn("remote gateway unavailable, using local store", "error", err)
			gw = nil
		}
	} else {
		logger.Info("remote gateway not configured, using local store")
	}

	prod := mykafka.NewProducer(configuration.KAFKA_ADDRESS)

	var catalogGW catalog.Gateway
	var categoryGW categories.Gateway
	if gw != nil {
		catalogGW = gw
		categoryGW = gw
	}

	catalogMgr := catalog.New(catalogGW, store, prod, logger, configuration.FetchTimeout)
	catalogMgr.Refresh(context.Background())

	resolve := func(id string) (models.Product, bool) { return catalogMgr.GetByID(id) }
	cartMgr := cart.New(store, resolve, logger)
	orderMgr := orders.New(store, logger)
	categoryMgr := categories.New(categoryGW, logger)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		ProductHandler: &handlers.ProductHandler{Catalog: catalogMgr, Categories: categoryMgr, Gateway: gw},
		CartHandler:    &handlers.CartHandler{Cart: cartMgr, Catalog: catalogMgr, Producer: prod},
		OrderHandler:   &handlers.OrderHandler{Orders: orderMgr, Cart: cartMgr, Catalog: catalogMgr, Producer: prod},
		AuthHandler: &handlers.AuthHandler{
			JWTSecret:         []byte(configuration.JWT_SECRET),
			AdminUsername:     configuration.ADMIN_USERNAME,
			AdminPasswordHash: configuration.ADMIN_PASSWORD_HASH,
			Store:             store,
		},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if gw != nil {
		if err := gw.Close(); err != nil {
			logger.Error("gateway close error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("local store close error", "error", err)
	}
	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
