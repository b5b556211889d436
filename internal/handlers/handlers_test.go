package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/3xa-store/storefront/internal/cart"
	"github.com/3xa-store/storefront/internal/catalog"
	"github.com/3xa-store/storefront/internal/categories"
	"github.com/3xa-store/storefront/internal/handlers"
	"github.com/3xa-store/storefront/internal/hash"
	"github.com/3xa-store/storefront/internal/localstore"
	"github.com/3xa-store/storefront/internal/logging"
	"github.com/3xa-store/storefront/internal/models"
	"github.com/3xa-store/storefront/internal/orders"
	httpserver "github.com/3xa-store/storefront/internal/transport/http"
)

const (
	testAdminPassword = "correct-horse"
	testJWTSecret     = "test-secret"
)

type testEnv struct {
	e       *echo.Echo
	store   *localstore.Store
	catalog *catalog.Manager
	cart    *cart.Manager
	orders  *orders.Manager
}

// newTestEnv wires the full stack against an in-memory store with no
// remote gateway: the catalog refreshes straight into the bundled seed.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	adminHash, err := hash.HashPassword(testAdminPassword)
	require.NoError(t, err)
	return newTestEnvWithAdmin(t, adminHash)
}

func newTestEnvWithAdmin(t *testing.T, adminHash string) *testEnv {
	t.Helper()

	store, err := localstore.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	catalogMgr := catalog.New(nil, store, nil, logger, time.Second)
	catalogMgr.Refresh(context.Background())

	resolve := func(id string) (models.Product, bool) { return catalogMgr.GetByID(id) }
	cartMgr := cart.New(store, resolve, logger)
	orderMgr := orders.New(store, logger)
	categoryMgr := categories.New(nil, logger)

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		ProductHandler: &handlers.ProductHandler{Catalog: catalogMgr, Categories: categoryMgr},
		CartHandler:    &handlers.CartHandler{Cart: cartMgr, Catalog: catalogMgr},
		OrderHandler:   &handlers.OrderHandler{Orders: orderMgr, Cart: cartMgr, Catalog: catalogMgr},
		AuthHandler: &handlers.AuthHandler{
			JWTSecret:         []byte(testJWTSecret),
			AdminUsername:     "admin",
			AdminPasswordHash: adminHash,
			Store:             store,
		},
	})

	return &testEnv{e: e, store: store, catalog: catalogMgr, cart: cartMgr, orders: orderMgr}
}

func (env *testEnv) doJSON(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "admin",
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			return ck
		}
	}
	t.Fatal("login response carried no access token cookie")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
