package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/3xa-store/storefront/internal/localstore"
	"github.com/3xa-store/storefront/internal/models"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "admin",
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	user := decode[models.User](t, rec)
	require.Equal(t, "admin", user.Username)
	require.Equal(t, "admin", user.Role)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	// The session snapshot lands in the local store.
	raw, ok := env.store.Read(localstore.KeyUser)
	require.True(t, ok)
	var saved models.User
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Equal(t, "admin", saved.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "root",
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginNotConfigured(t *testing.T) {
	env := newTestEnvWithAdmin(t, "")

	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "admin",
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/admin/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "accessToken" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)

	_, ok := env.store.Read(localstore.KeyUser)
	require.False(t, ok)
}

func TestRequireAdminRejectsForgedToken(t *testing.T) {
	env := newTestEnv(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	rec := env.doJSON(t, http.MethodDelete, "/api/v1/admin/products/1", nil,
		&http.Cookie{Name: "accessToken", Value: signed})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsNonAdminRole(t *testing.T) {
	env := newTestEnv(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "viewer",
		"role": "viewer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	rec := env.doJSON(t, http.MethodDelete, "/api/v1/admin/products/1", nil,
		&http.Cookie{Name: "accessToken", Value: signed})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	rec := env.doJSON(t, http.MethodDelete, "/api/v1/admin/products/1", nil,
		&http.Cookie{Name: "accessToken", Value: signed})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
