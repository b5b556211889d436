package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/3xa-store/storefront/internal/hash"
	"github.com/3xa-store/storefront/internal/localstore"
	"github.com/3xa-store/storefront/internal/logging"
	"github.com/3xa-store/storefront/internal/models"
)

const accessTokenTTL = 12 * time.Hour

// AuthHandler guards the admin back-office with a single configured
// credential. There is no user registration; storefront routes are
// public.
type AuthHandler struct {
	JWTSecret         []byte
	AdminUsername     string
	AdminPasswordHash string
	Store             *localstore.Store
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if h.AdminPasswordHash == "" {
		l.Warn("login_rejected", "reason", "admin credential not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "admin login is not configured")
	}
	if req.Username != h.AdminUsername || !hash.CheckPassword(h.AdminPasswordHash, req.Password) {
		l.Warn("login_rejected", "reason", "bad credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	expires := time.Now().Add(accessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  h.AdminUsername,
		"role": "admin",
		"exp":  expires.Unix(),
	})
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}

	c.SetCookie(CreateCookie("accessToken", signed, "/", expires))

	user := models.User{ID: "1", Username: h.AdminUsername, Role: "admin"}
	if raw, err := json.Marshal(user); err == nil {
		if err := h.Store.Write(localstore.KeyUser, raw); err != nil {
			l.Warn("login_user_snapshot_failed", "error", err)
		}
	}

	l.Info("login_success", "username", h.AdminUsername)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(CreateCookie("accessToken", "", "/", time.Unix(0, 0)))
	if err := h.Store.Delete(localstore.KeyUser); err != nil {
		logging.FromContext(c.Request().Context()).Warn("logout_user_snapshot_failed", "error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RequireAdmin validates the access token cookie and the admin role
// claim.
func (h *AuthHandler) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie("accessToken")
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
		}

		token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return h.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
		}
		if role, _ := claims["role"].(string); role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}

		c.Set("username", claims["sub"])
		return next(c)
	}
}
