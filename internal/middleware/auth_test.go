package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/lib/authz"
	"pressroom/internal/middleware"
)

func TestAdminOnly(t *testing.T) {
	guard := authz.NewAllowList("admin@example.com")

	e := echo.New()
	handler := middleware.AdminOnly(guard)(func(c echo.Context) error {
		identity, ok := middleware.IdentityFrom(c)
		require.True(t, ok)
		return c.String(http.StatusOK, identity.Email)
	})

	t.Run("anonymous request is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unlisted email is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-Email", "reader@example.com")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("listed email passes through with identity attached", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-Email", "Admin@Example.com")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin@example.com", rec.Body.String())
	})
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := middleware.RequestID(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("echoes back a client-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "trace-42")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, "trace-42", rec.Header().Get(middleware.RequestIDHeader))
	})
}
