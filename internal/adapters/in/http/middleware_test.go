package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/ports"
	"foodcourt/internal/pkg/auth"
	"foodcourt/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()

	manager, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return manager
}

func protectedEcho(t *testing.T, tokens *auth.TokenManager, role string) *echo.Echo {
	t.Helper()

	e := echo.New()
	group := e.Group("/protected", SessionMiddleware(tokens))
	group.GET("", func(ctx echo.Context) error {
		principal, _ := principalFrom(ctx)
		return ctx.String(http.StatusOK, principal.Role)
	}, RequireRole(role))
	return e
}

func requestWithSession(t *testing.T, tokens *auth.TokenManager, principal auth.Principal) *http.Request {
	t.Helper()

	token, err := tokens.Sign(principal)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(tokens.NewSessionCookie(token))
	return req
}

func TestSessionMiddleware(t *testing.T) {
	tokens := newTokenManager(t)
	e := protectedEcho(t, tokens, auth.RoleRestaurant)

	t.Run("missing cookie yields 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered token yields 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "tampered"})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session reaches the handler", func(t *testing.T) {
		req := requestWithSession(t, tokens, auth.Principal{
			ID:   kernel.NewUUID(),
			Role: auth.RoleRestaurant,
			Name: "Pizzaria",
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, auth.RoleRestaurant, rec.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	tokens := newTokenManager(t)
	e := protectedEcho(t, tokens, auth.RoleRestaurant)

	t.Run("wrong role yields 403", func(t *testing.T) {
		req := requestWithSession(t, tokens, auth.Principal{
			ID:   kernel.NewUUID(),
			Role: auth.RoleCustomer,
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes any role guard", func(t *testing.T) {
		req := requestWithSession(t, tokens, auth.Principal{
			ID:   kernel.NewUUID(),
			Role: auth.RoleAdmin,
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", errs.NewObjectNotFoundError("orderId", "x"), http.StatusNotFound},
		{"version conflict", errs.NewVersionIsInvalidError("order", nil), http.StatusConflict},
		{"invalid value", errs.NewValueIsInvalidError("total"), http.StatusBadRequest},
		{"missing value", errs.NewValueIsRequiredError("name"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("score", 9, 1, 5), http.StatusBadRequest},
		{"closed order", order.ErrOrderIsClosed, http.StatusBadRequest},
		{"not closed yet", order.ErrOrderIsNotClosed, http.StatusBadRequest},
		{"already rated", order.ErrOrderIsAlreadyRated, http.StatusBadRequest},
		{"foreign driver", order.ErrOrderNotAssignedToDriver, http.StatusBadRequest},
		{"upstream down", fmt.Errorf("geocode: %w", ports.ErrUpstreamUnavailable), http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, writeError(ctx, tt.err))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
