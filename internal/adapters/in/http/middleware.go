package http

import (
	"net/http"

	"foodcourt/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// SessionMiddleware authenticates requests from the session cookie and
// stores the resulting principal in the request context. Requests without a
// valid session are rejected with 401.
func SessionMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			principal, err := tokens.Verify(cookie.Value)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired session",
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// RequireRole rejects authenticated callers acting in the wrong role.
// Admins pass every role guard.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, ok := principalFrom(ctx)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			if !principal.IsRole(role) && !principal.IsRole(auth.RoleAdmin) {
				return ctx.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Message: "Insufficient role",
				})
			}

			return next(ctx)
		}
	}
}

func principalFrom(ctx echo.Context) (auth.Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(auth.Principal)
	return principal, ok
}
