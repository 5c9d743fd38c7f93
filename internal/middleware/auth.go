package middleware

import (
	"github.com/labstack/echo/v4"

	"pressroom/internal/apperr"
	"pressroom/internal/lib/authz"
)

const identityContextKey = "identity"

// AdminOnly gates a route group behind the admin allow-list. The caller
// identifies itself either with a plain X-User-Email header or with a bearer
// token carrying an email claim.
func AdminOnly(guard authz.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := guard.Authorize(
				c.Request().Header.Get("Authorization"),
				c.Request().Header.Get("X-User-Email"),
			)
			if err != nil {
				return c.JSON(apperr.HTTPStatus(err), map[string]string{
					"error": apperr.Message(err),
				})
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the admin identity attached by AdminOnly, if any.
func IdentityFrom(c echo.Context) (authz.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(authz.Identity)
	return identity, ok
}
