package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Middleware validates the bearer token on every request and stores the
// resulting principal on the request context for services to consume.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			principal, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := WithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
