package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"contacts-service/internal/application/services"
	"contacts-service/internal/domain/entities"
)

const userContextKey = "user"

// bearerAuth resolves the Authorization header through the authentication
// gate and stores the user on the request context.
func bearerAuth(auth *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// requireRole rejects requests whose authenticated user lacks the role.
func requireRole(auth *services.AuthService, role entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := auth.RequireRole(currentUser(c), role); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// rateLimit allows n requests per minute per client address and answers 429
// beyond that.
func rateLimit(perMinute int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(float64(perMinute) / 60.0),
		Burst: perMinute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many requests."})
		},
	})
}

// currentUser returns the user the auth middleware stored on the context.
func currentUser(c echo.Context) *entities.User {
	user, _ := c.Get(userContextKey).(*entities.User)
	return user
}
