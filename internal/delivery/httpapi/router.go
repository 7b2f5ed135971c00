package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"contacts-service/internal/application/services"
	"contacts-service/internal/config"
)

// NewRouter wires middleware and all route groups onto a fresh echo instance.
func NewRouter(cfg *config.Config, auth *services.AuthService, users *services.UserService, contacts *services.ContactService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler
	e.Renderer = newHTMLRenderer()

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	api := e.Group("/api")
	api.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, messageResponse{Message: "ok"})
	})

	NewAuthHandler(auth).Register(api.Group("/auth"))
	NewUserHandler(auth, users, cfg.ProfileRateLimit).Register(api.Group("/users"))
	NewContactHandler(auth, contacts).Register(api.Group("/contacts"))

	return e
}
