package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contacts-service/internal/application/services"
	"contacts-service/internal/domain/entities"
)

type UserHandler struct {
	auth  *services.AuthService
	users *services.UserService

	profileRateLimit int
}

func NewUserHandler(auth *services.AuthService, users *services.UserService, profileRateLimit int) *UserHandler {
	return &UserHandler{auth: auth, users: users, profileRateLimit: profileRateLimit}
}

func (h *UserHandler) Register(g *echo.Group) {
	g.Use(bearerAuth(h.auth))
	g.GET("/me", h.me, rateLimit(h.profileRateLimit))
	g.PATCH("/avatar", h.updateAvatar)
	g.GET("", h.list, requireRole(h.auth, entities.RoleAdmin))
}

func (h *UserHandler) me(c echo.Context) error {
	return c.JSON(http.StatusOK, newUserResponse(currentUser(c)))
}

func (h *UserHandler) updateAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "a 'file' upload is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	updated, err := h.users.UpdateAvatar(c.Request().Context(), currentUser(c), file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(updated))
}

func (h *UserHandler) list(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponses(users))
}
