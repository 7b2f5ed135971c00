package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/application/services"
	"contacts-service/internal/domain/entities"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type requestEmailRequest struct {
	Email string `json:"email"`
}

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(g *echo.Group) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/confirmed_email/:token", h.confirmEmail)
	g.POST("/request_email", h.requestEmail)
	g.POST("/forgot_password", h.forgotPassword)
	g.GET("/reset_password/:token", h.resetPasswordForm)
	g.POST("/reset_password/:token", h.resetPassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "username, email and password are required")
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password, entities.Role(req.Role), baseURL(c))
	if err != nil {
		if apperrors.IsConflict(err) {
			return err // 409 via the central handler
		}
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return err
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *AuthHandler) login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.auth.Login(c.Request().Context(), username, password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) confirmEmail(c echo.Context) error {
	message, err := h.auth.ConfirmEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Verification error")
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}

func (h *AuthHandler) requestEmail(c echo.Context) error {
	var req requestEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	message, err := h.auth.RequestEmailConfirmation(c.Request().Context(), req.Email, baseURL(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req requestEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// Accepted regardless of whether the account exists.
	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email, baseURL(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "Check your email for the reset link"})
}

func (h *AuthHandler) resetPasswordForm(c echo.Context) error {
	token := c.Param("token")
	user, err := h.auth.VerifyResetToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The reset link is invalid or has expired")
	}
	return c.Render(http.StatusOK, "reset_password", map[string]any{
		"Username": user.Username,
		"Action":   fmt.Sprintf("/api/auth/reset_password/%s", token),
	})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	password := c.FormValue("password")
	if password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	if err := h.auth.ResetPassword(c.Request().Context(), c.Param("token"), password); err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return echo.NewHTTPError(http.StatusBadRequest, "The reset link is invalid or has expired")
		}
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: services.MsgPasswordReset})
}

// baseURL rebuilds the externally visible origin for links embedded in
// outgoing email.
func baseURL(c echo.Context) string {
	return fmt.Sprintf("%s://%s", c.Scheme(), c.Request().Host)
}
