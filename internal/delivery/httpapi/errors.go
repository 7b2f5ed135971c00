package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
)

// httpErrorHandler maps the service error taxonomy onto status codes. Rate
// limiting and handler-level echo.HTTPErrors pass through untouched.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		writeHTTPError(c, httpErr)
		return
	}

	var conflict *apperrors.ConflictError
	var validation entities.ValidationError
	switch {
	case errors.As(err, &validation):
		writeDetail(c, http.StatusUnprocessableEntity, validation.Error())
	case errors.As(err, &conflict):
		// Default for conflicts outside a handler-chosen status.
		writeDetail(c, http.StatusConflict, conflict.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		writeDetail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		writeDetail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		writeDetail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidToken):
		writeDetail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		c.Logger().Error(err)
		writeDetail(c, http.StatusInternalServerError, "internal server error")
	}
}

func writeHTTPError(c echo.Context, httpErr *echo.HTTPError) {
	if msg, ok := httpErr.Message.(string); ok {
		writeDetail(c, httpErr.Code, msg)
		return
	}
	_ = c.JSON(httpErr.Code, httpErr.Message)
}

func writeDetail(c echo.Context, code int, detail string) {
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, detailResponse{Detail: detail})
}
