package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/application/services"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
)

const defaultSeedCount = 100

// contactRequest is the wire shape for create and update. All fields are
// pointers so partial updates can distinguish "absent" from "empty".
type contactRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`
}

type ContactHandler struct {
	auth     *services.AuthService
	contacts *services.ContactService
}

func NewContactHandler(auth *services.AuthService, contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{auth: auth, contacts: contacts}
}

func (h *ContactHandler) Register(g *echo.Group) {
	g.Use(bearerAuth(h.auth))
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/birthdays", h.listBirthdays)
	g.POST("/seed", h.seed)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *ContactHandler) list(c echo.Context) error {
	filter := repositories.ContactFilter{
		FirstName: c.QueryParam("first_name"),
		LastName:  c.QueryParam("last_name"),
		Email:     c.QueryParam("email"),
	}
	if skip, err := strconv.Atoi(c.QueryParam("skip")); err == nil && skip > 0 {
		filter.Skip = skip
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		filter.Limit = limit
	}

	contacts, err := h.contacts.List(c.Request().Context(), currentUser(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newContactResponses(contacts))
}

func (h *ContactHandler) listBirthdays(c echo.Context) error {
	contacts, err := h.contacts.ListUpcomingBirthdays(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newContactResponses(contacts))
}

func (h *ContactHandler) get(c echo.Context) error {
	contactID, err := contactIDParam(c)
	if err != nil {
		return err
	}
	contact, err := h.contacts.Get(c.Request().Context(), currentUser(c), contactID)
	if err != nil {
		return notFoundAsContactError(err)
	}
	return c.JSON(http.StatusOK, newContactResponse(contact))
}

func (h *ContactHandler) create(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.FirstName == nil || req.Phone == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "first_name and phone are required")
	}

	contact := entities.Contact{
		FirstName: *req.FirstName,
		Phone:     *req.Phone,
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "date_of_birth must be formatted YYYY-MM-DD")
		}
		contact.DateOfBirth = &dob
	}

	created, err := h.contacts.Create(c.Request().Context(), currentUser(c), &contact)
	if err != nil {
		return contactWriteError(err)
	}
	return c.JSON(http.StatusCreated, newContactResponse(created))
}

func (h *ContactHandler) update(c echo.Context) error {
	contactID, err := contactIDParam(c)
	if err != nil {
		return err
	}
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	update := entities.ContactUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "date_of_birth must be formatted YYYY-MM-DD")
		}
		update.DateOfBirth = &dob
	}

	updated, err := h.contacts.Update(c.Request().Context(), currentUser(c), contactID, update)
	if err != nil {
		return contactWriteError(err)
	}
	return c.JSON(http.StatusOK, newContactResponse(updated))
}

func (h *ContactHandler) remove(c echo.Context) error {
	contactID, err := contactIDParam(c)
	if err != nil {
		return err
	}
	deleted, err := h.contacts.Delete(c.Request().Context(), currentUser(c), contactID)
	if err != nil {
		return notFoundAsContactError(err)
	}
	return c.JSON(http.StatusOK, newContactResponse(deleted))
}

func (h *ContactHandler) seed(c echo.Context) error {
	count := defaultSeedCount
	if parsed, err := strconv.Atoi(c.QueryParam("count")); err == nil && parsed > 0 {
		count = parsed
	}

	if err := h.contacts.Seed(c.Request().Context(), currentUser(c), count); err != nil {
		return contactWriteError(err)
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: fmt.Sprintf("%d contacts created successfully", count)})
}

func contactIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "contact id must be a positive integer")
	}
	return uint(id), nil
}

// contactWriteError turns uniqueness conflicts and validation failures into
// the 422 responses this resource uses.
func contactWriteError(err error) error {
	if apperrors.IsConflict(err) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return notFoundAsContactError(err)
}

func notFoundAsContactError(err error) error {
	if err == apperrors.ErrNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "Contact not found")
	}
	return err
}
