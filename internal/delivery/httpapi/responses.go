package httpapi

import (
	"time"

	"contacts-service/internal/domain/entities"
)

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

type contactResponse struct {
	ID          uint    `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`
}

func newUserResponse(user *entities.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Avatar:    user.Avatar,
		Confirmed: user.Confirmed,
	}
}

func newUserResponses(users []entities.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

func newContactResponse(contact *entities.Contact) contactResponse {
	resp := contactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		Phone:     contact.Phone,
	}
	if contact.LastName != "" {
		resp.LastName = &contact.LastName
	}
	if contact.Email != "" {
		resp.Email = &contact.Email
	}
	if contact.DateOfBirth != nil {
		formatted := contact.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &formatted
	}
	return resp
}

func newContactResponses(contacts []entities.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, newContactResponse(&contacts[i]))
	}
	return out
}

// parseDate accepts the wire format for date_of_birth.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
