package services

import (
	"context"
	"fmt"
	"log"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
	"contacts-service/internal/infrastructure/email"
	"contacts-service/internal/infrastructure/tokens"
	"contacts-service/internal/infrastructure/upload"
)

// Messages returned by the email confirmation flow.
const (
	MsgEmailVerified        = "Your email is verified"
	MsgEmailAlreadyVerified = "Your email is already verified"
	MsgCheckYourEmail       = "Check your email for verification"
	MsgPasswordReset        = "Password has been reset"
)

// SessionCache is the projection cache the authentication gate consults
// before the user store.
type SessionCache interface {
	Get(ctx context.Context, username string) (*entities.User, error)
	Put(ctx context.Context, user *entities.User) error
}

// AuthService implements registration, login, the token-based email flows and
// the authentication gate.
type AuthService struct {
	users  repositories.UserRepository
	cache  SessionCache
	tokens *tokens.JWTService
	mail   email.Sender
}

func NewAuthService(users repositories.UserRepository, cache SessionCache, jwtService *tokens.JWTService, sender email.Sender) *AuthService {
	return &AuthService{
		users:  users,
		cache:  cache,
		tokens: jwtService,
		mail:   sender,
	}
}

// Register creates an unconfirmed account and dispatches the confirmation
// email in the background. Username and email collisions surface as
// ConflictError.
func (s *AuthService) Register(ctx context.Context, username, emailAddr, password string, role entities.Role, baseURL string) (*entities.User, error) {
	if existing, err := s.users.FindByEmail(ctx, emailAddr); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &apperrors.ConflictError{Field: "email", Value: emailAddr}
	}
	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &apperrors.ConflictError{Field: "username", Value: username}
	}

	user := entities.NewUser(username, emailAddr, password, role)
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	user.Avatar = upload.GravatarURL(emailAddr)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.dispatchConfirmation(created, baseURL)
	return created, nil
}

// Login verifies credentials and issues an access token. Wrong username,
// wrong password and an unconfirmed account all read as Unauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || !user.CheckPassword(password) {
		return "", fmt.Errorf("invalid username or password: %w", apperrors.ErrUnauthorized)
	}
	if !user.Confirmed {
		return "", fmt.Errorf("email address is not verified: %w", apperrors.ErrUnauthorized)
	}
	return s.tokens.CreateAccessToken(user.Username)
}

// Authenticate resolves a bearer token to a user, consulting the session
// cache before the store. Any failure reads as Unauthorized.
func (s *AuthService) Authenticate(ctx context.Context, bearerToken string) (*entities.User, error) {
	username, err := s.tokens.ParseSubject(bearerToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	if cached, err := s.cache.Get(ctx, username); err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.cache.Put(ctx, user); err != nil {
		log.Printf("failed to cache session for %q: %v", username, err)
	}
	return user, nil
}

// RequireRole gates role-restricted operations.
func (s *AuthService) RequireRole(user *entities.User, role entities.Role) error {
	if user.Role != role {
		return apperrors.ErrForbidden
	}
	return nil
}

// ConfirmEmail flips the confirmed flag for the address proven by the action
// token. Re-confirming is a no-op.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	emailAddr, err := s.tokens.ParseSubject(token)
	if err != nil {
		return "", err
	}
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.ErrNotFound
	}
	if user.Confirmed {
		return MsgEmailAlreadyVerified, nil
	}

	if err := s.users.ConfirmEmail(ctx, emailAddr); err != nil {
		return "", err
	}
	user.MarkConfirmed()
	s.refreshSession(ctx, user)
	return MsgEmailVerified, nil
}

// RequestEmailConfirmation re-sends the confirmation mail for an existing
// unconfirmed account. Unknown addresses get the same generic answer so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestEmailConfirmation(ctx context.Context, emailAddr, baseURL string) (string, error) {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", err
	}
	if user == nil {
		return MsgCheckYourEmail, nil
	}
	if user.Confirmed {
		return MsgEmailAlreadyVerified, nil
	}

	s.dispatchConfirmation(user, baseURL)
	return MsgCheckYourEmail, nil
}

// ForgotPassword dispatches a reset email when the account exists. The
// caller answers 202 either way.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr, baseURL string) error {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.tokens.CreateActionToken(user.Email)
	if err != nil {
		return err
	}
	recipient, username := user.Email, user.Username
	go func() {
		if err := s.mail.SendPasswordReset(context.Background(), recipient, username, baseURL, token); err != nil {
			log.Printf("failed to send password reset email to %s: %v", recipient, err)
		}
	}()
	return nil
}

// VerifyResetToken checks a reset token and returns the account it belongs
// to, for rendering the reset form.
func (s *AuthService) VerifyResetToken(ctx context.Context, token string) (*entities.User, error) {
	emailAddr, err := s.tokens.ParseSubject(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}

// ResetPassword replaces the password of the account proven by the action
// token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}

	replacement := entities.User{HashedPassword: password}
	if err := replacement.HashPassword(); err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.Email, replacement.HashedPassword); err != nil {
		return err
	}
	user.HashedPassword = replacement.HashedPassword
	s.refreshSession(ctx, user)
	return nil
}

func (s *AuthService) dispatchConfirmation(user *entities.User, baseURL string) {
	token, err := s.tokens.CreateActionToken(user.Email)
	if err != nil {
		log.Printf("failed to create confirmation token for %s: %v", user.Email, err)
		return
	}
	recipient, username := user.Email, user.Username
	go func() {
		if err := s.mail.SendConfirmation(context.Background(), recipient, username, baseURL, token); err != nil {
			log.Printf("failed to send confirmation email to %s: %v", recipient, err)
		}
	}()
}

// refreshSession re-puts the mutated projection so the gate does not serve a
// stale entry for up to the token TTL.
func (s *AuthService) refreshSession(ctx context.Context, user *entities.User) {
	if err := s.cache.Put(ctx, user); err != nil {
		log.Printf("failed to refresh cached session for %q: %v", user.Username, err)
	}
}
