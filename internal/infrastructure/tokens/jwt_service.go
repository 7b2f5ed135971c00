package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"contacts-service/internal/apperrors"
)

// actionTokenTTL is the lifetime of email confirmation / password reset
// tokens.
const actionTokenTTL = 7 * 24 * time.Hour

// JWTService signs and verifies the two token kinds the service uses: short
// lived access tokens (subject = username) and 7-day action tokens
// (subject = email address).
type JWTService struct {
	secret    []byte
	accessTTL time.Duration
}

func NewJWTService(secret string, accessTTL time.Duration) *JWTService {
	return &JWTService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// AccessTTL exposes the access-token lifetime; the session cache uses it as
// its entry TTL.
func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

// CreateAccessToken issues a bearer token for the given username.
func (s *JWTService) CreateAccessToken(username string) (string, error) {
	return s.sign(username, s.accessTTL)
}

// CreateActionToken issues an email-action token proving control of the
// given address.
func (s *JWTService) CreateActionToken(email string) (string, error) {
	return s.sign(email, actionTokenTTL)
}

func (s *JWTService) sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseSubject verifies a token and returns its subject claim. Signature,
// expiry or claim failures all collapse into ErrInvalidToken.
func (s *JWTService) ParseSubject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", apperrors.ErrInvalidToken
	}
	return subject, nil
}
