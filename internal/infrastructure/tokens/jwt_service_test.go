package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-service/internal/apperrors"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 5*time.Minute)

	token, err := svc.CreateAccessToken("olena")
	require.NoError(t, err)

	subject, err := svc.ParseSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "olena", subject)
}

func TestActionTokenCarriesEmailSubject(t *testing.T) {
	svc := NewJWTService("test-secret", 5*time.Minute)

	token, err := svc.CreateActionToken("olena@example.com")
	require.NoError(t, err)

	subject, err := svc.ParseSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "olena@example.com", subject)
}

func TestParseSubjectExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -1*time.Minute)

	token, err := svc.CreateAccessToken("olena")
	require.NoError(t, err)

	_, err = svc.ParseSubject(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParseSubjectWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 5*time.Minute)
	verifier := NewJWTService("secret-b", 5*time.Minute)

	token, err := issuer.CreateAccessToken("olena")
	require.NoError(t, err)

	_, err = verifier.ParseSubject(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParseSubjectMalformedToken(t *testing.T) {
	svc := NewJWTService("test-secret", 5*time.Minute)

	for _, garbage := range []string{"", "abc", "a.b.c"} {
		_, err := svc.ParseSubject(garbage)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "token %q", garbage)
	}
}
