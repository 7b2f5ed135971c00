package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/infrastructure/memory"
	"contacts-service/internal/infrastructure/tokens"
)

// fakeSessionCache is an in-process SessionCache that records activity.
type fakeSessionCache struct {
	mu      sync.Mutex
	entries map[string]*entities.User
	puts    int
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{entries: make(map[string]*entities.User)}
}

func (f *fakeSessionCache) Get(_ context.Context, username string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.entries[username]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSessionCache) reset() {
	f.mu.Lock()
	f.entries = make(map[string]*entities.User)
	f.mu.Unlock()
}

func (f *fakeSessionCache) Put(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.entries[user.Username] = &copied
	f.puts++
	return nil
}

type sentMail struct {
	kind string
	to   string
}

// fakeSender records dispatched mail on a channel so tests can wait out the
// fire-and-forget goroutines.
type fakeSender struct {
	sent chan sentMail
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan sentMail, 8)}
}

func (f *fakeSender) SendConfirmation(_ context.Context, to, _, _, _ string) error {
	f.sent <- sentMail{kind: "confirmation", to: to}
	return nil
}

func (f *fakeSender) SendPasswordReset(_ context.Context, to, _, _, _ string) error {
	f.sent <- sentMail{kind: "reset", to: to}
	return nil
}

func (f *fakeSender) waitForMail(t *testing.T) sentMail {
	t.Helper()
	select {
	case mail := <-f.sent:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("expected an email to be dispatched")
		return sentMail{}
	}
}

func (f *fakeSender) assertNoMail(t *testing.T) {
	t.Helper()
	select {
	case mail := <-f.sent:
		t.Fatalf("unexpected %s email to %s", mail.kind, mail.to)
	case <-time.After(50 * time.Millisecond):
	}
}

type authFixture struct {
	auth   *AuthService
	cache  *fakeSessionCache
	sender *fakeSender
	tokens *tokens.JWTService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	jwtService := tokens.NewJWTService("unit-test-secret", 5*time.Minute)
	cache := newFakeSessionCache()
	sender := newFakeSender()
	return &authFixture{
		auth:   NewAuthService(memory.NewUserRepository(), cache, jwtService, sender),
		cache:  cache,
		sender: sender,
		tokens: jwtService,
	}
}

func (fx *authFixture) register(t *testing.T, username string) *entities.User {
	t.Helper()
	user, err := fx.auth.Register(context.Background(), username, username+"@example.com", "s3cret-pass", entities.RoleUser, "http://test")
	require.NoError(t, err)
	fx.sender.waitForMail(t)
	return user
}

func (fx *authFixture) registerConfirmed(t *testing.T, username string) *entities.User {
	t.Helper()
	user := fx.register(t, username)
	_, err := fx.auth.ConfirmEmail(context.Background(), fx.actionToken(t, user.Email))
	require.NoError(t, err)
	user.Confirmed = true
	return user
}

func (fx *authFixture) actionToken(t *testing.T, email string) string {
	t.Helper()
	token, err := fx.tokens.CreateActionToken(email)
	require.NoError(t, err)
	return token
}

func TestRegisterCreatesUnconfirmedUser(t *testing.T) {
	fx := newAuthFixture(t)

	user, err := fx.auth.Register(context.Background(), "olena", "olena@example.com", "s3cret-pass", entities.RoleUser, "http://test")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.False(t, user.Confirmed)
	assert.NotEqual(t, "s3cret-pass", user.HashedPassword)
	assert.NotEmpty(t, user.Avatar)

	mail := fx.sender.waitForMail(t)
	assert.Equal(t, "confirmation", mail.kind)
	assert.Equal(t, "olena@example.com", mail.to)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	fx := newAuthFixture(t)
	fx.register(t, "olena")

	_, err := fx.auth.Register(context.Background(), "inna", "olena@example.com", "pass", entities.RoleUser, "http://test")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	fx.sender.assertNoMail(t)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	fx := newAuthFixture(t)
	fx.register(t, "olena")

	_, err := fx.auth.Register(context.Background(), "olena", "other@example.com", "pass", entities.RoleUser, "http://test")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestLogin(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.registerConfirmed(t, "olena")

	token, err := fx.auth.Login(context.Background(), user.Username, "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := fx.tokens.ParseSubject(token)
	require.NoError(t, err)
	assert.Equal(t, user.Username, subject)
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.registerConfirmed(t, "olena")

	_, err := fx.auth.Login(context.Background(), user.Username, "wrong-pass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.auth.Login(context.Background(), "nobody", "pass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLoginUnconfirmedAccount(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.register(t, "olena")

	_, err := fx.auth.Login(context.Background(), user.Username, "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticatePopulatesCacheOnMiss(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.registerConfirmed(t, "olena")

	token, err := fx.auth.Login(context.Background(), user.Username, "s3cret-pass")
	require.NoError(t, err)

	// Start from a cold cache so the gate has to hit the store.
	fx.cache.reset()

	resolved, err := fx.auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.Username, resolved.Username)

	cached, err := fx.cache.Get(context.Background(), user.Username)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, user.ID, cached.ID)
}

func TestAuthenticateServesFromCache(t *testing.T) {
	fx := newAuthFixture(t)

	// The cached projection exists even though no user is stored, so a hit
	// must short-circuit the store lookup.
	phantom := &entities.User{ID: 42, Username: "ghost", Role: entities.RoleUser, Confirmed: true}
	require.NoError(t, fx.cache.Put(context.Background(), phantom))

	token, err := fx.tokens.CreateAccessToken("ghost")
	require.NoError(t, err)

	resolved, err := fx.auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), resolved.ID)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.auth.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	fx := newAuthFixture(t)

	token, err := fx.tokens.CreateAccessToken("nobody")
	require.NoError(t, err)

	_, err = fx.auth.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRequireRole(t *testing.T) {
	fx := newAuthFixture(t)

	admin := &entities.User{Role: entities.RoleAdmin}
	plain := &entities.User{Role: entities.RoleUser}

	assert.NoError(t, fx.auth.RequireRole(admin, entities.RoleAdmin))
	assert.ErrorIs(t, fx.auth.RequireRole(plain, entities.RoleAdmin), apperrors.ErrForbidden)
}

func TestConfirmEmailIsIdempotent(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.register(t, "olena")
	token := fx.actionToken(t, user.Email)

	first, err := fx.auth.ConfirmEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, MsgEmailVerified, first)

	second, err := fx.auth.ConfirmEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, MsgEmailAlreadyVerified, second)
}

func TestConfirmEmailInvalidToken(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.auth.ConfirmEmail(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestConfirmEmailUnknownAccount(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.auth.ConfirmEmail(context.Background(), fx.actionToken(t, "nobody@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestEmailConfirmation(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.register(t, "olena")

	// Unknown address gets the generic answer and no mail.
	message, err := fx.auth.RequestEmailConfirmation(context.Background(), "nobody@example.com", "http://test")
	require.NoError(t, err)
	assert.Equal(t, MsgCheckYourEmail, message)
	fx.sender.assertNoMail(t)

	// Unconfirmed account gets a fresh confirmation mail.
	message, err = fx.auth.RequestEmailConfirmation(context.Background(), user.Email, "http://test")
	require.NoError(t, err)
	assert.Equal(t, MsgCheckYourEmail, message)
	assert.Equal(t, "confirmation", fx.sender.waitForMail(t).kind)

	_, err = fx.auth.ConfirmEmail(context.Background(), fx.actionToken(t, user.Email))
	require.NoError(t, err)

	message, err = fx.auth.RequestEmailConfirmation(context.Background(), user.Email, "http://test")
	require.NoError(t, err)
	assert.Equal(t, MsgEmailAlreadyVerified, message)
	fx.sender.assertNoMail(t)
}

func TestForgotPassword(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.registerConfirmed(t, "olena")

	require.NoError(t, fx.auth.ForgotPassword(context.Background(), "nobody@example.com", "http://test"))
	fx.sender.assertNoMail(t)

	require.NoError(t, fx.auth.ForgotPassword(context.Background(), user.Email, "http://test"))
	mail := fx.sender.waitForMail(t)
	assert.Equal(t, "reset", mail.kind)
	assert.Equal(t, user.Email, mail.to)
}

func TestResetPassword(t *testing.T) {
	fx := newAuthFixture(t)
	user := fx.registerConfirmed(t, "olena")

	err := fx.auth.ResetPassword(context.Background(), fx.actionToken(t, user.Email), "brand-new-pass")
	require.NoError(t, err)

	_, err = fx.auth.Login(context.Background(), user.Username, "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	token, err := fx.auth.Login(context.Background(), user.Username, "brand-new-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	fx := newAuthFixture(t)

	err := fx.auth.ResetPassword(context.Background(), "garbage", "pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	err = fx.auth.ResetPassword(context.Background(), fx.actionToken(t, "nobody@example.com"), "pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
