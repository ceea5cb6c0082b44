package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type fakeAuthUpstream struct {
	cookie      string
	loginErr    error
	user        *models.User
	userErr     error
	loginCalls  int
	logoutCalls int
}

func (f *fakeAuthUpstream) Login(ctx context.Context, req upstream.LoginRequest) (string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.cookie, nil
}

func (f *fakeAuthUpstream) Logout(ctx context.Context, creds upstream.Credentials) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAuthUpstream) CurrentUser(ctx context.Context, creds upstream.Credentials) (*models.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func adminUser() *models.User {
	return &models.User{ID: 1, FirstName: "Amel", LastName: "Benali", Email: "amel@uni.dz", Role: models.RoleAdmin}
}

func newTestAuth(up authUpstream, store session.Store, tokens *session.TokenManager) *AuthService {
	return NewAuthService(up, store, tokens, validator.New(), zap.NewNop(), nil)
}

func TestAuthServiceLogin(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	tokens := session.NewTokenManager("test_secret", time.Hour)
	up := &fakeAuthUpstream{cookie: "token=abc", user: adminUser()}
	svc := newTestAuth(up, store, tokens)

	sess, token, err := svc.Login(context.Background(), LoginRequest{Email: "amel@uni.dz", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "token=abc", sess.UpstreamCookie)
	assert.Equal(t, models.ViewList, sess.Nav.Mode)

	sessionID, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, sessionID)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "amel@uni.dz", stored.User.Email)
}

func TestAuthServiceLoginInvalidPayload(t *testing.T) {
	up := &fakeAuthUpstream{cookie: "token=abc", user: adminUser()}
	svc := newTestAuth(up, session.NewMemoryStore(time.Hour), session.NewTokenManager("test_secret", time.Hour))

	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "secret"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, 0, up.loginCalls)
}

func TestAuthServiceLogoutDropsSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	up := &fakeAuthUpstream{cookie: "token=abc", user: adminUser()}
	svc := newTestAuth(up, store, session.NewTokenManager("test_secret", time.Hour))

	sess, _, err := svc.Login(context.Background(), LoginRequest{Email: "amel@uni.dz", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sess))
	assert.Equal(t, 1, up.logoutCalls)

	_, err = store.Get(context.Background(), sess.ID)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestAuthServiceMeRejectionDestroysSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	up := &fakeAuthUpstream{cookie: "token=abc", user: adminUser()}
	svc := newTestAuth(up, store, session.NewTokenManager("test_secret", time.Hour))

	sess, _, err := svc.Login(context.Background(), LoginRequest{Email: "amel@uni.dz", Password: "secret"})
	require.NoError(t, err)

	up.userErr = appErrors.Clone(appErrors.ErrSessionExpired, "")
	_, err = svc.Me(context.Background(), sess)
	require.True(t, appErrors.IsSessionExpired(err))

	_, err = store.Get(context.Background(), sess.ID)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestAuthServiceInvalidatePassesOtherErrors(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	up := &fakeAuthUpstream{cookie: "token=abc", user: adminUser()}
	svc := newTestAuth(up, store, session.NewTokenManager("test_secret", time.Hour))

	sess, _, err := svc.Login(context.Background(), LoginRequest{Email: "amel@uni.dz", Password: "secret"})
	require.NoError(t, err)

	upstreamErr := appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "boom")
	got := svc.Invalidate(context.Background(), sess, upstreamErr)
	assert.Equal(t, upstreamErr, got)

	// The session survives a non-auth upstream failure.
	_, err = store.Get(context.Background(), sess.ID)
	assert.NoError(t, err)
}
