package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/middleware"
	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/service"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type stubAuthUpstream struct {
	cookie   string
	loginErr error
	user     *models.User
	userErr  error
}

func (s *stubAuthUpstream) Login(ctx context.Context, req upstream.LoginRequest) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.cookie, nil
}

func (s *stubAuthUpstream) Logout(ctx context.Context, creds upstream.Credentials) error {
	return nil
}

func (s *stubAuthUpstream) CurrentUser(ctx context.Context, creds upstream.Credentials) (*models.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func newAuthTestRouter(up *stubAuthUpstream) (*gin.Engine, *session.MemoryStore, *session.TokenManager) {
	gin.SetMode(gin.TestMode)
	store := session.NewMemoryStore(time.Hour)
	tokens := session.NewTokenManager("test_secret", time.Hour)
	cookie := middleware.CookieOptions{Name: "uniAuthToken"}

	svc := service.NewAuthService(up, store, tokens, validator.New(), zap.NewNop(), nil)
	h := NewAuthHandler(svc, cookie, 3600)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	authed := r.Group("")
	authed.Use(middleware.Auth(tokens, store, cookie))
	authed.POST("/auth/logout", h.Logout)
	authed.GET("/auth/me", h.Me)
	return r, store, tokens
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "uniAuthToken" {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	up := &stubAuthUpstream{cookie: "token=abc", user: &models.User{ID: 1, Email: "amel@uni.dz", Role: models.RoleAdmin}}
	r, _, tokens := newAuthTestRouter(up)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"amel@uni.dz","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "amel@uni.dz")

	ck := sessionCookie(t, w)
	assert.True(t, ck.HttpOnly)
	_, err := tokens.Parse(ck.Value)
	assert.NoError(t, err)
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	up := &stubAuthUpstream{loginErr: appErrors.Clone(appErrors.ErrSessionExpired, "")}
	r, _, _ := newAuthTestRouter(up)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"amel@uni.dz","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	r, _, _ := newAuthTestRouter(&stubAuthUpstream{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandlerLogoutClearsCookie(t *testing.T) {
	up := &stubAuthUpstream{cookie: "token=abc", user: &models.User{ID: 1, Email: "amel@uni.dz", Role: models.RoleAdmin}}
	r, store, tokens := newAuthTestRouter(up)

	sess := &session.Session{ID: "sess-1", User: *up.user, UpstreamCookie: "token=abc"}
	require.NoError(t, store.Create(context.Background(), sess))
	signed, err := tokens.Issue(sess.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "uniAuthToken", Value: signed})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	ck := sessionCookie(t, w)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)

	_, err = store.Get(context.Background(), sess.ID)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestAuthHandlerMeExpiredUpstreamClearsCookie(t *testing.T) {
	up := &stubAuthUpstream{userErr: appErrors.Clone(appErrors.ErrSessionExpired, "")}
	r, store, tokens := newAuthTestRouter(up)

	sess := &session.Session{ID: "sess-1", User: models.User{Role: models.RoleAdmin}, UpstreamCookie: "token=stale"}
	require.NoError(t, store.Create(context.Background(), sess))
	signed, err := tokens.Issue(sess.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "uniAuthToken", Value: signed})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
	ck := sessionCookie(t, w)
	assert.Empty(t, ck.Value)
}
