package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
)

func authRouter(tokens *session.TokenManager, store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cookie := CookieOptions{Name: "uniAuthToken"}
	r := gin.New()
	r.GET("/me", Auth(tokens, store, cookie), func(c *gin.Context) {
		sess := c.MustGet(ContextSessionKey).(*session.Session)
		c.JSON(http.StatusOK, gin.H{"email": sess.User.Email})
	})
	return r
}

func TestAuthMiddlewareAcceptsValidCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	tokens := session.NewTokenManager("test_secret", time.Hour)
	sess := &session.Session{ID: "sess-1", User: models.User{Email: "amel@uni.dz", Role: models.RoleAdmin}}
	require.NoError(t, store.Create(context.Background(), sess))

	signed, err := tokens.Issue(sess.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "uniAuthToken", Value: signed})
	authRouter(tokens, store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "amel@uni.dz")
}

func TestAuthMiddlewareMissingCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	tokens := session.NewTokenManager("test_secret", time.Hour)

	w := httptest.NewRecorder()
	authRouter(tokens, store).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

func TestAuthMiddlewareBadTokenClearsCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	tokens := session.NewTokenManager("test_secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "uniAuthToken", Value: "garbage"})
	authRouter(tokens, store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "uniAuthToken", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthMiddlewareUnknownSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	tokens := session.NewTokenManager("test_secret", time.Hour)

	signed, err := tokens.Issue("sess-gone")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "uniAuthToken", Value: signed})
	authRouter(tokens, store).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsTeacher(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ContextSessionKey, &session.Session{ID: "sess-1", User: models.User{Role: models.RoleTeacher}})
	}, RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ContextSessionKey, &session.Session{ID: "sess-1", User: models.User{Role: models.RoleAdmin}})
	}, RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
