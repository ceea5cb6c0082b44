package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/session"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// ContextSessionKey is the gin context key storing the console session.
const ContextSessionKey = "consoleSession"

// CookieOptions carries the attributes used when (re)setting the
// console session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Auth protects routes by requiring a valid console session cookie.
// Any failure clears the cookie so the next request starts clean.
func Auth(tokens *session.TokenManager, store session.Store, cookie CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(cookie.Name)
		if err != nil || value == "" {
			response.Error(c, appErrors.ErrSessionExpired)
			c.Abort()
			return
		}

		sessionID, err := tokens.Parse(value)
		if err != nil {
			ClearSessionCookie(c, cookie)
			response.Error(c, err)
			c.Abort()
			return
		}

		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			ClearSessionCookie(c, cookie)
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// SetSessionCookie writes the signed session cookie. HttpOnly always:
// the console never reads it from scripts.
func SetSessionCookie(c *gin.Context, cookie CookieOptions, value string, maxAge int) {
	c.SetCookie(cookie.Name, value, maxAge, "/", "", cookie.Secure, true)
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context, cookie CookieOptions) {
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}
