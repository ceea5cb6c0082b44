package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/middleware"
	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	cookie  middleware.CookieOptions
	maxAge  int
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookie middleware.CookieOptions, maxAge int) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie, maxAge: maxAge}
}

// Login godoc
// @Summary Sign in to the console
// @Description Authenticate against the backing API and open a console session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	sess, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetSessionCookie(c, h.cookie, token, h.maxAge)
	response.JSON(c, http.StatusOK, sess.User, nil)
}

// Logout godoc
// @Summary Sign out of the console
// @Description Close the upstream session and drop the console session
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), sess); err != nil {
		response.Error(c, err)
		return
	}

	middleware.ClearSessionCookie(c, h.cookie)
	response.NoContent(c)
}

// Me godoc
// @Summary Current user
// @Description Return the signed-in account, re-validated upstream
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	user, err := h.service.Me(c.Request.Context(), sess)
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			middleware.ClearSessionCookie(c, h.cookie)
		}
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, nil)
}
