package upstream

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/haythbl004/uni-console/internal/models"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

// LoginRequest is forwarded verbatim to the upstream login endpoint.
// The console never stores the password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest creates a teacher account through the auth signup
// endpoint, the way the original teacher panel does.
type SignupRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	GradeID       int    `json:"gradeId"`
	PaymentType   string `json:"paymentType"`
	TeacherType   string `json:"teacherType"`
	AccountNumber string `json:"accountNumber"`
}

// Login authenticates against the upstream and returns the session
// cookie it set. Invalid credentials surface as SESSION_EXPIRED.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	httpReq, err := c.newRequest(ctx, Credentials{}, http.MethodPost, "/api/auth/login", nil, req)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if c.observe != nil {
			c.observe(http.MethodPost, "/api/auth/login", 0, time.Since(start))
		}
		return "", appErrors.Wrap(err, appErrors.ErrUpstreamUnreachable.Code, appErrors.ErrUpstreamUnreachable.Status, appErrors.ErrUpstreamUnreachable.Message)
	}
	defer resp.Body.Close()

	if c.observe != nil {
		c.observe(http.MethodPost, "/api/auth/login", resp.StatusCode, time.Since(start))
	}

	if err := c.checkStatus(resp, http.MethodPost, "/api/auth/login"); err != nil {
		return "", err
	}

	cookie := cookieHeader(resp.Cookies())
	if cookie == "" {
		c.logger.Warn("login succeeded without a session cookie")
		return "", appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream login returned no session cookie")
	}
	return cookie, nil
}

// Logout invalidates the upstream session. Best effort: callers drop
// the console session regardless of the result.
func (c *Client) Logout(ctx context.Context, creds Credentials) error {
	return c.do(ctx, creds, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// CurrentUser fetches the account behind the credentials.
func (c *Client) CurrentUser(ctx context.Context, creds Credentials) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, creds, http.MethodGet, "/api/auth/user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Signup registers a new teacher account.
func (c *Client) Signup(ctx context.Context, creds Credentials, req SignupRequest) error {
	return c.do(ctx, creds, http.MethodPost, "/api/auth/signup", nil, req, nil)
}

// cookieHeader renders response cookies back into a Cookie header
// value for replay on subsequent requests.
func cookieHeader(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Name == "" {
			continue
		}
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}
