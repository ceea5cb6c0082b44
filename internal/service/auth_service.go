package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type authUpstream interface {
	Login(ctx context.Context, req upstream.LoginRequest) (string, error)
	Logout(ctx context.Context, creds upstream.Credentials) error
	CurrentUser(ctx context.Context, creds upstream.Credentials) (*models.User, error)
}

// LoginRequest is the console login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService owns the console session lifecycle: it exchanges
// credentials for an upstream cookie, wraps that cookie in a stored
// session, and tears the session down on logout or upstream rejection.
type AuthService struct {
	upstream  authUpstream
	store     session.Store
	tokens    *session.TokenManager
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(up authUpstream, store session.Store, tokens *session.TokenManager, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{upstream: up, store: store, tokens: tokens, validator: validate, logger: logger, metrics: metrics}
}

// Login authenticates against the upstream and opens a console
// session. Returns the session and the signed cookie value.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*session.Session, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	cookie, err := s.upstream.Login(ctx, upstream.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, "", err
	}

	user, err := s.upstream.CurrentUser(ctx, upstream.Credentials{Cookie: cookie})
	if err != nil {
		return nil, "", err
	}

	sess := &session.Session{
		ID:             uuid.NewString(),
		User:           *user,
		UpstreamCookie: cookie,
		Nav:            models.NavState{Mode: models.ViewList},
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(sess.ID)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, "", err
	}

	s.metrics.SessionOpened()
	s.logger.Info("console session opened", zap.Int("user_id", user.ID), zap.String("role", string(user.Role)))
	return sess, token, nil
}

// Logout closes the upstream session best effort and always drops the
// console session.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.upstream.Logout(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie}); err != nil {
		s.logger.Warn("upstream logout failed", zap.Error(err))
	}
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		return err
	}
	s.metrics.SessionClosed()
	return nil
}

// Me re-validates the session against the upstream and refreshes the
// cached user record.
func (s *AuthService) Me(ctx context.Context, sess *session.Session) (*models.User, error) {
	user, err := s.upstream.CurrentUser(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.fail(ctx, sess, err)
	}

	sess.User = *user
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Warn("failed to refresh session user", zap.Error(err))
	}
	return user, nil
}

// fail destroys the console session when the upstream rejected its
// cookie. Every service funnels upstream errors through here so a
// stale session dies on first contact.
func (s *AuthService) fail(ctx context.Context, sess *session.Session, err error) error {
	if appErrors.IsSessionExpired(err) {
		if delErr := s.store.Delete(ctx, sess.ID); delErr != nil {
			s.logger.Warn("failed to destroy rejected session", zap.Error(delErr))
		} else {
			s.metrics.SessionClosed()
		}
	}
	return err
}

// Invalidate exposes the destroy-on-rejection path to the other
// services.
func (s *AuthService) Invalidate(ctx context.Context, sess *session.Session, err error) error {
	return s.fail(ctx, sess, err)
}
