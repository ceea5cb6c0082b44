package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	"github.com/haythbl004/uni-console/pkg/config"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

const coefficientPanel = "coefficients"

type coefficientUpstream interface {
	ListCoefficients(ctx context.Context, creds upstream.Credentials) ([]models.Coefficient, error)
	UpdateCoefficient(ctx context.Context, creds upstream.Credentials, seanceType string, value float64) (*models.Coefficient, error)
	DeleteCoefficient(ctx context.Context, creds upstream.Credentials, seanceType string) error
}

// CoefficientForm sets the multiplier for one seance type.
type CoefficientForm struct {
	Value float64 `json:"value" validate:"required,gt=0"`
}

// CoefficientService runs the seance type coefficient panel. The
// coefficient set is keyed by seance type, so there is no create: the
// upsert PUT covers both.
type CoefficientService struct {
	upstream  coefficientUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewCoefficientService constructs a CoefficientService instance.
func NewCoefficientService(up coefficientUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *CoefficientService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoefficientService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of coefficients plus the live flash.
func (s *CoefficientService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Coefficient], error) {
	coefficients, err := s.upstream.ListCoefficients(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(coefficients, page, s.console.PageSize)
	return &Page[models.Coefficient]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(coefficientPanel, time.Now()),
	}, nil
}

// Update upserts the value for one seance type and re-reads the list.
func (s *CoefficientService) Update(ctx context.Context, sess *session.Session, page int, seanceType string, form CoefficientForm) (*Page[models.Coefficient], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid coefficient payload")
	}
	if !validSeanceType(seanceType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown seance type: "+seanceType)
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	_, err := s.upstream.UpdateCoefficient(ctx, creds, seanceType, form.Value)
	return s.finish(ctx, sess, page, err, "Coefficient updated successfully!", "Failed to update coefficient")
}

// Delete removes the coefficient for one seance type and re-reads the
// list.
func (s *CoefficientService) Delete(ctx context.Context, sess *session.Session, page int, seanceType string) (*Page[models.Coefficient], error) {
	if !validSeanceType(seanceType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown seance type: "+seanceType)
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteCoefficient(ctx, creds, seanceType)
	return s.finish(ctx, sess, page, err, "Coefficient deleted successfully!", "Failed to delete coefficient")
}

func (s *CoefficientService) finish(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Coefficient], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("coefficient mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, coefficientPanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, coefficientPanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}

func validSeanceType(seanceType string) bool {
	for _, t := range models.SeanceTypes {
		if seanceType == t {
			return true
		}
	}
	return false
}
