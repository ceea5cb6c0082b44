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

const promotionPanel = "promotions"

type promotionUpstream interface {
	ListPromotions(ctx context.Context, creds upstream.Credentials) ([]models.Promotion, error)
	CreatePromotion(ctx context.Context, creds upstream.Credentials, req upstream.PromotionRequest) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, creds upstream.Credentials, id int, req upstream.PromotionRequest) error
	DeletePromotion(ctx context.Context, creds upstream.Credentials, id int) error
	ListSpecialities(ctx context.Context, creds upstream.Credentials) ([]models.Speciality, error)
}

// PromotionForm is the add/edit promotion payload.
type PromotionForm struct {
	Name         string `json:"name" validate:"required"`
	SpecialityID int    `json:"specialityId" validate:"required"`
}

// PromotionService runs the promotion settings panel. The add/edit
// form also needs the speciality options, so the service exposes them.
type PromotionService struct {
	upstream  promotionUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewPromotionService constructs a PromotionService instance.
func NewPromotionService(up promotionUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *PromotionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromotionService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of promotions plus the live flash.
func (s *PromotionService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Promotion], error) {
	promotions, err := s.upstream.ListPromotions(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(promotions, page, s.console.PageSize)
	return &Page[models.Promotion]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(promotionPanel, time.Now()),
	}, nil
}

// Options returns the speciality choices for the promotion form.
func (s *PromotionService) Options(ctx context.Context, sess *session.Session) ([]models.Speciality, error) {
	specialities, err := s.upstream.ListSpecialities(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return specialities, nil
}

// Create adds a promotion and re-reads the list.
func (s *PromotionService) Create(ctx context.Context, sess *session.Session, page int, form PromotionForm) (*Page[models.Promotion], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid promotion payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	_, err := s.upstream.CreatePromotion(ctx, creds, upstream.PromotionRequest(form))
	return s.finish(ctx, sess, page, err, "Promotion added successfully!", "Failed to add promotion")
}

// Update edits a promotion and re-reads the list.
func (s *PromotionService) Update(ctx context.Context, sess *session.Session, page, id int, form PromotionForm) (*Page[models.Promotion], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid promotion payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdatePromotion(ctx, creds, id, upstream.PromotionRequest(form))
	return s.finish(ctx, sess, page, err, "Promotion updated successfully!", "Failed to update promotion")
}

// Delete removes a promotion and re-reads the list.
func (s *PromotionService) Delete(ctx context.Context, sess *session.Session, page, id int) (*Page[models.Promotion], error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeletePromotion(ctx, creds, id)
	return s.finish(ctx, sess, page, err, "Promotion deleted successfully!", "Failed to delete promotion")
}

func (s *PromotionService) finish(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Promotion], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("promotion mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, promotionPanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, promotionPanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}
