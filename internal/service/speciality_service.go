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

const specialityPanel = "specialities"

type specialityUpstream interface {
	ListSpecialities(ctx context.Context, creds upstream.Credentials) ([]models.Speciality, error)
	CreateSpeciality(ctx context.Context, creds upstream.Credentials, name string) (*models.Speciality, error)
	UpdateSpeciality(ctx context.Context, creds upstream.Credentials, id int, name string) error
	DeleteSpeciality(ctx context.Context, creds upstream.Credentials, id int) error
}

// SpecialityForm is the add/edit speciality payload.
type SpecialityForm struct {
	Name string `json:"name" validate:"required"`
}

// SpecialityService runs the speciality settings panel.
type SpecialityService struct {
	upstream  specialityUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewSpecialityService constructs a SpecialityService instance.
func NewSpecialityService(up specialityUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *SpecialityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpecialityService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of specialities plus the live flash.
func (s *SpecialityService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Speciality], error) {
	specialities, err := s.upstream.ListSpecialities(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(specialities, page, s.console.PageSize)
	return &Page[models.Speciality]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(specialityPanel, time.Now()),
	}, nil
}

// Create adds a speciality and re-reads the list.
func (s *SpecialityService) Create(ctx context.Context, sess *session.Session, page int, form SpecialityForm) (*Page[models.Speciality], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid speciality payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	_, err := s.upstream.CreateSpeciality(ctx, creds, form.Name)
	return s.finish(ctx, sess, page, err, "Speciality added successfully!", "Failed to add speciality")
}

// Update renames a speciality and re-reads the list.
func (s *SpecialityService) Update(ctx context.Context, sess *session.Session, page, id int, form SpecialityForm) (*Page[models.Speciality], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid speciality payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdateSpeciality(ctx, creds, id, form.Name)
	return s.finish(ctx, sess, page, err, "Speciality updated successfully!", "Failed to update speciality")
}

// Delete removes a speciality and re-reads the list.
func (s *SpecialityService) Delete(ctx context.Context, sess *session.Session, page, id int) (*Page[models.Speciality], error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteSpeciality(ctx, creds, id)
	return s.finish(ctx, sess, page, err, "Speciality deleted successfully!", "Failed to delete speciality")
}

func (s *SpecialityService) finish(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Speciality], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("speciality mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, specialityPanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, specialityPanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}
