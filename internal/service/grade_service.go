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

const gradePanel = "grades"

type gradeUpstream interface {
	ListGrades(ctx context.Context, creds upstream.Credentials) ([]models.Grade, error)
	CreateGrade(ctx context.Context, creds upstream.Credentials, req upstream.GradeRequest) (*models.Grade, error)
	UpdateGrade(ctx context.Context, creds upstream.Credentials, req upstream.GradeRequest) error
	DeleteGrade(ctx context.Context, creds upstream.Credentials, id int) error
}

// GradeForm is the add/edit grade payload.
type GradeForm struct {
	Name   string  `json:"gradeName" validate:"required"`
	Price  float64 `json:"pricePerHour" validate:"required,gt=0"`
	Charge float64 `json:"charge" validate:"gte=0"`
}

// GradeService runs the grade settings panel.
type GradeService struct {
	upstream  gradeUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewGradeService constructs a GradeService instance.
func NewGradeService(up gradeUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of grades plus the live flash.
func (s *GradeService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Grade], error) {
	grades, err := s.upstream.ListGrades(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(grades, page, s.console.PageSize)
	return &Page[models.Grade]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(gradePanel, time.Now()),
	}, nil
}

// Create adds a grade and re-reads the list.
func (s *GradeService) Create(ctx context.Context, sess *session.Session, page int, form GradeForm) (*Page[models.Grade], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	_, err := s.upstream.CreateGrade(ctx, creds, upstream.GradeRequest{GradeName: form.Name, Price: form.Price, Charge: form.Charge})
	return s.finish(ctx, sess, page, err, "Grade added successfully!", "Failed to add grade")
}

// Update edits a grade and re-reads the list.
func (s *GradeService) Update(ctx context.Context, sess *session.Session, page, id int, form GradeForm) (*Page[models.Grade], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdateGrade(ctx, creds, upstream.GradeRequest{ID: id, GradeName: form.Name, Price: form.Price, Charge: form.Charge})
	return s.finish(ctx, sess, page, err, "Grade updated successfully!", "Failed to update grade")
}

// Delete removes a grade and re-reads the list.
func (s *GradeService) Delete(ctx context.Context, sess *session.Session, page, id int) (*Page[models.Grade], error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteGrade(ctx, creds, id)
	return s.finish(ctx, sess, page, err, "Grade deleted successfully!", "Failed to delete grade")
}

func (s *GradeService) finish(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Grade], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("grade mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, gradePanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, gradePanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}
