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

const absencePanel = "absences"

type absenceUpstream interface {
	ListAbsences(ctx context.Context, creds upstream.Credentials) ([]models.Absence, error)
	CreateAbsence(ctx context.Context, creds upstream.Credentials, req upstream.AbsenceRequest) error
	UpdateAbsence(ctx context.Context, creds upstream.Credentials, id int, absenceDate string) error
	DeleteAbsence(ctx context.Context, creds upstream.Credentials, id int) error
	ListTeachers(ctx context.Context, creds upstream.Credentials) ([]models.Teacher, error)
}

// AbsenceForm records a new teacher absence.
type AbsenceForm struct {
	TeacherID   int    `json:"teacherId" validate:"required"`
	SeanceID    int    `json:"seanceId"`
	AbsenceDate string `json:"absenceDate" validate:"required"`
	Justified   bool   `json:"justified"`
}

// AbsenceDateForm changes the date of an existing absence.
type AbsenceDateForm struct {
	AbsenceDate string `json:"absenceDate" validate:"required"`
}

// AbsenceService runs the absence settings panel.
type AbsenceService struct {
	upstream  absenceUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewAbsenceService constructs an AbsenceService instance.
func NewAbsenceService(up absenceUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *AbsenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AbsenceService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of absences plus the live flash.
func (s *AbsenceService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Absence], error) {
	absences, err := s.upstream.ListAbsences(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(absences, page, s.console.PageSize)
	return &Page[models.Absence]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(absencePanel, time.Now()),
	}, nil
}

// Options returns the teacher choices for the absence form.
func (s *AbsenceService) Options(ctx context.Context, sess *session.Session) ([]models.Teacher, error) {
	teachers, err := s.upstream.ListTeachers(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return teachers, nil
}

// Create records an absence and re-reads the list.
func (s *AbsenceService) Create(ctx context.Context, sess *session.Session, page int, form AbsenceForm) (*Page[models.Absence], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.CreateAbsence(ctx, creds, upstream.AbsenceRequest{
		TeacherID:   form.TeacherID,
		SeanceID:    form.SeanceID,
		AbsenceDate: form.AbsenceDate,
		Justified:   form.Justified,
	})
	return s.finish(ctx, sess, page, err, "Absence added successfully!", "Failed to add absence")
}

// Update changes an absence date and re-reads the list.
func (s *AbsenceService) Update(ctx context.Context, sess *session.Session, page, id int, form AbsenceDateForm) (*Page[models.Absence], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdateAbsence(ctx, creds, id, form.AbsenceDate)
	return s.finish(ctx, sess, page, err, "Absence updated successfully!", "Failed to update absence")
}

// Delete removes an absence and re-reads the list.
func (s *AbsenceService) Delete(ctx context.Context, sess *session.Session, page, id int) (*Page[models.Absence], error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteAbsence(ctx, creds, id)
	return s.finish(ctx, sess, page, err, "Absence deleted successfully!", "Failed to delete absence")
}

func (s *AbsenceService) finish(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Absence], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("absence mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, absencePanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, absencePanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}
