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

const teacherPanel = "teachers"

type teacherUpstream interface {
	ListTeachers(ctx context.Context, creds upstream.Credentials) ([]models.Teacher, error)
	Signup(ctx context.Context, creds upstream.Credentials, req upstream.SignupRequest) error
	UpdateTeacher(ctx context.Context, creds upstream.Credentials, req upstream.UpdateTeacherRequest) error
	DeleteTeacher(ctx context.Context, creds upstream.Credentials, id int) error
	ListGrades(ctx context.Context, creds upstream.Credentials) ([]models.Grade, error)
}

// CreateTeacherForm is the add-teacher payload. New accounts go
// through the auth signup endpoint with the teacher role.
type CreateTeacherForm struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	GradeID       int    `json:"gradeId" validate:"required"`
	PaymentType   string `json:"paymentType" validate:"required,oneof=hourly monthly"`
	TeacherType   string `json:"teacherType" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required_if=PaymentType monthly"`
}

// UpdateTeacherForm is the edit-teacher payload.
type UpdateTeacherForm struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	GradeID       int    `json:"gradeId" validate:"required"`
	PaymentType   string `json:"paymentType" validate:"required,oneof=hourly monthly"`
	TeacherType   string `json:"teacherType" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required_if=PaymentType monthly"`
}

// TeacherService runs the teacher settings panel.
type TeacherService struct {
	upstream  teacherUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewTeacherService constructs a TeacherService instance.
func NewTeacherService(up teacherUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of teachers plus the live flash.
func (s *TeacherService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Teacher], error) {
	teachers, err := s.upstream.ListTeachers(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(teachers, page, s.console.PageSize)
	return &Page[models.Teacher]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(teacherPanel, time.Now()),
	}, nil
}

// Options returns the grade choices for the teacher form.
func (s *TeacherService) Options(ctx context.Context, sess *session.Session) ([]models.Grade, error) {
	grades, err := s.upstream.ListGrades(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return grades, nil
}

// Create registers a teacher account and re-reads the list.
func (s *TeacherService) Create(ctx context.Context, sess *session.Session, page int, form CreateTeacherForm) (*Page[models.Teacher], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.Signup(ctx, creds, upstream.SignupRequest{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		Password:      form.Password,
		Role:          string(models.RoleTeacher),
		GradeID:       form.GradeID,
		PaymentType:   form.PaymentType,
		TeacherType:   form.TeacherType,
		AccountNumber: form.AccountNumber,
	})
	return s.finish(ctx, sess, page, err, "Teacher added successfully!", "Failed to add teacher")
}

// Update edits a teacher and re-reads the list.
func (s *TeacherService) Update(ctx context.Context, sess *session.Session, page, id int, form UpdateTeacherForm) (*Page[models.Teacher], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdateTeacher(ctx, creds, upstream.UpdateTeacherRequest{
		ID:            id,
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		GradeID:       form.GradeID,
		PaymentType:   form.PaymentType,
		TeacherType:   form.TeacherType,
		AccountNumber: form.AccountNumber,
	})
	return s.finish(ctx, sess, page, err, "Teacher updated successfully!", "Failed to update teacher")
}

// Delete removes a teacher account and re-reads the list.
func (s *TeacherService) Delete(ctx context.Context, sess *session.Session, page, id int) (*Page[models.Teacher], error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteTeacher(ctx, creds, id)
	return s.finish(ctx, sess, page, err, "Teacher deleted successfully!", "Failed to delete teacher")
}

func (s *TeacherService) finish(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Teacher], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("teacher mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, teacherPanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, teacherPanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}
