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

const holidayPanel = "holidays"

type holidayUpstream interface {
	ListHolidays(ctx context.Context, creds upstream.Credentials) ([]models.Holiday, error)
	CreateHoliday(ctx context.Context, creds upstream.Credentials, req upstream.HolidayRequest) (*models.Holiday, error)
	UpdateHoliday(ctx context.Context, creds upstream.Credentials, id int, req upstream.HolidayRequest) error
	DeleteHoliday(ctx context.Context, creds upstream.Credentials, id int) error
}

// HolidayForm is the add/edit holiday payload.
type HolidayForm struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// HolidayService runs the holiday settings panel: a paginated list
// with add/edit/delete, a flash message per outcome, and a full
// re-read after every mutation.
type HolidayService struct {
	upstream  holidayUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewHolidayService constructs a HolidayService instance.
func NewHolidayService(up holidayUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of holidays plus the live flash.
func (s *HolidayService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Holiday], error) {
	holidays, err := s.upstream.ListHolidays(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(holidays, page, s.console.PageSize)
	return &Page[models.Holiday]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(holidayPanel, time.Now()),
	}, nil
}

// Create adds a holiday and re-reads the list.
func (s *HolidayService) Create(ctx context.Context, sess *session.Session, page int, form HolidayForm) (*Page[models.Holiday], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	_, err := s.upstream.CreateHoliday(ctx, creds, upstream.HolidayRequest(form))
	return s.finish(ctx, sess, page, err, "Holiday added successfully!", "Failed to add holiday")
}

// Update edits a holiday and re-reads the list.
func (s *HolidayService) Update(ctx context.Context, sess *session.Session, page, id int, form HolidayForm) (*Page[models.Holiday], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdateHoliday(ctx, creds, id, upstream.HolidayRequest(form))
	return s.finish(ctx, sess, page, err, "Holiday updated successfully!", "Failed to update holiday")
}

// Delete removes a holiday and re-reads the list. Deleting the last
// row of the last page lands on the new last page.
func (s *HolidayService) Delete(ctx context.Context, sess *session.Session, page, id int) (*Page[models.Holiday], error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteHoliday(ctx, creds, id)
	return s.finish(ctx, sess, page, err, "Holiday deleted successfully!", "Failed to delete holiday")
}

// finish turns a mutation outcome into a flash plus a refreshed page.
// Upstream rejections that end the session propagate; everything else
// becomes an error flash on an otherwise normal page render.
func (s *HolidayService) finish(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Holiday], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("holiday mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, holidayPanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, holidayPanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}
