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

const (
	schedulePanel = "schedules"
	sessionPanel  = "sessions"
)

type scheduleUpstream interface {
	ListSchedules(ctx context.Context, creds upstream.Credentials) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, creds upstream.Credentials, req upstream.ScheduleRequest) (*models.Schedule, error)
	UpdateSchedule(ctx context.Context, creds upstream.Credentials, id int, req upstream.ScheduleRequest) error
	DeleteSchedule(ctx context.Context, creds upstream.Credentials, id int) error
	ListSessions(ctx context.Context, creds upstream.Credentials, scheduleID int) ([]models.ScheduleSession, error)
	CreateSession(ctx context.Context, creds upstream.Credentials, scheduleID int, startDate, endDate string) (*models.ScheduleSession, error)
	UpdateSession(ctx context.Context, creds upstream.Credentials, sessionID int, startDate, endDate string) error
	CloseSession(ctx context.Context, creds upstream.Credentials, sessionID int) error
	DeleteSession(ctx context.Context, creds upstream.Credentials, sessionID int) error
	ListPromotions(ctx context.Context, creds upstream.Credentials) ([]models.Promotion, error)
}

// ScheduleForm is the add/edit schedule payload.
type ScheduleForm struct {
	PromotionID     int    `json:"promotionId" validate:"required"`
	Semester        string `json:"semester" validate:"required,oneof=1 2"`
	EducationalYear string `json:"educationalYear" validate:"required"`
	StartDate       string `json:"startDate" validate:"required"`
	EndDate         string `json:"endDate" validate:"required"`
}

// SessionForm is the add/edit session payload.
type SessionForm struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// ScheduleService runs the schedule list and the session list beneath
// it. Session closing is one way: a closed session only ever opens in
// the read-only planning view.
type ScheduleService struct {
	upstream  scheduleUpstream
	auth      *AuthService
	store     session.Store
	validator *validator.Validate
	logger    *zap.Logger
	console   config.ConsoleConfig
}

// NewScheduleService constructs a ScheduleService instance.
func NewScheduleService(up scheduleUpstream, auth *AuthService, store session.Store, validate *validator.Validate, logger *zap.Logger, console config.ConsoleConfig) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{upstream: up, auth: auth, store: store, validator: validate, logger: logger, console: console}
}

// List returns one page of schedules plus the live flash.
func (s *ScheduleService) List(ctx context.Context, sess *session.Session, page int) (*Page[models.Schedule], error) {
	schedules, err := s.upstream.ListSchedules(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	items, pagination := models.Paginate(schedules, page, s.console.PageSize)
	return &Page[models.Schedule]{
		Items:      items,
		Pagination: pagination,
		Flash:      sess.Flash(schedulePanel, time.Now()),
	}, nil
}

// Options returns the promotion choices for the schedule form.
func (s *ScheduleService) Options(ctx context.Context, sess *session.Session) ([]models.Promotion, error) {
	promotions, err := s.upstream.ListPromotions(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return promotions, nil
}

// Create adds a schedule and re-reads the list.
func (s *ScheduleService) Create(ctx context.Context, sess *session.Session, page int, form ScheduleForm) (*Page[models.Schedule], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	_, err := s.upstream.CreateSchedule(ctx, creds, upstream.ScheduleRequest(form))
	return s.finishSchedule(ctx, sess, page, err, "Schedule added successfully!", "Failed to add schedule")
}

// Update edits a schedule and re-reads the list.
func (s *ScheduleService) Update(ctx context.Context, sess *session.Session, page, id int, form ScheduleForm) (*Page[models.Schedule], error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdateSchedule(ctx, creds, id, upstream.ScheduleRequest(form))
	return s.finishSchedule(ctx, sess, page, err, "Schedule updated successfully!", "Failed to update schedule")
}

// Delete removes a schedule and everything beneath it, then re-reads
// the list.
func (s *ScheduleService) Delete(ctx context.Context, sess *session.Session, page, id int) (*Page[models.Schedule], error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteSchedule(ctx, creds, id)
	return s.finishSchedule(ctx, sess, page, err, "Schedule deleted successfully!", "Failed to delete schedule")
}

// Sessions returns one schedule's sessions plus the live flash. The
// session list is short; it is not paginated.
func (s *ScheduleService) Sessions(ctx context.Context, sess *session.Session, scheduleID int) ([]models.ScheduleSession, *models.Flash, error) {
	sessions, err := s.upstream.ListSessions(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie}, scheduleID)
	if err != nil {
		return nil, nil, s.auth.Invalidate(ctx, sess, err)
	}
	return sessions, sess.Flash(sessionPanel, time.Now()), nil
}

// CreateSession opens a session on a schedule and re-reads the list.
func (s *ScheduleService) CreateSession(ctx context.Context, sess *session.Session, scheduleID int, form SessionForm) ([]models.ScheduleSession, *models.Flash, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	_, err := s.upstream.CreateSession(ctx, creds, scheduleID, form.StartDate, form.EndDate)
	return s.finishSession(ctx, sess, scheduleID, err, "Session added successfully!", "Failed to add session")
}

// UpdateSession changes an open session's dates and re-reads the list.
func (s *ScheduleService) UpdateSession(ctx context.Context, sess *session.Session, scheduleID, sessionID int, form SessionForm) ([]models.ScheduleSession, *models.Flash, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if err := s.requireOpen(ctx, sess, scheduleID, sessionID); err != nil {
		return nil, nil, err
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.UpdateSession(ctx, creds, sessionID, form.StartDate, form.EndDate)
	return s.finishSession(ctx, sess, scheduleID, err, "Session updated successfully!", "Failed to update session")
}

// CloseSession closes a session permanently and re-reads the list.
func (s *ScheduleService) CloseSession(ctx context.Context, sess *session.Session, scheduleID, sessionID int) ([]models.ScheduleSession, *models.Flash, error) {
	if err := s.requireOpen(ctx, sess, scheduleID, sessionID); err != nil {
		return nil, nil, err
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.CloseSession(ctx, creds, sessionID)
	return s.finishSession(ctx, sess, scheduleID, err, "Session closed successfully!", "Failed to close session")
}

// DeleteSession removes a session and its seances, then re-reads the
// list.
func (s *ScheduleService) DeleteSession(ctx context.Context, sess *session.Session, scheduleID, sessionID int) ([]models.ScheduleSession, *models.Flash, error) {
	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.DeleteSession(ctx, creds, sessionID)
	return s.finishSession(ctx, sess, scheduleID, err, "Session deleted successfully!", "Failed to delete session")
}

// requireOpen rejects mutations aimed at a closed session before any
// upstream write happens.
func (s *ScheduleService) requireOpen(ctx context.Context, sess *session.Session, scheduleID, sessionID int) error {
	sessions, err := s.upstream.ListSessions(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie}, scheduleID)
	if err != nil {
		return s.auth.Invalidate(ctx, sess, err)
	}
	for _, candidate := range sessions {
		if candidate.ID == sessionID {
			if candidate.Closed {
				return appErrors.Clone(appErrors.ErrSessionClosed, "")
			}
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "session not found in this schedule")
}

func (s *ScheduleService) finishSchedule(ctx context.Context, sess *session.Session, page int, err error, success, fallback string) (*Page[models.Schedule], error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("schedule mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, schedulePanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, schedulePanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.List(ctx, sess, page)
}

func (s *ScheduleService) finishSession(ctx context.Context, sess *session.Session, scheduleID int, err error, success, fallback string) ([]models.ScheduleSession, *models.Flash, error) {
	if err != nil {
		if appErrors.IsSessionExpired(err) {
			return nil, nil, s.auth.Invalidate(ctx, sess, err)
		}
		s.logger.Warn("session mutation failed", zap.Error(err))
		setFlash(ctx, s.store, sess, sessionPanel, models.FlashError, flashMessage(err, fallback), s.console.FlashTTL)
	} else {
		setFlash(ctx, s.store, sess, sessionPanel, models.FlashSuccess, success, s.console.FlashTTL)
	}
	return s.Sessions(ctx, sess, scheduleID)
}
