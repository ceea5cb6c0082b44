package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type planningUpstream interface {
	ListSessions(ctx context.Context, creds upstream.Credentials, scheduleID int) ([]models.ScheduleSession, error)
	ListSeances(ctx context.Context, creds upstream.Credentials, sessionID int) ([]models.SeanceRow, error)
	CreateSeance(ctx context.Context, creds upstream.Credentials, sessionID int, req upstream.SeanceRequest) error
	DeleteSeance(ctx context.Context, creds upstream.Credentials, seanceID int) error
	CreateAbsence(ctx context.Context, creds upstream.Credentials, req upstream.AbsenceRequest) error
}

// SeanceFormRequest is the add/edit seance form payload. Day arrives
// lower case the way the form selects it; times are "HH:MM".
type SeanceFormRequest struct {
	TeacherID  int    `json:"teacherId" validate:"required"`
	SeanceType string `json:"seanceType" validate:"required,oneof=cours td tp"`
	Day        string `json:"day" validate:"required"`
	StartTime  string `json:"startTime" validate:"required"`
	EndTime    string `json:"endTime" validate:"required"`
	Location   string `json:"location"`
	Group      int    `json:"group" validate:"required,min=1"`
	Module     string `json:"module" validate:"required"`
}

// AbsenceFormRequest records an absence from the planning grid.
type AbsenceFormRequest struct {
	TeacherID   int    `json:"teacherId" validate:"required"`
	SeanceID    int    `json:"seanceId"`
	AbsenceDate string `json:"absenceDate" validate:"required"`
	Justified   bool   `json:"justified"`
}

// PlanningService builds the weekly grid and runs the seance
// mutations. Every mutation re-reads the seance list afterwards; the
// grid shown is always what the upstream currently holds, never a
// local projection of the edit.
type PlanningService struct {
	upstream  planningUpstream
	auth      *AuthService
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewPlanningService constructs a PlanningService instance.
func NewPlanningService(up planningUpstream, auth *AuthService, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *PlanningService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{upstream: up, auth: auth, validator: validate, logger: logger, metrics: metrics}
}

// Load fetches one session's seances and buckets them into the grid.
func (s *PlanningService) Load(ctx context.Context, sess *session.Session, sessionID int) (*models.WeekGrid, error) {
	rows, err := s.upstream.ListSeances(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie}, sessionID)
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}

	grid := BuildGrid(rows)
	if grid.Skipped > 0 {
		s.logger.Warn("seances dropped from planning grid",
			zap.Int("session_id", sessionID),
			zap.Int("skipped", grid.Skipped),
		)
		s.metrics.RecordGridSkipped(grid.Skipped)
	}
	return grid, nil
}

// AddSeance creates a seance and returns the refreshed grid.
func (s *PlanningService) AddSeance(ctx context.Context, sess *session.Session, sessionID int, req SeanceFormRequest) (*models.WeekGrid, error) {
	payload, err := s.seancePayload(req)
	if err != nil {
		return nil, err
	}
	if err := s.requireOpenSession(ctx, sess, sessionID); err != nil {
		return nil, err
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	if err := s.upstream.CreateSeance(ctx, creds, sessionID, payload); err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return s.Load(ctx, sess, sessionID)
}

// EditSeance replaces one seance. The upstream has no seance update
// endpoint, so edit is delete plus recreate; if the recreate fails the
// old seance is already gone and the error surfaces with the refreshed
// grid state.
func (s *PlanningService) EditSeance(ctx context.Context, sess *session.Session, sessionID, seanceID int, req SeanceFormRequest) (*models.WeekGrid, error) {
	payload, err := s.seancePayload(req)
	if err != nil {
		return nil, err
	}
	if err := s.requireOpenSession(ctx, sess, sessionID); err != nil {
		return nil, err
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	if err := s.upstream.DeleteSeance(ctx, creds, seanceID); err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	if err := s.upstream.CreateSeance(ctx, creds, sessionID, payload); err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return s.Load(ctx, sess, sessionID)
}

// RemoveSeance deletes one seance and returns the refreshed grid.
func (s *PlanningService) RemoveSeance(ctx context.Context, sess *session.Session, sessionID, seanceID int) (*models.WeekGrid, error) {
	if err := s.requireOpenSession(ctx, sess, sessionID); err != nil {
		return nil, err
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	if err := s.upstream.DeleteSeance(ctx, creds, seanceID); err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return s.Load(ctx, sess, sessionID)
}

// RecordAbsence marks a teacher absent for a seance date.
func (s *PlanningService) RecordAbsence(ctx context.Context, sess *session.Session, req AbsenceFormRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence payload")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	err := s.upstream.CreateAbsence(ctx, creds, upstream.AbsenceRequest{
		TeacherID:   req.TeacherID,
		SeanceID:    req.SeanceID,
		AbsenceDate: req.AbsenceDate,
		Justified:   req.Justified,
	})
	if err != nil {
		return s.auth.Invalidate(ctx, sess, err)
	}
	return nil
}

// requireOpenSession rejects seance writes aimed at a closed session
// before any upstream mutation happens. Closed sessions are read-only;
// the grid for them is served by the view planning screen.
func (s *PlanningService) requireOpenSession(ctx context.Context, sess *session.Session, sessionID int) error {
	sessions, err := s.upstream.ListSessions(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie}, sess.Nav.ScheduleID)
	if err != nil {
		return s.auth.Invalidate(ctx, sess, err)
	}
	for _, candidate := range sessions {
		if candidate.ID == sessionID {
			if candidate.Closed {
				return appErrors.Clone(appErrors.ErrSessionClosed, "session is closed, open it in view mode")
			}
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "session not found in this schedule")
}

func (s *PlanningService) seancePayload(req SeanceFormRequest) (upstream.SeanceRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return upstream.SeanceRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seance payload")
	}

	day := strings.ToLower(strings.TrimSpace(req.Day))
	if NormalizeDay(day) == "" {
		return upstream.SeanceRequest{}, appErrors.Clone(appErrors.ErrValidation, "unknown day: "+req.Day)
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = "N/A"
	}

	return upstream.SeanceRequest{
		TeacherID:  req.TeacherID,
		SeanceType: req.SeanceType,
		Day:        day,
		StartTime:  wireTime(req.StartTime),
		EndTime:    wireTime(req.EndTime),
		Location:   location,
		Group:      req.Group,
		Module:     strings.TrimSpace(req.Module),
	}, nil
}

// BuildGrid buckets seance rows into day and time-slot cells. Rows
// whose day or computed slot falls outside the whitelists are counted
// in Skipped and left out; nothing else about them is kept.
func BuildGrid(rows []models.SeanceRow) *models.WeekGrid {
	grid := &models.WeekGrid{
		Days:  models.GridDays,
		Slots: models.GridSlots,
		Cells: make(map[string]map[string][]models.GridEntry, len(models.AcceptedDays)),
	}
	for _, day := range models.AcceptedDays {
		grid.Cells[day] = make(map[string][]models.GridEntry, len(models.GridSlots))
	}

	for _, row := range rows {
		day := NormalizeDay(row.Seance.Day)
		slot := SlotLabel(row.Seance.StartTime, row.Seance.EndTime)
		if day == "" || !validSlot(slot) {
			grid.Skipped++
			continue
		}
		grid.Cells[day][slot] = append(grid.Cells[day][slot], models.GridEntry{
			SeanceID:    row.Seance.ID,
			Module:      row.Seance.Module,
			TeacherID:   row.Seance.TeacherID,
			TeacherName: row.User.FullName(),
			Location:    row.Seance.Location,
			Type:        row.Seance.Type,
			Group:       row.Seance.Group,
		})
	}
	return grid
}

// NormalizeDay turns a wire day ("monday") into its grid column form
// ("Monday"). Returns "" for days outside the accepted set.
func NormalizeDay(day string) string {
	day = strings.ToLower(strings.TrimSpace(day))
	if day == "" {
		return ""
	}
	titled := strings.ToUpper(day[:1]) + day[1:]
	for _, accepted := range models.AcceptedDays {
		if titled == accepted {
			return titled
		}
	}
	return ""
}

// SlotLabel renders a start/end time pair as a grid slot key, with the
// leading zero stripped from the hour ("08:00:00" becomes "8:00").
func SlotLabel(start, end string) string {
	return shortTime(start) + "-" + shortTime(end)
}

func shortTime(t string) string {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return t
	}
	hour := strings.TrimLeft(parts[0], "0")
	if hour == "" {
		hour = "0"
	}
	return hour + ":" + parts[1]
}

// wireTime pads a form "H:MM" or "HH:MM" value to the "HH:MM:00" shape
// the upstream stores.
func wireTime(t string) string {
	t = strings.TrimSpace(t)
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return t
	}
	if len(parts) >= 3 {
		return t
	}
	if len(parts[0]) == 1 {
		parts[0] = "0" + parts[0]
	}
	return parts[0] + ":" + parts[1] + ":00"
}

func validSlot(slot string) bool {
	for _, s := range models.GridSlots {
		if slot == s {
			return true
		}
	}
	return false
}
