package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type fakeScheduleUpstream struct {
	schedules   []models.Schedule
	sessions    []models.ScheduleSession
	promotions  []models.Promotion
	createErr   error
	closeCalls  int
	updateCalls int
	deleteCalls int
}

func (f *fakeScheduleUpstream) ListSchedules(ctx context.Context, creds upstream.Credentials) ([]models.Schedule, error) {
	return f.schedules, nil
}

func (f *fakeScheduleUpstream) CreateSchedule(ctx context.Context, creds upstream.Credentials, req upstream.ScheduleRequest) (*models.Schedule, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	schedule := models.Schedule{ID: len(f.schedules) + 1, PromotionID: req.PromotionID, Semester: req.Semester}
	f.schedules = append(f.schedules, schedule)
	return &schedule, nil
}

func (f *fakeScheduleUpstream) UpdateSchedule(ctx context.Context, creds upstream.Credentials, id int, req upstream.ScheduleRequest) error {
	return nil
}

func (f *fakeScheduleUpstream) DeleteSchedule(ctx context.Context, creds upstream.Credentials, id int) error {
	return nil
}

func (f *fakeScheduleUpstream) ListSessions(ctx context.Context, creds upstream.Credentials, scheduleID int) ([]models.ScheduleSession, error) {
	return f.sessions, nil
}

func (f *fakeScheduleUpstream) CreateSession(ctx context.Context, creds upstream.Credentials, scheduleID int, startDate, endDate string) (*models.ScheduleSession, error) {
	sess := models.ScheduleSession{ID: len(f.sessions) + 1, ScheduleID: scheduleID, StartDate: startDate, FinishDate: endDate}
	f.sessions = append(f.sessions, sess)
	return &sess, nil
}

func (f *fakeScheduleUpstream) UpdateSession(ctx context.Context, creds upstream.Credentials, sessionID int, startDate, endDate string) error {
	f.updateCalls++
	return nil
}

func (f *fakeScheduleUpstream) CloseSession(ctx context.Context, creds upstream.Credentials, sessionID int) error {
	f.closeCalls++
	for i := range f.sessions {
		if f.sessions[i].ID == sessionID {
			f.sessions[i].Closed = true
		}
	}
	return nil
}

func (f *fakeScheduleUpstream) DeleteSession(ctx context.Context, creds upstream.Credentials, sessionID int) error {
	f.deleteCalls++
	return nil
}

func (f *fakeScheduleUpstream) ListPromotions(ctx context.Context, creds upstream.Credentials) ([]models.Promotion, error) {
	return f.promotions, nil
}

func newScheduleFixture(t *testing.T, up *fakeScheduleUpstream) (*ScheduleService, *session.Session) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	auth := newTestAuth(&fakeAuthUpstream{}, store, session.NewTokenManager("test_secret", time.Hour))
	svc := NewScheduleService(up, auth, store, validator.New(), zap.NewNop(), testConsoleConfig())
	return svc, testSession(t, store)
}

func validScheduleForm() ScheduleForm {
	return ScheduleForm{PromotionID: 2, Semester: "1", EducationalYear: "2025/2026", StartDate: "2025-09-01", EndDate: "2026-01-15"}
}

func TestScheduleServiceCreate(t *testing.T) {
	up := &fakeScheduleUpstream{}
	svc, sess := newScheduleFixture(t, up)

	page, err := svc.Create(context.Background(), sess, 1, validScheduleForm())
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	require.NotNil(t, page.Flash)
	assert.Equal(t, "Schedule added successfully!", page.Flash.Message)
}

func TestScheduleServiceCreateInvalidSemester(t *testing.T) {
	up := &fakeScheduleUpstream{}
	svc, sess := newScheduleFixture(t, up)

	form := validScheduleForm()
	form.Semester = "3"
	_, err := svc.Create(context.Background(), sess, 1, form)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, up.schedules)
}

func TestScheduleServiceOptions(t *testing.T) {
	up := &fakeScheduleUpstream{promotions: []models.Promotion{{ID: 2, Name: "L3 Info", SpecialityID: 1}}}
	svc, sess := newScheduleFixture(t, up)

	promotions, err := svc.Options(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, "L3 Info", promotions[0].Name)
}

func TestScheduleServiceCreateSessionFlash(t *testing.T) {
	up := &fakeScheduleUpstream{}
	svc, sess := newScheduleFixture(t, up)

	sessions, flash, err := svc.CreateSession(context.Background(), sess, 3, SessionForm{StartDate: "2025-09-01", EndDate: "2025-10-15"})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	require.NotNil(t, flash)
	assert.Equal(t, models.FlashSuccess, flash.Kind)
	assert.Equal(t, "Session added successfully!", flash.Message)
}

func TestScheduleServiceUpdateClosedSessionRejected(t *testing.T) {
	up := &fakeScheduleUpstream{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3, Closed: true}}}
	svc, sess := newScheduleFixture(t, up)

	_, _, err := svc.UpdateSession(context.Background(), sess, 3, 9, SessionForm{StartDate: "2025-09-01", EndDate: "2025-10-15"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionClosed.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, up.updateCalls)
}

func TestScheduleServiceCloseClosedSessionRejected(t *testing.T) {
	up := &fakeScheduleUpstream{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3, Closed: true}}}
	svc, sess := newScheduleFixture(t, up)

	_, _, err := svc.CloseSession(context.Background(), sess, 3, 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionClosed.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, up.closeCalls)
}

func TestScheduleServiceCloseOpenSession(t *testing.T) {
	up := &fakeScheduleUpstream{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3}}}
	svc, sess := newScheduleFixture(t, up)

	sessions, flash, err := svc.CloseSession(context.Background(), sess, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, up.closeCalls)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Closed)
	require.NotNil(t, flash)
	assert.Equal(t, "Session closed successfully!", flash.Message)
}

func TestScheduleServiceUpdateUnknownSession(t *testing.T) {
	up := &fakeScheduleUpstream{}
	svc, sess := newScheduleFixture(t, up)

	_, _, err := svc.UpdateSession(context.Background(), sess, 3, 42, SessionForm{StartDate: "2025-09-01", EndDate: "2025-10-15"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceDeleteClosedSessionAllowed(t *testing.T) {
	up := &fakeScheduleUpstream{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3, Closed: true}}}
	svc, sess := newScheduleFixture(t, up)

	_, flash, err := svc.DeleteSession(context.Background(), sess, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, up.deleteCalls)
	require.NotNil(t, flash)
	assert.Equal(t, "Session deleted successfully!", flash.Message)
}
