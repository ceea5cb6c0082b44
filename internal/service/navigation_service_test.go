package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type fakeNavSessions struct {
	sessions []models.ScheduleSession
	err      error
}

func (f *fakeNavSessions) ListSessions(ctx context.Context, creds upstream.Credentials, scheduleID int) ([]models.ScheduleSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

func newNavFixture(t *testing.T, sessions *fakeNavSessions) (*NavigationService, *session.Session, session.Store) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	svc := NewNavigationService(store, sessions, zap.NewNop())
	sess := testSession(t, store)
	return svc, sess, store
}

func TestNavigationStartAddFromList(t *testing.T) {
	svc, sess, store := newNavFixture(t, &fakeNavSessions{})

	nav, err := svc.StartAdd(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, models.ViewAdd, nav.Mode)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ViewAdd, stored.Nav.Mode)
}

func TestNavigationRejectsSkippedStates(t *testing.T) {
	svc, sess, _ := newNavFixture(t, &fakeNavSessions{})

	_, err := svc.StartSeanceAdd(context.Background(), sess)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "cannot move from list to planningAdd", appErr.Message)

	// The rejected transition leaves the position untouched.
	assert.Equal(t, models.ViewList, sess.Nav.Mode)
}

func TestNavigationOpenPlanningRejectsClosedSession(t *testing.T) {
	sessions := &fakeNavSessions{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3, Closed: true}}}
	svc, sess, _ := newNavFixture(t, sessions)

	_, err := svc.OpenSessions(context.Background(), sess, 3)
	require.NoError(t, err)

	_, err = svc.OpenPlanning(context.Background(), sess, 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionClosed.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.ViewSessionList, sess.Nav.Mode)
}

func TestNavigationOpenViewPlanningRejectsOpenSession(t *testing.T) {
	sessions := &fakeNavSessions{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3}}}
	svc, sess, _ := newNavFixture(t, sessions)

	_, err := svc.OpenSessions(context.Background(), sess, 3)
	require.NoError(t, err)

	_, err = svc.OpenViewPlanning(context.Background(), sess, 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNavigationOpenPlanningUnknownSession(t *testing.T) {
	svc, sess, _ := newNavFixture(t, &fakeNavSessions{})

	_, err := svc.OpenSessions(context.Background(), sess, 3)
	require.NoError(t, err)

	_, err = svc.OpenPlanning(context.Background(), sess, 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNavigationDrillDownToSeanceEdit(t *testing.T) {
	sessions := &fakeNavSessions{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3}}}
	svc, sess, store := newNavFixture(t, sessions)

	_, err := svc.OpenSessions(context.Background(), sess, 3)
	require.NoError(t, err)
	_, err = svc.OpenPlanning(context.Background(), sess, 9)
	require.NoError(t, err)
	nav, err := svc.StartSeanceEdit(context.Background(), sess, 77)
	require.NoError(t, err)

	assert.Equal(t, models.ViewPlanningEdit, nav.Mode)
	assert.Equal(t, 3, nav.ScheduleID)
	assert.Equal(t, 9, nav.SessionID)
	assert.Equal(t, 77, nav.SeanceID)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, nav, stored.Nav)
}

func TestNavigationJumpClearsDescendantIDs(t *testing.T) {
	sessions := &fakeNavSessions{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3}}}
	svc, sess, _ := newNavFixture(t, sessions)

	_, err := svc.OpenSessions(context.Background(), sess, 3)
	require.NoError(t, err)
	_, err = svc.OpenPlanning(context.Background(), sess, 9)
	require.NoError(t, err)
	_, err = svc.StartSeanceEdit(context.Background(), sess, 77)
	require.NoError(t, err)

	nav, err := svc.JumpTo(context.Background(), sess, models.ViewSessionList)
	require.NoError(t, err)
	assert.Equal(t, models.ViewSessionList, nav.Mode)
	assert.Equal(t, 3, nav.ScheduleID)
	assert.Zero(t, nav.SessionID)
	assert.Zero(t, nav.SeanceID)
}

func TestNavigationJumpToPlanningKeepsSession(t *testing.T) {
	sessions := &fakeNavSessions{sessions: []models.ScheduleSession{{ID: 9, ScheduleID: 3}}}
	svc, sess, _ := newNavFixture(t, sessions)

	_, err := svc.OpenSessions(context.Background(), sess, 3)
	require.NoError(t, err)
	_, err = svc.OpenPlanning(context.Background(), sess, 9)
	require.NoError(t, err)
	_, err = svc.StartSeanceAdd(context.Background(), sess)
	require.NoError(t, err)

	nav, err := svc.JumpTo(context.Background(), sess, models.ViewPlanning)
	require.NoError(t, err)
	assert.Equal(t, models.ViewPlanning, nav.Mode)
	assert.Equal(t, 9, nav.SessionID)
	assert.Zero(t, nav.SeanceID)
}

func TestNavigationJumpWithoutContext(t *testing.T) {
	svc, sess, _ := newNavFixture(t, &fakeNavSessions{})

	_, err := svc.JumpTo(context.Background(), sess, models.ViewSessionList)
	require.Error(t, err)

	_, err = svc.JumpTo(context.Background(), sess, models.ViewPlanning)
	require.Error(t, err)

	// The list is always reachable.
	nav, err := svc.JumpTo(context.Background(), sess, models.ViewList)
	require.NoError(t, err)
	assert.Equal(t, models.ViewList, nav.Mode)
}

func TestBreadcrumbsForSeanceEdit(t *testing.T) {
	nav := models.NavState{Mode: models.ViewPlanningEdit, ScheduleID: 3, SessionID: 9, SeanceID: 77}
	crumbs := Breadcrumbs(nav)

	require.Len(t, crumbs, 4)
	assert.Equal(t, "Schedules", crumbs[0].Label)
	assert.Equal(t, "Sessions", crumbs[1].Label)
	assert.Equal(t, "Planning", crumbs[2].Label)
	assert.Equal(t, "Edit Seance", crumbs[3].Label)
	for _, crumb := range crumbs[:3] {
		assert.False(t, crumb.Active)
	}
	assert.True(t, crumbs[3].Active)
}

func TestBreadcrumbsForList(t *testing.T) {
	crumbs := Breadcrumbs(models.NavState{Mode: models.ViewList})
	require.Len(t, crumbs, 1)
	assert.True(t, crumbs[0].Active)
}

func TestBreadcrumbsForViewPlanning(t *testing.T) {
	crumbs := Breadcrumbs(models.NavState{Mode: models.ViewViewPlanning, ScheduleID: 3, SessionID: 9})
	require.Len(t, crumbs, 3)
	assert.Equal(t, "View Planning", crumbs[2].Label)
	assert.True(t, crumbs[2].Active)
}
