package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	"github.com/haythbl004/uni-console/pkg/config"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type fakeHolidayUpstream struct {
	holidays    []models.Holiday
	createErr   error
	updateErr   error
	deleteErr   error
	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (f *fakeHolidayUpstream) ListHolidays(ctx context.Context, creds upstream.Credentials) ([]models.Holiday, error) {
	f.listCalls++
	return f.holidays, nil
}

func (f *fakeHolidayUpstream) CreateHoliday(ctx context.Context, creds upstream.Credentials, req upstream.HolidayRequest) (*models.Holiday, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	holiday := models.Holiday{ID: len(f.holidays) + 1, Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}
	f.holidays = append(f.holidays, holiday)
	return &holiday, nil
}

func (f *fakeHolidayUpstream) UpdateHoliday(ctx context.Context, creds upstream.Credentials, id int, req upstream.HolidayRequest) error {
	f.updateCalls++
	return f.updateErr
}

func (f *fakeHolidayUpstream) DeleteHoliday(ctx context.Context, creds upstream.Credentials, id int) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.holidays[:0]
	for _, h := range f.holidays {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	f.holidays = kept
	return nil
}

func testConsoleConfig() config.ConsoleConfig {
	return config.ConsoleConfig{PageSize: 4, FlashTTL: 3 * time.Second}
}

func testSession(t *testing.T, store session.Store) *session.Session {
	t.Helper()
	sess := &session.Session{ID: "sess-1", User: *adminUser(), UpstreamCookie: "token=abc", Nav: models.NavState{Mode: models.ViewList}}
	require.NoError(t, store.Create(context.Background(), sess))
	return sess
}

func someHolidays(n int) []models.Holiday {
	holidays := make([]models.Holiday, 0, n)
	for i := 1; i <= n; i++ {
		holidays = append(holidays, models.Holiday{ID: i, Name: fmt.Sprintf("Holiday %d", i), StartDate: "2026-01-01", EndDate: "2026-01-02"})
	}
	return holidays
}

func newHolidayFixture(t *testing.T, up *fakeHolidayUpstream) (*HolidayService, *session.Session) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	auth := newTestAuth(&fakeAuthUpstream{}, store, session.NewTokenManager("test_secret", time.Hour))
	svc := NewHolidayService(up, auth, store, validator.New(), zap.NewNop(), testConsoleConfig())
	return svc, testSession(t, store)
}

func TestHolidayServiceListPaginates(t *testing.T) {
	up := &fakeHolidayUpstream{holidays: someHolidays(5)}
	svc, sess := newHolidayFixture(t, up)

	page, err := svc.List(context.Background(), sess, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 5, page.Pagination.TotalCount)
	assert.Nil(t, page.Flash)
}

func TestHolidayServiceCreateSetsSuccessFlash(t *testing.T) {
	up := &fakeHolidayUpstream{}
	svc, sess := newHolidayFixture(t, up)

	form := HolidayForm{Name: "Yennayer", StartDate: "2026-01-12", EndDate: "2026-01-12"}
	page, err := svc.Create(context.Background(), sess, 1, form)
	require.NoError(t, err)
	assert.Equal(t, 1, up.createCalls)
	assert.Equal(t, 1, up.listCalls)
	assert.Len(t, page.Items, 1)
	require.NotNil(t, page.Flash)
	assert.Equal(t, models.FlashSuccess, page.Flash.Kind)
	assert.Equal(t, "Holiday added successfully!", page.Flash.Message)
}

func TestHolidayServiceCreateInvalidPayload(t *testing.T) {
	up := &fakeHolidayUpstream{}
	svc, sess := newHolidayFixture(t, up)

	_, err := svc.Create(context.Background(), sess, 1, HolidayForm{Name: "Missing dates"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, up.createCalls)
	assert.Equal(t, 0, up.listCalls)
}

func TestHolidayServiceUpdateFailureUsesUpstreamMessage(t *testing.T) {
	up := &fakeHolidayUpstream{
		holidays:  someHolidays(1),
		updateErr: appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "holiday overlaps an existing one"),
	}
	svc, sess := newHolidayFixture(t, up)

	form := HolidayForm{Name: "Yennayer", StartDate: "2026-01-12", EndDate: "2026-01-12"}
	page, err := svc.Update(context.Background(), sess, 1, 1, form)
	require.NoError(t, err)
	require.NotNil(t, page.Flash)
	assert.Equal(t, models.FlashError, page.Flash.Kind)
	assert.Equal(t, "holiday overlaps an existing one", page.Flash.Message)
}

func TestHolidayServiceUpdateFailureFallsBack(t *testing.T) {
	up := &fakeHolidayUpstream{
		holidays:  someHolidays(1),
		updateErr: appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream returned status 500"),
	}
	svc, sess := newHolidayFixture(t, up)

	form := HolidayForm{Name: "Yennayer", StartDate: "2026-01-12", EndDate: "2026-01-12"}
	page, err := svc.Update(context.Background(), sess, 1, 1, form)
	require.NoError(t, err)
	require.NotNil(t, page.Flash)
	assert.Equal(t, "Failed to update holiday", page.Flash.Message)
}

func TestHolidayServiceDeleteLastRowLandsOnPreviousPage(t *testing.T) {
	up := &fakeHolidayUpstream{holidays: someHolidays(5)}
	svc, sess := newHolidayFixture(t, up)

	page, err := svc.Delete(context.Background(), sess, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Len(t, page.Items, 4)
	require.NotNil(t, page.Flash)
	assert.Equal(t, "Holiday deleted successfully!", page.Flash.Message)
}

func TestHolidayServiceDeleteExpiredSessionPropagates(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	auth := newTestAuth(&fakeAuthUpstream{}, store, session.NewTokenManager("test_secret", time.Hour))
	up := &fakeHolidayUpstream{deleteErr: appErrors.Clone(appErrors.ErrSessionExpired, "")}
	svc := NewHolidayService(up, auth, store, validator.New(), zap.NewNop(), testConsoleConfig())
	sess := testSession(t, store)

	_, err := svc.Delete(context.Background(), sess, 1, 1)
	require.True(t, appErrors.IsSessionExpired(err))
	assert.Equal(t, 0, up.listCalls)

	_, err = store.Get(context.Background(), sess.ID)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestHolidayServiceFlashDisplacesPrevious(t *testing.T) {
	up := &fakeHolidayUpstream{holidays: someHolidays(1), updateErr: appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "nope")}
	svc, sess := newHolidayFixture(t, up)

	form := HolidayForm{Name: "Yennayer", StartDate: "2026-01-12", EndDate: "2026-01-12"}
	_, err := svc.Update(context.Background(), sess, 1, 1, form)
	require.NoError(t, err)

	up.updateErr = nil
	page, err := svc.Update(context.Background(), sess, 1, 1, form)
	require.NoError(t, err)
	require.NotNil(t, page.Flash)
	assert.Equal(t, models.FlashSuccess, page.Flash.Kind)
	assert.Equal(t, "Holiday updated successfully!", page.Flash.Message)
}
