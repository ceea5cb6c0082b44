package service

import (
	"context"
	"strings"
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

type fakeReportUpstream struct {
	report        *models.OvertimeReport
	reportErr     error
	file          *upstream.FileDownload
	teachers      []models.Teacher
	downloadCalls int
}

func (f *fakeReportUpstream) TeacherOvertime(ctx context.Context, creds upstream.Credentials, teacherID int, startDate, endDate string) (*models.OvertimeReport, error) {
	if f.reportErr != nil {
		return nil, f.reportErr
	}
	return f.report, nil
}

func (f *fakeReportUpstream) DownloadSalaryForm(ctx context.Context, creds upstream.Credentials, mode string) (*upstream.FileDownload, error) {
	f.downloadCalls++
	return f.file, nil
}

func (f *fakeReportUpstream) ListTeachers(ctx context.Context, creds upstream.Credentials) ([]models.Teacher, error) {
	return f.teachers, nil
}

func sampleOvertimeReport() *models.OvertimeReport {
	return &models.OvertimeReport{
		TeacherID: 4,
		StartDate: "2026-01-01",
		EndDate:   "2026-02-28",
		Months: []models.OvertimeMonth{
			{Month: "January", Year: 2026, Weeks: []models.OvertimeWeek{
				{Start: "2026-01-05", End: "2026-01-11", HeuresupHours: 3.5},
				{Start: "2026-01-12", End: "2026-01-18", HeuresupHours: 2},
			}},
			{Month: "February", Year: 2026, Weeks: []models.OvertimeWeek{
				{Start: "2026-02-02", End: "2026-02-08", HeuresupHours: 1.5},
			}},
		},
	}
}

func newReportFixture(t *testing.T, up *fakeReportUpstream) (*ReportService, *session.Session) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	auth := newTestAuth(&fakeAuthUpstream{}, store, session.NewTokenManager("test_secret", time.Hour))
	svc := NewReportService(up, auth, validator.New(), zap.NewNop())
	return svc, testSession(t, store)
}

func validOvertimeQuery() OvertimeQuery {
	return OvertimeQuery{TeacherID: 4, StartDate: "2026-01-01", EndDate: "2026-02-28"}
}

func TestReportServiceOvertime(t *testing.T) {
	up := &fakeReportUpstream{report: sampleOvertimeReport()}
	svc, sess := newReportFixture(t, up)

	report, err := svc.Overtime(context.Background(), sess, validOvertimeQuery())
	require.NoError(t, err)
	assert.InDelta(t, 7.0, report.TotalHours(), 0.0001)
}

func TestReportServiceOvertimeInvalidQuery(t *testing.T) {
	up := &fakeReportUpstream{report: sampleOvertimeReport()}
	svc, sess := newReportFixture(t, up)

	_, err := svc.Overtime(context.Background(), sess, OvertimeQuery{TeacherID: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceOvertimeCard(t *testing.T) {
	up := &fakeReportUpstream{
		report:   sampleOvertimeReport(),
		teachers: []models.Teacher{{ID: 4, FirstName: "Nadia", LastName: "Cherif"}},
	}
	svc, sess := newReportFixture(t, up)

	file, err := svc.OvertimeCard(context.Background(), sess, validOvertimeQuery())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "overtime_4_2026-01-01_2026-02-28.pdf", file.Filename)
	require.NotEmpty(t, file.Body)
	assert.True(t, strings.HasPrefix(string(file.Body[:5]), "%PDF-"))
}

func TestReportServiceOvertimeCardEmptyReport(t *testing.T) {
	up := &fakeReportUpstream{report: &models.OvertimeReport{TeacherID: 4, StartDate: "2026-01-01", EndDate: "2026-02-28"}}
	svc, sess := newReportFixture(t, up)

	file, err := svc.OvertimeCard(context.Background(), sess, validOvertimeQuery())
	require.NoError(t, err)
	assert.NotEmpty(t, file.Body)
}

func TestReportServiceOvertimeCSV(t *testing.T) {
	up := &fakeReportUpstream{report: sampleOvertimeReport()}
	svc, sess := newReportFixture(t, up)

	file, err := svc.OvertimeCSV(context.Background(), sess, validOvertimeQuery())
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Month,Year,Week Start,Week End,Hours", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "January")
	assert.Contains(t, lines[1], "3.50")
}

func TestReportServiceSalaryFormModeWhitelist(t *testing.T) {
	up := &fakeReportUpstream{file: &upstream.FileDownload{ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Filename: "payment_payment-form_1.xlsx", Body: []byte("xlsx")}}
	svc, sess := newReportFixture(t, up)

	_, err := svc.SalaryForm(context.Background(), sess, "bonus")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, up.downloadCalls)

	file, err := svc.SalaryForm(context.Background(), sess, upstream.SalaryPaymentForm)
	require.NoError(t, err)
	assert.Equal(t, 1, up.downloadCalls)
	assert.Equal(t, "payment_payment-form_1.xlsx", file.Filename)
}
