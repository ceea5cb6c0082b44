package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/export"
)

type reportUpstream interface {
	TeacherOvertime(ctx context.Context, creds upstream.Credentials, teacherID int, startDate, endDate string) (*models.OvertimeReport, error)
	DownloadSalaryForm(ctx context.Context, creds upstream.Credentials, mode string) (*upstream.FileDownload, error)
	ListTeachers(ctx context.Context, creds upstream.Credentials) ([]models.Teacher, error)
}

// OvertimeQuery selects one teacher's supplementary hours over a date
// range.
type OvertimeQuery struct {
	TeacherID int    `form:"teacherId" validate:"required"`
	StartDate string `form:"startDate" validate:"required"`
	EndDate   string `form:"endDate" validate:"required"`
}

// ReportFile is a generated document ready to stream to the browser.
type ReportFile struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ReportService produces the printable overtime card and proxies the
// salary spreadsheet exports. All figures come from the upstream; the
// console only lays them out.
type ReportService struct {
	upstream  reportUpstream
	auth      *AuthService
	pdf       *export.PDFExporter
	csv       *export.CSVExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a ReportService instance.
func NewReportService(up reportUpstream, auth *AuthService, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		upstream:  up,
		auth:      auth,
		pdf:       export.NewPDFExporter(),
		csv:       export.NewCSVExporter(),
		validator: validate,
		logger:    logger,
	}
}

// Overtime fetches the aggregated report for display.
func (s *ReportService) Overtime(ctx context.Context, sess *session.Session, query OvertimeQuery) (*models.OvertimeReport, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid overtime query")
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	report, err := s.upstream.TeacherOvertime(ctx, creds, query.TeacherID, query.StartDate, query.EndDate)
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return report, nil
}

// overtimeWeekHeaders are the table columns of every month section;
// overtimeLabelHeaders prefix each flat CSV row with its month.
var (
	overtimeWeekHeaders  = []string{"Week Start", "Week End", "Hours"}
	overtimeLabelHeaders = []string{"Month", "Year"}
)

// overtimeDocument shapes the report into the sectioned document both
// exporters consume: one section per month, week rows inside.
func overtimeDocument(report *models.OvertimeReport, teacherName string) export.Document {
	doc := export.Document{
		Title:    "Overtime Card",
		Subtitle: fmt.Sprintf("%s  |  %s to %s", teacherName, report.StartDate, report.EndDate),
		Summary:  fmt.Sprintf("Total overtime: %.2f h", report.TotalHours()),
	}
	for _, month := range report.Months {
		section := export.Section{
			Heading: fmt.Sprintf("%s %d", month.Month, month.Year),
			Labels: map[string]string{
				"Month": month.Month,
				"Year":  fmt.Sprintf("%d", month.Year),
			},
			Table: export.Dataset{Headers: overtimeWeekHeaders},
		}
		for _, week := range month.Weeks {
			section.Table.Rows = append(section.Table.Rows, map[string]string{
				"Week Start": week.Start,
				"Week End":   week.End,
				"Hours":      fmt.Sprintf("%.2f", week.HeuresupHours),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}
	if len(doc.Sections) == 0 {
		doc.Sections = append(doc.Sections, export.Section{
			Table: export.Dataset{Headers: overtimeWeekHeaders},
		})
	}
	return doc
}

// OvertimeCard renders the printable PDF card: one table per month,
// week rows inside, and the grand total underneath.
func (s *ReportService) OvertimeCard(ctx context.Context, sess *session.Session, query OvertimeQuery) (*ReportFile, error) {
	report, err := s.Overtime(ctx, sess, query)
	if err != nil {
		return nil, err
	}

	doc := overtimeDocument(report, s.teacherName(ctx, sess, query.TeacherID))
	body, err := s.pdf.Render(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render overtime card")
	}

	return &ReportFile{
		ContentType: "application/pdf",
		Filename:    fmt.Sprintf("overtime_%d_%s_%s.pdf", query.TeacherID, query.StartDate, query.EndDate),
		Body:        body,
	}, nil
}

// OvertimeCSV renders the same report as a flat CSV, one row per week.
func (s *ReportService) OvertimeCSV(ctx context.Context, sess *session.Session, query OvertimeQuery) (*ReportFile, error) {
	report, err := s.Overtime(ctx, sess, query)
	if err != nil {
		return nil, err
	}

	// The flat export has no title block, so the teacher lookup the
	// card does is skipped here.
	doc := overtimeDocument(report, "")
	body, err := s.csv.Render(doc, overtimeLabelHeaders)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render overtime csv")
	}

	return &ReportFile{
		ContentType: "text/csv",
		Filename:    fmt.Sprintf("overtime_%d_%s_%s.csv", query.TeacherID, query.StartDate, query.EndDate),
		Body:        body,
	}, nil
}

// SalaryForm streams one of the upstream xlsx exports through.
func (s *ReportService) SalaryForm(ctx context.Context, sess *session.Session, mode string) (*ReportFile, error) {
	if mode != upstream.SalaryPaymentForm && mode != upstream.SalaryEngagement {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown salary form: "+mode)
	}

	creds := upstream.Credentials{Cookie: sess.UpstreamCookie}
	file, err := s.upstream.DownloadSalaryForm(ctx, creds, mode)
	if err != nil {
		return nil, s.auth.Invalidate(ctx, sess, err)
	}
	return &ReportFile{ContentType: file.ContentType, Filename: file.Filename, Body: file.Body}, nil
}

func (s *ReportService) teacherName(ctx context.Context, sess *session.Session, teacherID int) string {
	teachers, err := s.upstream.ListTeachers(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie})
	if err != nil {
		s.logger.Warn("failed to resolve teacher name for overtime card", zap.Error(err))
		return fmt.Sprintf("Teacher #%d", teacherID)
	}
	for _, teacher := range teachers {
		if teacher.ID == teacherID {
			if name := strings.TrimSpace(teacher.FullName()); name != "" {
				return name
			}
			break
		}
	}
	return fmt.Sprintf("Teacher #%d", teacherID)
}
