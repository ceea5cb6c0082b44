package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

// Salary form modes on the salary export endpoints.
const (
	SalaryPaymentForm = "payment-form"
	SalaryEngagement  = "engagement"
)

// FileDownload is a fetched binary export.
type FileDownload struct {
	ContentType string
	Filename    string
	Body        []byte
}

// TeacherOvertime fetches the aggregated supplementary hours for one
// teacher over a date range.
func (c *Client) TeacherOvertime(ctx context.Context, creds Credentials, teacherID int, startDate, endDate string) (*models.OvertimeReport, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var months []models.OvertimeMonth
	path := fmt.Sprintf("/api/heureSup/teacherHS/%d", teacherID)
	if err := c.do(ctx, creds, http.MethodGet, path, query, nil, &months); err != nil {
		return nil, err
	}
	return &models.OvertimeReport{
		TeacherID: teacherID,
		StartDate: startDate,
		EndDate:   endDate,
		Months:    months,
	}, nil
}

// DownloadSalaryForm streams the xlsx export for the given mode
// ("payment-form" or "engagement") into memory. The response is not
// JSON, so this bypasses do.
func (c *Client) DownloadSalaryForm(ctx context.Context, creds Credentials, mode string) (*FileDownload, error) {
	path := "/api/salary/" + mode
	req, err := c.newRequest(ctx, creds, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, application/octet-stream")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observe != nil {
			c.observe(http.MethodGet, path, 0, time.Since(start))
		}
		c.logger.Warn("upstream unreachable", zap.String("path", path), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnreachable.Code, appErrors.ErrUpstreamUnreachable.Status, appErrors.ErrUpstreamUnreachable.Message)
	}
	defer resp.Body.Close()

	if c.observe != nil {
		c.observe(http.MethodGet, path, resp.StatusCode, time.Since(start))
	}

	if err := c.checkStatus(resp, http.MethodGet, path); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to read salary export")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return &FileDownload{
		ContentType: contentType,
		Filename:    fmt.Sprintf("payment_%s_%d.xlsx", mode, time.Now().Unix()),
		Body:        body,
	}, nil
}
