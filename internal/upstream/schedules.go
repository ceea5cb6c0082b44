package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/haythbl004/uni-console/internal/models"
)

// ScheduleRequest is the add/update payload for schedules.
type ScheduleRequest struct {
	PromotionID     int    `json:"promotionId"`
	Semester        string `json:"semester"`
	EducationalYear string `json:"educationalYear"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// ListSchedules fetches all schedules.
func (c *Client) ListSchedules(ctx context.Context, creds Credentials) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := c.do(ctx, creds, http.MethodGet, "/api/schedule", nil, nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// CreateSchedule adds a schedule and returns the stored record.
func (c *Client) CreateSchedule(ctx context.Context, creds Credentials, req ScheduleRequest) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.do(ctx, creds, http.MethodPost, "/api/schedule", nil, req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// UpdateSchedule edits a schedule.
func (c *Client) UpdateSchedule(ctx context.Context, creds Credentials, id int, req ScheduleRequest) error {
	return c.do(ctx, creds, http.MethodPut, fmt.Sprintf("/api/schedule/%d", id), nil, req, nil)
}

// DeleteSchedule removes a schedule and everything under it.
func (c *Client) DeleteSchedule(ctx context.Context, creds Credentials, id int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/schedule/%d", id), nil, nil, nil)
}

// ListSessions fetches the sessions of one schedule.
func (c *Client) ListSessions(ctx context.Context, creds Credentials, scheduleID int) ([]models.ScheduleSession, error) {
	var sessions []models.ScheduleSession
	if err := c.do(ctx, creds, http.MethodGet, fmt.Sprintf("/api/schedule/%d/sessions", scheduleID), nil, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession opens a new session on a schedule. The dates travel as
// query parameters, not in the body.
func (c *Client) CreateSession(ctx context.Context, creds Credentials, scheduleID int, startDate, endDate string) (*models.ScheduleSession, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	var session models.ScheduleSession
	if err := c.do(ctx, creds, http.MethodPost, fmt.Sprintf("/api/schedule/%d/createSession", scheduleID), query, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSession changes a session's date range, again via query
// parameters.
func (c *Client) UpdateSession(ctx context.Context, creds Credentials, sessionID int, startDate, endDate string) error {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	return c.do(ctx, creds, http.MethodPut, fmt.Sprintf("/api/schedule/sessions/%d", sessionID), query, nil, nil)
}

// CloseSession marks a session closed. There is no reopen endpoint.
func (c *Client) CloseSession(ctx context.Context, creds Credentials, sessionID int) error {
	return c.do(ctx, creds, http.MethodPatch, fmt.Sprintf("/api/schedule/sessions/%d/closeSession", sessionID), nil, nil, nil)
}

// DeleteSession removes a session and its seances.
func (c *Client) DeleteSession(ctx context.Context, creds Credentials, sessionID int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/schedule/sessions/%d", sessionID), nil, nil, nil)
}

// SeanceRequest is the payload for planting a seance into a session.
// Day is lowercase and times carry seconds; the upstream is strict
// about both.
type SeanceRequest struct {
	TeacherID  int    `json:"teacherId"`
	SeanceType string `json:"seanceType"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Location   string `json:"location"`
	Group      int    `json:"group"`
	Module     string `json:"module"`
}

// ListSeances fetches the seance join rows of one session.
func (c *Client) ListSeances(ctx context.Context, creds Credentials, sessionID int) ([]models.SeanceRow, error) {
	var rows []models.SeanceRow
	if err := c.do(ctx, creds, http.MethodGet, fmt.Sprintf("/api/schedule/sessions/%d/seances", sessionID), nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateSeance adds a seance to a session.
func (c *Client) CreateSeance(ctx context.Context, creds Credentials, sessionID int, req SeanceRequest) error {
	return c.do(ctx, creds, http.MethodPost, fmt.Sprintf("/api/schedule/%d/seances", sessionID), nil, req, nil)
}

// DeleteSeance removes a single seance.
func (c *Client) DeleteSeance(ctx context.Context, creds Credentials, seanceID int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/seance/%d", seanceID), nil, nil, nil)
}
