package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/haythbl004/uni-console/internal/models"
)

// UpdateTeacherRequest mirrors the flat payload of the teacher update
// endpoint (id in body, not in the path).
type UpdateTeacherRequest struct {
	ID            int    `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	GradeID       int    `json:"gradeId"`
	PaymentType   string `json:"paymentType"`
	TeacherType   string `json:"teacherType"`
	AccountNumber string `json:"accountNumber"`
}

// ListTeachers fetches the teacher join rows and flattens them.
func (c *Client) ListTeachers(ctx context.Context, creds Credentials) ([]models.Teacher, error) {
	var rows []models.TeacherRow
	if err := c.do(ctx, creds, http.MethodGet, "/api/teacher/get", nil, nil, &rows); err != nil {
		return nil, err
	}
	teachers := make([]models.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, row.Flatten())
	}
	return teachers, nil
}

// UpdateTeacher pushes edited teacher fields.
func (c *Client) UpdateTeacher(ctx context.Context, creds Credentials, req UpdateTeacherRequest) error {
	return c.do(ctx, creds, http.MethodPut, "/api/teacher/update", nil, req, nil)
}

// DeleteTeacher removes a teacher account by user id.
func (c *Client) DeleteTeacher(ctx context.Context, creds Credentials, id int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/teacher/delete/%d", id), nil, nil, nil)
}
