package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/haythbl004/uni-console/internal/models"
)

// GradeRequest is the add/update payload for grades. Field names match
// the upstream's capitalised grade columns.
type GradeRequest struct {
	ID        int     `json:"id,omitempty"`
	GradeName string  `json:"gradeName"`
	Price     float64 `json:"pricePerHour"`
	Charge    float64 `json:"charge"`
}

// ListGrades fetches the grade catalogue.
func (c *Client) ListGrades(ctx context.Context, creds Credentials) ([]models.Grade, error) {
	var grades []models.Grade
	if err := c.do(ctx, creds, http.MethodGet, "/api/grade/get", nil, nil, &grades); err != nil {
		return nil, err
	}
	return grades, nil
}

// CreateGrade adds a grade and returns the stored record.
func (c *Client) CreateGrade(ctx context.Context, creds Credentials, req GradeRequest) (*models.Grade, error) {
	var grade models.Grade
	if err := c.do(ctx, creds, http.MethodPost, "/api/grade/add", nil, req, &grade); err != nil {
		return nil, err
	}
	return &grade, nil
}

// UpdateGrade edits a grade; the id travels in the body.
func (c *Client) UpdateGrade(ctx context.Context, creds Credentials, req GradeRequest) error {
	return c.do(ctx, creds, http.MethodPut, "/api/grade/update", nil, req, nil)
}

// DeleteGrade removes a grade; the id travels in the body.
func (c *Client) DeleteGrade(ctx context.Context, creds Credentials, id int) error {
	return c.do(ctx, creds, http.MethodDelete, "/api/grade/delete", nil, map[string]int{"id": id}, nil)
}

// ListSpecialities fetches the speciality catalogue.
func (c *Client) ListSpecialities(ctx context.Context, creds Credentials) ([]models.Speciality, error) {
	var specialities []models.Speciality
	if err := c.do(ctx, creds, http.MethodGet, "/api/speciality", nil, nil, &specialities); err != nil {
		return nil, err
	}
	return specialities, nil
}

// CreateSpeciality adds a speciality and returns the stored record.
func (c *Client) CreateSpeciality(ctx context.Context, creds Credentials, name string) (*models.Speciality, error) {
	var speciality models.Speciality
	if err := c.do(ctx, creds, http.MethodPost, "/api/speciality", nil, map[string]string{"name": name}, &speciality); err != nil {
		return nil, err
	}
	return &speciality, nil
}

// UpdateSpeciality renames a speciality.
func (c *Client) UpdateSpeciality(ctx context.Context, creds Credentials, id int, name string) error {
	return c.do(ctx, creds, http.MethodPut, fmt.Sprintf("/api/speciality/%d", id), nil, map[string]string{"name": name}, nil)
}

// DeleteSpeciality removes a speciality.
func (c *Client) DeleteSpeciality(ctx context.Context, creds Credentials, id int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/speciality/%d", id), nil, nil, nil)
}

// PromotionRequest is the add/update payload for promotions.
type PromotionRequest struct {
	Name         string `json:"name"`
	SpecialityID int    `json:"specialityId"`
}

// promotionResponse tolerates both the flat and the nested
// {Promotion, Speciality} shapes the upstream emits.
type promotionResponse struct {
	models.Promotion
	Nested     *models.Promotion  `json:"Promotion"`
	Speciality *models.Speciality `json:"Speciality"`
}

func (r promotionResponse) normalize() models.Promotion {
	promotion := r.Promotion
	if r.Nested != nil {
		promotion = *r.Nested
	}
	if r.Speciality != nil {
		promotion.SpecialityID = r.Speciality.ID
		promotion.SpecialityName = r.Speciality.Name
	}
	return promotion
}

// ListPromotions fetches promotions with their speciality names.
func (c *Client) ListPromotions(ctx context.Context, creds Credentials) ([]models.Promotion, error) {
	var rows []promotionResponse
	if err := c.do(ctx, creds, http.MethodGet, "/api/promotion", nil, nil, &rows); err != nil {
		return nil, err
	}
	promotions := make([]models.Promotion, 0, len(rows))
	for _, row := range rows {
		promotions = append(promotions, row.normalize())
	}
	return promotions, nil
}

// CreatePromotion adds a promotion and returns the stored record.
func (c *Client) CreatePromotion(ctx context.Context, creds Credentials, req PromotionRequest) (*models.Promotion, error) {
	var row promotionResponse
	if err := c.do(ctx, creds, http.MethodPost, "/api/promotion", nil, req, &row); err != nil {
		return nil, err
	}
	promotion := row.normalize()
	return &promotion, nil
}

// UpdatePromotion edits a promotion.
func (c *Client) UpdatePromotion(ctx context.Context, creds Credentials, id int, req PromotionRequest) error {
	return c.do(ctx, creds, http.MethodPut, fmt.Sprintf("/api/promotion/%d", id), nil, req, nil)
}

// DeletePromotion removes a promotion.
func (c *Client) DeletePromotion(ctx context.Context, creds Credentials, id int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/promotion/%d", id), nil, nil, nil)
}

// HolidayRequest is the add/update payload for holidays.
type HolidayRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ListHolidays fetches the holiday calendar.
func (c *Client) ListHolidays(ctx context.Context, creds Credentials) ([]models.Holiday, error) {
	var holidays []models.Holiday
	if err := c.do(ctx, creds, http.MethodGet, "/api/holiday", nil, nil, &holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

// CreateHoliday adds a holiday and returns the stored record.
func (c *Client) CreateHoliday(ctx context.Context, creds Credentials, req HolidayRequest) (*models.Holiday, error) {
	var holiday models.Holiday
	if err := c.do(ctx, creds, http.MethodPost, "/api/holiday", nil, req, &holiday); err != nil {
		return nil, err
	}
	return &holiday, nil
}

// UpdateHoliday edits a holiday.
func (c *Client) UpdateHoliday(ctx context.Context, creds Credentials, id int, req HolidayRequest) error {
	return c.do(ctx, creds, http.MethodPut, fmt.Sprintf("/api/holiday/%d", id), nil, req, nil)
}

// DeleteHoliday removes a holiday.
func (c *Client) DeleteHoliday(ctx context.Context, creds Credentials, id int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/holiday/%d", id), nil, nil, nil)
}

// coefficientEnvelope matches the {"coefficients": [...]} list shape.
type coefficientEnvelope struct {
	Coefficients []models.Coefficient `json:"coefficients"`
}

// ListCoefficients fetches the seance type coefficients.
func (c *Client) ListCoefficients(ctx context.Context, creds Credentials) ([]models.Coefficient, error) {
	var envelope coefficientEnvelope
	if err := c.do(ctx, creds, http.MethodGet, "/api/seanceTypeCoefficient", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Coefficients, nil
}

// UpdateCoefficient sets the value for one seance type and returns the
// stored record.
func (c *Client) UpdateCoefficient(ctx context.Context, creds Credentials, seanceType string, value float64) (*models.Coefficient, error) {
	var coefficient models.Coefficient
	payload := map[string]float64{"value": value}
	if err := c.do(ctx, creds, http.MethodPut, "/api/seanceTypeCoefficient/"+seanceType, nil, payload, &coefficient); err != nil {
		return nil, err
	}
	return &coefficient, nil
}

// DeleteCoefficient removes the coefficient for one seance type.
func (c *Client) DeleteCoefficient(ctx context.Context, creds Credentials, seanceType string) error {
	return c.do(ctx, creds, http.MethodDelete, "/api/seanceTypeCoefficient/"+seanceType, nil, nil, nil)
}

// AbsenceRequest records a teacher absence for a seance on a date.
type AbsenceRequest struct {
	TeacherID   int    `json:"teacherId"`
	SeanceID    int    `json:"seanceId,omitempty"`
	AbsenceDate string `json:"absenceDate"`
	Justified   bool   `json:"justified"`
}

// ListAbsences fetches all recorded absences.
func (c *Client) ListAbsences(ctx context.Context, creds Credentials) ([]models.Absence, error) {
	var absences []models.Absence
	if err := c.do(ctx, creds, http.MethodGet, "/api/absence", nil, nil, &absences); err != nil {
		return nil, err
	}
	return absences, nil
}

// CreateAbsence records an absence.
func (c *Client) CreateAbsence(ctx context.Context, creds Credentials, req AbsenceRequest) error {
	return c.do(ctx, creds, http.MethodPost, "/api/absence", nil, req, nil)
}

// UpdateAbsence changes the date of a recorded absence.
func (c *Client) UpdateAbsence(ctx context.Context, creds Credentials, id int, absenceDate string) error {
	payload := map[string]string{"absenceDate": absenceDate}
	return c.do(ctx, creds, http.MethodPut, fmt.Sprintf("/api/absence/%d", id), nil, payload, nil)
}

// DeleteAbsence removes a recorded absence.
func (c *Client) DeleteAbsence(ctx context.Context, creds Credentials, id int) error {
	return c.do(ctx, creds, http.MethodDelete, fmt.Sprintf("/api/absence/%d", id), nil, nil, nil)
}
