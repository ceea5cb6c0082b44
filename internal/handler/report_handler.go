package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// ReportHandler wires the overtime card and salary exports.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

func (h *ReportHandler) streamFile(c *gin.Context, file *service.ReportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// Overtime godoc
// @Summary Overtime hours for one teacher
// @Tags Reports
// @Produce json
// @Param teacherId query int true "Teacher id"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/overtime [get]
func (h *ReportHandler) Overtime(c *gin.Context) {
	var query service.OvertimeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid overtime query"))
		return
	}

	sess := sessionFromContext(c)
	report, err := h.service.Overtime(c.Request.Context(), sess, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// OvertimeCard godoc
// @Summary Printable overtime card (PDF)
// @Tags Reports
// @Produce application/pdf
// @Param teacherId query int true "Teacher id"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /reports/overtime/card [get]
func (h *ReportHandler) OvertimeCard(c *gin.Context) {
	var query service.OvertimeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid overtime query"))
		return
	}

	sess := sessionFromContext(c)
	file, err := h.service.OvertimeCard(c.Request.Context(), sess, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.streamFile(c, file)
}

// OvertimeCSV godoc
// @Summary Overtime report as CSV
// @Tags Reports
// @Produce text/csv
// @Param teacherId query int true "Teacher id"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /reports/overtime/csv [get]
func (h *ReportHandler) OvertimeCSV(c *gin.Context) {
	var query service.OvertimeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid overtime query"))
		return
	}

	sess := sessionFromContext(c)
	file, err := h.service.OvertimeCSV(c.Request.Context(), sess, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.streamFile(c, file)
}

// SalaryForm godoc
// @Summary Download a salary spreadsheet
// @Description Stream the upstream payment-form or engagement xlsx export
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param mode path string true "Form mode (payment-form or engagement)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /reports/salary/{mode} [get]
func (h *ReportHandler) SalaryForm(c *gin.Context) {
	sess := sessionFromContext(c)
	file, err := h.service.SalaryForm(c.Request.Context(), sess, c.Param("mode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.streamFile(c, file)
}
