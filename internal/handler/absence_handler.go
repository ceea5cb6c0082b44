package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// AbsenceHandler wires the absence settings panel.
type AbsenceHandler struct {
	service *service.AbsenceService
}

// NewAbsenceHandler creates a new handler.
func NewAbsenceHandler(svc *service.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{service: svc}
}

// List godoc
// @Summary List absences
// @Tags Absences
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /absences [get]
func (h *AbsenceHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.List(c.Request.Context(), sess, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Options godoc
// @Summary Teacher options for the absence form
// @Tags Absences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /absences/options [get]
func (h *AbsenceHandler) Options(c *gin.Context) {
	sess := sessionFromContext(c)
	teachers, err := h.service.Options(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// Create godoc
// @Summary Record an absence
// @Tags Absences
// @Accept json
// @Produce json
// @Param payload body service.AbsenceForm true "Absence payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /absences [post]
func (h *AbsenceHandler) Create(c *gin.Context) {
	var form service.AbsenceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid absence payload"))
		return
	}

	sess := sessionFromContext(c)
	page, err := h.service.Create(c.Request.Context(), sess, pageQuery(c), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Update godoc
// @Summary Change an absence date
// @Tags Absences
// @Accept json
// @Produce json
// @Param id path int true "Absence id"
// @Param payload body service.AbsenceDateForm true "Absence payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /absences/{id} [put]
func (h *AbsenceHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.AbsenceDateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid absence payload"))
		return
	}

	sess := sessionFromContext(c)
	page, err := h.service.Update(c.Request.Context(), sess, pageQuery(c), id, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Delete godoc
// @Summary Delete an absence
// @Tags Absences
// @Produce json
// @Param id path int true "Absence id"
// @Success 200 {object} response.Envelope
// @Router /absences/{id} [delete]
func (h *AbsenceHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	sess := sessionFromContext(c)
	page, err := h.service.Delete(c.Request.Context(), sess, pageQuery(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}
