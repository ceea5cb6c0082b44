package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// GradeHandler wires the grade settings panel.
type GradeHandler struct {
	service *service.GradeService
}

// NewGradeHandler creates a new handler.
func NewGradeHandler(svc *service.GradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// List godoc
// @Summary List grades
// @Tags Grades
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.List(c.Request.Context(), sess, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Create godoc
// @Summary Add a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.GradeForm true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var form service.GradeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade payload"))
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
// @Summary Edit a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path int true "Grade id"
// @Param payload body service.GradeForm true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.GradeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade payload"))
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
// @Summary Delete a grade
// @Tags Grades
// @Produce json
// @Param id path int true "Grade id"
// @Success 200 {object} response.Envelope
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
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
