package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// SpecialityHandler wires the speciality settings panel.
type SpecialityHandler struct {
	service *service.SpecialityService
}

// NewSpecialityHandler creates a new handler.
func NewSpecialityHandler(svc *service.SpecialityService) *SpecialityHandler {
	return &SpecialityHandler{service: svc}
}

// List godoc
// @Summary List specialities
// @Tags Specialities
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /specialities [get]
func (h *SpecialityHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.List(c.Request.Context(), sess, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Create godoc
// @Summary Add a speciality
// @Tags Specialities
// @Accept json
// @Produce json
// @Param payload body service.SpecialityForm true "Speciality payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /specialities [post]
func (h *SpecialityHandler) Create(c *gin.Context) {
	var form service.SpecialityForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid speciality payload"))
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
// @Summary Rename a speciality
// @Tags Specialities
// @Accept json
// @Produce json
// @Param id path int true "Speciality id"
// @Param payload body service.SpecialityForm true "Speciality payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /specialities/{id} [put]
func (h *SpecialityHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.SpecialityForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid speciality payload"))
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
// @Summary Delete a speciality
// @Tags Specialities
// @Produce json
// @Param id path int true "Speciality id"
// @Success 200 {object} response.Envelope
// @Router /specialities/{id} [delete]
func (h *SpecialityHandler) Delete(c *gin.Context) {
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
