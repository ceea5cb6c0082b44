package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// HolidayHandler wires the holiday settings panel.
type HolidayHandler struct {
	service *service.HolidayService
}

// NewHolidayHandler creates a new handler.
func NewHolidayHandler(svc *service.HolidayService) *HolidayHandler {
	return &HolidayHandler{service: svc}
}

// List godoc
// @Summary List holidays
// @Tags Holidays
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.List(c.Request.Context(), sess, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Create godoc
// @Summary Add a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body service.HolidayForm true "Holiday payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	var form service.HolidayForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid holiday payload"))
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
// @Summary Edit a holiday
// @Tags Holidays
// @Accept json
// @Produce json
// @Param id path int true "Holiday id"
// @Param payload body service.HolidayForm true "Holiday payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /holidays/{id} [put]
func (h *HolidayHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.HolidayForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid holiday payload"))
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
// @Summary Delete a holiday
// @Tags Holidays
// @Produce json
// @Param id path int true "Holiday id"
// @Success 200 {object} response.Envelope
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
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
