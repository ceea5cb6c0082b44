package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// PromotionHandler wires the promotion settings panel.
type PromotionHandler struct {
	service *service.PromotionService
}

// NewPromotionHandler creates a new handler.
func NewPromotionHandler(svc *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: svc}
}

// List godoc
// @Summary List promotions
// @Tags Promotions
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /promotions [get]
func (h *PromotionHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.List(c.Request.Context(), sess, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Options godoc
// @Summary Speciality options for the promotion form
// @Tags Promotions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /promotions/options [get]
func (h *PromotionHandler) Options(c *gin.Context) {
	sess := sessionFromContext(c)
	specialities, err := h.service.Options(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, specialities, nil)
}

// Create godoc
// @Summary Add a promotion
// @Tags Promotions
// @Accept json
// @Produce json
// @Param payload body service.PromotionForm true "Promotion payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var form service.PromotionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid promotion payload"))
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
// @Summary Edit a promotion
// @Tags Promotions
// @Accept json
// @Produce json
// @Param id path int true "Promotion id"
// @Param payload body service.PromotionForm true "Promotion payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /promotions/{id} [put]
func (h *PromotionHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.PromotionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid promotion payload"))
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
// @Summary Delete a promotion
// @Tags Promotions
// @Produce json
// @Param id path int true "Promotion id"
// @Success 200 {object} response.Envelope
// @Router /promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *gin.Context) {
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
