package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// CoefficientHandler wires the seance type coefficient panel.
type CoefficientHandler struct {
	service *service.CoefficientService
}

// NewCoefficientHandler creates a new handler.
func NewCoefficientHandler(svc *service.CoefficientService) *CoefficientHandler {
	return &CoefficientHandler{service: svc}
}

// List godoc
// @Summary List seance type coefficients
// @Tags Coefficients
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /coefficients [get]
func (h *CoefficientHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.List(c.Request.Context(), sess, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Update godoc
// @Summary Set the coefficient for a seance type
// @Tags Coefficients
// @Accept json
// @Produce json
// @Param type path string true "Seance type (cours, td, tp)"
// @Param payload body service.CoefficientForm true "Coefficient payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /coefficients/{type} [put]
func (h *CoefficientHandler) Update(c *gin.Context) {
	var form service.CoefficientForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid coefficient payload"))
		return
	}

	sess := sessionFromContext(c)
	page, err := h.service.Update(c.Request.Context(), sess, pageQuery(c), c.Param("type"), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Delete godoc
// @Summary Remove the coefficient for a seance type
// @Tags Coefficients
// @Produce json
// @Param type path string true "Seance type (cours, td, tp)"
// @Success 200 {object} response.Envelope
// @Router /coefficients/{type} [delete]
func (h *CoefficientHandler) Delete(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.Delete(c.Request.Context(), sess, pageQuery(c), c.Param("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}
