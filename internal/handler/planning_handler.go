package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// PlanningHandler wires the weekly planning grid.
type PlanningHandler struct {
	service *service.PlanningService
}

// NewPlanningHandler creates a new handler.
func NewPlanningHandler(svc *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{service: svc}
}

func gridMeta(grid *models.WeekGrid) map[string]interface{} {
	if grid == nil || grid.Skipped == 0 {
		return nil
	}
	return map[string]interface{}{"skipped": grid.Skipped}
}

// Grid godoc
// @Summary Weekly planning grid for a session
// @Tags Planning
// @Produce json
// @Param sessionId path int true "Session id"
// @Success 200 {object} response.Envelope
// @Router /planning/{sessionId} [get]
func (h *PlanningHandler) Grid(c *gin.Context) {
	sessionID, err := idParam(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}

	sess := sessionFromContext(c)
	grid, err := h.service.Load(c.Request.Context(), sess, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil, gridMeta(grid))
}

// AddSeance godoc
// @Summary Add a seance to a session
// @Tags Planning
// @Accept json
// @Produce json
// @Param sessionId path int true "Session id"
// @Param payload body service.SeanceFormRequest true "Seance payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planning/{sessionId}/seances [post]
func (h *PlanningHandler) AddSeance(c *gin.Context) {
	sessionID, err := idParam(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.SeanceFormRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seance payload"))
		return
	}

	sess := sessionFromContext(c)
	grid, err := h.service.AddSeance(c.Request.Context(), sess, sessionID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil, gridMeta(grid))
}

// EditSeance godoc
// @Summary Replace a seance
// @Tags Planning
// @Accept json
// @Produce json
// @Param sessionId path int true "Session id"
// @Param seanceId path int true "Seance id"
// @Param payload body service.SeanceFormRequest true "Seance payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planning/{sessionId}/seances/{seanceId} [put]
func (h *PlanningHandler) EditSeance(c *gin.Context) {
	sessionID, err := idParam(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	seanceID, err := idParam(c, "seanceId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.SeanceFormRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seance payload"))
		return
	}

	sess := sessionFromContext(c)
	grid, err := h.service.EditSeance(c.Request.Context(), sess, sessionID, seanceID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil, gridMeta(grid))
}

// RemoveSeance godoc
// @Summary Remove a seance from the grid
// @Tags Planning
// @Produce json
// @Param sessionId path int true "Session id"
// @Param seanceId path int true "Seance id"
// @Success 200 {object} response.Envelope
// @Router /planning/{sessionId}/seances/{seanceId} [delete]
func (h *PlanningHandler) RemoveSeance(c *gin.Context) {
	sessionID, err := idParam(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	seanceID, err := idParam(c, "seanceId")
	if err != nil {
		response.Error(c, err)
		return
	}

	sess := sessionFromContext(c)
	grid, err := h.service.RemoveSeance(c.Request.Context(), sess, sessionID, seanceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil, gridMeta(grid))
}

// RecordAbsence godoc
// @Summary Record a teacher absence from the grid
// @Tags Planning
// @Accept json
// @Produce json
// @Param payload body service.AbsenceFormRequest true "Absence payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /planning/absences [post]
func (h *PlanningHandler) RecordAbsence(c *gin.Context) {
	var form service.AbsenceFormRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid absence payload"))
		return
	}

	sess := sessionFromContext(c)
	if err := h.service.RecordAbsence(c.Request.Context(), sess, form); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
