package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// ScheduleHandler wires the schedule list and session list screens.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List schedules
// @Tags Schedules
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	page, err := h.service.List(c.Request.Context(), sess, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Items, page.Pagination, response.FlashMeta(page.Flash))
}

// Options godoc
// @Summary Promotion options for the schedule form
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/options [get]
func (h *ScheduleHandler) Options(c *gin.Context) {
	sess := sessionFromContext(c)
	promotions, err := h.service.Options(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, promotions, nil)
}

// Create godoc
// @Summary Add a schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.ScheduleForm true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var form service.ScheduleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
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
// @Summary Edit a schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path int true "Schedule id"
// @Param payload body service.ScheduleForm true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.ScheduleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
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
// @Summary Delete a schedule
// @Tags Schedules
// @Produce json
// @Param id path int true "Schedule id"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
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

// Sessions godoc
// @Summary List a schedule's sessions
// @Tags Sessions
// @Produce json
// @Param id path int true "Schedule id"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/sessions [get]
func (h *ScheduleHandler) Sessions(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	sess := sessionFromContext(c)
	sessions, flash, err := h.service.Sessions(c.Request.Context(), sess, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil, response.FlashMeta(flash))
}

// CreateSession godoc
// @Summary Open a session on a schedule
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path int true "Schedule id"
// @Param payload body service.SessionForm true "Session payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/{id}/sessions [post]
func (h *ScheduleHandler) CreateSession(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.SessionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	sess := sessionFromContext(c)
	sessions, flash, err := h.service.CreateSession(c.Request.Context(), sess, id, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil, response.FlashMeta(flash))
}

// UpdateSession godoc
// @Summary Change an open session's dates
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path int true "Schedule id"
// @Param sessionId path int true "Session id"
// @Param payload body service.SessionForm true "Session payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedules/{id}/sessions/{sessionId} [put]
func (h *ScheduleHandler) UpdateSession(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	sessionID, err := idParam(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var form service.SessionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	sess := sessionFromContext(c)
	sessions, flash, err := h.service.UpdateSession(c.Request.Context(), sess, id, sessionID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil, response.FlashMeta(flash))
}

// CloseSession godoc
// @Summary Close a session permanently
// @Tags Sessions
// @Produce json
// @Param id path int true "Schedule id"
// @Param sessionId path int true "Session id"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedules/{id}/sessions/{sessionId}/close [patch]
func (h *ScheduleHandler) CloseSession(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	sessionID, err := idParam(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}

	sess := sessionFromContext(c)
	sessions, flash, err := h.service.CloseSession(c.Request.Context(), sess, id, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil, response.FlashMeta(flash))
}

// DeleteSession godoc
// @Summary Delete a session and its seances
// @Tags Sessions
// @Produce json
// @Param id path int true "Schedule id"
// @Param sessionId path int true "Session id"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/sessions/{sessionId} [delete]
func (h *ScheduleHandler) DeleteSession(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	sessionID, err := idParam(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}

	sess := sessionFromContext(c)
	sessions, flash, err := h.service.DeleteSession(c.Request.Context(), sess, id, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil, response.FlashMeta(flash))
}
