package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/service"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// NavigationHandler exposes the schedule console view state machine.
type NavigationHandler struct {
	service *service.NavigationService
}

// NewNavigationHandler creates a new handler.
func NewNavigationHandler(svc *service.NavigationService) *NavigationHandler {
	return &NavigationHandler{service: svc}
}

type navStatePayload struct {
	Nav         models.NavState `json:"nav"`
	Breadcrumbs []models.Crumb  `json:"breadcrumbs"`
}

func (h *NavigationHandler) respond(c *gin.Context, nav models.NavState, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, navStatePayload{Nav: nav, Breadcrumbs: service.Breadcrumbs(nav)}, nil)
}

// State godoc
// @Summary Current navigation position
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *NavigationHandler) State(c *gin.Context) {
	sess := sessionFromContext(c)
	nav, crumbs := h.service.State(sess)
	response.JSON(c, http.StatusOK, navStatePayload{Nav: nav, Breadcrumbs: crumbs}, nil)
}

// Transition godoc
// @Summary Move through the schedule console
// @Description Apply one view transition: list, add, edit, sessionList, planning, viewPlanning, planningAdd, planningEdit
// @Tags Navigation
// @Accept json
// @Produce json
// @Param payload body handler.TransitionRequest true "Transition payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /navigation/transition [post]
func (h *NavigationHandler) Transition(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid transition payload"))
		return
	}

	sess := sessionFromContext(c)
	ctx := c.Request.Context()

	var (
		nav models.NavState
		err error
	)
	switch req.To {
	case models.ViewList:
		nav, err = h.service.Reset(ctx, sess)
	case models.ViewAdd:
		nav, err = h.service.StartAdd(ctx, sess)
	case models.ViewEdit:
		nav, err = h.service.StartEdit(ctx, sess, req.ScheduleID)
	case models.ViewSessionList:
		nav, err = h.service.OpenSessions(ctx, sess, req.ScheduleID)
	case models.ViewPlanning:
		nav, err = h.service.OpenPlanning(ctx, sess, req.SessionID)
	case models.ViewViewPlanning:
		nav, err = h.service.OpenViewPlanning(ctx, sess, req.SessionID)
	case models.ViewPlanningAdd:
		nav, err = h.service.StartSeanceAdd(ctx, sess)
	case models.ViewPlanningEdit:
		nav, err = h.service.StartSeanceEdit(ctx, sess, req.SeanceID)
	default:
		err = appErrors.Clone(appErrors.ErrValidation, "unknown view mode: "+string(req.To))
	}
	h.respond(c, nav, err)
}

// Jump godoc
// @Summary Follow a breadcrumb back to an ancestor view
// @Tags Navigation
// @Accept json
// @Produce json
// @Param payload body handler.JumpRequest true "Jump payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /navigation/jump [post]
func (h *NavigationHandler) Jump(c *gin.Context) {
	var req JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid jump payload"))
		return
	}

	sess := sessionFromContext(c)
	nav, err := h.service.JumpTo(c.Request.Context(), sess, req.To)
	h.respond(c, nav, err)
}

// TransitionRequest names the target view plus whichever id the
// target needs.
type TransitionRequest struct {
	To         models.ViewMode `json:"to" binding:"required"`
	ScheduleID int             `json:"scheduleId"`
	SessionID  int             `json:"sessionId"`
	SeanceID   int             `json:"seanceId"`
}

// JumpRequest targets a breadcrumb ancestor.
type JumpRequest struct {
	To models.ViewMode `json:"to" binding:"required"`
}
