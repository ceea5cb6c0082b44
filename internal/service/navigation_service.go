package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/haythbl004/uni-console/internal/models"
	"github.com/haythbl004/uni-console/internal/session"
	"github.com/haythbl004/uni-console/internal/upstream"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

type navSessionReader interface {
	ListSessions(ctx context.Context, creds upstream.Credentials, scheduleID int) ([]models.ScheduleSession, error)
}

// NavigationService drives the schedule console's view state machine.
// The position lives in the stored session, so a page reload lands the
// admin exactly where they were. Transitions are checked: the service
// refuses jumps the original screens never offered.
type NavigationService struct {
	store    session.Store
	sessions navSessionReader
	logger   *zap.Logger
}

// NewNavigationService constructs a NavigationService instance.
func NewNavigationService(store session.Store, sessions navSessionReader, logger *zap.Logger) *NavigationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationService{store: store, sessions: sessions, logger: logger}
}

// State returns the current position with its breadcrumb trail.
func (s *NavigationService) State(sess *session.Session) (models.NavState, []models.Crumb) {
	return sess.Nav, Breadcrumbs(sess.Nav)
}

// Reset returns to the schedule list and forgets every sub-state.
func (s *NavigationService) Reset(ctx context.Context, sess *session.Session) (models.NavState, error) {
	sess.Nav = models.NavState{Mode: models.ViewList}
	return s.save(ctx, sess)
}

// StartAdd opens the schedule creation form.
func (s *NavigationService) StartAdd(ctx context.Context, sess *session.Session) (models.NavState, error) {
	if sess.Nav.Mode != models.ViewList {
		return sess.Nav, s.illegal(sess.Nav.Mode, models.ViewAdd)
	}
	sess.Nav = models.NavState{Mode: models.ViewAdd}
	return s.save(ctx, sess)
}

// StartEdit opens the edit form for one schedule.
func (s *NavigationService) StartEdit(ctx context.Context, sess *session.Session, scheduleID int) (models.NavState, error) {
	if sess.Nav.Mode != models.ViewList {
		return sess.Nav, s.illegal(sess.Nav.Mode, models.ViewEdit)
	}
	sess.Nav = models.NavState{Mode: models.ViewEdit, ScheduleID: scheduleID}
	return s.save(ctx, sess)
}

// OpenSessions drills into one schedule's session list.
func (s *NavigationService) OpenSessions(ctx context.Context, sess *session.Session, scheduleID int) (models.NavState, error) {
	if sess.Nav.Mode != models.ViewList {
		return sess.Nav, s.illegal(sess.Nav.Mode, models.ViewSessionList)
	}
	sess.Nav = models.NavState{Mode: models.ViewSessionList, ScheduleID: scheduleID}
	return s.save(ctx, sess)
}

// OpenPlanning enters the editable planning grid of an open session.
// Closed sessions are read-only and must go through OpenViewPlanning.
func (s *NavigationService) OpenPlanning(ctx context.Context, sess *session.Session, sessionID int) (models.NavState, error) {
	if sess.Nav.Mode != models.ViewSessionList {
		return sess.Nav, s.illegal(sess.Nav.Mode, models.ViewPlanning)
	}

	target, err := s.findSession(ctx, sess, sessionID)
	if err != nil {
		return sess.Nav, err
	}
	if target.Closed {
		return sess.Nav, appErrors.Clone(appErrors.ErrSessionClosed, "session is closed, open it in view mode")
	}

	sess.Nav = models.NavState{Mode: models.ViewPlanning, ScheduleID: sess.Nav.ScheduleID, SessionID: sessionID}
	return s.save(ctx, sess)
}

// OpenViewPlanning enters the read-only grid of a closed session.
func (s *NavigationService) OpenViewPlanning(ctx context.Context, sess *session.Session, sessionID int) (models.NavState, error) {
	if sess.Nav.Mode != models.ViewSessionList {
		return sess.Nav, s.illegal(sess.Nav.Mode, models.ViewViewPlanning)
	}

	target, err := s.findSession(ctx, sess, sessionID)
	if err != nil {
		return sess.Nav, err
	}
	if !target.Closed {
		return sess.Nav, appErrors.Clone(appErrors.ErrValidation, "session is still open, use the planning view")
	}

	sess.Nav = models.NavState{Mode: models.ViewViewPlanning, ScheduleID: sess.Nav.ScheduleID, SessionID: sessionID}
	return s.save(ctx, sess)
}

// StartSeanceAdd opens the seance form inside the planning grid.
func (s *NavigationService) StartSeanceAdd(ctx context.Context, sess *session.Session) (models.NavState, error) {
	if sess.Nav.Mode != models.ViewPlanning {
		return sess.Nav, s.illegal(sess.Nav.Mode, models.ViewPlanningAdd)
	}
	sess.Nav.Mode = models.ViewPlanningAdd
	return s.save(ctx, sess)
}

// StartSeanceEdit opens the seance edit form for one grid entry.
func (s *NavigationService) StartSeanceEdit(ctx context.Context, sess *session.Session, seanceID int) (models.NavState, error) {
	if sess.Nav.Mode != models.ViewPlanning {
		return sess.Nav, s.illegal(sess.Nav.Mode, models.ViewPlanningEdit)
	}
	sess.Nav.Mode = models.ViewPlanningEdit
	sess.Nav.SeanceID = seanceID
	return s.save(ctx, sess)
}

// JumpTo follows a breadcrumb click back to an ancestor view. Every
// descendant id is cleared so stale sub-state can never leak into the
// next drill-down.
func (s *NavigationService) JumpTo(ctx context.Context, sess *session.Session, target models.ViewMode) (models.NavState, error) {
	nav := sess.Nav
	switch target {
	case models.ViewList:
		sess.Nav = models.NavState{Mode: models.ViewList}
	case models.ViewSessionList:
		if nav.ScheduleID == 0 {
			return nav, s.illegal(nav.Mode, target)
		}
		sess.Nav = models.NavState{Mode: models.ViewSessionList, ScheduleID: nav.ScheduleID}
	case models.ViewPlanning:
		if nav.SessionID == 0 || (nav.Mode != models.ViewPlanning && nav.Mode != models.ViewPlanningAdd && nav.Mode != models.ViewPlanningEdit) {
			return nav, s.illegal(nav.Mode, target)
		}
		sess.Nav = models.NavState{Mode: models.ViewPlanning, ScheduleID: nav.ScheduleID, SessionID: nav.SessionID}
	default:
		return nav, s.illegal(nav.Mode, target)
	}
	return s.save(ctx, sess)
}

func (s *NavigationService) findSession(ctx context.Context, sess *session.Session, sessionID int) (*models.ScheduleSession, error) {
	sessions, err := s.sessions.ListSessions(ctx, upstream.Credentials{Cookie: sess.UpstreamCookie}, sess.Nav.ScheduleID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == sessionID {
			return &sessions[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found in this schedule")
}

func (s *NavigationService) save(ctx context.Context, sess *session.Session) (models.NavState, error) {
	if err := s.store.Save(ctx, sess); err != nil {
		return sess.Nav, err
	}
	return sess.Nav, nil
}

func (s *NavigationService) illegal(from, to models.ViewMode) error {
	s.logger.Debug("rejected navigation", zap.String("from", string(from)), zap.String("to", string(to)))
	return appErrors.Clone(appErrors.ErrValidation, "cannot move from "+string(from)+" to "+string(to))
}

// Breadcrumbs renders the trail for a navigation position. The last
// crumb is the active view and is not clickable.
func Breadcrumbs(nav models.NavState) []models.Crumb {
	crumbs := []models.Crumb{{Label: "Schedules", Target: models.ViewList}}

	switch nav.Mode {
	case models.ViewAdd:
		crumbs = append(crumbs, models.Crumb{Label: "Add Schedule", Target: models.ViewAdd})
	case models.ViewEdit:
		crumbs = append(crumbs, models.Crumb{Label: "Edit Schedule", Target: models.ViewEdit})
	case models.ViewSessionList:
		crumbs = append(crumbs, models.Crumb{Label: "Sessions", Target: models.ViewSessionList})
	case models.ViewPlanning:
		crumbs = append(crumbs,
			models.Crumb{Label: "Sessions", Target: models.ViewSessionList},
			models.Crumb{Label: "Planning", Target: models.ViewPlanning},
		)
	case models.ViewViewPlanning:
		crumbs = append(crumbs,
			models.Crumb{Label: "Sessions", Target: models.ViewSessionList},
			models.Crumb{Label: "View Planning", Target: models.ViewViewPlanning},
		)
	case models.ViewPlanningAdd:
		crumbs = append(crumbs,
			models.Crumb{Label: "Sessions", Target: models.ViewSessionList},
			models.Crumb{Label: "Planning", Target: models.ViewPlanning},
			models.Crumb{Label: "Add Seance", Target: models.ViewPlanningAdd},
		)
	case models.ViewPlanningEdit:
		crumbs = append(crumbs,
			models.Crumb{Label: "Sessions", Target: models.ViewSessionList},
			models.Crumb{Label: "Planning", Target: models.ViewPlanning},
			models.Crumb{Label: "Edit Seance", Target: models.ViewPlanningEdit},
		)
	}

	crumbs[len(crumbs)-1].Active = true
	return crumbs
}
