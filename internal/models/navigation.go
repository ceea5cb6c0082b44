package models

// ViewMode is the tagged schedule-console view state. Exactly one mode
// is active at a time; the id fields below it are only meaningful for
// the modes that carry them.
type ViewMode string

const (
	ViewList         ViewMode = "list"
	ViewAdd          ViewMode = "add"
	ViewEdit         ViewMode = "edit"
	ViewSessionList  ViewMode = "sessionList"
	ViewPlanning     ViewMode = "planning"
	ViewPlanningAdd  ViewMode = "planningAdd"
	ViewPlanningEdit ViewMode = "planningEdit"
	ViewViewPlanning ViewMode = "viewPlanning"
)

// NavState is the per-session navigation position inside the schedule
// console. ScheduleID is set from sessionList onward, SessionID from
// the planning modes onward, SeanceID only while editing one seance.
type NavState struct {
	Mode       ViewMode `json:"mode"`
	ScheduleID int      `json:"scheduleId,omitempty"`
	SessionID  int      `json:"sessionId,omitempty"`
	SeanceID   int      `json:"seanceId,omitempty"`
}

// Crumb is one breadcrumb segment. Target names the ancestor mode a
// click jumps back to.
type Crumb struct {
	Label  string   `json:"label"`
	Target ViewMode `json:"target"`
	Active bool     `json:"active"`
}
