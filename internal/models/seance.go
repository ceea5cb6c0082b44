package models

// Seance types accepted by the planning forms.
const (
	SeanceCours = "cours"
	SeanceTD    = "td"
	SeanceTP    = "tp"
)

// SeanceTypes lists the valid seance type values in form order.
var SeanceTypes = []string{SeanceCours, SeanceTD, SeanceTP}

// GridDays is the rendered column order of the weekly grid.
var GridDays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}

// AcceptedDays additionally admits Saturday rows into the bucketing
// whitelist; the original console kept a Saturday bucket without
// rendering a Saturday column.
var AcceptedDays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Saturday"}

// GridSlots is the fixed time-slot whitelist. A seance whose computed
// slot is not one of these is dropped from the grid (and counted).
var GridSlots = []string{"8:00-10:00", "9:30-11:00", "11:00-12:30", "14:00-15:30"}

// Seance is one planning grid cell entry as stored upstream. Times are
// "HH:MM:SS" strings and the day is lower case on the wire.
type Seance struct {
	ID        int    `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Module    string `json:"module"`
	TeacherID int    `json:"teacherId"`
	Location  string `json:"location"`
	Type      string `json:"type"`
	Group     int    `json:"group"`
}

// SeanceRow is the join row returned by the seance listing: the seance
// paired with the assigned teacher's user record.
type SeanceRow struct {
	Seance Seance `json:"Seance"`
	User   User   `json:"User"`
}

// GridEntry is one rendered cell entry.
type GridEntry struct {
	SeanceID    int    `json:"seanceId"`
	Module      string `json:"module"`
	TeacherID   int    `json:"teacherId"`
	TeacherName string `json:"teacherName"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Group       int    `json:"group"`
}

// WeekGrid is the day → time-slot → entries structure driving the
// planning table. Cells hold lists: overlapping groups or types in the
// same slot are legal and all render.
type WeekGrid struct {
	Days    []string                          `json:"days"`
	Slots   []string                          `json:"slots"`
	Cells   map[string]map[string][]GridEntry `json:"cells"`
	Skipped int                               `json:"skipped"`
}

// Entries returns the cell list for a day/slot pair, nil when empty.
func (g *WeekGrid) Entries(day, slot string) []GridEntry {
	if g == nil || g.Cells == nil {
		return nil
	}
	return g.Cells[day][slot]
}

// RowHeight reproduces the original presentation rule: a slot row grows
// to automatic height as soon as any day's cell holds more than one
// entry, otherwise it stays fixed at 8rem.
func (g *WeekGrid) RowHeight(slot string) string {
	for _, day := range g.Days {
		if len(g.Cells[day][slot]) > 1 {
			return "auto"
		}
	}
	return "8rem"
}
