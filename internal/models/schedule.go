package models

// Semester values accepted by the schedule forms.
const (
	SemesterOne = "S1"
	SemesterTwo = "S2"
)

// Schedule is a promotion's timetable container for one semester of an
// educational year. The upstream owns it; the console holds transient
// list copies only.
type Schedule struct {
	ID              int    `json:"id"`
	PromotionID     int    `json:"promotionId"`
	Promotion       string `json:"promotion"`
	Semester        string `json:"semester"`
	EducationalYear string `json:"educationalYear"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// ScheduleSession is a sub-period of a schedule. Closing is one-way:
// an open session accepts planning edits, a closed one is read-only
// and can only be deleted.
type ScheduleSession struct {
	ID         int    `json:"id"`
	ScheduleID int    `json:"scheduleId"`
	StartDate  string `json:"startDate"`
	FinishDate string `json:"finishDate"`
	Closed     bool   `json:"closed"`
}
