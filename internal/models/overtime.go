package models

// OvertimeWeek is one aggregated week of supplementary hours.
type OvertimeWeek struct {
	Start         string  `json:"startDate"`
	End           string  `json:"endDate"`
	HeuresupHours float64 `json:"heuresupHours"`
}

// OvertimeMonth groups the weeks of a calendar month.
type OvertimeMonth struct {
	Month string         `json:"month"`
	Year  int            `json:"year"`
	Weeks []OvertimeWeek `json:"weeks"`
}

// OvertimeReport is the aggregate returned by the heureSup endpoint
// for one teacher over a date range. All numbers are computed
// server-side; the console only lays them out.
type OvertimeReport struct {
	TeacherID int             `json:"teacherId"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Months    []OvertimeMonth `json:"months"`
}

// TotalHours sums every week across every month.
func (r OvertimeReport) TotalHours() float64 {
	var total float64
	for _, m := range r.Months {
		for _, w := range m.Weeks {
			total += w.HeuresupHours
		}
	}
	return total
}
