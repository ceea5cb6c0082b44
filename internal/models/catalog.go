package models

// Grade is a teaching grade with its hourly rate and weekly charge.
// The upstream serialises the name and price with capitalised keys.
type Grade struct {
	ID     int     `json:"id"`
	Name   string  `json:"GradeName"`
	Price  float64 `json:"PricePerHour"`
	Charge float64 `json:"charge"`
}

// Speciality is a named study field.
type Speciality struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Promotion is a student cohort attached to a speciality.
type Promotion struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	SpecialityID   int    `json:"specialityId"`
	SpecialityName string `json:"specialityName,omitempty"`
}

// Holiday is a named date range during which no seance takes place.
type Holiday struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Coefficient weights a seance type for overtime payment. It is keyed
// by seance type, not by a numeric id.
type Coefficient struct {
	SeanceType string  `json:"seanceType"`
	Value      float64 `json:"value"`
}

// Absence records a teacher missing a given seance on a given date.
type Absence struct {
	ID          int    `json:"id"`
	TeacherID   int    `json:"teacherId"`
	TeacherName string `json:"teacherName,omitempty"`
	SeanceID    int    `json:"seanceId,omitempty"`
	AbsenceDate string `json:"absenceDate"`
	Justified   bool   `json:"justified"`
}
