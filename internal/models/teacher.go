package models

// TeacherRow is the join row shape the upstream returns from
// /api/teacher/get: a Teacher record with its User and Grade embedded.
type TeacherRow struct {
	ID            int    `json:"id"`
	PaymentType   string `json:"paymentType"`
	TeacherType   string `json:"teacherType"`
	AccountNumber string `json:"accountNumber"`
	User          User   `json:"User"`
	Grade         *Grade `json:"Grade"`
}

// Teacher is the flattened record the console works with. It carries
// the full field set of the payment-aware variant.
type Teacher struct {
	ID            int      `json:"id"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	GradeID       int      `json:"gradeId"`
	GradeName     string   `json:"gradeName"`
	Role          UserRole `json:"role"`
	PaymentType   string   `json:"paymentType"`
	TeacherType   string   `json:"teacherType"`
	AccountNumber string   `json:"accountNumber"`
}

// Flatten folds the embedded User/Grade sub-records into a Teacher.
func (r TeacherRow) Flatten() Teacher {
	t := Teacher{
		ID:            r.User.ID,
		FirstName:     r.User.FirstName,
		LastName:      r.User.LastName,
		Email:         r.User.Email,
		Role:          r.User.Role,
		PaymentType:   r.PaymentType,
		TeacherType:   r.TeacherType,
		AccountNumber: r.AccountNumber,
	}
	if r.Grade != nil {
		t.GradeID = r.Grade.ID
		t.GradeName = r.Grade.Name
	}
	return t
}

// FullName joins the teacher's name parts for display.
func (t Teacher) FullName() string {
	switch {
	case t.FirstName == "":
		return t.LastName
	case t.LastName == "":
		return t.FirstName
	default:
		return t.FirstName + " " + t.LastName
	}
}
