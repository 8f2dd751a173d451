package models

import "time"

// SupervisorRef links a student to a supervising faculty member.
type SupervisorRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	IsCurrent bool   `json:"isCurrent"`
}

// Student is the backend student record as consumed by the admin views.
type Student struct {
	ID                 string          `json:"id"`
	RegistrationNumber string          `json:"registrationNumber"`
	FirstName          string          `json:"firstName"`
	LastName           string          `json:"lastName"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone,omitempty"`
	Gender             string          `json:"gender,omitempty"`
	ProgramLevel       string          `json:"programLevel,omitempty"`
	IntakePeriod       string          `json:"intakePeriod,omitempty"`
	CourseID           string          `json:"courseId,omitempty"`
	SchoolID           string          `json:"schoolId,omitempty"`
	CampusID           string          `json:"campusId,omitempty"`
	DepartmentID       string          `json:"departmentId,omitempty"`
	School             *School         `json:"school,omitempty"`
	Campus             *Campus         `json:"campus,omitempty"`
	Statuses           []StatusRecord  `json:"statuses,omitempty"`
	Supervisors        []SupervisorRef `json:"supervisors,omitempty"`
	Proposals          []Proposal      `json:"proposals,omitempty"`
	Books              []Book          `json:"books,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	default:
		return s.FirstName + " " + s.LastName
	}
}

// StudentFilter encapsulates the table filters of the students page.
type StudentFilter struct {
	Search    string
	SchoolID  string
	CampusID  string
	Status    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
