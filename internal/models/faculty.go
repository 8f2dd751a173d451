package models

import "time"

// FacultyRole separates ordinary faculty from supervisors.
type FacultyRole string

const (
	FacultyRoleFaculty    FacultyRole = "faculty"
	FacultyRoleSupervisor FacultyRole = "supervisor"
)

// FacultyMember is a staff member who may review, examine or supervise.
type FacultyMember struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        FacultyRole `json:"role"`
	Designation string      `json:"designation,omitempty"`
	SchoolID    string      `json:"schoolId,omitempty"`
	CampusID    string      `json:"campusId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// FacultyFilter narrows the faculty table.
type FacultyFilter struct {
	Search   string
	Role     FacultyRole
	SchoolID string
	Page     int
	PageSize int
}
