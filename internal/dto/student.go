package dto

import (
	"time"

	"github.com/noah-isme/research-admin-gateway/internal/models"
)

// StudentRequest is the create/update payload forwarded to the backend.
type StudentRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	FirstName          string `json:"firstName" validate:"required"`
	LastName           string `json:"lastName" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone,omitempty"`
	Gender             string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	ProgramLevel       string `json:"programLevel,omitempty" validate:"omitempty,oneof=masters doctorate"`
	IntakePeriod       string `json:"intakePeriod,omitempty"`
	CourseID           string `json:"courseId" validate:"required"`
	SchoolID           string `json:"schoolId" validate:"required"`
	CampusID           string `json:"campusId" validate:"required"`
	DepartmentID       string `json:"departmentId,omitempty"`
}

// StatusUpdateRequest appends a status record; the backend clears the previous current flag.
type StatusUpdateRequest struct {
	StatusDefinitionID string     `json:"statusDefinitionId" validate:"required"`
	StartDate          *time.Time `json:"startDate,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// AssignSupervisorRequest links a supervisor to a student.
type AssignSupervisorRequest struct {
	SupervisorID string `json:"supervisorId" validate:"required"`
}

// StudentRow is one row of the students table.
type StudentRow struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registrationNumber"`
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	SchoolID           string `json:"schoolId"`
	CampusID           string `json:"campusId"`
	Status             string `json:"status"`
	Supervisors        int    `json:"supervisors"`
}

// StudentStats summarises the (filtered) students set.
type StudentStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// StudentTable is the students page payload.
type StudentTable struct {
	Rows  []StudentRow `json:"rows"`
	Stats StudentStats `json:"stats"`
}

// StudentDetail returns the record plus derived data the UI needs.
type StudentDetail struct {
	models.Student
	CurrentStatus   *models.StatusRecord `json:"currentStatus,omitempty"`
	HistoryWarnings []string             `json:"historyWarnings,omitempty"`
}
