package dto

import "github.com/noah-isme/research-admin-gateway/internal/models"

// FacultyRequest creates or updates a faculty member.
type FacultyRequest struct {
	Name        string             `json:"name" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Role        models.FacultyRole `json:"role" validate:"required,oneof=faculty supervisor"`
	Designation string             `json:"designation,omitempty"`
	SchoolID    string             `json:"schoolId,omitempty"`
	CampusID    string             `json:"campusId,omitempty"`
}
