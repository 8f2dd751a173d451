package dto

// CampusRequest creates or updates a campus.
type CampusRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"required"`
	Location string `json:"location,omitempty"`
}

// SchoolRequest creates or updates a school.
type SchoolRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	CampusID string `json:"campusId" validate:"required"`
}

// DepartmentRequest creates or updates a department.
type DepartmentRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"required"`
	SchoolID string `json:"schoolId" validate:"required"`
}

// CourseRequest creates or updates a course.
type CourseRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level,omitempty" validate:"omitempty,oneof=masters doctorate"`
	SchoolID string `json:"schoolId" validate:"required"`
	CampusID string `json:"campusId" validate:"required"`
}
