package models

// UserRole represents the roles carried in gateway access tokens.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleFaculty    UserRole = "FACULTY"
	RoleReviewer   UserRole = "REVIEWER"
	RoleExaminer   UserRole = "EXAMINER"
)

// Pagination contains pagination metadata returned in list responses.
// From and To are 1-based item positions; both are zero for an empty page.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	From       int  `json:"from"`
	To         int  `json:"to"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}
