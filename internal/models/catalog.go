package models

import "time"

// Campus is a physical campus.
type Campus struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// School belongs to a campus and receives results by e-mail.
type School struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CampusID  string    `json:"campusId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Department belongs to a school.
type Department struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	SchoolID  string    `json:"schoolId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Course is a programme offered by a school on a campus.
type Course struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Level     string    `json:"level,omitempty"`
	SchoolID  string    `json:"schoolId"`
	CampusID  string    `json:"campusId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CatalogFilter narrows catalogue listings.
type CatalogFilter struct {
	Search   string
	ParentID string
	Page     int
	PageSize int
}
