package dto

import (
	"time"

	"github.com/noah-isme/research-admin-gateway/internal/grading"
	"github.com/noah-isme/research-admin-gateway/internal/models"
)

// AssignExaminerRequest adds a typed examiner to a book.
type AssignExaminerRequest struct {
	ExaminerID string              `json:"examinerId" validate:"required"`
	Type       models.ExaminerType `json:"type" validate:"required,oneof=Internal External"`
}

// ExaminerMarkRequest records an examiner's text grade.
type ExaminerMarkRequest struct {
	Grade    *float64 `json:"grade" validate:"required,min=0,max=100"`
	Comments string   `json:"comments,omitempty"`
}

// ScheduleVivaRequest creates a viva attempt.
type ScheduleVivaRequest struct {
	ScheduledDate time.Time `json:"scheduledDate" validate:"required"`
	PanelistIDs   []string  `json:"panelistIds" validate:"required,min=1,dive,required"`
	Venue         string    `json:"venue,omitempty"`
}

// VivaMarkInput is one examiner's viva mark.
type VivaMarkInput struct {
	ExaminerID string              `json:"examinerId" validate:"required"`
	Type       models.ExaminerType `json:"type" validate:"required,oneof=Internal External"`
	Mark       *float64            `json:"mark" validate:"required,min=0,max=100"`
}

// VivaResultRequest records the outcome of a viva.
type VivaResultRequest struct {
	Status  string          `json:"status" validate:"required,oneof=completed postponed cancelled"`
	Verdict string          `json:"verdict,omitempty" validate:"required_if=Status completed"`
	Marks   []VivaMarkInput `json:"marks,omitempty" validate:"dive"`
}

// BookResultsUpdate moves a book along the final results pipeline.
type BookResultsUpdate struct {
	Status              string     `json:"status"`
	ResultsApprovedDate *time.Time `json:"resultsApprovedDate,omitempty"`
	ResultsSentDate     *time.Time `json:"resultsSentDate,omitempty"`
	SenateApprovalDate  *time.Time `json:"senateApprovalDate,omitempty"`
}

// BookRow is one row of the books grade-management table.
type BookRow struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	StudentName  string        `json:"studentName"`
	Registration string        `json:"registrationNumber"`
	SchoolID     string        `json:"schoolId"`
	Status       string        `json:"status"`
	Examiners    int           `json:"examiners"`
	VivaDate     *time.Time    `json:"vivaDate,omitempty"`
	VivaVerdict  string        `json:"vivaVerdict,omitempty"`
	Marks        grading.Marks `json:"marks"`
}

// BookTable is the books page payload.
type BookTable struct {
	Rows  []BookRow      `json:"rows"`
	Tabs  map[string]int `json:"tabs"`
	Total int            `json:"total"`
}

// BookDetail is a book with its computed marks and results stage.
type BookDetail struct {
	models.Book
	CurrentStatus   *models.StatusRecord `json:"currentStatus,omitempty"`
	Marks           grading.Marks        `json:"marks"`
	Stage           string               `json:"stage,omitempty"`
	Eligible        bool                 `json:"eligibleForResults"`
	HistoryWarnings []string             `json:"historyWarnings,omitempty"`
}
