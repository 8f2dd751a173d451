package dto

import (
	"time"

	"github.com/noah-isme/research-admin-gateway/internal/models"
)

// AssignReviewerRequest adds a reviewer to a proposal.
type AssignReviewerRequest struct {
	ReviewerID string `json:"reviewerId" validate:"required"`
}

// ReviewerMarkRequest records a reviewer's grade.
type ReviewerMarkRequest struct {
	Grade    *float64 `json:"grade" validate:"required,min=0,max=100"`
	Feedback string   `json:"feedback,omitempty"`
}

// ScheduleDefenseRequest creates a defense attempt.
type ScheduleDefenseRequest struct {
	ScheduledDate time.Time `json:"scheduledDate" validate:"required"`
	PanelistIDs   []string  `json:"panelistIds" validate:"required,min=1,dive,required"`
	Venue         string    `json:"venue,omitempty"`
}

// DefenseVerdictRequest closes a defense attempt.
type DefenseVerdictRequest struct {
	Verdict  string `json:"verdict" validate:"required,oneof=passed 'passed with corrections' failed"`
	Comments string `json:"comments,omitempty"`
}

// ProposalRow is one row of the proposals grade-management table.
type ProposalRow struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	StudentName   string     `json:"studentName"`
	Registration  string     `json:"registrationNumber"`
	Status        string     `json:"status"`
	Reviewers     int        `json:"reviewers"`
	GradedCount   int        `json:"gradedCount"`
	AverageGrade  *float64   `json:"averageGrade,omitempty"`
	DefenseDate   *time.Time `json:"defenseDate,omitempty"`
	DefenseResult string     `json:"defenseVerdict,omitempty"`
}

// ProposalTable is the proposals page payload.
type ProposalTable struct {
	Rows  []ProposalRow  `json:"rows"`
	Tabs  map[string]int `json:"tabs"`
	Total int            `json:"total"`
}

// ProposalDetail is a proposal with its derived grading summary.
type ProposalDetail struct {
	models.Proposal
	CurrentStatus   *models.StatusRecord `json:"currentStatus,omitempty"`
	AverageGrade    *float64             `json:"averageGrade,omitempty"`
	HistoryWarnings []string             `json:"historyWarnings,omitempty"`
}
