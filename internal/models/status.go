package models

import (
	"strings"
	"time"
)

// StatusDefinition is the backend catalogue entry a status record points at.
type StatusDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// StatusRecord is one time-stamped entry in an entity's status history.
type StatusRecord struct {
	ID         string           `json:"id"`
	Definition StatusDefinition `json:"definition"`
	IsCurrent  bool             `json:"isCurrent"`
	StartDate  *time.Time       `json:"startDate,omitempty"`
	EndDate    *time.Time       `json:"endDate,omitempty"`
	UpdatedBy  string           `json:"updatedBy,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Name returns the lower-cased, trimmed definition name.
func (s StatusRecord) Name() string {
	return normaliseStatusName(s.Definition.Name)
}

// CurrentStatus returns the record flagged current. The second value reports
// how many records carry the flag so callers can detect a broken history.
func CurrentStatus(history []StatusRecord) (*StatusRecord, int) {
	var current *StatusRecord
	count := 0
	for i := range history {
		if !history[i].IsCurrent {
			continue
		}
		count++
		if current == nil {
			current = &history[i]
		}
	}
	return current, count
}

// CurrentStatusName is a convenience returning "" when nothing is current.
func CurrentStatusName(history []StatusRecord) string {
	current, _ := CurrentStatus(history)
	if current == nil {
		return ""
	}
	return current.Name()
}

// BookStatus is the closed set of dissertation status names the gateway acts on.
type BookStatus string

const (
	BookStatusUnknown             BookStatus = "unknown"
	BookStatusSubmitted           BookStatus = "submitted"
	BookStatusUnderExamination    BookStatus = "under examination"
	BookStatusVivaScheduled       BookStatus = "scheduled for viva"
	BookStatusGraded              BookStatus = "graded"
	BookStatusResultsApproved     BookStatus = "results approved"
	BookStatusResultsSent         BookStatus = "results sent to schools"
	BookStatusResultsSenateApprvd BookStatus = "results approved by senate"
)

var bookStatusAliases = map[string]BookStatus{
	"submitted":                  BookStatusSubmitted,
	"under examination":          BookStatusUnderExamination,
	"scheduled for viva":         BookStatusVivaScheduled,
	"viva scheduled":             BookStatusVivaScheduled,
	"graded":                     BookStatusGraded,
	"viva completed":             BookStatusGraded,
	"results approved":           BookStatusResultsApproved,
	"results sent to schools":    BookStatusResultsSent,
	"results sent to school":     BookStatusResultsSent,
	"results approved by senate": BookStatusResultsSenateApprvd,
	"senate approved":            BookStatusResultsSenateApprvd,
}

// ParseBookStatus maps a backend status name onto BookStatus.
func ParseBookStatus(name string) BookStatus {
	if status, ok := bookStatusAliases[normaliseStatusName(name)]; ok {
		return status
	}
	return BookStatusUnknown
}

func normaliseStatusName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
