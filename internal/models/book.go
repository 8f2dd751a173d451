package models

import "time"

// ExaminerType distinguishes internal from external examiners.
type ExaminerType string

const (
	ExaminerInternal ExaminerType = "Internal"
	ExaminerExternal ExaminerType = "External"
)

// Valid reports whether the examiner type is one of the two known values.
func (t ExaminerType) Valid() bool {
	return t == ExaminerInternal || t == ExaminerExternal
}

// ExaminerAssignment is a typed grading relationship between an examiner and a book.
type ExaminerAssignment struct {
	ExaminerID string       `json:"examinerId"`
	Name       string       `json:"name"`
	Email      string       `json:"email,omitempty"`
	Type       ExaminerType `json:"type"`
	Grade      *float64     `json:"grade,omitempty"`
	IsCurrent  bool         `json:"isCurrent"`
	AssignedAt *time.Time   `json:"assignedAt,omitempty"`
}

// VivaMark is one examiner's mark for a viva attempt.
type VivaMark struct {
	ExaminerID string       `json:"examinerId"`
	Type       ExaminerType `json:"type"`
	Mark       float64      `json:"mark"`
}

// Viva is an oral defense attempt for a book.
type Viva struct {
	ID            string     `json:"id"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	Status        string     `json:"status"`
	Verdict       string     `json:"verdict,omitempty"`
	Panelists     []Panelist `json:"panelists,omitempty"`
	Marks         []VivaMark `json:"marks,omitempty"`
	IsCurrent     bool       `json:"isCurrent"`
}

// Book is a submitted dissertation.
type Book struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	StudentID           string               `json:"studentId"`
	Student             *Student             `json:"student,omitempty"`
	Statuses            []StatusRecord       `json:"statuses,omitempty"`
	Examiners           []ExaminerAssignment `json:"examiners,omitempty"`
	Vivas               []Viva               `json:"vivas,omitempty"`
	ResultsApprovedDate *time.Time           `json:"resultsApprovedDate,omitempty"`
	ResultsSentDate     *time.Time           `json:"resultsSentDate,omitempty"`
	SenateApprovalDate  *time.Time           `json:"senateApprovalDate,omitempty"`
	SubmittedAt         *time.Time           `json:"submittedAt,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
}

// CurrentViva returns the viva attempt flagged current, if any.
func (b Book) CurrentViva() *Viva {
	for i := range b.Vivas {
		if b.Vivas[i].IsCurrent {
			return &b.Vivas[i]
		}
	}
	return nil
}

// CurrentExaminer returns the first current examiner of the given type.
func (b Book) CurrentExaminer(t ExaminerType) *ExaminerAssignment {
	for i := range b.Examiners {
		if b.Examiners[i].IsCurrent && b.Examiners[i].Type == t {
			return &b.Examiners[i]
		}
	}
	return nil
}

// SchoolID resolves the owning school through the embedded student.
func (b Book) SchoolID() string {
	if b.Student == nil {
		return ""
	}
	return b.Student.SchoolID
}
