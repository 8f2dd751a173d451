package models

import "time"

// ReviewerAssignment is a reviewer's grading relationship with a proposal.
type ReviewerAssignment struct {
	ReviewerID string     `json:"reviewerId"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Grade      *float64   `json:"grade,omitempty"`
	Feedback   string     `json:"feedback,omitempty"`
	IsCurrent  bool       `json:"isCurrent"`
	GradedAt   *time.Time `json:"gradedAt,omitempty"`
}

// Panelist sits on a defense or viva.
type Panelist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Defense is one attempt at defending a proposal.
type Defense struct {
	ID            string     `json:"id"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	Panelists     []Panelist `json:"panelists,omitempty"`
	Verdict       string     `json:"verdict,omitempty"`
	Comments      string     `json:"comments,omitempty"`
	IsCurrent     bool       `json:"isCurrent"`
}

// Proposal is a student's research proposal.
type Proposal struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	StudentID   string               `json:"studentId"`
	Student     *Student             `json:"student,omitempty"`
	Statuses    []StatusRecord       `json:"statuses,omitempty"`
	Reviewers   []ReviewerAssignment `json:"reviewers,omitempty"`
	Defenses    []Defense            `json:"defenses,omitempty"`
	SubmittedAt *time.Time           `json:"submittedAt,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// CurrentDefense returns the defense attempt flagged current, if any.
func (p Proposal) CurrentDefense() *Defense {
	for i := range p.Defenses {
		if p.Defenses[i].IsCurrent {
			return &p.Defenses[i]
		}
	}
	return nil
}

// AverageReviewerGrade averages the graded current reviewers. ok is false when no reviewer has graded.
func (p Proposal) AverageReviewerGrade() (avg float64, ok bool) {
	var sum float64
	n := 0
	for _, r := range p.Reviewers {
		if !r.IsCurrent || r.Grade == nil {
			continue
		}
		sum += *r.Grade
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
