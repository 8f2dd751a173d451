package grading

import (
	"fmt"
	"strings"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

// ResultStage is a book's position on the final results pipeline.
type ResultStage string

const (
	StagePendingApproval  ResultStage = "pending_approval"
	StageApprovedAtCentre ResultStage = "approved_at_centre"
	StageSentToSchool     ResultStage = "sent_to_school"
	StageSenateApproved   ResultStage = "senate_approved"
)

// Stages lists the pipeline in order.
func Stages() []ResultStage {
	return []ResultStage{StagePendingApproval, StageApprovedAtCentre, StageSentToSchool, StageSenateApproved}
}

// Label is the human readable tab title.
func (s ResultStage) Label() string {
	switch s {
	case StagePendingApproval:
		return "Pending approval"
	case StageApprovedAtCentre:
		return "Approved at centre"
	case StageSentToSchool:
		return "Sent to school"
	case StageSenateApproved:
		return "Senate approved"
	default:
		return string(s)
	}
}

// ParseStage validates a stage name.
func ParseStage(raw string) (ResultStage, error) {
	stage := ResultStage(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range Stages() {
		if s == stage {
			return s, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown results stage %q", raw))
}

// Action moves books between stages.
type Action string

const (
	ActionApprove       Action = "approve"
	ActionSendToSchool  Action = "send_to_school"
	ActionSenateApprove Action = "senate_approve"
)

type transition struct {
	from ResultStage
	to   ResultStage
	// status is the backend status name the book takes on.
	status models.BookStatus
}

var transitions = map[Action]transition{
	ActionApprove:       {from: StagePendingApproval, to: StageApprovedAtCentre, status: models.BookStatusResultsApproved},
	ActionSendToSchool:  {from: StageApprovedAtCentre, to: StageSentToSchool, status: models.BookStatusResultsSent},
	ActionSenateApprove: {from: StageSentToSchool, to: StageSenateApproved, status: models.BookStatusResultsSenateApprvd},
}

// ParseAction validates an action name.
func ParseAction(raw string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := transitions[action]; !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown results action %q", raw))
	}
	return action, nil
}

// Next returns the stage action leads to from stage, or ErrInvalidTransition.
func Next(stage ResultStage, action Action) (ResultStage, error) {
	t, ok := transitions[action]
	if !ok || t.from != stage {
		return "", appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot %s a book that is %s", strings.ReplaceAll(string(action), "_", " "), strings.ToLower(stage.Label())))
	}
	return t.to, nil
}

// StatusFor is the backend status name a book receives after action.
func StatusFor(action Action) models.BookStatus {
	return transitions[action].status
}

// ClassifyResultStage places a book using its results dates first and its
// current status second.
func ClassifyResultStage(book models.Book) ResultStage {
	switch {
	case book.SenateApprovalDate != nil:
		return StageSenateApproved
	case book.ResultsSentDate != nil:
		return StageSentToSchool
	case book.ResultsApprovedDate != nil:
		return StageApprovedAtCentre
	}
	switch models.ParseBookStatus(models.CurrentStatusName(book.Statuses)) {
	case models.BookStatusResultsSenateApprvd:
		return StageSenateApproved
	case models.BookStatusResultsSent:
		return StageSentToSchool
	case models.BookStatusResultsApproved:
		return StageApprovedAtCentre
	default:
		return StagePendingApproval
	}
}

// Eligible reports whether a book belongs on the results board: its current
// viva must have a recorded verdict.
func Eligible(book models.Book) bool {
	viva := book.CurrentViva()
	return viva != nil && strings.TrimSpace(viva.Verdict) != ""
}
