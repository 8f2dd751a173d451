package service

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/table"
)

type proposalUpstream interface {
	ListProposals(ctx context.Context) ([]models.Proposal, error)
	GetProposal(ctx context.Context, id string) (*models.Proposal, error)
	UpdateProposalStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Proposal, error)
	AssignReviewer(ctx context.Context, id string, req dto.AssignReviewerRequest) (*models.Proposal, error)
	RemoveReviewer(ctx context.Context, proposalID, reviewerID string) error
	SubmitReviewerMark(ctx context.Context, proposalID, reviewerID string, req dto.ReviewerMarkRequest) (*models.Proposal, error)
	ScheduleDefense(ctx context.Context, proposalID string, req dto.ScheduleDefenseRequest) (*models.Proposal, error)
	RecordDefenseVerdict(ctx context.Context, defenseID string, req dto.DefenseVerdictRequest) (*models.Proposal, error)
}

var proposalColumns = []table.Column[dto.ProposalRow]{
	{Key: "title", Header: "Title", Value: func(r dto.ProposalRow) string { return r.Title }, Searchable: true, Sortable: true},
	{Key: "studentName", Header: "Student", Value: func(r dto.ProposalRow) string { return r.StudentName }, Searchable: true, Sortable: true},
	{Key: "registrationNumber", Header: "Registration No.", Value: func(r dto.ProposalRow) string { return r.Registration }, Searchable: true, Sortable: true},
	{Key: "status", Header: "Status", Value: func(r dto.ProposalRow) string { return r.Status }, Sortable: true},
}

// ProposalService serves grade management for proposals.
type ProposalService struct {
	api       proposalUpstream
	queries   *query.Client
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProposalService constructs the proposal service.
func NewProposalService(api proposalUpstream, queries *query.Client, validate *validator.Validate, logger *zap.Logger) *ProposalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProposalService{api: api, queries: queries, validator: validate, logger: logger}
}

// List returns the proposals table. Tabs count every proposal by current
// status; the selected tab, search and pagination narrow the rows.
func (s *ProposalService) List(ctx context.Context, filter models.GradeFilter) (*dto.ProposalTable, *models.Pagination, query.Freshness, error) {
	proposals, fresh, err := query.Load(ctx, s.queries, resourceProposals, "", s.api.ListProposals)
	if err != nil {
		return nil, nil, fresh, err
	}
	rows := make([]dto.ProposalRow, 0, len(proposals))
	for _, p := range proposals {
		rows = append(rows, proposalRow(p))
	}
	tabs := tabCounts(rows, func(r dto.ProposalRow) string { return statusLabel(r.Status) })

	tab := strings.TrimSpace(filter.Tab)
	if tab != "" && !strings.EqualFold(tab, tabAll) {
		rows = table.Where(rows, func(r dto.ProposalRow) bool { return sameStatus(statusLabel(r.Status), tab) })
	}
	page, pagination := table.Apply(rows, proposalColumns, table.Query{
		Search: filter.Search, Page: filter.Page, PageSize: filter.PageSize, SortBy: filter.SortBy, SortOrder: filter.SortOrder,
	})
	return &dto.ProposalTable{Rows: page, Tabs: tabs, Total: pagination.TotalCount}, &pagination, fresh, nil
}

func proposalRow(p models.Proposal) dto.ProposalRow {
	row := dto.ProposalRow{
		ID:     p.ID,
		Title:  p.Title,
		Status: models.CurrentStatusName(p.Statuses),
	}
	if p.Student != nil {
		row.StudentName = p.Student.FullName()
		row.Registration = p.Student.RegistrationNumber
	}
	for _, r := range p.Reviewers {
		if !r.IsCurrent {
			continue
		}
		row.Reviewers++
		if r.Grade != nil {
			row.GradedCount++
		}
	}
	if avg, ok := p.AverageReviewerGrade(); ok {
		rounded := math.Round(avg*100) / 100
		row.AverageGrade = &rounded
	}
	if d := p.CurrentDefense(); d != nil {
		date := d.ScheduledDate
		row.DefenseDate = &date
		row.DefenseResult = d.Verdict
	}
	return row
}

// Get returns one proposal with its grading summary.
func (s *ProposalService) Get(ctx context.Context, id string) (*dto.ProposalDetail, query.Freshness, error) {
	if err := requireID(id, "proposal"); err != nil {
		return nil, query.Freshness{}, err
	}
	proposal, fresh, err := query.Load(ctx, s.queries, resourceProposal, id, func(ctx context.Context) (*models.Proposal, error) {
		return s.api.GetProposal(ctx, id)
	})
	if err != nil {
		return nil, fresh, err
	}
	detail := &dto.ProposalDetail{Proposal: *proposal, AverageGrade: proposalRow(*proposal).AverageGrade}
	detail.CurrentStatus, detail.HistoryWarnings = currentStatus(s.logger, "proposal", id, proposal.Statuses)
	return detail, fresh, nil
}

func (s *ProposalService) write(ctx context.Context, fn func(context.Context) (*models.Proposal, error)) (*models.Proposal, error) {
	var out *models.Proposal
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	}, resourceProposals, resourceProposal, resourceStudent)
	return out, err
}

// UpdateStatus appends a status record to the proposal.
func (s *ProposalService) UpdateStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Proposal, error) {
	if err := requireID(id, "proposal"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid status update"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Proposal, error) {
		return s.api.UpdateProposalStatus(ctx, id, req)
	})
}

// AssignReviewer adds a reviewer.
func (s *ProposalService) AssignReviewer(ctx context.Context, id string, req dto.AssignReviewerRequest) (*models.Proposal, error) {
	if err := requireID(id, "proposal"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid reviewer assignment"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Proposal, error) {
		return s.api.AssignReviewer(ctx, id, req)
	})
}

// RemoveReviewer removes a reviewer.
func (s *ProposalService) RemoveReviewer(ctx context.Context, proposalID, reviewerID string) error {
	if err := requireID(proposalID, "proposal"); err != nil {
		return err
	}
	if err := requireID(reviewerID, "reviewer"); err != nil {
		return err
	}
	_, err := s.write(ctx, func(ctx context.Context) (*models.Proposal, error) {
		return nil, s.api.RemoveReviewer(ctx, proposalID, reviewerID)
	})
	return err
}

// SubmitReviewerMark records a reviewer's grade between 0 and 100.
func (s *ProposalService) SubmitReviewerMark(ctx context.Context, proposalID, reviewerID string, req dto.ReviewerMarkRequest) (*models.Proposal, error) {
	if err := requireID(proposalID, "proposal"); err != nil {
		return nil, err
	}
	if err := requireID(reviewerID, "reviewer"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "grade must be between 0 and 100"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Proposal, error) {
		return s.api.SubmitReviewerMark(ctx, proposalID, reviewerID, req)
	})
}

// ScheduleDefense creates a new defense attempt.
func (s *ProposalService) ScheduleDefense(ctx context.Context, proposalID string, req dto.ScheduleDefenseRequest) (*models.Proposal, error) {
	if err := requireID(proposalID, "proposal"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid defense schedule"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Proposal, error) {
		return s.api.ScheduleDefense(ctx, proposalID, req)
	})
}

// RecordDefenseVerdict closes a defense attempt.
func (s *ProposalService) RecordDefenseVerdict(ctx context.Context, defenseID string, req dto.DefenseVerdictRequest) (*models.Proposal, error) {
	if err := requireID(defenseID, "defense"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid defense verdict"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Proposal, error) {
		return s.api.RecordDefenseVerdict(ctx, defenseID, req)
	})
}
