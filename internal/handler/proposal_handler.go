package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

type proposalService interface {
	List(ctx context.Context, filter models.GradeFilter) (*dto.ProposalTable, *models.Pagination, query.Freshness, error)
	Get(ctx context.Context, id string) (*dto.ProposalDetail, query.Freshness, error)
	UpdateStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Proposal, error)
	AssignReviewer(ctx context.Context, id string, req dto.AssignReviewerRequest) (*models.Proposal, error)
	RemoveReviewer(ctx context.Context, proposalID, reviewerID string) error
	SubmitReviewerMark(ctx context.Context, proposalID, reviewerID string, req dto.ReviewerMarkRequest) (*models.Proposal, error)
	ScheduleDefense(ctx context.Context, proposalID string, req dto.ScheduleDefenseRequest) (*models.Proposal, error)
	RecordDefenseVerdict(ctx context.Context, defenseID string, req dto.DefenseVerdictRequest) (*models.Proposal, error)
}

// ProposalHandler exposes proposal grade management.
type ProposalHandler struct {
	proposals proposalService
}

// NewProposalHandler constructs ProposalHandler.
func NewProposalHandler(proposals proposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// List godoc
// @Summary List proposals
// @Tags Proposals
// @Produce json
// @Param tab query string false "Current status name or all"
// @Param search query string false "Search by title or student"
// @Success 200 {object} response.Envelope
// @Router /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	out, pagination, fresh, err := h.proposals.List(c.Request.Context(), gradeFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondRead(c, out, pagination, fresh)
}

// Get godoc
// @Summary Get proposal detail
// @Tags Proposals
// @Param id path string true "Proposal ID"
// @Router /proposals/{id} [get]
func (h *ProposalHandler) Get(c *gin.Context) {
	out, fresh, err := h.proposals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondRead(c, out, nil, fresh)
}

// UpdateStatus godoc
// @Summary Append a status record to a proposal
// @Tags Proposals
// @Param payload body dto.StatusUpdateRequest true "Status payload"
// @Router /proposals/{id}/status [put]
func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	serveUpdate(c, h.proposals.UpdateStatus)
}

// AssignReviewer godoc
// @Summary Assign a reviewer
// @Tags Proposals
// @Param payload body dto.AssignReviewerRequest true "Reviewer payload"
// @Router /proposals/{id}/reviewers [post]
func (h *ProposalHandler) AssignReviewer(c *gin.Context) {
	serveUpdate(c, h.proposals.AssignReviewer)
}

// RemoveReviewer godoc
// @Summary Remove a reviewer
// @Tags Proposals
// @Router /proposals/{id}/reviewers/{reviewerId} [delete]
func (h *ProposalHandler) RemoveReviewer(c *gin.Context) {
	if err := h.proposals.RemoveReviewer(c.Request.Context(), c.Param("id"), c.Param("reviewerId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubmitReviewerMark godoc
// @Summary Submit a reviewer's mark
// @Tags Proposals
// @Param payload body dto.ReviewerMarkRequest true "Mark payload"
// @Router /proposals/{id}/reviewers/{reviewerId}/mark [put]
func (h *ProposalHandler) SubmitReviewerMark(c *gin.Context) {
	var req dto.ReviewerMarkRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.proposals.SubmitReviewerMark(c.Request.Context(), c.Param("id"), c.Param("reviewerId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// ScheduleDefense godoc
// @Summary Schedule a proposal defense
// @Tags Proposals
// @Param payload body dto.ScheduleDefenseRequest true "Defense payload"
// @Router /proposals/{id}/defenses [post]
func (h *ProposalHandler) ScheduleDefense(c *gin.Context) {
	serveUpdate(c, h.proposals.ScheduleDefense)
}

// RecordDefenseVerdict godoc
// @Summary Record a defense verdict
// @Tags Proposals
// @Param id path string true "Defense ID"
// @Param payload body dto.DefenseVerdictRequest true "Verdict payload"
// @Router /defenses/{id}/verdict [put]
func (h *ProposalHandler) RecordDefenseVerdict(c *gin.Context) {
	serveUpdate(c, h.proposals.RecordDefenseVerdict)
}
