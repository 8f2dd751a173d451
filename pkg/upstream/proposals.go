package upstream

import (
	"context"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
)

func (c *Client) ListProposals(ctx context.Context) ([]models.Proposal, error) {
	var out []models.Proposal
	if err := c.getJSON(ctx, "proposals.list", "/management/proposals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProposal(ctx context.Context, id string) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.getJSON(ctx, "proposals.get", path("/management/proposals/%s", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProposalStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.putJSON(ctx, "proposals.status", path("/management/proposals/%s/status", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AssignReviewer(ctx context.Context, id string, req dto.AssignReviewerRequest) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.postJSON(ctx, "proposals.reviewers.add", path("/management/proposals/%s/reviewers", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveReviewer(ctx context.Context, proposalID, reviewerID string) error {
	return c.deleteJSON(ctx, "proposals.reviewers.remove", path("/management/proposals/%s/reviewers/%s", proposalID, reviewerID))
}

// SubmitReviewerMark records a reviewer's grade for a proposal.
func (c *Client) SubmitReviewerMark(ctx context.Context, proposalID, reviewerID string, req dto.ReviewerMarkRequest) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.putJSON(ctx, "faculty.reviewer_marks", path("/faculty/reviewer-marks/%s/%s", proposalID, reviewerID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ScheduleDefense(ctx context.Context, proposalID string, req dto.ScheduleDefenseRequest) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.postJSON(ctx, "proposals.defenses.create", path("/management/proposals/%s/defenses", proposalID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecordDefenseVerdict(ctx context.Context, defenseID string, req dto.DefenseVerdictRequest) (*models.Proposal, error) {
	var out models.Proposal
	if err := c.putJSON(ctx, "defenses.update", path("/management/defenses/%s", defenseID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
