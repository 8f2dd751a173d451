package upstream

import (
	"context"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
)

// ListFaculty returns faculty members and supervisors.
func (c *Client) ListFaculty(ctx context.Context) ([]models.FacultyMember, error) {
	var out []models.FacultyMember
	if err := c.getJSON(ctx, "faculty.list", "/management/faculty", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFaculty adds a faculty member.
func (c *Client) CreateFaculty(ctx context.Context, req dto.FacultyRequest) (*models.FacultyMember, error) {
	var out models.FacultyMember
	if err := c.postJSON(ctx, "faculty.create", "/management/faculty", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFaculty edits a faculty member.
func (c *Client) UpdateFaculty(ctx context.Context, id string, req dto.FacultyRequest) (*models.FacultyMember, error) {
	var out models.FacultyMember
	if err := c.putJSON(ctx, "faculty.update", path("/management/faculty/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFaculty removes a faculty member.
func (c *Client) DeleteFaculty(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "faculty.delete", path("/management/faculty/%s", id))
}
