package upstream

import (
	"context"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
)

// ListStudents returns every student visible to the caller.
func (c *Client) ListStudents(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	if err := c.getJSON(ctx, "students.list", "/management/students", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStudent returns one student with statuses, supervisors, proposals and books.
func (c *Client) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	var out models.Student
	if err := c.getJSON(ctx, "students.get", path("/management/students/%s", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStudent registers a student.
func (c *Client) CreateStudent(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	var out models.Student
	if err := c.postJSON(ctx, "students.create", "/management/students", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudent replaces a student's editable fields.
func (c *Client) UpdateStudent(ctx context.Context, id string, req dto.StudentRequest) (*models.Student, error) {
	var out models.Student
	if err := c.putJSON(ctx, "students.update", path("/management/students/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStudent removes a student.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "students.delete", path("/management/students/%s", id))
}

// UpdateStudentStatus appends a status record.
func (c *Client) UpdateStudentStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Student, error) {
	var out models.Student
	if err := c.putJSON(ctx, "students.status", path("/management/students/%s/status", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignSupervisor links a supervisor to a student.
func (c *Client) AssignSupervisor(ctx context.Context, id string, req dto.AssignSupervisorRequest) (*models.Student, error) {
	var out models.Student
	if err := c.postJSON(ctx, "students.supervisors", path("/management/students/%s/supervisors", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
