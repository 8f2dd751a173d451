package upstream

import (
	"context"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
)

func (c *Client) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	var out []models.Campus
	if err := c.getJSON(ctx, "campuses.list", "/management/campuses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCampus(ctx context.Context, req dto.CampusRequest) (*models.Campus, error) {
	var out models.Campus
	if err := c.postJSON(ctx, "campuses.create", "/management/campuses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCampus(ctx context.Context, id string, req dto.CampusRequest) (*models.Campus, error) {
	var out models.Campus
	if err := c.putJSON(ctx, "campuses.update", path("/management/campuses/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCampus(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "campuses.delete", path("/management/campuses/%s", id))
}

func (c *Client) ListSchools(ctx context.Context) ([]models.School, error) {
	var out []models.School
	if err := c.getJSON(ctx, "schools.list", "/management/schools", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSchool(ctx context.Context, req dto.SchoolRequest) (*models.School, error) {
	var out models.School
	if err := c.postJSON(ctx, "schools.create", "/management/schools", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSchool(ctx context.Context, id string, req dto.SchoolRequest) (*models.School, error) {
	var out models.School
	if err := c.putJSON(ctx, "schools.update", path("/management/schools/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSchool(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "schools.delete", path("/management/schools/%s", id))
}

func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	if err := c.getJSON(ctx, "departments.list", "/management/departments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDepartment(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error) {
	var out models.Department
	if err := c.postJSON(ctx, "departments.create", "/management/departments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDepartment(ctx context.Context, id string, req dto.DepartmentRequest) (*models.Department, error) {
	var out models.Department
	if err := c.putJSON(ctx, "departments.update", path("/management/departments/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "departments.delete", path("/management/departments/%s", id))
}

func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	if err := c.getJSON(ctx, "courses.list", "/management/courses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCourse(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	var out models.Course
	if err := c.postJSON(ctx, "courses.create", "/management/courses", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (*models.Course, error) {
	var out models.Course
	if err := c.putJSON(ctx, "courses.update", path("/management/courses/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "courses.delete", path("/management/courses/%s", id))
}
