package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/table"
)

type facultyUpstream interface {
	ListFaculty(ctx context.Context) ([]models.FacultyMember, error)
	CreateFaculty(ctx context.Context, req dto.FacultyRequest) (*models.FacultyMember, error)
	UpdateFaculty(ctx context.Context, id string, req dto.FacultyRequest) (*models.FacultyMember, error)
	DeleteFaculty(ctx context.Context, id string) error
}

var facultyColumns = []table.Column[models.FacultyMember]{
	{Key: "name", Header: "Name", Value: func(f models.FacultyMember) string { return f.Name }, Searchable: true, Sortable: true},
	{Key: "email", Header: "Email", Value: func(f models.FacultyMember) string { return f.Email }, Searchable: true, Sortable: true},
	{Key: "designation", Header: "Designation", Value: func(f models.FacultyMember) string { return f.Designation }, Searchable: true},
	{Key: "role", Header: "Role", Value: func(f models.FacultyMember) string { return string(f.Role) }, Sortable: true},
}

// FacultyService manages faculty members and supervisors.
type FacultyService struct {
	api       facultyUpstream
	queries   *query.Client
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs the faculty service.
func NewFacultyService(api facultyUpstream, queries *query.Client, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{api: api, queries: queries, validator: validate, logger: logger}
}

// List returns a page of faculty members.
func (s *FacultyService) List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultyMember, *models.Pagination, query.Freshness, error) {
	members, fresh, err := query.Load(ctx, s.queries, resourceFaculty, "", s.api.ListFaculty)
	if err != nil {
		return nil, nil, fresh, err
	}
	members = table.Where(members, func(f models.FacultyMember) bool {
		if filter.Role != "" && f.Role != filter.Role {
			return false
		}
		return filter.SchoolID == "" || f.SchoolID == filter.SchoolID
	})
	page, pagination := table.Apply(members, facultyColumns, table.Query{Search: filter.Search, Page: filter.Page, PageSize: filter.PageSize, SortBy: "name"})
	return page, &pagination, fresh, nil
}

// Create adds a faculty member.
func (s *FacultyService) Create(ctx context.Context, req dto.FacultyRequest) (*models.FacultyMember, error) {
	if err := validate(s.validator, req, "invalid faculty payload"); err != nil {
		return nil, err
	}
	var out *models.FacultyMember
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.CreateFaculty(ctx, req)
		return err
	}, resourceFaculty)
	return out, err
}

// Update changes a faculty member.
func (s *FacultyService) Update(ctx context.Context, id string, req dto.FacultyRequest) (*models.FacultyMember, error) {
	if err := requireID(id, "faculty"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid faculty payload"); err != nil {
		return nil, err
	}
	var out *models.FacultyMember
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.UpdateFaculty(ctx, id, req)
		return err
	}, resourceFaculty)
	return out, err
}

// Delete removes a faculty member.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if err := requireID(id, "faculty"); err != nil {
		return err
	}
	return mutate(ctx, s.queries, func(ctx context.Context) error {
		return s.api.DeleteFaculty(ctx, id)
	}, resourceFaculty)
}
