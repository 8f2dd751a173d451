package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/table"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

type catalogUpstream interface {
	ListCampuses(ctx context.Context) ([]models.Campus, error)
	CreateCampus(ctx context.Context, req dto.CampusRequest) (*models.Campus, error)
	UpdateCampus(ctx context.Context, id string, req dto.CampusRequest) (*models.Campus, error)
	DeleteCampus(ctx context.Context, id string) error

	ListSchools(ctx context.Context) ([]models.School, error)
	CreateSchool(ctx context.Context, req dto.SchoolRequest) (*models.School, error)
	UpdateSchool(ctx context.Context, id string, req dto.SchoolRequest) (*models.School, error)
	DeleteSchool(ctx context.Context, id string) error

	ListDepartments(ctx context.Context) ([]models.Department, error)
	CreateDepartment(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id string, req dto.DepartmentRequest) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id string) error

	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, req dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

var (
	campusColumns = []table.Column[models.Campus]{
		{Key: "code", Header: "Code", Value: func(c models.Campus) string { return c.Code }, Searchable: true, Sortable: true},
		{Key: "name", Header: "Name", Value: func(c models.Campus) string { return c.Name }, Searchable: true, Sortable: true},
		{Key: "location", Header: "Location", Value: func(c models.Campus) string { return c.Location }, Searchable: true, Sortable: true},
	}
	schoolColumns = []table.Column[models.School]{
		{Key: "code", Header: "Code", Value: func(s models.School) string { return s.Code }, Searchable: true, Sortable: true},
		{Key: "name", Header: "Name", Value: func(s models.School) string { return s.Name }, Searchable: true, Sortable: true},
		{Key: "email", Header: "Email", Value: func(s models.School) string { return s.Email }, Searchable: true},
	}
	departmentColumns = []table.Column[models.Department]{
		{Key: "code", Header: "Code", Value: func(d models.Department) string { return d.Code }, Searchable: true, Sortable: true},
		{Key: "name", Header: "Name", Value: func(d models.Department) string { return d.Name }, Searchable: true, Sortable: true},
	}
	courseColumns = []table.Column[models.Course]{
		{Key: "code", Header: "Code", Value: func(c models.Course) string { return c.Code }, Searchable: true, Sortable: true},
		{Key: "name", Header: "Name", Value: func(c models.Course) string { return c.Name }, Searchable: true, Sortable: true},
		{Key: "level", Header: "Level", Value: func(c models.Course) string { return c.Level }, Sortable: true},
	}
)

// CatalogService manages campuses, schools, departments and courses.
type CatalogService struct {
	api       catalogUpstream
	queries   *query.Client
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs the catalogue service.
func NewCatalogService(api catalogUpstream, queries *query.Client, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{api: api, queries: queries, validator: validate, logger: logger}
}

func listCatalog[T any](ctx context.Context, queries *query.Client, resource string, fetch func(context.Context) ([]T, error), columns []table.Column[T], parentOf func(T) string, filter models.CatalogFilter) ([]T, *models.Pagination, query.Freshness, error) {
	items, fresh, err := query.Load(ctx, queries, resource, "", fetch)
	if err != nil {
		return nil, nil, fresh, err
	}
	if filter.ParentID != "" && parentOf != nil {
		items = table.Where(items, func(item T) bool { return parentOf(item) == filter.ParentID })
	}
	page, pagination := table.Apply(items, columns, table.Query{Search: filter.Search, Page: filter.Page, PageSize: filter.PageSize})
	return page, &pagination, fresh, nil
}

// ensureExists fails with a validation error when no item has id.
func ensureExists[T any](ctx context.Context, queries *query.Client, resource string, fetch func(context.Context) ([]T, error), idOf func(T) string, id, what string) error {
	items, _, err := query.Load(ctx, queries, resource, "", fetch)
	if err != nil {
		return err
	}
	for _, item := range items {
		if idOf(item) == id {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s %s does not exist", what, id))
}

// ensureNoChildren fails with a conflict when any item still points at id.
func ensureNoChildren[T any](ctx context.Context, queries *query.Client, resource string, fetch func(context.Context) ([]T, error), parentOf func(T) string, id, what, children string) error {
	items, _, err := query.Load(ctx, queries, resource, "", fetch)
	if err != nil {
		return err
	}
	n := 0
	for _, item := range items {
		if parentOf(item) == id {
			n++
		}
	}
	if n > 0 {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s still has %d %s", what, n, children))
	}
	return nil
}

func campusID(c models.Campus) string             { return c.ID }
func schoolID(s models.School) string             { return s.ID }
func schoolCampus(s models.School) string         { return s.CampusID }
func departmentSchool(d models.Department) string { return d.SchoolID }
func courseSchool(c models.Course) string         { return c.SchoolID }

// ListCampuses lists campuses.
func (s *CatalogService) ListCampuses(ctx context.Context, filter models.CatalogFilter) ([]models.Campus, *models.Pagination, query.Freshness, error) {
	return listCatalog(ctx, s.queries, resourceCampuses, s.api.ListCampuses, campusColumns, nil, filter)
}

// CreateCampus creates a campus.
func (s *CatalogService) CreateCampus(ctx context.Context, req dto.CampusRequest) (*models.Campus, error) {
	if err := validate(s.validator, req, "invalid campus payload"); err != nil {
		return nil, err
	}
	var out *models.Campus
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.CreateCampus(ctx, req)
		return err
	}, resourceCampuses)
	return out, err
}

// UpdateCampus updates a campus.
func (s *CatalogService) UpdateCampus(ctx context.Context, id string, req dto.CampusRequest) (*models.Campus, error) {
	if err := requireID(id, "campus"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid campus payload"); err != nil {
		return nil, err
	}
	var out *models.Campus
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.UpdateCampus(ctx, id, req)
		return err
	}, resourceCampuses)
	return out, err
}

// DeleteCampus deletes a campus that no school belongs to.
func (s *CatalogService) DeleteCampus(ctx context.Context, id string) error {
	if err := requireID(id, "campus"); err != nil {
		return err
	}
	if err := ensureNoChildren(ctx, s.queries, resourceSchools, s.api.ListSchools, schoolCampus, id, "campus", "schools"); err != nil {
		return err
	}
	return mutate(ctx, s.queries, func(ctx context.Context) error {
		return s.api.DeleteCampus(ctx, id)
	}, resourceCampuses)
}

// ListSchools lists schools, optionally of one campus.
func (s *CatalogService) ListSchools(ctx context.Context, filter models.CatalogFilter) ([]models.School, *models.Pagination, query.Freshness, error) {
	return listCatalog(ctx, s.queries, resourceSchools, s.api.ListSchools, schoolColumns, schoolCampus, filter)
}

// CreateSchool creates a school under an existing campus.
func (s *CatalogService) CreateSchool(ctx context.Context, req dto.SchoolRequest) (*models.School, error) {
	if err := s.checkSchool(ctx, req); err != nil {
		return nil, err
	}
	var out *models.School
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.CreateSchool(ctx, req)
		return err
	}, resourceSchools)
	return out, err
}

// UpdateSchool updates a school.
func (s *CatalogService) UpdateSchool(ctx context.Context, id string, req dto.SchoolRequest) (*models.School, error) {
	if err := requireID(id, "school"); err != nil {
		return nil, err
	}
	if err := s.checkSchool(ctx, req); err != nil {
		return nil, err
	}
	var out *models.School
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.UpdateSchool(ctx, id, req)
		return err
	}, resourceSchools)
	return out, err
}

func (s *CatalogService) checkSchool(ctx context.Context, req dto.SchoolRequest) error {
	if err := validate(s.validator, req, "invalid school payload"); err != nil {
		return err
	}
	return ensureExists(ctx, s.queries, resourceCampuses, s.api.ListCampuses, campusID, req.CampusID, "campus")
}

// DeleteSchool deletes a school without departments or courses.
func (s *CatalogService) DeleteSchool(ctx context.Context, id string) error {
	if err := requireID(id, "school"); err != nil {
		return err
	}
	if err := ensureNoChildren(ctx, s.queries, resourceDepartments, s.api.ListDepartments, departmentSchool, id, "school", "departments"); err != nil {
		return err
	}
	if err := ensureNoChildren(ctx, s.queries, resourceCourses, s.api.ListCourses, courseSchool, id, "school", "courses"); err != nil {
		return err
	}
	return mutate(ctx, s.queries, func(ctx context.Context) error {
		return s.api.DeleteSchool(ctx, id)
	}, resourceSchools)
}

// ListDepartments lists departments, optionally of one school.
func (s *CatalogService) ListDepartments(ctx context.Context, filter models.CatalogFilter) ([]models.Department, *models.Pagination, query.Freshness, error) {
	return listCatalog(ctx, s.queries, resourceDepartments, s.api.ListDepartments, departmentColumns, departmentSchool, filter)
}

// CreateDepartment creates a department under an existing school.
func (s *CatalogService) CreateDepartment(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error) {
	if err := s.checkDepartment(ctx, req); err != nil {
		return nil, err
	}
	var out *models.Department
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.CreateDepartment(ctx, req)
		return err
	}, resourceDepartments)
	return out, err
}

// UpdateDepartment updates a department.
func (s *CatalogService) UpdateDepartment(ctx context.Context, id string, req dto.DepartmentRequest) (*models.Department, error) {
	if err := requireID(id, "department"); err != nil {
		return nil, err
	}
	if err := s.checkDepartment(ctx, req); err != nil {
		return nil, err
	}
	var out *models.Department
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.UpdateDepartment(ctx, id, req)
		return err
	}, resourceDepartments)
	return out, err
}

func (s *CatalogService) checkDepartment(ctx context.Context, req dto.DepartmentRequest) error {
	if err := validate(s.validator, req, "invalid department payload"); err != nil {
		return err
	}
	return ensureExists(ctx, s.queries, resourceSchools, s.api.ListSchools, schoolID, req.SchoolID, "school")
}

// DeleteDepartment deletes a department.
func (s *CatalogService) DeleteDepartment(ctx context.Context, id string) error {
	if err := requireID(id, "department"); err != nil {
		return err
	}
	return mutate(ctx, s.queries, func(ctx context.Context) error {
		return s.api.DeleteDepartment(ctx, id)
	}, resourceDepartments)
}

// ListCourses lists courses, optionally of one school.
func (s *CatalogService) ListCourses(ctx context.Context, filter models.CatalogFilter) ([]models.Course, *models.Pagination, query.Freshness, error) {
	return listCatalog(ctx, s.queries, resourceCourses, s.api.ListCourses, courseColumns, courseSchool, filter)
}

// CreateCourse creates a course offered by an existing school and campus.
func (s *CatalogService) CreateCourse(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	if err := s.checkCourse(ctx, req); err != nil {
		return nil, err
	}
	var out *models.Course
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.CreateCourse(ctx, req)
		return err
	}, resourceCourses)
	return out, err
}

// UpdateCourse updates a course.
func (s *CatalogService) UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (*models.Course, error) {
	if err := requireID(id, "course"); err != nil {
		return nil, err
	}
	if err := s.checkCourse(ctx, req); err != nil {
		return nil, err
	}
	var out *models.Course
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = s.api.UpdateCourse(ctx, id, req)
		return err
	}, resourceCourses)
	return out, err
}

func (s *CatalogService) checkCourse(ctx context.Context, req dto.CourseRequest) error {
	if err := validate(s.validator, req, "invalid course payload"); err != nil {
		return err
	}
	if err := ensureExists(ctx, s.queries, resourceSchools, s.api.ListSchools, schoolID, req.SchoolID, "school"); err != nil {
		return err
	}
	return ensureExists(ctx, s.queries, resourceCampuses, s.api.ListCampuses, campusID, req.CampusID, "campus")
}

// DeleteCourse deletes a course.
func (s *CatalogService) DeleteCourse(ctx context.Context, id string) error {
	if err := requireID(id, "course"); err != nil {
		return err
	}
	return mutate(ctx, s.queries, func(ctx context.Context) error {
		return s.api.DeleteCourse(ctx, id)
	}, resourceCourses)
}
