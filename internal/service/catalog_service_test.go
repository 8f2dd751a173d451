package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

type mockCatalogAPI struct {
	callLog
	campuses    []models.Campus
	schools     []models.School
	departments []models.Department
	courses     []models.Course
}

func (m *mockCatalogAPI) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	m.hit("campuses")
	return m.campuses, nil
}

func (m *mockCatalogAPI) CreateCampus(ctx context.Context, req dto.CampusRequest) (*models.Campus, error) {
	m.hit("createCampus")
	c := models.Campus{ID: "new", Code: req.Code, Name: req.Name}
	m.campuses = append(m.campuses, c)
	return &c, nil
}

func (m *mockCatalogAPI) UpdateCampus(ctx context.Context, id string, req dto.CampusRequest) (*models.Campus, error) {
	m.hit("updateCampus")
	return &models.Campus{ID: id, Code: req.Code, Name: req.Name}, nil
}

func (m *mockCatalogAPI) DeleteCampus(ctx context.Context, id string) error {
	m.hit("deleteCampus")
	return nil
}

func (m *mockCatalogAPI) ListSchools(ctx context.Context) ([]models.School, error) {
	m.hit("schools")
	return m.schools, nil
}

func (m *mockCatalogAPI) CreateSchool(ctx context.Context, req dto.SchoolRequest) (*models.School, error) {
	m.hit("createSchool")
	return &models.School{ID: "new", Code: req.Code, Name: req.Name, CampusID: req.CampusID}, nil
}

func (m *mockCatalogAPI) UpdateSchool(ctx context.Context, id string, req dto.SchoolRequest) (*models.School, error) {
	m.hit("updateSchool")
	return &models.School{ID: id, Name: req.Name, CampusID: req.CampusID}, nil
}

func (m *mockCatalogAPI) DeleteSchool(ctx context.Context, id string) error {
	m.hit("deleteSchool")
	return nil
}

func (m *mockCatalogAPI) ListDepartments(ctx context.Context) ([]models.Department, error) {
	m.hit("departments")
	return m.departments, nil
}

func (m *mockCatalogAPI) CreateDepartment(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error) {
	m.hit("createDepartment")
	return &models.Department{ID: "new", Name: req.Name, SchoolID: req.SchoolID}, nil
}

func (m *mockCatalogAPI) UpdateDepartment(ctx context.Context, id string, req dto.DepartmentRequest) (*models.Department, error) {
	m.hit("updateDepartment")
	return &models.Department{ID: id, Name: req.Name, SchoolID: req.SchoolID}, nil
}

func (m *mockCatalogAPI) DeleteDepartment(ctx context.Context, id string) error {
	m.hit("deleteDepartment")
	return nil
}

func (m *mockCatalogAPI) ListCourses(ctx context.Context) ([]models.Course, error) {
	m.hit("courses")
	return m.courses, nil
}

func (m *mockCatalogAPI) CreateCourse(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	m.hit("createCourse")
	return &models.Course{ID: "new", Name: req.Name, SchoolID: req.SchoolID, CampusID: req.CampusID}, nil
}

func (m *mockCatalogAPI) UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (*models.Course, error) {
	m.hit("updateCourse")
	return &models.Course{ID: id, Name: req.Name}, nil
}

func (m *mockCatalogAPI) DeleteCourse(ctx context.Context, id string) error {
	m.hit("deleteCourse")
	return nil
}

func sampleCatalog() *mockCatalogAPI {
	return &mockCatalogAPI{
		campuses: []models.Campus{{ID: "main", Code: "MC", Name: "Main Campus"}, {ID: "town", Code: "TC", Name: "Town Campus"}},
		schools: []models.School{
			{ID: "sci", Code: "SPAS", Name: "School of Pure and Applied Sciences", CampusID: "main"},
			{ID: "eng", Code: "SOE", Name: "School of Engineering", CampusID: "main"},
		},
		departments: []models.Department{{ID: "d1", Code: "CS", Name: "Computer Science", SchoolID: "sci"}},
		courses:     []models.Course{{ID: "c1", Code: "MSC-CS", Name: "MSc Computer Science", SchoolID: "sci", CampusID: "main"}},
	}
}

func TestCatalogListFiltersByParentAndSearch(t *testing.T) {
	svc := NewCatalogService(sampleCatalog(), newTestQueries(), nil, nil)

	schools, pagination, _, err := svc.ListSchools(scoped("u1"), models.CatalogFilter{ParentID: "main", Search: "engin"})
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "eng", schools[0].ID)
	assert.Equal(t, 1, pagination.TotalCount)

	schools, _, _, err = svc.ListSchools(scoped("u1"), models.CatalogFilter{ParentID: "town"})
	require.NoError(t, err)
	assert.Empty(t, schools)
}

func TestCatalogCreateRequiresExistingParent(t *testing.T) {
	api := sampleCatalog()
	svc := NewCatalogService(api, newTestQueries(), nil, nil)
	ctx := scoped("u1")

	_, err := svc.CreateSchool(ctx, dto.SchoolRequest{Code: "SOB", Name: "Business", CampusID: "nowhere"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "campus nowhere does not exist", appErrors.Message(err))
	assert.Equal(t, 0, api.count("createSchool"))

	school, err := svc.CreateSchool(ctx, dto.SchoolRequest{Code: "SOB", Name: "Business", CampusID: "town"})
	require.NoError(t, err)
	assert.Equal(t, "town", school.CampusID)

	_, err = svc.CreateCourse(ctx, dto.CourseRequest{Code: "MBA", Name: "MBA", SchoolID: "sci", CampusID: "moon"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.CreateDepartment(ctx, dto.DepartmentRequest{Code: "PH", Name: "Physics"})
	assert.ErrorIs(t, err, appErrors.ErrValidation, "missing parent id fails validation")
}

func TestCatalogDeleteRefusesParentsWithChildren(t *testing.T) {
	api := sampleCatalog()
	svc := NewCatalogService(api, newTestQueries(), nil, nil)
	ctx := scoped("u1")

	err := svc.DeleteCampus(ctx, "main")
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Equal(t, "campus still has 2 schools", appErrors.Message(err))

	err = svc.DeleteSchool(ctx, "sci")
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	require.NoError(t, svc.DeleteCampus(ctx, "town"))
	require.NoError(t, svc.DeleteSchool(ctx, "eng"))
	assert.Equal(t, 1, api.count("deleteCampus"))
	assert.Equal(t, 1, api.count("deleteSchool"))
}

func TestCatalogCreateCampusInvalidatesList(t *testing.T) {
	api := sampleCatalog()
	svc := NewCatalogService(api, newTestQueries(), nil, nil)
	ctx := scoped("u1")

	campuses, _, _, err := svc.ListCampuses(ctx, models.CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, campuses, 2)

	_, err = svc.CreateCampus(ctx, dto.CampusRequest{Code: "NC", Name: "North Campus"})
	require.NoError(t, err)

	campuses, _, _, err = svc.ListCampuses(ctx, models.CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, campuses, 3)
	assert.Equal(t, 2, api.count("campuses"))
}
