package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

type catalogService interface {
	ListCampuses(ctx context.Context, filter models.CatalogFilter) ([]models.Campus, *models.Pagination, query.Freshness, error)
	CreateCampus(ctx context.Context, req dto.CampusRequest) (*models.Campus, error)
	UpdateCampus(ctx context.Context, id string, req dto.CampusRequest) (*models.Campus, error)
	DeleteCampus(ctx context.Context, id string) error
	ListSchools(ctx context.Context, filter models.CatalogFilter) ([]models.School, *models.Pagination, query.Freshness, error)
	CreateSchool(ctx context.Context, req dto.SchoolRequest) (*models.School, error)
	UpdateSchool(ctx context.Context, id string, req dto.SchoolRequest) (*models.School, error)
	DeleteSchool(ctx context.Context, id string) error
	ListDepartments(ctx context.Context, filter models.CatalogFilter) ([]models.Department, *models.Pagination, query.Freshness, error)
	CreateDepartment(ctx context.Context, req dto.DepartmentRequest) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id string, req dto.DepartmentRequest) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id string) error
	ListCourses(ctx context.Context, filter models.CatalogFilter) ([]models.Course, *models.Pagination, query.Freshness, error)
	CreateCourse(ctx context.Context, req dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, req dto.CourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// CatalogHandler exposes campuses, schools, departments and courses.
type CatalogHandler struct {
	catalog catalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog catalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func catalogFilter(c *gin.Context, parentParam string) models.CatalogFilter {
	page, size := pageParams(c)
	return models.CatalogFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		ParentID: c.Query(parentParam),
		Page:     page,
		PageSize: size,
	}
}

func serveList[T any](c *gin.Context, list func(context.Context, models.CatalogFilter) ([]T, *models.Pagination, query.Freshness, error), filter models.CatalogFilter) {
	items, pagination, fresh, err := list(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondRead(c, items, pagination, fresh)
}

func serveCreate[Req any, T any](c *gin.Context, create func(context.Context, Req) (*T, error)) {
	var req Req
	if !bindJSON(c, &req) {
		return
	}
	item, err := create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func serveUpdate[Req any, T any](c *gin.Context, update func(context.Context, string, Req) (*T, error)) {
	var req Req
	if !bindJSON(c, &req) {
		return
	}
	item, err := update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

func serveDelete(c *gin.Context, remove func(context.Context, string) error) {
	if err := remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCampuses godoc
// @Summary List campuses
// @Tags Catalog
// @Produce json
// @Param search query string false "Search by code, name or location"
// @Success 200 {object} response.Envelope
// @Router /campuses [get]
func (h *CatalogHandler) ListCampuses(c *gin.Context) {
	serveList(c, h.catalog.ListCampuses, catalogFilter(c, ""))
}

// CreateCampus godoc
// @Summary Create campus
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CampusRequest true "Campus payload"
// @Success 201 {object} response.Envelope
// @Router /campuses [post]
func (h *CatalogHandler) CreateCampus(c *gin.Context) {
	serveCreate(c, h.catalog.CreateCampus)
}

// UpdateCampus godoc
// @Summary Update campus
// @Tags Catalog
// @Router /campuses/{id} [put]
func (h *CatalogHandler) UpdateCampus(c *gin.Context) {
	serveUpdate(c, h.catalog.UpdateCampus)
}

// DeleteCampus godoc
// @Summary Delete campus
// @Tags Catalog
// @Router /campuses/{id} [delete]
func (h *CatalogHandler) DeleteCampus(c *gin.Context) {
	serveDelete(c, h.catalog.DeleteCampus)
}

// ListSchools godoc
// @Summary List schools
// @Tags Catalog
// @Produce json
// @Param campusId query string false "Filter by campus"
// @Success 200 {object} response.Envelope
// @Router /schools [get]
func (h *CatalogHandler) ListSchools(c *gin.Context) {
	serveList(c, h.catalog.ListSchools, catalogFilter(c, "campusId"))
}

// CreateSchool godoc
// @Summary Create school
// @Tags Catalog
// @Param payload body dto.SchoolRequest true "School payload"
// @Router /schools [post]
func (h *CatalogHandler) CreateSchool(c *gin.Context) {
	serveCreate(c, h.catalog.CreateSchool)
}

// UpdateSchool godoc
// @Summary Update school
// @Tags Catalog
// @Router /schools/{id} [put]
func (h *CatalogHandler) UpdateSchool(c *gin.Context) {
	serveUpdate(c, h.catalog.UpdateSchool)
}

// DeleteSchool godoc
// @Summary Delete school
// @Tags Catalog
// @Router /schools/{id} [delete]
func (h *CatalogHandler) DeleteSchool(c *gin.Context) {
	serveDelete(c, h.catalog.DeleteSchool)
}

// ListDepartments godoc
// @Summary List departments
// @Tags Catalog
// @Param schoolId query string false "Filter by school"
// @Router /departments [get]
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	serveList(c, h.catalog.ListDepartments, catalogFilter(c, "schoolId"))
}

// CreateDepartment godoc
// @Summary Create department
// @Tags Catalog
// @Param payload body dto.DepartmentRequest true "Department payload"
// @Router /departments [post]
func (h *CatalogHandler) CreateDepartment(c *gin.Context) {
	serveCreate(c, h.catalog.CreateDepartment)
}

// UpdateDepartment godoc
// @Summary Update department
// @Tags Catalog
// @Router /departments/{id} [put]
func (h *CatalogHandler) UpdateDepartment(c *gin.Context) {
	serveUpdate(c, h.catalog.UpdateDepartment)
}

// DeleteDepartment godoc
// @Summary Delete department
// @Tags Catalog
// @Router /departments/{id} [delete]
func (h *CatalogHandler) DeleteDepartment(c *gin.Context) {
	serveDelete(c, h.catalog.DeleteDepartment)
}

// ListCourses godoc
// @Summary List courses
// @Tags Catalog
// @Param schoolId query string false "Filter by school"
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	serveList(c, h.catalog.ListCourses, catalogFilter(c, "schoolId"))
}

// CreateCourse godoc
// @Summary Create course
// @Tags Catalog
// @Param payload body dto.CourseRequest true "Course payload"
// @Router /courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	serveCreate(c, h.catalog.CreateCourse)
}

// UpdateCourse godoc
// @Summary Update course
// @Tags Catalog
// @Router /courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	serveUpdate(c, h.catalog.UpdateCourse)
}

// DeleteCourse godoc
// @Summary Delete course
// @Tags Catalog
// @Router /courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	serveDelete(c, h.catalog.DeleteCourse)
}
