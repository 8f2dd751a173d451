package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

type facultyService interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.FacultyMember, *models.Pagination, query.Freshness, error)
	Create(ctx context.Context, req dto.FacultyRequest) (*models.FacultyMember, error)
	Update(ctx context.Context, id string, req dto.FacultyRequest) (*models.FacultyMember, error)
	Delete(ctx context.Context, id string) error
}

// FacultyHandler exposes faculty endpoints.
type FacultyHandler struct {
	faculty facultyService
}

// NewFacultyHandler constructs FacultyHandler.
func NewFacultyHandler(faculty facultyService) *FacultyHandler {
	return &FacultyHandler{faculty: faculty}
}

// List godoc
// @Summary List faculty
// @Tags Faculty
// @Produce json
// @Param search query string false "Search by name or e-mail"
// @Param role query string false "faculty or supervisor"
// @Param schoolId query string false "Filter by school"
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	filter := models.FacultyFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Role:     models.FacultyRole(strings.ToLower(c.Query("role"))),
		SchoolID: c.Query("schoolId"),
		Page:     page,
		PageSize: size,
	}
	members, pagination, fresh, err := h.faculty.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondRead(c, members, pagination, fresh)
}

// Create godoc
// @Summary Create faculty member
// @Tags Faculty
// @Param payload body dto.FacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	serveCreate(c, h.faculty.Create)
}

// Update godoc
// @Summary Update faculty member
// @Tags Faculty
// @Router /faculty/{id} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	serveUpdate(c, h.faculty.Update)
}

// Delete godoc
// @Summary Delete faculty member
// @Tags Faculty
// @Router /faculty/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	serveDelete(c, h.faculty.Delete)
}
