package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/service"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

type bookService interface {
	List(ctx context.Context, filter models.GradeFilter) (*dto.BookTable, *models.Pagination, query.Freshness, error)
	Get(ctx context.Context, id string) (*dto.BookDetail, query.Freshness, error)
	UpdateStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Book, error)
	AssignExaminer(ctx context.Context, id string, req dto.AssignExaminerRequest) (*models.Book, error)
	RemoveExaminer(ctx context.Context, bookID, examinerID string) error
	SubmitExaminerMark(ctx context.Context, bookID, examinerID string, req dto.ExaminerMarkRequest) (*models.Book, error)
	ScheduleViva(ctx context.Context, bookID string, req dto.ScheduleVivaRequest) (*models.Book, error)
	RecordVivaResult(ctx context.Context, vivaID string, req dto.VivaResultRequest) (*models.Book, error)
	UploadSubmission(ctx context.Context, bookID string, file service.Upload) (*models.Book, error)
	UploadReport(ctx context.Context, bookID string, file service.Upload) error
}

// BookHandler exposes book grade management.
type BookHandler struct {
	books bookService
}

// NewBookHandler constructs BookHandler.
func NewBookHandler(books bookService) *BookHandler {
	return &BookHandler{books: books}
}

// List godoc
// @Summary List books with computed marks
// @Tags Books
// @Produce json
// @Param tab query string false "Current status name or all"
// @Param search query string false "Search by title or student"
// @Success 200 {object} response.Envelope
// @Router /books [get]
func (h *BookHandler) List(c *gin.Context) {
	out, pagination, fresh, err := h.books.List(c.Request.Context(), gradeFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondRead(c, out, pagination, fresh)
}

// Get godoc
// @Summary Get book detail with marks and results stage
// @Tags Books
// @Param id path string true "Book ID"
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	out, fresh, err := h.books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondRead(c, out, nil, fresh)
}

// UpdateStatus godoc
// @Summary Append a status record to a book
// @Tags Books
// @Param payload body dto.StatusUpdateRequest true "Status payload"
// @Router /books/{id}/status [put]
func (h *BookHandler) UpdateStatus(c *gin.Context) {
	serveUpdate(c, h.books.UpdateStatus)
}

// AssignExaminer godoc
// @Summary Assign an internal or external examiner
// @Tags Books
// @Param payload body dto.AssignExaminerRequest true "Examiner payload"
// @Router /books/{id}/examiners [post]
func (h *BookHandler) AssignExaminer(c *gin.Context) {
	serveUpdate(c, h.books.AssignExaminer)
}

// RemoveExaminer godoc
// @Summary Remove an examiner
// @Tags Books
// @Router /books/{id}/examiners/{examinerId} [delete]
func (h *BookHandler) RemoveExaminer(c *gin.Context) {
	if err := h.books.RemoveExaminer(c.Request.Context(), c.Param("id"), c.Param("examinerId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubmitExaminerMark godoc
// @Summary Submit an examiner's text mark
// @Tags Books
// @Param payload body dto.ExaminerMarkRequest true "Mark payload"
// @Router /books/{id}/examiners/{examinerId}/mark [put]
func (h *BookHandler) SubmitExaminerMark(c *gin.Context) {
	var req dto.ExaminerMarkRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.books.SubmitExaminerMark(c.Request.Context(), c.Param("id"), c.Param("examinerId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// ScheduleViva godoc
// @Summary Schedule a viva
// @Tags Books
// @Param payload body dto.ScheduleVivaRequest true "Viva payload"
// @Router /books/{id}/vivas [post]
func (h *BookHandler) ScheduleViva(c *gin.Context) {
	serveUpdate(c, h.books.ScheduleViva)
}

// RecordVivaResult godoc
// @Summary Record a viva verdict and marks
// @Tags Books
// @Param id path string true "Viva ID"
// @Param payload body dto.VivaResultRequest true "Result payload"
// @Router /vivas/{id}/result [put]
func (h *BookHandler) RecordVivaResult(c *gin.Context) {
	serveUpdate(c, h.books.RecordVivaResult)
}

// UploadSubmission godoc
// @Summary Upload a book submission
// @Tags Books
// @Accept multipart/form-data
// @Param file formData file true "PDF or Word document"
// @Param notes formData string false "Notes"
// @Router /books/{id}/submission [post]
func (h *BookHandler) UploadSubmission(c *gin.Context) {
	upload, closeFn, ok := readUpload(c)
	if !ok {
		return
	}
	defer closeFn()
	out, err := h.books.UploadSubmission(c.Request.Context(), c.Param("id"), upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// UploadReport godoc
// @Summary Upload an examiner report
// @Tags Books
// @Accept multipart/form-data
// @Param file formData file true "PDF or Word document"
// @Router /books/{id}/report [post]
func (h *BookHandler) UploadReport(c *gin.Context) {
	upload, closeFn, ok := readUpload(c)
	if !ok {
		return
	}
	defer closeFn()
	if err := h.books.UploadReport(c.Request.Context(), c.Param("id"), upload); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func readUpload(c *gin.Context) (service.Upload, func(), bool) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "please select a file to upload"))
		return service.Upload{}, nil, false
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "uploaded file could not be read"))
		return service.Upload{}, nil, false
	}
	upload := service.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
		Notes:    c.PostForm("notes"),
	}
	return upload, func() { _ = file.Close() }, true
}
