package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/service"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

type resultsService interface {
	Board(ctx context.Context, filter models.GradeFilter) (*dto.ResultsBoard, *models.Pagination, query.Freshness, error)
	Action(ctx context.Context, actorID, rawAction string, req dto.ResultsActionRequest) (*dto.BatchResult, error)
	Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error)
	Runs(ctx context.Context, limit int) ([]models.BatchRun, error)
	RunItems(ctx context.Context, runID string) ([]models.BatchRunItem, error)
}

type downloadResolver interface {
	Resolve(token string) (*service.ExportDownload, error)
}

// ResultsHandler exposes the final results submission workflow.
type ResultsHandler struct {
	results   resultsService
	downloads downloadResolver
}

// NewResultsHandler constructs ResultsHandler.
func NewResultsHandler(results resultsService, downloads downloadResolver) *ResultsHandler {
	return &ResultsHandler{results: results, downloads: downloads}
}

// Board godoc
// @Summary Final results board
// @Tags Results
// @Produce json
// @Param tab query string false "pending_approval, approved_at_centre, sent_to_school or senate_approved"
// @Param search query string false "Search by title, student or registration number"
// @Success 200 {object} response.Envelope
// @Router /results [get]
func (h *ResultsHandler) Board(c *gin.Context) {
	board, pagination, fresh, err := h.results.Board(c.Request.Context(), gradeFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondRead(c, board, pagination, fresh)
}

// Action godoc
// @Summary Apply a bulk results action
// @Description Each selected book is updated independently. A partial failure answers 207 with every item's outcome; when every item fails the status of the item errors is used instead.
// @Tags Results
// @Accept json
// @Produce json
// @Param action path string true "approve, send_to_school or senate_approve"
// @Param payload body dto.ResultsActionRequest true "Selected books"
// @Success 200 {object} response.Envelope
// @Success 207 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /results/actions/{action} [post]
func (h *ResultsHandler) Action(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ResultsActionRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.results.Action(c.Request.Context(), actorID, c.Param("action"), req)
	if result == nil {
		response.Error(c, err)
		return
	}
	response.Partial(c, result, err)
}

// Export godoc
// @Summary Export one stage of the results board
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Stage and format"
// @Success 200 {object} response.Envelope
// @Router /results/export [post]
func (h *ResultsHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.results.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// Download godoc
// @Summary Download an exported results file
// @Tags Results
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Router /results/download/{token} [get]
func (h *ResultsHandler) Download(c *gin.Context) {
	file, err := h.downloads.Resolve(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.File.Close()
	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.File, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, file.Filename),
		"Cache-Control":       "private, no-store",
	})
}

// Runs godoc
// @Summary Recent bulk actions
// @Tags Results
// @Param limit query int false "Maximum runs"
// @Router /results/runs [get]
func (h *ResultsHandler) Runs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	runs, err := h.results.Runs(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, runs, nil)
}

// RunItems godoc
// @Summary Per-book outcomes of a bulk action
// @Tags Results
// @Param id path string true "Run ID"
// @Router /results/runs/{id}/items [get]
func (h *ResultsHandler) RunItems(c *gin.Context) {
	items, err := h.results.RunItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
