package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/middleware"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/service"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/response"
)

type resultsServiceMock struct {
	board       *dto.ResultsBoard
	fresh       query.Freshness
	lastFilter  models.GradeFilter
	actionResp  *dto.BatchResult
	actionErr   error
	actionCalls int
	lastAction  string
	lastActor   string
	lastIDs     []string
	runsErr     error
}

func (m *resultsServiceMock) Board(ctx context.Context, filter models.GradeFilter) (*dto.ResultsBoard, *models.Pagination, query.Freshness, error) {
	m.lastFilter = filter
	return m.board, &models.Pagination{Page: 1, PageSize: 10, TotalCount: len(m.board.Rows)}, m.fresh, nil
}

func (m *resultsServiceMock) Action(ctx context.Context, actorID, rawAction string, req dto.ResultsActionRequest) (*dto.BatchResult, error) {
	m.actionCalls++
	m.lastActor = actorID
	m.lastAction = rawAction
	m.lastIDs = req.BookIDs
	return m.actionResp, m.actionErr
}

func (m *resultsServiceMock) Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	return &dto.ExportResponse{Filename: "results.csv", URL: "/api/v1/results/download/tok", Rows: 2}, nil
}

func (m *resultsServiceMock) Runs(ctx context.Context, limit int) ([]models.BatchRun, error) {
	return nil, m.runsErr
}

func (m *resultsServiceMock) RunItems(ctx context.Context, runID string) ([]models.BatchRunItem, error) {
	return nil, m.runsErr
}

type readSeekNopCloser struct{ *bytes.Reader }

func (readSeekNopCloser) Close() error { return nil }

type downloadResolverStub struct {
	body string
	err  error
}

func (s downloadResolverStub) Resolve(token string) (*service.ExportDownload, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.ExportDownload{
		File:        readSeekNopCloser{bytes.NewReader([]byte(s.body))},
		Size:        int64(len(s.body)),
		Filename:    "results_pending_approval.csv",
		ContentType: "text/csv",
	}, nil
}

func adminContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestResultsBoardReportsFreshness(t *testing.T) {
	fetched := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	svc := &resultsServiceMock{
		board: &dto.ResultsBoard{Stage: "approved_at_centre", Tabs: map[string]int{"approved_at_centre": 1}},
		fresh: query.Freshness{Stale: true, Message: "no response received from server", FetchedAt: fetched},
	}
	h := NewResultsHandler(svc, downloadResolverStub{})

	c, w := adminContext(http.MethodGet, "/results?tab=approved_at_centre&search=+smith+", nil)
	h.Board(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved_at_centre", svc.lastFilter.Tab)
	assert.Equal(t, "smith", svc.lastFilter.Search)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, true, env.Meta["stale"])
	assert.Equal(t, "no response received from server", env.Meta["stale_reason"])
	assert.Equal(t, fetched.Format(time.RFC3339), env.Meta["fetched_at"])
}

func TestResultsActionPartialFailureAnswers207(t *testing.T) {
	svc := &resultsServiceMock{
		actionResp: &dto.BatchResult{
			Action: "approve", Total: 3, Succeeded: 2, Failed: 1,
			Message: "1 of 3 updates failed: Book is locked",
			Items: []dto.BatchItemResult{
				{ID: "b1", OK: true},
				{ID: "b2", OK: false, Message: "Book is locked"},
				{ID: "b3", OK: true},
			},
		},
		actionErr: appErrors.Clone(appErrors.ErrBatchPartial, "1 of 3 updates failed: Book is locked"),
	}
	h := NewResultsHandler(svc, downloadResolverStub{})

	c, w := adminContext(http.MethodPost, "/results/actions/approve", []byte(`{"bookIds":["b1","b2","b3"]}`))
	c.Params = gin.Params{{Key: "action", Value: "approve"}}
	h.Action(c)

	require.Equal(t, http.StatusMultiStatus, w.Code)
	assert.Equal(t, "admin-1", svc.lastActor)
	assert.Equal(t, "approve", svc.lastAction)
	assert.Equal(t, []string{"b1", "b2", "b3"}, svc.lastIDs)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "1 of 3 updates failed: Book is locked", env.Error.Message)
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, data["succeeded"])
}

func TestResultsActionWhereEveryBookFailsIsNotMultiStatus(t *testing.T) {
	svc := &resultsServiceMock{
		actionResp: &dto.BatchResult{
			Action: "approve", Total: 2, Failed: 2,
			Message: "2 of 2 updates failed",
			Items: []dto.BatchItemResult{
				{ID: "b1", OK: false, Message: "Book is locked"},
				{ID: "b2", OK: false, Message: "Book is locked"},
			},
		},
		actionErr: &appErrors.Error{Code: appErrors.ErrBatchFailed.Code, Status: http.StatusConflict, Message: "2 of 2 updates failed"},
	}
	h := NewResultsHandler(svc, downloadResolverStub{})

	c, w := adminContext(http.MethodPost, "/results/actions/approve", []byte(`{"bookIds":["b1","b2"]}`))
	c.Params = gin.Params{{Key: "action", Value: "approve"}}
	h.Action(c)

	require.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BATCH_FAILURE", env.Error.Code)
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 0, data["succeeded"])
}

func TestResultsActionRejectedBeforeAnyUpdate(t *testing.T) {
	svc := &resultsServiceMock{actionErr: appErrors.Clone(appErrors.ErrInvalidTransition, "cannot approve a book that is sent to school")}
	h := NewResultsHandler(svc, downloadResolverStub{})

	c, w := adminContext(http.MethodPost, "/results/actions/approve", []byte(`{"bookIds":["b1"]}`))
	c.Params = gin.Params{{Key: "action", Value: "approve"}}
	h.Action(c)

	assert.Equal(t, appErrors.ErrInvalidTransition.Status, w.Code)
	env := decodeEnvelope(t, w)
	assert.Nil(t, env.Data)
	assert.Equal(t, "cannot approve a book that is sent to school", env.Error.Message)
}

func TestResultsActionRequiresUserAndValidBody(t *testing.T) {
	svc := &resultsServiceMock{}
	h := NewResultsHandler(svc, downloadResolverStub{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/results/actions/approve", bytes.NewBufferString(`{"bookIds":["b1"]}`))
	h.Action(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = adminContext(http.MethodPost, "/results/actions/approve", []byte(`{"bookIds":`))
	h.Action(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.actionCalls)
}

func TestResultsDownloadStreamsAttachment(t *testing.T) {
	body := "Registration No.,Final mark\nMSC/001,76.00\n"
	h := NewResultsHandler(&resultsServiceMock{}, downloadResolverStub{body: body})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/results/download/tok", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok"}}
	h.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="results_pending_approval.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, body, w.Body.String())
}

func TestResultsDownloadExpiredLink(t *testing.T) {
	h := NewResultsHandler(&resultsServiceMock{}, downloadResolverStub{err: appErrors.Clone(appErrors.ErrForbidden, "download link has expired")})

	c, w := adminContext(http.MethodGet, "/results/download/old", nil)
	c.Params = gin.Params{{Key: "token", Value: "old"}}
	h.Download(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "download link has expired", decodeEnvelope(t, w).Error.Message)
}

func TestResultsRunsWithoutLedger(t *testing.T) {
	h := NewResultsHandler(&resultsServiceMock{runsErr: appErrors.Clone(appErrors.ErrNotFound, "batch ledger is disabled")}, downloadResolverStub{})

	c, w := adminContext(http.MethodGet, "/results/runs?limit=5", nil)
	h.Runs(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
