package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/grading"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/table"
	"github.com/noah-isme/research-admin-gateway/pkg/batch"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/export"
)

type resultsUpstream interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	ListSchools(ctx context.Context) ([]models.School, error)
	UpdateBookResults(ctx context.Context, id string, req dto.BookResultsUpdate) (*models.Book, error)
}

type batchLedger interface {
	Create(ctx context.Context, run *models.BatchRun, items []models.BatchRunItem) error
	ListRecent(ctx context.Context, limit int) ([]models.BatchRun, error)
	Items(ctx context.Context, runID string) ([]models.BatchRunItem, error)
}

type resultsNotifier interface {
	QueueSchoolResults(ctx context.Context, school models.School, data export.Dataset) error
}

type resultsExporter interface {
	Generate(ctx context.Context, name string, data export.Dataset, format export.Format) (*ExportResult, error)
}

type batchRecorder interface {
	RecordBatch(action string, succeeded, failed int)
}

func markCell(v float64) string { return fmt.Sprintf("%.2f", v) }

var resultColumns = []table.Column[dto.ResultRow]{
	{Key: "registrationNumber", Header: "Registration No.", Value: func(r dto.ResultRow) string { return r.Registration }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "studentName", Header: "Student", Value: func(r dto.ResultRow) string { return r.StudentName }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "title", Header: "Title", Value: func(r dto.ResultRow) string { return r.Title }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "internalText", Header: "Internal text", Value: func(r dto.ResultRow) string { return markCell(r.Marks.InternalText) }, Exportable: true},
	{Key: "externalText", Header: "External text", Value: func(r dto.ResultRow) string { return markCell(r.Marks.ExternalText) }, Exportable: true},
	{Key: "internalViva", Header: "Internal viva", Value: func(r dto.ResultRow) string { return markCell(r.Marks.InternalViva) }, Exportable: true},
	{Key: "externalViva", Header: "External viva", Value: func(r dto.ResultRow) string { return markCell(r.Marks.ExternalViva) }, Exportable: true},
	{Key: "finalMark", Header: "Final mark", Value: func(r dto.ResultRow) string { return markCell(r.Marks.FinalMark) },
		Less: func(a, b dto.ResultRow) bool { return a.Marks.FinalMark < b.Marks.FinalMark }, Sortable: true, Exportable: true},
	{Key: "stage", Header: "Stage", Value: func(r dto.ResultRow) string { return grading.ResultStage(r.Stage).Label() }, Exportable: true},
}

// ResultsConfig tunes bulk actions.
type ResultsConfig struct {
	Concurrency int
}

// ResultsOption configures optional collaborators of the results service.
type ResultsOption func(*ResultsService)

// WithLedger stores every bulk action in the batch ledger.
func WithLedger(l batchLedger) ResultsOption {
	return func(s *ResultsService) { s.ledger = l }
}

// WithNotifier e-mails schools after results are sent to them.
func WithNotifier(n resultsNotifier) ResultsOption {
	return func(s *ResultsService) { s.notifier = n }
}

// WithBatchRecorder reports bulk action outcomes to metrics.
func WithBatchRecorder(r batchRecorder) ResultsOption {
	return func(s *ResultsService) { s.recorder = r }
}

// ResultsService runs the final results pipeline.
type ResultsService struct {
	api       resultsUpstream
	queries   *query.Client
	exporter  resultsExporter
	ledger    batchLedger
	notifier  resultsNotifier
	recorder  batchRecorder
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ResultsConfig
	now       func() time.Time
}

// NewResultsService constructs the results service.
func NewResultsService(api resultsUpstream, queries *query.Client, exporter resultsExporter, cfg ResultsConfig, validate *validator.Validate, logger *zap.Logger, opts ...ResultsOption) *ResultsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	svc := &ResultsService{
		api:       api,
		queries:   queries,
		exporter:  exporter,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Board returns the eligible books of one stage with counts for every stage.
func (s *ResultsService) Board(ctx context.Context, filter models.GradeFilter) (*dto.ResultsBoard, *models.Pagination, query.Freshness, error) {
	stage := grading.StagePendingApproval
	if strings.TrimSpace(filter.Tab) != "" {
		parsed, err := grading.ParseStage(filter.Tab)
		if err != nil {
			return nil, nil, query.Freshness{}, err
		}
		stage = parsed
	}

	rows, fresh, err := s.rows(ctx)
	if err != nil {
		return nil, nil, fresh, err
	}
	tabs := make(map[string]int, len(grading.Stages()))
	for _, st := range grading.Stages() {
		tabs[string(st)] = 0
	}
	for _, row := range rows {
		tabs[row.Stage]++
	}

	rows = table.Where(rows, func(r dto.ResultRow) bool { return r.Stage == string(stage) })
	page, pagination := table.Apply(rows, resultColumns, table.Query{
		Search: filter.Search, Page: filter.Page, PageSize: filter.PageSize, SortBy: filter.SortBy, SortOrder: filter.SortOrder,
	})
	return &dto.ResultsBoard{Stage: string(stage), Rows: page, Tabs: tabs}, &pagination, fresh, nil
}

func (s *ResultsService) rows(ctx context.Context) ([]dto.ResultRow, query.Freshness, error) {
	books, fresh, err := query.Load(ctx, s.queries, resourceBooks, "", s.api.ListBooks)
	if err != nil {
		return nil, fresh, err
	}
	rows := make([]dto.ResultRow, 0, len(books))
	for _, b := range books {
		if !grading.Eligible(b) {
			continue
		}
		rows = append(rows, dto.ResultRow{BookRow: bookRow(b), Stage: string(grading.ClassifyResultStage(b))})
	}
	return rows, fresh, nil
}

// Action applies a bulk results action to the selected books. The returned
// result always lists every id; the error is the single aggregated failure.
func (s *ResultsService) Action(ctx context.Context, actorID, rawAction string, req dto.ResultsActionRequest) (*dto.BatchResult, error) {
	action, err := grading.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "select at least one book"); err != nil {
		return nil, err
	}
	ids := uniqueIDs(req.BookIDs)

	books, _, err := query.Load(query.WithRefresh(ctx), s.queries, resourceBooks, "", s.api.ListBooks)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	rejected := make(map[string]string)
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if msg := checkTransition(byID, id, action); msg != "" {
			rejected[id] = msg
			continue
		}
		valid = append(valid, id)
	}

	started := s.now().UTC()
	update := resultsUpdate(action, started)
	runReport := batch.Run(ctx, valid, s.cfg.Concurrency, func(ctx context.Context, id string) error {
		_, err := s.api.UpdateBookResults(ctx, id, update)
		return err
	})
	report := mergeReport(ids, rejected, runReport)

	if report.Succeeded > 0 && s.queries != nil {
		s.queries.Invalidate(ctx, resourceBooks, resourceBook, resourceStudent)
	}
	if s.recorder != nil {
		s.recorder.RecordBatch(string(action), report.Succeeded, report.Failed)
	}

	result := &dto.BatchResult{
		Action:    string(action),
		Total:     report.Total,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Items:     make([]dto.BatchItemResult, 0, len(report.Items)),
	}
	for _, item := range report.Items {
		result.Items = append(result.Items, dto.BatchItemResult{ID: item.ID, OK: item.OK, Message: item.Message})
	}
	if s.ledger != nil {
		result.RunID = s.record(ctx, actorID, action, started, report)
	}
	if action == grading.ActionSendToSchool && report.Succeeded > 0 {
		result.Notified = s.notifySchools(ctx, byID, report.SucceededIDs())
	}

	aggErr := report.Err()
	result.Message = appErrors.Message(aggErr)
	s.logger.Info("results action finished",
		zap.String("action", string(action)),
		zap.String("actor_id", actorID),
		zap.Int("total", report.Total),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return result, aggErr
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// checkTransition returns why id cannot take action, or "" when it can.
func checkTransition(books map[string]models.Book, id string, action grading.Action) string {
	book, ok := books[id]
	if !ok {
		return fmt.Sprintf("book %s not found", id)
	}
	if !grading.Eligible(book) {
		return fmt.Sprintf("%q has no recorded viva verdict", book.Title)
	}
	if _, err := grading.Next(grading.ClassifyResultStage(book), action); err != nil {
		return appErrors.Message(err)
	}
	return ""
}

// mergeReport folds rejected ids and the upstream run into one report in input order.
func mergeReport(ids []string, rejected map[string]string, run batch.Report) batch.Report {
	sent := make(map[string]batch.Item, len(run.Items))
	for _, item := range run.Items {
		sent[item.ID] = item
	}
	report := batch.Report{Total: len(ids), Items: make([]batch.Item, 0, len(ids))}
	for _, id := range ids {
		item, ok := sent[id]
		if !ok {
			msg := rejected[id]
			item = batch.Item{ID: id, Message: msg, Err: appErrors.Clone(appErrors.ErrInvalidTransition, msg)}
		}
		if item.OK {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Items = append(report.Items, item)
	}
	return report
}

func resultsUpdate(action grading.Action, now time.Time) dto.BookResultsUpdate {
	update := dto.BookResultsUpdate{Status: string(grading.StatusFor(action))}
	switch action {
	case grading.ActionApprove:
		update.ResultsApprovedDate = &now
	case grading.ActionSendToSchool:
		update.ResultsSentDate = &now
	case grading.ActionSenateApprove:
		update.SenateApprovalDate = &now
	}
	return update
}

// record writes the run to the ledger. A ledger failure is logged and never
// fails the action, which has already been applied upstream.
func (s *ResultsService) record(ctx context.Context, actorID string, action grading.Action, started time.Time, report batch.Report) string {
	finished := s.now().UTC()
	run := &models.BatchRun{
		ID:         uuid.NewString(),
		Action:     string(action),
		ActorID:    actorID,
		Total:      report.Total,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		StartedAt:  started,
		FinishedAt: &finished,
	}
	items := make([]models.BatchRunItem, 0, len(report.Items))
	for _, item := range report.Items {
		row := models.BatchRunItem{EntityID: item.ID, OK: item.OK}
		if !item.OK {
			msg := item.Message
			row.ErrorMessage = &msg
		}
		items = append(items, row)
	}
	if err := s.ledger.Create(ctx, run, items); err != nil {
		s.logger.Error("failed to record batch run", zap.String("run_id", run.ID), zap.Error(err))
		return ""
	}
	return run.ID
}

// notifySchools queues one e-mail per school covering the books just sent to it.
func (s *ResultsService) notifySchools(ctx context.Context, books map[string]models.Book, sentIDs []string) []string {
	if s.notifier == nil {
		return nil
	}
	grouped := make(map[string][]dto.ResultRow)
	order := make([]string, 0)
	for _, id := range sentIDs {
		book := books[id]
		schoolID := book.SchoolID()
		if schoolID == "" {
			s.logger.Warn("sent book has no school", zap.String("book_id", id))
			continue
		}
		if _, ok := grouped[schoolID]; !ok {
			order = append(order, schoolID)
		}
		grouped[schoolID] = append(grouped[schoolID], dto.ResultRow{BookRow: bookRow(book), Stage: string(grading.StageSentToSchool)})
	}
	if len(order) == 0 {
		return nil
	}

	schools, _, err := query.Load(ctx, s.queries, resourceSchools, "", s.api.ListSchools)
	if err != nil {
		s.logger.Error("cannot load schools for results e-mail", zap.Error(err))
		return nil
	}
	byID := make(map[string]models.School, len(schools))
	for _, sc := range schools {
		byID[sc.ID] = sc
	}

	notified := make([]string, 0, len(order))
	for _, schoolID := range order {
		school, ok := byID[schoolID]
		if !ok || strings.TrimSpace(school.Email) == "" {
			s.logger.Warn("school has no e-mail address, results not sent", zap.String("school_id", schoolID))
			continue
		}
		data := table.Dataset("Final results: "+school.Name, grouped[schoolID], resultColumns)
		data.GeneratedAt = s.now()
		if err := s.notifier.QueueSchoolResults(ctx, school, data); err != nil {
			s.logger.Error("failed to queue results e-mail", zap.String("school_id", schoolID), zap.Error(err))
			continue
		}
		notified = append(notified, schoolID)
	}
	return notified
}

// Export renders every eligible book of a stage and returns a download link.
func (s *ResultsService) Export(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	if err := validate(s.validator, req, "choose a stage and a format"); err != nil {
		return nil, err
	}
	stage, err := grading.ParseStage(req.Stage)
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if s.exporter == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "exports are not configured")
	}

	rows, _, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	rows = table.Where(rows, func(r dto.ResultRow) bool { return r.Stage == string(stage) })
	rows = table.Filter(rows, resultColumns, req.Search)
	rows = table.Sort(rows, resultColumns, "registrationNumber", "asc")

	data := table.Dataset("Final results: "+strings.ToLower(stage.Label()), rows, resultColumns)
	data.GeneratedAt = s.now()
	out, err := s.exporter.Generate(ctx, "results "+string(stage), data, format)
	if err != nil {
		return nil, err
	}
	return &dto.ExportResponse{Filename: out.Filename, URL: out.URL, Rows: out.Rows, ExpiresAt: out.ExpiresAt}, nil
}

// Runs lists recent bulk actions from the ledger.
func (s *ResultsService) Runs(ctx context.Context, limit int) ([]models.BatchRun, error) {
	if s.ledger == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "batch ledger is disabled")
	}
	runs, err := s.ledger.ListRecent(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list batch runs")
	}
	return runs, nil
}

// RunItems returns the per-book outcomes of one bulk action.
func (s *ResultsService) RunItems(ctx context.Context, runID string) ([]models.BatchRunItem, error) {
	if err := requireID(runID, "run"); err != nil {
		return nil, err
	}
	if s.ledger == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "batch ledger is disabled")
	}
	items, err := s.ledger.Items(ctx, runID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch run")
	}
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "batch run not found")
	}
	return items, nil
}
