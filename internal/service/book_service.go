package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/grading"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
	"github.com/noah-isme/research-admin-gateway/internal/table"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/upstream"
)

type bookUpstream interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	UpdateBookStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Book, error)
	AssignExaminer(ctx context.Context, id string, req dto.AssignExaminerRequest) (*models.Book, error)
	RemoveExaminer(ctx context.Context, bookID, examinerID string) error
	SubmitExaminerMark(ctx context.Context, bookID, examinerID string, req dto.ExaminerMarkRequest) (*models.Book, error)
	ScheduleViva(ctx context.Context, bookID string, req dto.ScheduleVivaRequest) (*models.Book, error)
	RecordVivaResult(ctx context.Context, vivaID string, req dto.VivaResultRequest) (*models.Book, error)
	UploadBookSubmission(ctx context.Context, bookID string, file upstream.FileUpload, notes string) (*models.Book, error)
	UploadBookReport(ctx context.Context, bookID string, file upstream.FileUpload) error
	MaxUploadBytes() int64
}

var bookColumns = []table.Column[dto.BookRow]{
	{Key: "title", Header: "Title", Value: func(r dto.BookRow) string { return r.Title }, Searchable: true, Sortable: true},
	{Key: "studentName", Header: "Student", Value: func(r dto.BookRow) string { return r.StudentName }, Searchable: true, Sortable: true},
	{Key: "registrationNumber", Header: "Registration No.", Value: func(r dto.BookRow) string { return r.Registration }, Searchable: true, Sortable: true},
	{Key: "status", Header: "Status", Value: func(r dto.BookRow) string { return r.Status }, Sortable: true},
	{Key: "finalMark", Header: "Final mark", Value: func(r dto.BookRow) string { return markCell(r.Marks.FinalMark) },
		Less: func(a, b dto.BookRow) bool { return a.Marks.FinalMark < b.Marks.FinalMark }, Sortable: true},
}

// allowedDocumentExt lists the file types the backend accepts for books.
var allowedDocumentExt = map[string]struct{}{".pdf": {}, ".doc": {}, ".docx": {}}

// Upload is a file received from the admin UI for forwarding.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
	Notes    string
}

// BookService serves grade management for books.
type BookService struct {
	api       bookUpstream
	queries   *query.Client
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookService constructs the book service.
func NewBookService(api bookUpstream, queries *query.Client, validate *validator.Validate, logger *zap.Logger) *BookService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookService{api: api, queries: queries, validator: validate, logger: logger}
}

// List returns the books table with computed marks on every row.
func (s *BookService) List(ctx context.Context, filter models.GradeFilter) (*dto.BookTable, *models.Pagination, query.Freshness, error) {
	books, fresh, err := query.Load(ctx, s.queries, resourceBooks, "", s.api.ListBooks)
	if err != nil {
		return nil, nil, fresh, err
	}
	rows := make([]dto.BookRow, 0, len(books))
	for _, b := range books {
		rows = append(rows, bookRow(b))
	}
	tabs := tabCounts(rows, func(r dto.BookRow) string { return statusLabel(r.Status) })

	tab := strings.TrimSpace(filter.Tab)
	if tab != "" && !strings.EqualFold(tab, tabAll) {
		rows = table.Where(rows, func(r dto.BookRow) bool { return sameStatus(statusLabel(r.Status), tab) })
	}
	page, pagination := table.Apply(rows, bookColumns, table.Query{
		Search: filter.Search, Page: filter.Page, PageSize: filter.PageSize, SortBy: filter.SortBy, SortOrder: filter.SortOrder,
	})
	return &dto.BookTable{Rows: page, Tabs: tabs, Total: pagination.TotalCount}, &pagination, fresh, nil
}

func bookRow(b models.Book) dto.BookRow {
	row := dto.BookRow{
		ID:       b.ID,
		Title:    b.Title,
		SchoolID: b.SchoolID(),
		Status:   models.CurrentStatusName(b.Statuses),
		Marks:    grading.ComputeBookMarks(b),
	}
	if b.Student != nil {
		row.StudentName = b.Student.FullName()
		row.Registration = b.Student.RegistrationNumber
	}
	for _, ex := range b.Examiners {
		if ex.IsCurrent {
			row.Examiners++
		}
	}
	if v := b.CurrentViva(); v != nil {
		date := v.ScheduledDate
		row.VivaDate = &date
		row.VivaVerdict = v.Verdict
	}
	return row
}

// Get returns one book with marks and results stage.
func (s *BookService) Get(ctx context.Context, id string) (*dto.BookDetail, query.Freshness, error) {
	if err := requireID(id, "book"); err != nil {
		return nil, query.Freshness{}, err
	}
	book, fresh, err := query.Load(ctx, s.queries, resourceBook, id, func(ctx context.Context) (*models.Book, error) {
		return s.api.GetBook(ctx, id)
	})
	if err != nil {
		return nil, fresh, err
	}
	detail := &dto.BookDetail{
		Book:     *book,
		Marks:    grading.ComputeBookMarks(*book),
		Eligible: grading.Eligible(*book),
	}
	if detail.Eligible {
		detail.Stage = string(grading.ClassifyResultStage(*book))
	}
	detail.CurrentStatus, detail.HistoryWarnings = currentStatus(s.logger, "book", id, book.Statuses)
	return detail, fresh, nil
}

func (s *BookService) write(ctx context.Context, fn func(context.Context) (*models.Book, error)) (*models.Book, error) {
	var out *models.Book
	err := mutate(ctx, s.queries, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	}, resourceBooks, resourceBook, resourceStudent)
	return out, err
}

// UpdateStatus appends a status record to the book.
func (s *BookService) UpdateStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Book, error) {
	if err := requireID(id, "book"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid status update"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.api.UpdateBookStatus(ctx, id, req)
	})
}

// AssignExaminer adds an internal or external examiner.
func (s *BookService) AssignExaminer(ctx context.Context, id string, req dto.AssignExaminerRequest) (*models.Book, error) {
	if err := requireID(id, "book"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "examiner type must be Internal or External"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.api.AssignExaminer(ctx, id, req)
	})
}

// RemoveExaminer removes an examiner.
func (s *BookService) RemoveExaminer(ctx context.Context, bookID, examinerID string) error {
	if err := requireID(bookID, "book"); err != nil {
		return err
	}
	if err := requireID(examinerID, "examiner"); err != nil {
		return err
	}
	_, err := s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return nil, s.api.RemoveExaminer(ctx, bookID, examinerID)
	})
	return err
}

// SubmitExaminerMark records a text examiner's grade between 0 and 100.
func (s *BookService) SubmitExaminerMark(ctx context.Context, bookID, examinerID string, req dto.ExaminerMarkRequest) (*models.Book, error) {
	if err := requireID(bookID, "book"); err != nil {
		return nil, err
	}
	if err := requireID(examinerID, "examiner"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "grade must be between 0 and 100"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.api.SubmitExaminerMark(ctx, bookID, examinerID, req)
	})
}

// ScheduleViva creates a new viva attempt.
func (s *BookService) ScheduleViva(ctx context.Context, bookID string, req dto.ScheduleVivaRequest) (*models.Book, error) {
	if err := requireID(bookID, "book"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid viva schedule"); err != nil {
		return nil, err
	}
	return s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.api.ScheduleViva(ctx, bookID, req)
	})
}

// RecordVivaResult stores a viva outcome with at most one mark per
// examiner type.
func (s *BookService) RecordVivaResult(ctx context.Context, vivaID string, req dto.VivaResultRequest) (*models.Book, error) {
	if err := requireID(vivaID, "viva"); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req, "invalid viva result"); err != nil {
		return nil, err
	}
	seen := map[models.ExaminerType]bool{}
	for _, m := range req.Marks {
		if seen[m.Type] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("more than one %s viva mark", strings.ToLower(string(m.Type))))
		}
		seen[m.Type] = true
	}
	return s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.api.RecordVivaResult(ctx, vivaID, req)
	})
}

// UploadSubmission forwards a dissertation file to the backend.
func (s *BookService) UploadSubmission(ctx context.Context, bookID string, file Upload) (*models.Book, error) {
	if err := requireID(bookID, "book"); err != nil {
		return nil, err
	}
	if err := s.checkUpload(file); err != nil {
		return nil, err
	}
	book, err := s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return s.api.UploadBookSubmission(ctx, bookID, upstream.FileUpload{Filename: file.Filename, Content: file.Content}, file.Notes)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("book submission uploaded", zap.String("book_id", bookID), zap.Int64("size", file.Size))
	return book, nil
}

// UploadReport forwards an examiner's report file.
func (s *BookService) UploadReport(ctx context.Context, bookID string, file Upload) error {
	if err := requireID(bookID, "book"); err != nil {
		return err
	}
	if err := s.checkUpload(file); err != nil {
		return err
	}
	_, err := s.write(ctx, func(ctx context.Context) (*models.Book, error) {
		return nil, s.api.UploadBookReport(ctx, bookID, upstream.FileUpload{Filename: file.Filename, Content: file.Content})
	})
	return err
}

func (s *BookService) checkUpload(file Upload) error {
	if file.Content == nil || strings.TrimSpace(file.Filename) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "a file is required")
	}
	if _, ok := allowedDocumentExt[strings.ToLower(filepath.Ext(file.Filename))]; !ok {
		return appErrors.Clone(appErrors.ErrValidation, "only PDF and Word documents can be uploaded")
	}
	if limit := s.api.MaxUploadBytes(); limit > 0 && file.Size > limit {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds the %d MB upload limit", limit>>20))
	}
	return nil
}
