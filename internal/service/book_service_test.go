package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/table"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/upstream"
)

type mockBookAPI struct {
	callLog
	books      []models.Book
	uploaded   []byte
	uploadName string
	results    map[string]dto.BookResultsUpdate
	failIDs    map[string]error
	maxUpload  int64
}

func (m *mockBookAPI) ListBooks(ctx context.Context) ([]models.Book, error) {
	m.hit("list")
	return m.books, nil
}

func (m *mockBookAPI) GetBook(ctx context.Context, id string) (*models.Book, error) {
	m.hit("get")
	for i := range m.books {
		if m.books[i].ID == id {
			b := m.books[i]
			return &b, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "Book not found")
}

func (m *mockBookAPI) UpdateBookStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Book, error) {
	m.hit("status")
	return &models.Book{ID: id}, nil
}

func (m *mockBookAPI) AssignExaminer(ctx context.Context, id string, req dto.AssignExaminerRequest) (*models.Book, error) {
	m.hit("assign")
	return &models.Book{ID: id}, nil
}

func (m *mockBookAPI) RemoveExaminer(ctx context.Context, bookID, examinerID string) error {
	m.hit("remove")
	return nil
}

func (m *mockBookAPI) SubmitExaminerMark(ctx context.Context, bookID, examinerID string, req dto.ExaminerMarkRequest) (*models.Book, error) {
	m.hit("mark")
	return &models.Book{ID: bookID}, nil
}

func (m *mockBookAPI) ScheduleViva(ctx context.Context, bookID string, req dto.ScheduleVivaRequest) (*models.Book, error) {
	m.hit("viva")
	return &models.Book{ID: bookID}, nil
}

func (m *mockBookAPI) RecordVivaResult(ctx context.Context, vivaID string, req dto.VivaResultRequest) (*models.Book, error) {
	m.hit("vivaResult")
	return &models.Book{ID: "b1"}, nil
}

func (m *mockBookAPI) UploadBookSubmission(ctx context.Context, bookID string, file upstream.FileUpload, notes string) (*models.Book, error) {
	m.hit("upload")
	m.uploadName = file.Filename
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, err
	}
	m.uploaded = data
	return &models.Book{ID: bookID}, nil
}

func (m *mockBookAPI) UploadBookReport(ctx context.Context, bookID string, file upstream.FileUpload) error {
	m.hit("report")
	return nil
}

func (m *mockBookAPI) MaxUploadBytes() int64 {
	if m.maxUpload == 0 {
		return 50 << 20
	}
	return m.maxUpload
}

func (m *mockBookAPI) UpdateBookResults(ctx context.Context, id string, req dto.BookResultsUpdate) (*models.Book, error) {
	m.hit("results")
	if err := m.failIDs[id]; err != nil {
		return nil, err
	}
	m.mu.Lock()
	if m.results == nil {
		m.results = map[string]dto.BookResultsUpdate{}
	}
	m.results[id] = req
	m.mu.Unlock()
	return &models.Book{ID: id}, nil
}

// gradedBook is a book with all four marks and a viva verdict.
func gradedBook(id, schoolID, statusName string) models.Book {
	return models.Book{
		ID:       id,
		Title:    "Dissertation " + id,
		Student:  &models.Student{FirstName: "Student", LastName: strings.ToUpper(id), RegistrationNumber: "REG-" + id, SchoolID: schoolID},
		Statuses: []models.StatusRecord{status(statusName, true)},
		Examiners: []models.ExaminerAssignment{
			{ExaminerID: "ei", Type: models.ExaminerInternal, Grade: grade(70), IsCurrent: true},
			{ExaminerID: "ee", Type: models.ExaminerExternal, Grade: grade(80), IsCurrent: true},
		},
		Vivas: []models.Viva{{ID: "v-" + id, ScheduledDate: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), Verdict: "pass", IsCurrent: true, Marks: []models.VivaMark{
			{ExaminerID: "ei", Type: models.ExaminerInternal, Mark: 60},
			{ExaminerID: "ee", Type: models.ExaminerExternal, Mark: 90},
		}}},
	}
}

func TestBookServiceListComputesMarks(t *testing.T) {
	ungraded := models.Book{ID: "b3", Title: "Early draft", Statuses: []models.StatusRecord{status("Submitted", true)}}
	api := &mockBookAPI{books: []models.Book{gradedBook("b1", "sci", "Graded"), gradedBook("b2", "eng", "graded"), ungraded}}
	svc := NewBookService(api, newTestQueries(), nil, nil)

	out, _, _, err := svc.List(scoped("u1"), models.GradeFilter{Tab: "graded", SortBy: "finalMark", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"all": 3, "graded": 2, "submitted": 1}, out.Tabs)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, 76.0, out.Rows[0].Marks.FinalMark)
	assert.Equal(t, 2, out.Rows[0].Examiners)
	assert.Equal(t, "pass", out.Rows[0].VivaVerdict)

	out, _, _, err = svc.List(scoped("u1"), models.GradeFilter{Search: "draft"})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Len(t, out.Rows[0].Marks.Missing, 4)
}

func TestFinalMarkSortsNumerically(t *testing.T) {
	rows := []dto.BookRow{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}
	rows[0].Marks.FinalMark = 9.5
	rows[1].Marks.FinalMark = 100
	rows[2].Marks.FinalMark = 76.25

	desc := table.Sort(rows, bookColumns, "finalMark", "desc")
	assert.Equal(t, []string{"b2", "b3", "b1"}, []string{desc[0].ID, desc[1].ID, desc[2].ID})

	results := []dto.ResultRow{{BookRow: rows[0]}, {BookRow: rows[1]}}
	asc := table.Sort(results, resultColumns, "finalMark", "asc")
	assert.Equal(t, "b1", asc[0].ID)
	data := table.Dataset("Results", asc, resultColumns)
	assert.Contains(t, data.Headers, "Final mark")
	assert.Equal(t, "9.50", data.Rows[0][7])
}

func TestBookServiceGetClassifiesStage(t *testing.T) {
	api := &mockBookAPI{books: []models.Book{gradedBook("b1", "sci", "Results Approved"), {ID: "b2"}}}
	svc := NewBookService(api, newTestQueries(), nil, nil)

	detail, _, err := svc.Get(scoped("u1"), "b1")
	require.NoError(t, err)
	assert.True(t, detail.Eligible)
	assert.Equal(t, "approved_at_centre", detail.Stage)
	assert.Equal(t, 76.0, detail.Marks.FinalMark)

	detail, _, err = svc.Get(scoped("u1"), "b2")
	require.NoError(t, err)
	assert.False(t, detail.Eligible)
	assert.Empty(t, detail.Stage)
}

func TestBookServiceVivaResultValidation(t *testing.T) {
	api := &mockBookAPI{}
	svc := NewBookService(api, newTestQueries(), nil, nil)
	ctx := context.Background()

	_, err := svc.RecordVivaResult(ctx, "v1", dto.VivaResultRequest{Status: "completed"})
	assert.ErrorIs(t, err, appErrors.ErrValidation, "completed vivas need a verdict")

	_, err = svc.RecordVivaResult(ctx, "v1", dto.VivaResultRequest{Status: "completed", Verdict: "pass", Marks: []dto.VivaMarkInput{
		{ExaminerID: "a", Type: models.ExaminerInternal, Mark: grade(50)},
		{ExaminerID: "b", Type: models.ExaminerInternal, Mark: grade(60)},
	}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "more than one internal viva mark", appErrors.Message(err))

	_, err = svc.RecordVivaResult(ctx, "v1", dto.VivaResultRequest{Status: "completed", Verdict: "pass", Marks: []dto.VivaMarkInput{
		{ExaminerID: "a", Type: models.ExaminerInternal, Mark: grade(50)},
		{ExaminerID: "b", Type: models.ExaminerExternal, Mark: grade(60)},
	}})
	require.NoError(t, err)

	_, err = svc.AssignExaminer(ctx, "b1", dto.AssignExaminerRequest{ExaminerID: "e", Type: "Guest"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 1, api.count("vivaResult"))
	assert.Equal(t, 0, api.count("assign"))
}

func TestBookServiceUploadSubmission(t *testing.T) {
	api := &mockBookAPI{maxUpload: 1 << 20}
	svc := NewBookService(api, newTestQueries(), nil, nil)
	ctx := context.Background()

	_, err := svc.UploadSubmission(ctx, "b1", Upload{Filename: "thesis.exe", Size: 10, Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.UploadSubmission(ctx, "b1", Upload{Filename: "thesis.pdf", Size: 2 << 20, Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, "file exceeds the 1 MB upload limit", appErrors.Message(err))

	_, err = svc.UploadSubmission(ctx, "b1", Upload{Filename: "thesis.PDF", Size: 7, Content: strings.NewReader("%PDF-1.")})
	require.NoError(t, err)
	assert.Equal(t, "thesis.PDF", api.uploadName)
	assert.Equal(t, "%PDF-1.", string(api.uploaded))

	require.NoError(t, svc.UploadReport(ctx, "b1", Upload{Filename: "report.docx", Size: 3, Content: strings.NewReader("doc")}))
	assert.Equal(t, 1, api.count("upload"))
	assert.Equal(t, 1, api.count("report"))
}
