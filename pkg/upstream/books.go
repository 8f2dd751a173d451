package upstream

import (
	"context"

	"github.com/noah-isme/research-admin-gateway/internal/dto"
	"github.com/noah-isme/research-admin-gateway/internal/models"
)

func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var out []models.Book
	if err := c.getJSON(ctx, "books.list", "/management/books", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBook(ctx context.Context, id string) (*models.Book, error) {
	var out models.Book
	if err := c.getJSON(ctx, "books.get", path("/management/books/%s", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBookStatus(ctx context.Context, id string, req dto.StatusUpdateRequest) (*models.Book, error) {
	var out models.Book
	if err := c.putJSON(ctx, "books.status", path("/management/books/%s/status", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AssignExaminer(ctx context.Context, id string, req dto.AssignExaminerRequest) (*models.Book, error) {
	var out models.Book
	if err := c.postJSON(ctx, "books.examiners.add", path("/management/books/%s/examiners", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveExaminer(ctx context.Context, bookID, examinerID string) error {
	return c.deleteJSON(ctx, "books.examiners.remove", path("/management/books/%s/examiners/%s", bookID, examinerID))
}

// SubmitExaminerMark records an examiner's text grade for a book.
func (c *Client) SubmitExaminerMark(ctx context.Context, bookID, examinerID string, req dto.ExaminerMarkRequest) (*models.Book, error) {
	var out models.Book
	if err := c.putJSON(ctx, "faculty.examiner_marks", path("/faculty/examiner-marks/%s/%s", bookID, examinerID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ScheduleViva(ctx context.Context, bookID string, req dto.ScheduleVivaRequest) (*models.Book, error) {
	var out models.Book
	if err := c.postJSON(ctx, "books.vivas.create", path("/management/books/%s/vivas", bookID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecordVivaResult(ctx context.Context, vivaID string, req dto.VivaResultRequest) (*models.Book, error) {
	var out models.Book
	if err := c.putJSON(ctx, "vivas.update", path("/management/vivas/%s", vivaID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBookResults moves a book along the final results pipeline.
func (c *Client) UpdateBookResults(ctx context.Context, id string, req dto.BookResultsUpdate) (*models.Book, error) {
	var out models.Book
	if err := c.putJSON(ctx, "books.results", path("/management/books/%s/results", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadBookSubmission streams a dissertation file to the backend.
func (c *Client) UploadBookSubmission(ctx context.Context, bookID string, file FileUpload, notes string) (*models.Book, error) {
	if file.Field == "" {
		file.Field = "file"
	}
	fields := map[string]string{}
	if notes != "" {
		fields["notes"] = notes
	}
	var out models.Book
	if err := c.upload(ctx, "books.submission", path("/management/books/%s/submission", bookID), file, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadBookReport attaches a generated report document to a book.
func (c *Client) UploadBookReport(ctx context.Context, bookID string, file FileUpload) error {
	if file.Field == "" {
		file.Field = "report"
	}
	return c.upload(ctx, "books.report", path("/management/books/%s/report", bookID), file, nil, nil)
}
