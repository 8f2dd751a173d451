package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/export"
	"github.com/noah-isme/research-admin-gateway/pkg/jobs"
	"github.com/noah-isme/research-admin-gateway/pkg/mailer"
)

const jobTypeSchoolResults = "school_results"

// NotificationConfig sizes the e-mail worker pool.
type NotificationConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// schoolResultsNotice is the payload of a school results job.
type schoolResultsNotice struct {
	School  models.School
	Dataset export.Dataset
}

// NotificationService e-mails final results to schools from a background queue.
type NotificationService struct {
	queue  *jobs.Queue
	sender mailer.Sender
	csv    *export.CSVExporter
	logger *zap.Logger
}

// NewNotificationService constructs the service. Start must be called before queueing.
func NewNotificationService(sender mailer.Sender, cfg NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &NotificationService{sender: sender, csv: export.NewCSVExporter(), logger: logger}
	svc.queue = jobs.NewQueue("notifications", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
		OnGiveUp:   svc.giveUp,
	})
	return svc
}

// Start launches the workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop waits for the workers to exit. Queued mail that has not been sent is dropped.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Stats reports delivery counters.
func (s *NotificationService) Stats() jobs.Stats {
	return s.queue.Stats()
}

// QueueSchoolResults schedules one results e-mail to a school with the rows attached as CSV.
func (s *NotificationService) QueueSchoolResults(ctx context.Context, school models.School, data export.Dataset) error {
	if strings.TrimSpace(school.Email) == "" {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("school %s has no e-mail address", school.Name))
	}
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeSchoolResults,
		Payload: schoolResultsNotice{School: school, Dataset: data},
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue results e-mail")
	}
	s.logger.Info("results e-mail queued", zap.String("job_id", job.ID), zap.String("school_id", school.ID), zap.Int("rows", len(data.Rows)))
	return nil
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	switch job.Type {
	case jobTypeSchoolResults:
		notice, ok := job.Payload.(schoolResultsNotice)
		if !ok {
			return fmt.Errorf("job %s: unexpected payload %T", job.ID, job.Payload)
		}
		return s.sendSchoolResults(ctx, notice)
	default:
		return fmt.Errorf("job %s: unknown type %q", job.ID, job.Type)
	}
}

func (s *NotificationService) sendSchoolResults(ctx context.Context, notice schoolResultsNotice) error {
	attachment, err := s.csv.Render(notice.Dataset)
	if err != nil {
		return fmt.Errorf("render results attachment: %w", err)
	}
	name := notice.School.Name
	if name == "" {
		name = notice.School.Code
	}
	msg := mailer.Message{
		To:      []mail.Address{{Name: name, Address: notice.School.Email}},
		Subject: "Final results: " + name,
		TextContent: fmt.Sprintf("Dear %s,\n\nThe final results of %d candidate(s) have been approved at the centre and are attached.\n",
			name, len(notice.Dataset.Rows)),
		Attachments: []mailer.Attachment{{
			Filename:    sanitizeFilename("final results "+name) + ".csv",
			ContentType: export.FormatCSV.ContentType(),
			Content:     attachment,
		}},
	}
	return s.sender.Send(ctx, msg)
}

func (s *NotificationService) giveUp(job jobs.Job, err error) {
	fields := []zap.Field{zap.String("job_id", job.ID), zap.Int("attempts", job.Attempt), zap.Error(err)}
	if notice, ok := job.Payload.(schoolResultsNotice); ok {
		fields = append(fields, zap.String("school_id", notice.School.ID), zap.String("email", notice.School.Email))
	}
	s.logger.Error("results e-mail not delivered", fields...)
}
