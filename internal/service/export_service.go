package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
	"github.com/noah-isme/research-admin-gateway/pkg/export"
	"github.com/noah-isme/research-admin-gateway/pkg/storage"
)

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Open(name string) (io.ReadSeekCloser, int64, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix    string
	DownloadPath string
	// RetainFor is how long files are kept; never shorter than the link TTL.
	RetainFor time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	ID           string
	Filename     string
	RelativePath string
	Token        string
	URL          string
	Format       export.Format
	Rows         int
	ExpiresAt    time.Time
}

// ExportDownload is an opened export file resolved from a signed token.
type ExportDownload struct {
	File        io.ReadSeekCloser
	Size        int64
	Filename    string
	ContentType string
	ExpiresAt   time.Time
}

// ExportService renders datasets, stores the files and signs download links.
type ExportService struct {
	storage fileStorage
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	if cfg.DownloadPath == "" {
		cfg.DownloadPath = "/results/download"
	}
	if cfg.RetainFor < signer.TTL() {
		cfg.RetainFor = signer.TTL()
	}
	return &ExportService{storage: store, signer: signer, logger: logger, cfg: cfg, now: time.Now}
}

// Generate renders data in format, stores it and returns a signed link.
func (s *ExportService) Generate(ctx context.Context, name string, data export.Dataset, format export.Format) (*ExportResult, error) {
	renderer, err := export.NewRenderer(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = s.now()
	}
	payload, err := renderer.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	id := uuid.NewString()
	filename := s.buildFilename(name, id, format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}
	url := fmt.Sprintf("%s%s/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), s.cfg.DownloadPath, token)

	s.logger.Info("export generated",
		zap.String("export_id", id),
		zap.String("file", relPath),
		zap.Int("rows", len(data.Rows)),
		zap.Int("bytes", len(payload)))

	return &ExportResult{
		ID:           id,
		Filename:     filename,
		RelativePath: relPath,
		Token:        token,
		URL:          url,
		Format:       format,
		Rows:         len(data.Rows),
		ExpiresAt:    expiresAt,
	}, nil
}

// Resolve validates a download token and opens the file it grants.
func (s *ExportService) Resolve(token string) (*ExportDownload, error) {
	_, relPath, expiresAt, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "download link has expired")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}
	file, size, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file no longer exists")
	}
	filename := path.Base(relPath)
	format, ferr := export.ParseFormat(strings.TrimPrefix(path.Ext(filename), "."))
	if ferr != nil {
		format = export.FormatCSV
	}
	return &ExportDownload{
		File:        file,
		Size:        size,
		Filename:    filename,
		ContentType: format.ContentType(),
		ExpiresAt:   expiresAt,
	}, nil
}

// Cleanup removes files older than the retention period.
func (s *ExportService) Cleanup() ([]string, error) {
	removed, err := s.storage.CleanupOlderThan(s.cfg.RetainFor)
	if err != nil {
		return removed, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

func (s *ExportService) buildFilename(name, id string, format export.Format) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", sanitizeFilename(name), timestamp, id[:8], format.Extension())
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "export"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := strings.ToLower(replacer.Replace(raw))
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
