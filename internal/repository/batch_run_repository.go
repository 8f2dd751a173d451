package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/research-admin-gateway/internal/models"
)

// BatchRunRepository is the ledger of bulk actions.
type BatchRunRepository struct {
	db *sqlx.DB
}

// NewBatchRunRepository constructs the repository.
func NewBatchRunRepository(db *sqlx.DB) *BatchRunRepository {
	return &BatchRunRepository{db: db}
}

// Create stores a finished run with its per-item outcomes in one transaction.
func (r *BatchRunRepository) Create(ctx context.Context, run *models.BatchRun, items []models.BatchRunItem) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch run tx: %w", err)
	}

	const runQuery = `INSERT INTO batch_runs (id, action, actor_id, total, succeeded, failed, started_at, finished_at)
VALUES (:id, :action, :actor_id, :total, :succeeded, :failed, :started_at, :finished_at)`
	if _, err := tx.NamedExecContext(ctx, runQuery, run); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert batch run: %w", err)
	}

	const itemQuery = `INSERT INTO batch_run_items (run_id, entity_id, ok, error_message)
VALUES (:run_id, :entity_id, :ok, :error_message)`
	for i := range items {
		items[i].RunID = run.ID
		if _, err := tx.NamedExecContext(ctx, itemQuery, items[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert batch run item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch run tx: %w", err)
	}
	return nil
}

// ListRecent returns the latest runs, newest first.
func (r *BatchRunRepository) ListRecent(ctx context.Context, limit int) ([]models.BatchRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const query = `SELECT id, action, actor_id, total, succeeded, failed, started_at, finished_at
FROM batch_runs ORDER BY started_at DESC LIMIT $1`
	var runs []models.BatchRun
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("list batch runs: %w", err)
	}
	return runs, nil
}

// Items returns the per-item outcomes of a run.
func (r *BatchRunRepository) Items(ctx context.Context, runID string) ([]models.BatchRunItem, error) {
	const query = `SELECT run_id, entity_id, ok, error_message FROM batch_run_items WHERE run_id = $1 ORDER BY entity_id`
	var items []models.BatchRunItem
	if err := r.db.SelectContext(ctx, &items, query, runID); err != nil {
		return nil, fmt.Errorf("list batch run items: %w", err)
	}
	return items, nil
}
