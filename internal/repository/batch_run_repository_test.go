package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/models"
)

func newBatchRunRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBatchRunRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newBatchRunRepoMock(t)
	defer cleanup()
	repo := NewBatchRunRepository(db)

	finished := time.Now().UTC()
	msg := "book already approved"
	run := &models.BatchRun{Action: "approve", ActorID: "admin-1", Total: 2, Succeeded: 1, Failed: 1, FinishedAt: &finished}
	items := []models.BatchRunItem{{EntityID: "b1", OK: true}, {EntityID: "b2", OK: false, ErrorMessage: &msg}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO batch_runs")).
		WithArgs(sqlmock.AnyArg(), "approve", "admin-1", 2, 1, 1, sqlmock.AnyArg(), finished).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO batch_run_items")).
		WithArgs(sqlmock.AnyArg(), "b1", true, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO batch_run_items")).
		WithArgs(sqlmock.AnyArg(), "b2", false, msg).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), run, items))
	require.NotEmpty(t, run.ID)
	require.Equal(t, run.ID, items[1].RunID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchRunRepositoryCreateRollsBack(t *testing.T) {
	db, mock, cleanup := newBatchRunRepoMock(t)
	defer cleanup()
	repo := NewBatchRunRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO batch_runs")).WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.BatchRun{Action: "approve", ActorID: "admin-1"}, nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchRunRepositoryListRecentAndItems(t *testing.T) {
	db, mock, cleanup := newBatchRunRepoMock(t)
	defer cleanup()
	repo := NewBatchRunRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, action, actor_id, total, succeeded, failed, started_at, finished_at FROM batch_runs ORDER BY started_at DESC LIMIT $1")).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "actor_id", "total", "succeeded", "failed", "started_at", "finished_at"}).
			AddRow("run-1", "send_to_school", "admin-1", 3, 3, 0, now, now))

	runs, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "send_to_school", runs[0].Action)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT run_id, entity_id, ok, error_message FROM batch_run_items WHERE run_id = $1")).
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows([]string{"run_id", "entity_id", "ok", "error_message"}).
			AddRow("run-1", "b1", true, nil))

	items, err := repo.Items(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].OK)
	require.NoError(t, mock.ExpectationsWereMet())
}
