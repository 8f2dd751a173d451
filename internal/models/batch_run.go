package models

import "time"

// BatchRun records one bulk action and its aggregate outcome.
type BatchRun struct {
	ID         string     `db:"id" json:"id"`
	Action     string     `db:"action" json:"action"`
	ActorID    string     `db:"actor_id" json:"actorId"`
	Total      int        `db:"total" json:"total"`
	Succeeded  int        `db:"succeeded" json:"succeeded"`
	Failed     int        `db:"failed" json:"failed"`
	StartedAt  time.Time  `db:"started_at" json:"startedAt"`
	FinishedAt *time.Time `db:"finished_at" json:"finishedAt,omitempty"`
}

// BatchRunItem is the outcome for one entity inside a batch run.
type BatchRunItem struct {
	RunID        string  `db:"run_id" json:"runId"`
	EntityID     string  `db:"entity_id" json:"entityId"`
	OK           bool    `db:"ok" json:"ok"`
	ErrorMessage *string `db:"error_message" json:"errorMessage,omitempty"`
}
