package dto

import "time"

// ResultsActionRequest selects the books a bulk action applies to.
type ResultsActionRequest struct {
	BookIDs []string `json:"bookIds" validate:"required,min=1,dive,required"`
}

// ResultRow is one row of the final results board.
type ResultRow struct {
	BookRow
	Stage string `json:"stage"`
}

// ResultsBoard is the final results submission page payload.
type ResultsBoard struct {
	Stage string         `json:"stage"`
	Rows  []ResultRow    `json:"rows"`
	Tabs  map[string]int `json:"tabs"`
}

// BatchItemResult reports the outcome of one entity in a bulk action.
type BatchItemResult struct {
	ID      string `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// BatchResult is returned by every bulk action.
type BatchResult struct {
	RunID     string            `json:"runId,omitempty"`
	Action    string            `json:"action"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Message   string            `json:"message,omitempty"`
	Items     []BatchItemResult `json:"items"`
	Notified  []string          `json:"notifiedSchools,omitempty"`
}

// ExportRequest selects the stage and format of a results export.
type ExportRequest struct {
	Stage  string `json:"stage" validate:"required,oneof=pending_approval approved_at_centre sent_to_school senate_approved"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	Search string `json:"search,omitempty"`
}

// ExportResponse points at the generated file.
type ExportResponse struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expiresAt"`
}
