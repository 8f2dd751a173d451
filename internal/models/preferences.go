package models

import "time"

// TablePreferences is what the admin UI remembers per table between reloads.
type TablePreferences struct {
	PageSize int    `json:"pageSize"`
	Page     int    `json:"page"`
	Tab      string `json:"tab,omitempty"`
}

// Preferences groups a user's table preferences keyed by table name.
type Preferences struct {
	UserID    string                      `json:"userId"`
	Tables    map[string]TablePreferences `json:"tables"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}
