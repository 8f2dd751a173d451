package models

// GradeFilter narrows the grade-management and final results tables. Tab
// selects a current status name on the proposals and books pages and a
// results stage on the results board.
type GradeFilter struct {
	Search    string
	Tab       string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
