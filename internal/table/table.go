// Package table holds the typed column definitions, search filtering,
// sorting and pagination shared by every administrative list.
package table

import (
	"sort"
	"strings"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/pkg/export"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 200
)

// Column describes one column of a list over rows of type T. Sortable
// columns compare with Less when it is set and by case-insensitive Value
// otherwise.
type Column[T any] struct {
	Key        string
	Header     string
	Value      func(T) string
	Less       func(a, b T) bool
	Searchable bool
	Sortable   bool
	Exportable bool
}

// Filter keeps rows where any searchable column contains term, ignoring
// case. An empty or blank term keeps every row.
func Filter[T any](rows []T, columns []Column[T], term string) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return rows
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, col := range columns {
			if !col.Searchable || col.Value == nil {
				continue
			}
			if strings.Contains(strings.ToLower(col.Value(row)), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Where keeps rows matching pred.
func Where[T any](rows []T, pred func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// Sort orders rows by a sortable column. Unknown keys leave the order unchanged.
func Sort[T any](rows []T, columns []Column[T], key, order string) []T {
	if key == "" {
		return rows
	}
	var col *Column[T]
	for i := range columns {
		if columns[i].Key == key && columns[i].Sortable && (columns[i].Less != nil || columns[i].Value != nil) {
			col = &columns[i]
			break
		}
	}
	if col == nil {
		return rows
	}
	desc := strings.EqualFold(order, "desc")
	out := make([]T, len(rows))
	copy(out, rows)
	if col.Less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return col.Less(out[j], out[i])
			}
			return col.Less(out[i], out[j])
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(col.Value(out[i]))
		b := strings.ToLower(col.Value(out[j]))
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

// Paginate computes page metadata for total items. Size falls back to
// DefaultPageSize and is capped at MaxPageSize; page is clamped to
// [1, TotalPages]. From and To are 1-based and zero for an empty set.
func Paginate(total, page, size int) models.Pagination {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	p := models.Pagination{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if total > 0 {
		p.From = (page-1)*size + 1
		p.To = page * size
		if p.To > total {
			p.To = total
		}
	}
	return p
}

// Slice returns the rows of the page described by p.
func Slice[T any](rows []T, p models.Pagination) []T {
	if p.From == 0 || p.From > len(rows) {
		return []T{}
	}
	to := p.To
	if to > len(rows) {
		to = len(rows)
	}
	return rows[p.From-1 : to]
}

// Query bundles the list parameters a handler reads from the request.
type Query struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Apply runs filter, sort and pagination in order and returns the page.
func Apply[T any](rows []T, columns []Column[T], q Query) ([]T, models.Pagination) {
	filtered := Filter(rows, columns, q.Search)
	sorted := Sort(filtered, columns, q.SortBy, q.SortOrder)
	p := Paginate(len(sorted), q.Page, q.PageSize)
	return Slice(sorted, p), p
}

// Dataset converts rows to an export dataset using the exportable columns.
func Dataset[T any](title string, rows []T, columns []Column[T]) export.Dataset {
	cols := make([]Column[T], 0, len(columns))
	for _, col := range columns {
		if col.Exportable && col.Value != nil {
			cols = append(cols, col)
		}
	}
	data := export.Dataset{Title: title, Headers: make([]string, len(cols)), Rows: make([][]string, 0, len(rows))}
	for i, col := range cols {
		data.Headers[i] = col.Header
	}
	for _, row := range rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = col.Value(row)
		}
		data.Rows = append(data.Rows, record)
	}
	return data
}
