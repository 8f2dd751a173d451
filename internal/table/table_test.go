package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	First string
	Last  string
	Reg   string
	Notes string
}

var personColumns = []Column[person]{
	{Key: "first", Header: "First name", Value: func(p person) string { return p.First }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "last", Header: "Last name", Value: func(p person) string { return p.Last }, Searchable: true, Sortable: true, Exportable: true},
	{Key: "reg", Header: "Registration", Value: func(p person) string { return p.Reg }, Searchable: true, Exportable: true},
	{Key: "notes", Header: "Notes", Value: func(p person) string { return p.Notes }},
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                    string
		total, page, size       int
		wantPage, wantFrom      int
		wantTo, wantPages       int
		wantHasPrev, wantHasNxt bool
	}{
		{name: "last partial page", total: 23, page: 3, size: 10, wantPage: 3, wantFrom: 21, wantTo: 23, wantPages: 3, wantHasPrev: true},
		{name: "first page", total: 23, page: 1, size: 10, wantPage: 1, wantFrom: 1, wantTo: 10, wantPages: 3, wantHasNxt: true},
		{name: "page beyond range clamps", total: 23, page: 9, size: 10, wantPage: 3, wantFrom: 21, wantTo: 23, wantPages: 3, wantHasPrev: true},
		{name: "page below range clamps", total: 5, page: 0, size: 10, wantPage: 1, wantFrom: 1, wantTo: 5, wantPages: 1},
		{name: "empty set", total: 0, page: 2, size: 10, wantPage: 1, wantFrom: 0, wantTo: 0, wantPages: 1},
		{name: "default size", total: 15, page: 2, size: 0, wantPage: 2, wantFrom: 11, wantTo: 15, wantPages: 2, wantHasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantFrom, p.From)
			assert.Equal(t, tt.wantTo, p.To)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantHasPrev, p.HasPrev)
			assert.Equal(t, tt.wantHasNxt, p.HasNext)
			assert.Equal(t, tt.total, p.TotalCount)
		})
	}
}

func TestFilterIsCaseInsensitiveSubstringOverSearchableColumns(t *testing.T) {
	rows := []person{
		{First: "Amina", Last: "Njeri", Reg: "MSC/001/2024"},
		{First: "Brian", Last: "Otieno", Reg: "PHD/014/2023", Notes: "amina's cohort"},
		{First: "Chebet", Last: "Kiprop", Reg: "MSC/002/2024"},
	}

	assert.Len(t, Filter(rows, personColumns, ""), 3)
	assert.Len(t, Filter(rows, personColumns, "   "), 3)

	got := Filter(rows, personColumns, "AMI")
	require.Len(t, got, 1)
	assert.Equal(t, "Amina", got[0].First)

	assert.Len(t, Filter(rows, personColumns, "msc/"), 2)
	assert.Empty(t, Filter(rows, personColumns, "zzz"))
}

func TestSortAndSlice(t *testing.T) {
	rows := []person{{First: "chebet"}, {First: "Amina"}, {First: "brian"}}

	asc := Sort(rows, personColumns, "first", "asc")
	assert.Equal(t, []string{"Amina", "brian", "chebet"}, []string{asc[0].First, asc[1].First, asc[2].First})
	desc := Sort(rows, personColumns, "first", "desc")
	assert.Equal(t, "chebet", desc[0].First)
	assert.Equal(t, "chebet", rows[0].First)

	unsortable := Sort(rows, personColumns, "reg", "asc")
	assert.Equal(t, rows, unsortable)
}

type scored struct {
	Name  string
	Score float64
}

func TestSortUsesTypedLess(t *testing.T) {
	columns := []Column[scored]{
		{Key: "score", Header: "Score", Value: func(s scored) string { return fmt.Sprintf("%g", s.Score) },
			Less: func(a, b scored) bool { return a.Score < b.Score }, Sortable: true, Exportable: true},
	}
	rows := []scored{{"a", 9.5}, {"b", 100}, {"c", 76}, {"d", 76}}

	asc := Sort(rows, columns, "score", "asc")
	assert.Equal(t, []string{"a", "c", "d", "b"}, []string{asc[0].Name, asc[1].Name, asc[2].Name, asc[3].Name})
	desc := Sort(rows, columns, "score", "DESC")
	assert.Equal(t, []string{"b", "c", "d", "a"}, []string{desc[0].Name, desc[1].Name, desc[2].Name, desc[3].Name})

	data := Dataset("Scores", rows, columns)
	assert.Equal(t, []string{"Score"}, data.Headers)
	assert.Equal(t, []string{"9.5"}, data.Rows[0])
}

func TestApplyAndDataset(t *testing.T) {
	rows := make([]person, 0, 23)
	for i := 0; i < 23; i++ {
		rows = append(rows, person{First: fmt.Sprintf("Student %02d", i), Reg: fmt.Sprintf("REG-%02d", i)})
	}

	page, p := Apply(rows, personColumns, Query{Page: 3, PageSize: 10})
	require.Len(t, page, 3)
	assert.Equal(t, "Student 20", page[0].First)
	assert.Equal(t, 21, p.From)
	assert.False(t, p.HasNext)

	data := Dataset("Students", page, personColumns)
	assert.Equal(t, []string{"First name", "Last name", "Registration"}, data.Headers)
	assert.Equal(t, []string{"Student 22", "", "REG-22"}, data.Rows[2])
}
