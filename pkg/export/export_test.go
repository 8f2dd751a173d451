package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(rows int) Dataset {
	data := Dataset{
		Title:       "Final results - pending approval",
		Headers:     []string{"Registration", "Student", "Title", "Final mark"},
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	for i := 0; i < rows; i++ {
		data.Rows = append(data.Rows, []string{fmt.Sprintf("REG-%03d", i), "Amina Njeri", "Soil health in semi-arid counties", "71.50"})
	}
	return data
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"id", "name"},
		Rows:    [][]string{{"1", "Njeri, Amina"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,\"Njeri, Amina\"\n", string(out))
}

func TestRenderersRejectRaggedRows(t *testing.T) {
	bad := Dataset{Headers: []string{"a", "b"}, Rows: [][]string{{"only-one"}}}
	_, err := NewCSVExporter().Render(bad)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(bad)
	assert.Error(t, err)
	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRenderPaginates(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(80))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)

	r, err := NewRenderer(FormatCSV)
	require.NoError(t, err)
	assert.IsType(t, &CSVExporter{}, r)
}
