package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	sheet := Sheet{
		Title:   "Grade Sheet",
		Headers: []string{"Student ID", "Student", "Midterm", "Final", "Average"},
		Rows: [][]string{
			{"S001", "Alice", "85.00", "90.00", "87.50"},
			{"S002", "Bob, Jr.", "70.00", "75.00", "72.50"},
		},
	}

	data, err := NewCSVExporter().Render(sheet)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Student ID,Student,Midterm,Final,Average", strings.TrimSpace(lines[0]))
	require.Contains(t, lines[2], `"Bob, Jr."`)
}

func TestPDFExporterRenderProducesDocument(t *testing.T) {
	sheet := Sheet{
		Title:   "Grade Sheet",
		Headers: []string{"Student", "Average"},
		Rows:    [][]string{{"Alice", "87.50"}},
	}

	data, err := NewPDFExporter().Render(sheet)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF"))
}
