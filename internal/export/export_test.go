package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrms/internal/view/table"
)

func sheet() Sheet {
	return Sheet{
		Title: "Expiring Contracts",
		Columns: []Column{
			{Key: "fullName", Label: "Employee"},
			{Key: "positionName", Label: "Position"},
			{Key: "daysUntilExpiry", Label: "Days Left"},
			{Key: "salary", Label: "Salary", Text: func(v any, _ table.Row) string { return "$" + Text(v) }},
		},
		Rows: []table.Row{
			{"fullName": "Emily Davis", "positionName": "HR – Coordinator", "daysUntilExpiry": 22.0, "salary": 55000.0},
			{"fullName": "Lisa Anderson", "positionName": "Marketing Manager", "daysUntilExpiry": 43.0, "salary": 72000.0},
		},
		GeneratedAt: time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw     string
		want    Format
		wantErr bool
	}{
		{raw: "pdf", want: PDF},
		{raw: " XLSX ", want: XLSX},
		{raw: "csv", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseFormat(tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "leave-balance-2025-03-20.xlsx", XLSX.Filename("leave-balance", at))
	assert.Equal(t, "application/pdf", PDF.ContentType())
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, PDF, sheet()))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))

	buf.Reset()
	empty := sheet()
	empty.Rows = nil
	require.NoError(t, WritePDF(&buf, empty))
	assert.NotZero(t, buf.Len())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, sheet()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Expiring Contracts"}, f.GetSheetList())
	rows, err := f.GetRows("Expiring Contracts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee", "Position", "Days Left", "Salary"}, rows[0])
	assert.Equal(t, []string{"Emily Davis", "HR – Coordinator", "22", "$55000"}, rows[1])

	cellType, err := f.GetCellType("Expiring Contracts", "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Report", sheetName(""))
	assert.Equal(t, "a-b-c", sheetName("a/b?c"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), maxSheetName)
}
