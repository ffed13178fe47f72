package tools

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type excelRow struct {
	Name   string    `excel:"Name"`
	Rate   float64   `excel:"Rate"`
	When   time.Time `excel:"When"`
	Hidden string    `excel:"-"`
	Count  *int
}

func TestBuildWorkbook(t *testing.T) {
	n := 3
	rows := []excelRow{
		{Name: "Hackathon", Rate: 70, When: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), Hidden: "x", Count: &n},
		{Name: "Debate", Rate: 0},
	}
	buf, err := BuildWorkbook(Sheet{Name: "Events", Rows: rows}, Sheet{Name: "Empty", Rows: []excelRow{}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Events", "Empty"}, f.GetSheetList())

	got, err := f.GetRows("Events")
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "Rate", "When", "Count"}, got[0])
	require.Equal(t, []string{"Hackathon", "70", "2025-03-01 10:00:00", "3"}, got[1])
	require.Equal(t, "Debate", got[2][0])

	header, err := f.GetRows("Empty")
	require.NoError(t, err)
	require.Len(t, header, 1)
}

func TestExportToExcelRejectsNonSlice(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.Error(t, ExportToExcel(f, "x", excelRow{}))
	require.Error(t, ExportToExcel(f, "x", []int{1}))
}

func TestDeleteSheetLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(old) })

	f := excelize.NewFile()
	defer f.Close()

	// 非法名称（含冒号）
	deleteSheet(f, "bad:name")
	require.Contains(t, buf.String(), `"level":"WARN"`)
	require.Contains(t, buf.String(), `"sheet":"bad:name"`)

	buf.Reset()
	deleteSheet(f, "Sheet1")
	require.Empty(t, buf.String())
}
