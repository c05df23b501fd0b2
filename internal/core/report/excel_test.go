package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"taskonaut/internal/core/model"
)

func TestExporterWritesThreeSheets(t *testing.T) {
	monday := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	sessions := []model.Session{
		closedSession(monday, 2*time.Hour, "Alpha", "Dev", model.SessionWork),
		closedSession(monday.Add(3*time.Hour), 30*time.Minute, "Alpha", "Pause", model.SessionBreak),
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	exporter := NewExporter(path, nil)
	require.NoError(t, exporter.Export(sessions, testTargets))
	assert.Equal(t, path, exporter.Path())

	workbook, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer workbook.Close()

	assert.ElementsMatch(t, []string{SheetSessions, SheetEvaluation, SheetProjects}, workbook.GetSheetList())

	header, err := workbook.GetCellValue(SheetSessions, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	date, err := workbook.GetCellValue(SheetSessions, "A2")
	require.NoError(t, err)
	assert.Equal(t, "15.01.2024", date)

	project, err := workbook.GetCellValue(SheetSessions, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", project)

	status, err := workbook.GetCellValue(SheetEvaluation, "J2")
	require.NoError(t, err)
	assert.Equal(t, string(StatusBelowTarget), status)

	rollupProject, err := workbook.GetCellValue(SheetProjects, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", rollupProject)
}

func TestExporterOverwritesExistingFile(t *testing.T) {
	monday := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	exporter := NewExporter(path, nil)

	require.NoError(t, exporter.Export(nil, testTargets))
	require.NoError(t, exporter.Export([]model.Session{
		closedSession(monday, time.Hour, "Alpha", "Dev", model.SessionWork),
	}, testTargets))

	workbook, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer workbook.Close()

	project, err := workbook.GetCellValue(SheetSessions, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", project)
}

func TestExporterLockedDestination(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination path fails the writability probe.
	path := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.Mkdir(path, 0o755))

	exporter := NewExporter(path, nil)
	err := exporter.Export(nil, testTargets)
	assert.ErrorIs(t, err, ErrExportLocked)
}
