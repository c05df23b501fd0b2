package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"taskonaut/internal/core/model"
)

// Sheet names of the exported workbook.
const (
	SheetSessions   = "Sessions"
	SheetEvaluation = "Evaluation"
	SheetProjects   = "Projects"
)

// ErrExportLocked indicates the destination workbook cannot be opened
// for writing, typically because it is open in another program.
var ErrExportLocked = errors.New("export file locked for writing")

const dateLayout = "02.01.2006"

// Exporter writes the three-sheet spreadsheet report.
type Exporter struct {
	path   string
	logger *slog.Logger
}

// NewExporter creates an exporter targeting the given workbook path.
func NewExporter(path string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{path: path, logger: logger}
}

// Path returns the destination workbook path.
func (exporter *Exporter) Path() string {
	return exporter.path
}

// Export renders the session listing, daily evaluation and monthly
// project rollup. The write is skipped when the destination is locked.
func (exporter *Exporter) Export(sessions []model.Session, targets model.WorkHours) error {
	if err := exporter.checkWritable(); err != nil {
		return err
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", SheetSessions); err != nil {
		return fmt.Errorf("rename sessions sheet: %w", err)
	}
	if _, err := workbook.NewSheet(SheetEvaluation); err != nil {
		return fmt.Errorf("create evaluation sheet: %w", err)
	}
	if _, err := workbook.NewSheet(SheetProjects); err != nil {
		return fmt.Errorf("create projects sheet: %w", err)
	}

	sessionRows := SessionRows(sessions)
	summaries := DailySummaries(sessions, targets)
	rollup := MonthlyRollup(sessions)

	if err := exporter.writeSessions(workbook, sessionRows); err != nil {
		return err
	}
	if err := exporter.writeEvaluation(workbook, summaries); err != nil {
		return err
	}
	if err := exporter.writeProjects(workbook, rollup); err != nil {
		return err
	}

	if err := workbook.SaveAs(exporter.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	exporter.logger.Info("report exported",
		"path", exporter.path, "sessions", len(sessionRows), "days", len(summaries), "project_rows", len(rollup))
	return nil
}

// checkWritable probes the destination by opening it for append. A
// workbook held open by a spreadsheet program fails the probe.
func (exporter *Exporter) checkWritable() error {
	file, err := os.OpenFile(exporter.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrExportLocked, exporter.path)
	}
	return file.Close()
}

func (exporter *Exporter) writeSessions(workbook *excelize.File, rows []SessionRow) error {
	header := []any{
		"Date", "Start", "End", "Duration (h)", "Project", "Task", "Note", "Type",
		"Day Work (h)", "Day Break (h)", "Day Total (h)",
	}
	if err := workbook.SetSheetRow(SheetSessions, "A1", &header); err != nil {
		return fmt.Errorf("write sessions header: %w", err)
	}

	for i, row := range rows {
		cells := []any{
			row.Date.Format(dateLayout), row.Start, row.End, row.Hours,
			row.Project, row.Task, row.Note, string(row.Type),
			optionalHours(row.DayWork), optionalHours(row.DayBreak), optionalHours(row.DayTotal),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := workbook.SetSheetRow(SheetSessions, cell, &cells); err != nil {
			return fmt.Errorf("write sessions row %d: %w", i+2, err)
		}
	}
	return autoFitColumns(workbook, SheetSessions, len(header))
}

func (exporter *Exporter) writeEvaluation(workbook *excelize.File, summaries []DailySummary) error {
	header := []any{
		"Date", "Weekday", "Day Start", "Day End", "Work (h)", "Break (h)",
		"Total (h)", "Target (h)", "Difference (h)", "Status",
	}
	if err := workbook.SetSheetRow(SheetEvaluation, "A1", &header); err != nil {
		return fmt.Errorf("write evaluation header: %w", err)
	}

	for i, summary := range summaries {
		cells := []any{
			summary.Date.Format(dateLayout), summary.Date.Weekday().String(),
			summary.StartTime, summary.EndTime, summary.WorkHours, summary.BreakHours,
			summary.TotalHours, summary.TargetHours, summary.Difference, string(summary.Status),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := workbook.SetSheetRow(SheetEvaluation, cell, &cells); err != nil {
			return fmt.Errorf("write evaluation row %d: %w", i+2, err)
		}
	}
	return autoFitColumns(workbook, SheetEvaluation, len(header))
}

func (exporter *Exporter) writeProjects(workbook *excelize.File, rows []MonthlyRow) error {
	header := []any{"Month", "Project", "Task", "Work (h)", "Sessions"}
	if err := workbook.SetSheetRow(SheetProjects, "A1", &header); err != nil {
		return fmt.Errorf("write projects header: %w", err)
	}

	for i, row := range rows {
		cells := []any{row.Month, row.Project, row.Task, row.Hours, row.Sessions}
		cell := fmt.Sprintf("A%d", i+2)
		if err := workbook.SetSheetRow(SheetProjects, cell, &cells); err != nil {
			return fmt.Errorf("write projects row %d: %w", i+2, err)
		}
	}
	return autoFitColumns(workbook, SheetProjects, len(header))
}

func optionalHours(value *float64) any {
	if value == nil {
		return ""
	}
	return *value
}

func autoFitColumns(workbook *excelize.File, sheet string, columns int) error {
	cellRows, err := workbook.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read back %s for column sizing: %w", sheet, err)
	}

	for column := 1; column <= columns; column++ {
		maxLen := 0
		for _, cells := range cellRows {
			if column-1 < len(cells) && len(cells[column-1]) > maxLen {
				maxLen = len(cells[column-1])
			}
		}
		width := float64(maxLen+2) * 1.2
		if width > 50 {
			width = 50
		}
		name, err := excelize.ColumnNumberToName(column)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := workbook.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
