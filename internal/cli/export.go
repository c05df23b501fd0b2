package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"taskonaut/internal/core/report"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the spreadsheet report",
	Long: `Write the three-sheet spreadsheet report (session listing, daily
evaluation, monthly project breakdown) without starting the overlay.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "workbook path (default: configured export file)")
}

func runExport(cmd *cobra.Command, args []string) error {
	dir, config, sessions, err := openStores()
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = exportPath(dir, config)
	}

	exporter := report.NewExporter(path, slog.Default())
	if err := exporter.Export(sessions.Sessions(), config.Config().WorkHours); err != nil {
		return fmt.Errorf("export report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
