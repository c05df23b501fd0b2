package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"taskonaut/internal/core/report"
)

var (
	reportMonth    string
	reportProjects bool
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	reachedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	belowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noWorkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the daily evaluation",
	Long: `Print the daily evaluation (work/break/target hours per day) to the
terminal. With --projects the monthly project breakdown is shown
instead.

Examples:
  taskonaut report                  # all days
  taskonaut report --month 2026-08  # one month
  taskonaut report --projects       # monthly project breakdown`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "restrict to a month (YYYY-MM)")
	reportCmd.Flags().BoolVar(&reportProjects, "projects", false, "show the monthly project breakdown")
}

func runReport(cmd *cobra.Command, args []string) error {
	_, config, sessions, err := openStores()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if reportProjects {
		rows := report.MonthlyRollup(sessions.Sessions())
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-8s  %-24s  %-24s  %9s  %8s",
			"Month", "Project", "Task", "Work (h)", "Count")))
		for _, row := range rows {
			if reportMonth != "" && row.Month != reportMonth {
				continue
			}
			fmt.Fprintf(out, "%-8s  %-24s  %-24s  %9.2f  %8d\n",
				row.Month, row.Project, row.Task, row.Hours, row.Sessions)
		}
		return nil
	}

	summaries := report.DailySummaries(sessions.Sessions(), config.Config().WorkHours)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-10s  %-9s  %8s  %8s  %8s  %8s  %6s  %s",
		"Date", "Weekday", "Start", "End", "Work", "Break", "Target", "Status")))
	for _, summary := range summaries {
		if reportMonth != "" && !strings.HasPrefix(summary.Date.Format("2006-01-02"), reportMonth) {
			continue
		}
		fmt.Fprintf(out, "%-10s  %-9s  %8s  %8s  %8.2f  %8.2f  %6.1f  %s\n",
			summary.Date.Format("2006-01-02"), summary.Date.Weekday().String(),
			summary.StartTime, summary.EndTime, summary.WorkHours, summary.BreakHours,
			summary.TargetHours, statusStyle(summary.Status).Render(string(summary.Status)))
	}
	return nil
}

func statusStyle(status report.DayStatus) lipgloss.Style {
	switch status {
	case report.StatusTargetReached:
		return reachedStyle
	case report.StatusBelowTarget:
		return belowStyle
	default:
		return noWorkStyle
	}
}
