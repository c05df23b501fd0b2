package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	cleanupDays   int
	cleanupDryRun bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete sessions older than the retention window",
	Long: `Delete sessions whose start time is older than the retention window.

Examples:
  taskonaut cleanup                # use the configured retention days
  taskonaut cleanup --days 30      # explicit cutoff
  taskonaut cleanup --dry-run      # preview what would be deleted`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 0, "days of sessions to keep (default: configured retention)")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "preview what would be deleted")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	_, config, sessions, err := openStores()
	if err != nil {
		return err
	}

	days := cleanupDays
	if days <= 0 {
		days = config.Config().RetentionDays
	}

	out := cmd.OutOrStdout()
	if cleanupDryRun {
		cutoff := time.Now().AddDate(0, 0, -days)
		count := 0
		for _, session := range sessions.Sessions() {
			if session.StartTime.Before(cutoff) {
				count++
			}
		}
		fmt.Fprintf(out, "Would delete %d session(s) older than %d days\n", count, days)
		return nil
	}

	removed := sessions.CleanupOldData(days)
	if removed > 0 {
		if err := sessions.Save(); err != nil {
			return fmt.Errorf("save sessions: %w", err)
		}
	}
	fmt.Fprintf(out, "Deleted %d session(s) older than %d days\n", removed, days)
	return nil
}
