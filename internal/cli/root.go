// Package cli wires the cobra command surface. The root command runs
// the overlay application; the subcommands operate headless on the
// same data directory.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"taskonaut/internal/storage"
)

const appName = "taskonaut"

var dataDir string

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Desktop time-tracking overlay",
	Long: `taskonaut tracks work and break sessions tagged with project/task from a
small always-on-top overlay, persists them to a JSON file and exports a
three-sheet spreadsheet report.`,
	SilenceUsage: true,
	RunE:         runOverlay,
}

// Execute runs the CLI.
func Execute() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: per-user config dir)")
}

// openStores loads the config and session stores from the data
// directory.
func openStores() (string, *storage.ConfigStore, *storage.SessionStore, error) {
	dir := dataDir
	if dir == "" {
		resolved, err := storage.DefaultDataDir()
		if err != nil {
			return "", nil, nil, err
		}
		dir = resolved
	}

	logger := slog.Default()
	config := storage.NewConfigStore(dir, logger)
	if err := config.Load(); err != nil {
		return "", nil, nil, fmt.Errorf("load config: %w", err)
	}
	sessions := storage.NewSessionStore(dir, config, clockwork.NewRealClock(), logger)
	if err := sessions.Load(); err != nil {
		return "", nil, nil, fmt.Errorf("load sessions: %w", err)
	}
	return dir, config, sessions, nil
}

// exportPath resolves the configured workbook filename against the
// data directory unless it is absolute.
func exportPath(dir string, config *storage.ConfigStore) string {
	filename := config.Config().Export.Filename
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(dir, filename)
}
