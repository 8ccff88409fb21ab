package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/platform/logger"
	"github.com/abhisek/academy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "Marketing academy in the terminal",
	Long:  "Academy is a terminal learning app for digital marketing: curriculums, quizzes, final exams and an AI tutor.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is the normal case.
		_ = godotenv.Load()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ACADEMY_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(learnersCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ACADEMY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newLogger writes to ACADEMY_LOG, or academy.log in the data directory.
// The TUI owns the terminal, so nothing goes to stderr.
func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")

	path := os.Getenv("ACADEMY_LOG")
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "academy.log")
	}
	return logger.New(logger.Options{Path: path, Level: level})
}
