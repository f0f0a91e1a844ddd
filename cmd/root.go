package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tooley/tooley/internal/config"
	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/store"
)

var (
	cfg config.Config
	log = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "tooley",
	Short: "Lesson plans for any classroom",
	Long: "Tooley turns a few answers (subject, topic, ages, duration, country, materials,\n" +
		"style) into a ready-to-teach lesson plan, as a chat bot, an HTTP API or a\n" +
		"terminal app.",
	SilenceUsage:      true,
	PersistentPostRun: func(*cobra.Command, []string) { log.Sync() },
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the literal to break the
	// rootCmd -> setup -> quietCommand -> rootCmd initialization cycle.
	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides TOOLEY_DB env var)")
	pf.String("config", "", "YAML configuration file")
	pf.String("env-file", ".env", "dotenv file read before the environment")
	pf.String("log-level", "", "debug, info, warn or error (overrides TOOLEY_LOG_LEVEL)")

	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration and the logger for every command.
func setup(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	c, err := config.Load(config.Options{File: file, DotEnv: envFile})
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.Log.Level = lvl
	}
	cfg = c

	opts := cfg.Log
	if quietCommand(cmd) {
		opts.Quiet = true
	}
	l, err := logger.New(opts)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// quietCommand reports whether cmd owns the terminal and must not log to it.
func quietCommand(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd
}

// resolveDBPath returns the database path from --db or the configuration,
// then TOOLEY_DB, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the local database.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
