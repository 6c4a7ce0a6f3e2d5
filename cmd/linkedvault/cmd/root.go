/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/linkedvault/linkedvault/pkg/audit"
	"github.com/linkedvault/linkedvault/pkg/config"
	"github.com/linkedvault/linkedvault/pkg/store"
)

// App bundles the stores every subcommand works against.
type App struct {
	Config *config.Config
	Tables *store.TableStore
	Users  *store.UserStore
	Audit  *audit.Logger
	Logger *slog.Logger
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linkedvault",
	Short: "LinkedVault - multi-tenant employee record store",
	Long: `LinkedVault is a multi-tenant employee record store keeping each
table as an in-memory linked list backed by a fixed-width binary file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		logger := newLogger(cfg.Logging.Level)
		slog.SetDefault(logger)

		tables, err := store.NewTableStore(store.Config{DataDir: cfg.DataDir})
		if err != nil {
			return fmt.Errorf("failed to create table store: %w", err)
		}
		users := store.NewUserStore(filepath.Join(cfg.DataDir, "users.dat"))
		auditLog, err := audit.NewLogger(filepath.Join(cfg.DataDir, "audit"))
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}

		app := &App{
			Config: cfg,
			Tables: tables,
			Users:  users,
			Audit:  auditLog,
			Logger: logger,
		}
		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), "app", app))
		return nil
	},
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:   lvl,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

// appFrom pulls the App placed by the root command.
func appFrom(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value("app").(*App)
	if !ok {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Config file path")
}
