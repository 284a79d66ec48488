package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/adamanr/dreamteam/internal/config"
	logging "github.com/adamanr/dreamteam/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dreamteam",
	Short: "Dream Team employee directory",
	Long: `Dream Team is a company directory: employees register and log in,
administrators manage departments and roles and assign them to employees.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(seedCmd)
}

// setup loads the config with a bootstrap logger, then switches to the
// file-backed logger named in it.
func setup(_ *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	if cfg, err = config.GetConfig(configPath, bootstrap); err != nil {
		return err
	}

	logger = logging.SetupLogger(os.Stdout, cfg.Server.LogFile, level)
	slog.SetDefault(logger)

	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
