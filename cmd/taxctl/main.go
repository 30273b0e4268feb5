package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taxoffice/internal/app"
	"taxoffice/internal/config"
	"taxoffice/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputJSON bool
	rootCmd    = &cobra.Command{
		Use:   "taxctl",
		Short: "Operator tool for the tax office engine",
		Long: `taxctl runs maintenance jobs against the tax office database: batch compliance
rescoring, rate resolution and due-date previews. It reads the same configuration
as the API server (configs/config.toml and TAXOFFICE_* variables).`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(recomputeCmd())
	rootCmd.AddCommand(resolveRateCmd())
	rootCmd.AddCommand(dueDateCmd())
	rootCmd.AddCommand(migrateCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp loads configuration and wires every service. Logs go to stderr so
// stdout stays clean for results.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	zlog := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stderr"})
	a, err := app.New(ctx, cfg, zlog)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		a.Log.Error("failed to close database", zap.Error(err))
	}
	_ = a.Log.Sync()
}
