package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalogfeed/scraper/internal/config"
	"catalogfeed/scraper/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "catalogfeed",
		Short:         "Scrape category pages into a product feed CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, cmd)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./config.yaml)")
	cmd.Flags().StringP("output", "o", "", "output CSV path")
	cmd.Flags().String("preset", "", "feed preset: merchant or catalog")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, configPath string, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := setupLogging(cfg.Log); err != nil {
		return err
	}

	log.Info("Starting catalog feed scraper...")

	app, err := container.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer app.Close()

	return app.Run(ctx)
}

func setupLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return nil
}
