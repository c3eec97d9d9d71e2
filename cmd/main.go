package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/config"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// @title           Flight Scraper Service API
// @version         0.0.1
// @description     flight-scraper-service
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg        config.Config
		configFile string
	)

	root := &cobra.Command{
		Use:          "flight-scraper",
		Short:        "Flight search over a live flights page, from JSON, text or voice",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg = config.MustInitConfig(configFile)

			// search prints its results on stdout
			if cmd.Name() == "search" {
				logger.InitStructuredLoggerTo(os.Stderr, cfg.LogLevel)
			} else {
				logger.InitStructuredLogger(cfg.LogLevel)
			}

			slog.Debug("config loaded successfully", slog.Any("config", cfg))
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", ".env", "path of the env file to load")

	serve := newServeCmd(&cfg)
	root.RunE = serve.RunE
	root.AddCommand(serve, newSearchCmd(&cfg))

	return root
}
