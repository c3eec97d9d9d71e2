package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/config"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/endpoints"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/service"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/browser"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/extraction"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/metrics"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/retry"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/scraper"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/session"
	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
)

// app owns the long lived dependencies shared by the commands.
type app struct {
	metrics  *metrics.Metrics
	launcher *browser.PlaywrightLauncher
	redis    *redis.Client
	scraper  *scraper.Scraper
	service  *service.FlightSearchService
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// init validator
	if err := dto.InitValidator(); err != nil {
		return nil, fmt.Errorf("failed to init validator: %w", err)
	}

	a := &app{
		metrics:  metrics.New(),
		launcher: browser.NewPlaywrightLauncher(launchConfig(cfg), browser.DefaultSelectors()),
	}

	var limiter session.Limiter = session.NewLocalLimiter(cfg.Session.MaxConcurrent, cfg.Session.AcquireTimeout)

	if cfg.Session.Distributed {
		// init redis
		a.redis = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.Timeout,
			ReadTimeout:  cfg.Redis.Timeout,
			WriteTimeout: cfg.Redis.Timeout,
		})

		if err := a.redis.Ping(ctx).Err(); err != nil {
			slog.WarnContext(ctx, "redis is not reachable yet", slog.String("error", err.Error()))
		}

		limiter = session.NewRedisLimiter(a.redis, session.RedisLimiterConfig{
			KeyPrefix:      cfg.Session.KeyPrefix,
			MaxSessions:    cfg.Session.MaxConcurrent,
			SlotTTL:        cfg.Session.SlotTTL,
			AcquireTimeout: cfg.Session.AcquireTimeout,
		})
	}

	a.scraper = scraper.New(scraperSettings(cfg), a.launcher, limiter, a.metrics)

	extractor, err := extraction.NewService(openAIClient(cfg), extractionConfig(cfg), a.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to init extraction service: %w", err)
	}

	a.service = service.NewFlightSearchService(a.scraper, extractor)

	return a, nil
}

func (a *app) endpoints() endpoints.Endpoints {
	return endpoints.Endpoints{
		FlightEndpoint: endpoints.MakeFlightEndpoint(a.service),
	}
}

func (a *app) Close() error {
	var errs []error

	errs = append(errs, a.launcher.Close())

	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}

	return errors.Join(errs...)
}

func scraperSettings(cfg *config.Config) scraper.Settings {
	settings := scraper.DefaultSettings()

	settings.PageURL = cfg.Scraper.PageURL
	settings.Policy = retry.Policy{
		MaxAttempts:     cfg.Scraper.MaxAttempts,
		InitialInterval: cfg.Scraper.BackoffInitial,
		MaxInterval:     cfg.Scraper.BackoffMax,
		Multiplier:      cfg.Scraper.BackoffMultiplier,
	}
	settings.ElementTimeout = cfg.Scraper.ElementTimeout
	settings.NoResultsTimeout = cfg.Scraper.NoResultsTimeout
	settings.ResultsTimeout = cfg.Scraper.ResultsTimeout
	settings.DateDialogTimeout = cfg.Scraper.DateDialogTimeout
	settings.PopoverTimeout = cfg.Scraper.PopoverTimeout
	settings.LegCountTimeout = cfg.Scraper.LegCountTimeout
	settings.LegSettleDelay = cfg.Scraper.LegSettleDelay

	return settings
}

func launchConfig(cfg *config.Config) browser.LaunchConfig {
	return browser.LaunchConfig{
		ExecutablePath: cfg.Browser.ExecutablePath,
		Headless:       cfg.Browser.Headless,
		Args:           browser.DefaultLaunchArgs(),
		UserAgent:      cfg.Browser.UserAgent,
		Locale:         cfg.Browser.Locale,
		TimezoneID:     cfg.Browser.TimezoneID,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		DefaultTimeout: cfg.Scraper.ElementTimeout,
		InstallDriver:  cfg.Browser.InstallDriver,
		Blocker:        browser.DefaultRequestBlocker(),
	}
}

func openAIClient(cfg *config.Config) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAI.BaseURL
	}

	clientConfig.HTTPClient = &http.Client{Timeout: cfg.OpenAI.Timeout}

	return openai.NewClientWithConfig(clientConfig)
}

func extractionConfig(cfg *config.Config) extraction.Config {
	extractionCfg := extraction.DefaultConfig()

	extractionCfg.ChatModel = cfg.OpenAI.ChatModel
	extractionCfg.TranscriptionModel = cfg.OpenAI.TranscriptionModel
	extractionCfg.Temperature = cfg.OpenAI.Temperature
	extractionCfg.TextTemplatePath = cfg.OpenAI.TextTemplatePath
	extractionCfg.VoiceTemplatePath = cfg.OpenAI.VoiceTemplatePath

	if cfg.Audio.MaxFileSizeBytes > 0 {
		extractionCfg.MaxAudioBytes = cfg.Audio.MaxFileSizeBytes
	}

	if len(cfg.Audio.SupportedFormats) > 0 {
		extractionCfg.AudioFormats = cfg.Audio.SupportedFormats
	}

	return extractionCfg
}
