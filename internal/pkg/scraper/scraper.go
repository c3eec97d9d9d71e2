// Package scraper drives the flights page: it fills the search form,
// reads the result rows and retries the whole run on transient failures.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/browser"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/exception"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/logger"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/metrics"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/retry"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/session"
)

type Scraper struct {
	settings  Settings
	launcher  browser.Launcher
	limiter   session.Limiter
	metrics   *metrics.Metrics
	form      *FormFiller
	extractor *Extractor
}

// New builds a scraper. limiter and m may be nil.
func New(settings Settings, launcher browser.Launcher, limiter session.Limiter, m *metrics.Metrics) *Scraper {
	return &Scraper{
		settings:  settings,
		launcher:  launcher,
		limiter:   limiter,
		metrics:   m,
		form:      NewFormFiller(settings),
		extractor: NewExtractor(settings),
	}
}

// Search runs one search end to end in a fresh browser session per attempt.
// Page verdicts such as no results end the search at once; any other
// failure is retried until the policy gives up.
func (s *Scraper) Search(ctx context.Context, req dto.SearchRequest) ([]dto.FlightRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	var (
		flights  []dto.FlightRecord
		terminal bool
	)

	err := retry.Do(ctx, s.settings.Policy, func(ctx context.Context, attempt int) error {
		ctx = logger.WithAttempt(ctx, attempt)

		slog.InfoContext(ctx, "scrape attempt started", "ticket_type", req.TicketType)

		result, err := s.attempt(ctx, req)
		if err != nil {
			class := retry.ClassOf(err)
			terminal = class == retry.Terminal
			s.metrics.ObserveAttempt(class.String())

			return err
		}

		s.metrics.ObserveAttempt(metrics.OutcomeSuccess)
		flights = result

		return nil
	}, func(err error, attempt int, wait time.Duration) {
		slog.WarnContext(logger.WithAttempt(ctx, attempt), "scrape attempt failed, retrying",
			"error", err, "wait", wait)
	})

	switch {
	case err == nil:
		s.metrics.ObserveSearch("success", time.Since(start))
		return flights, nil
	case terminal:
		s.metrics.ObserveSearch(string(exception.KindOf(err)), time.Since(start))
		slog.InfoContext(ctx, "search answered by page", "error", err)
		return nil, err
	default:
		s.metrics.ObserveSearch(string(exception.KindScraping), time.Since(start))
		slog.ErrorContext(ctx, "scrape attempts exhausted", "error", err)
		return nil, scrapingFailed(err)
	}
}

func (s *Scraper) attempt(ctx context.Context, req dto.SearchRequest) ([]dto.FlightRecord, error) {
	if s.limiter != nil {
		release, err := s.limiter.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	sess, err := s.launcher.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}

	s.metrics.SessionOpened()

	defer func() {
		if err := sess.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close browser session", "error", err)
		}
		s.metrics.SessionClosed()
	}()

	page := sess.Page()

	if err := page.Navigate(ctx, s.settings.PageURL); err != nil {
		return nil, err
	}

	if err := s.form.Fill(ctx, page, req); err != nil {
		return nil, err
	}

	return s.extractor.Extract(ctx, page)
}
