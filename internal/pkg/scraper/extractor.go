package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/browser"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/sanitize"
)

// Extractor reads the results page once the search was submitted.
type Extractor struct {
	settings Settings
}

func NewExtractor(settings Settings) *Extractor {
	return &Extractor{settings: settings}
}

// Extract returns the result rows in page order.
func (e *Extractor) Extract(ctx context.Context, page browser.Page) ([]dto.FlightRecord, error) {
	if err := e.checkNoResults(ctx, page); err != nil {
		return nil, err
	}

	rows := page.Locate(browser.TargetResultRow)

	if err := rows.First().WaitVisible(ctx, e.settings.ResultsTimeout); err != nil {
		return nil, fmt.Errorf("results did not load: %w", err)
	}

	elements, err := rows.All(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]dto.FlightRecord, len(elements))

	g, gctx := errgroup.WithContext(ctx)
	for i, row := range elements {
		i, row := i, row
		g.Go(func() error {
			record, err := readRow(gctx, row)
			if err != nil {
				return fmt.Errorf("failed to read row %d: %w", i, err)
			}

			records[i] = record

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "flights extracted", "count", len(records))

	return records, nil
}

// checkNoResults fails with the page's message when the no-results notice
// shows up in time. A notice that never shows means results exist.
func (e *Extractor) checkNoResults(ctx context.Context, page browser.Page) error {
	notice := page.Locate(browser.TargetNoResults).First()

	if err := notice.WaitVisible(ctx, e.settings.NoResultsTimeout); err != nil {
		return nil
	}

	message, err := notice.Text(ctx)
	if err != nil || message == nil {
		return nil
	}

	if text := strings.TrimSpace(*message); text != "" {
		return noFlightsError(text)
	}

	return nil
}

type field struct {
	target   browser.Target
	sanitize func(string) string
}

var rowFields = []field{
	{browser.TargetAirline, sanitize.Text},
	{browser.TargetDepartureTime, sanitize.Text},
	{browser.TargetArrivalTime, sanitize.ArrivalTime},
	{browser.TargetDuration, sanitize.Text},
	{browser.TargetStops, sanitize.Text},
	{browser.TargetPrice, sanitize.Text},
}

// readRow reads every field of one row. A missing field reads as "".
func readRow(ctx context.Context, row browser.Element) (dto.FlightRecord, error) {
	values := make(map[browser.Target]string, len(rowFields))

	for _, f := range rowFields {
		text, err := row.Locate(f.target).First().Text(ctx)
		if err != nil {
			return dto.FlightRecord{}, fmt.Errorf("failed to read %s: %w", f.target, err)
		}

		values[f.target] = sanitize.Optional(text, f.sanitize)
	}

	return dto.FlightRecord{
		Airline:       values[browser.TargetAirline],
		DepartureTime: values[browser.TargetDepartureTime],
		ArrivalTime:   values[browser.TargetArrivalTime],
		Duration:      values[browser.TargetDuration],
		Stops:         values[browser.TargetStops],
		Price:         values[browser.TargetPrice],
	}, nil
}
