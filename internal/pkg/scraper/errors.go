package scraper

import (
	"net/http"

	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/exception"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/retry"
)

// ErrScrapingFailed is returned once every attempt failed with a retryable error.
var ErrScrapingFailed = exception.ApplicationError{
	Kind:       exception.KindScraping,
	StatusCode: http.StatusInternalServerError,
	Message:    "failed to scrape flight data",
}

// infantRatioError carries the page's own message about infants on lap.
func infantRatioError(message string) error {
	return retry.MarkTerminal(exception.ApplicationError{
		Kind:       exception.KindAdultPerInfantsOnLap,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	})
}

// noFlightsError carries the page's own no-results message.
func noFlightsError(message string) error {
	return retry.MarkTerminal(exception.ApplicationError{
		Kind:       exception.KindNoFlightsFound,
		StatusCode: http.StatusNotFound,
		Message:    message,
	})
}

func scrapingFailed(cause error) error {
	err := ErrScrapingFailed
	err.Cause = cause

	return err
}
