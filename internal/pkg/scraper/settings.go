package scraper

import (
	"time"

	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/retry"
)

// Settings are the fixed parameters of one scrape. They are copied into
// the scraper at construction and never change afterwards.
type Settings struct {
	PageURL string
	Policy  retry.Policy

	// ElementTimeout bounds waits that have no timeout of their own.
	ElementTimeout    time.Duration
	DateDialogTimeout time.Duration
	PopoverTimeout    time.Duration
	AddLegTimeout     time.Duration
	LegCountTimeout   time.Duration
	LegCountPoll      time.Duration
	LegSettleDelay    time.Duration
	NoResultsTimeout  time.Duration
	ResultsTimeout    time.Duration

	// AutomaticLegs is how many legs a multi-city form shows by itself.
	AutomaticLegs int
	// CounterAttribute holds the displayed count of a passenger counter.
	CounterAttribute string
}

func DefaultSettings() Settings {
	return Settings{
		PageURL:           "https://www.google.com/flights",
		Policy:            retry.DefaultPolicy(),
		ElementTimeout:    30 * time.Second,
		DateDialogTimeout: 800 * time.Millisecond,
		PopoverTimeout:    time.Second,
		AddLegTimeout:     800 * time.Millisecond,
		LegCountTimeout:   5 * time.Second,
		LegCountPoll:      100 * time.Millisecond,
		LegSettleDelay:    500 * time.Millisecond,
		NoResultsTimeout:  10 * time.Second,
		ResultsTimeout:    30 * time.Second,
		AutomaticLegs:     2,
		CounterAttribute:  "aria-valuenow",
	}
}
