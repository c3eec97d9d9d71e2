//go:build unit

package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/config"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/retry"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/scraper"
	"github.com/stretchr/testify/assert"
)

func TestScraperSettings(t *testing.T) {
	cfg := &config.Config{Scraper: config.Scraper{
		PageURL:           "https://www.google.com/flights",
		MaxAttempts:       5,
		BackoffInitial:    4 * time.Second,
		BackoffMax:        10 * time.Second,
		BackoffMultiplier: 2,
		ElementTimeout:    30 * time.Second,
		NoResultsTimeout:  10 * time.Second,
		ResultsTimeout:    30 * time.Second,
		DateDialogTimeout: 800 * time.Millisecond,
		PopoverTimeout:    time.Second,
		LegCountTimeout:   5 * time.Second,
		LegSettleDelay:    500 * time.Millisecond,
	}}

	if diff := cmp.Diff(scraper.DefaultSettings(), scraperSettings(cfg)); diff != "" {
		t.Fatalf("scraperSettings() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, retry.DefaultPolicy(), scraperSettings(cfg).Policy)
}

func TestExtractionConfig(t *testing.T) {
	cfg := &config.Config{
		OpenAI: config.OpenAI{ChatModel: "gpt-4o", TranscriptionModel: "whisper-1", Temperature: 0.2},
		Audio:  config.Audio{SupportedFormats: []string{"wav"}},
	}

	got := extractionConfig(cfg)

	assert.Equal(t, "gpt-4o", got.ChatModel)
	assert.Equal(t, float32(0.2), got.Temperature)
	assert.Equal(t, []string{"wav"}, got.AudioFormats)
	assert.Equal(t, int64(25*1024*1024), got.MaxAudioBytes)
}

func TestSearchFlags_Request(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		flags := searchFlags{
			departure:     []string{"JFK"},
			destination:   []string{"LHR"},
			departureDate: []string{"2026-03-15"},
			returnDate:    "2026-03-22",
			ticketType:    "Round Trip",
			flightType:    "Business",
			adults:        2,
			infantsLap:    1,
		}

		returnDate := "2026-03-22"
		want := dto.SearchRequest{
			Departure:     dto.StringList{"JFK"},
			Destination:   dto.StringList{"LHR"},
			DepartureDate: dto.StringList{"2026-03-15"},
			ReturnDate:    &returnDate,
			TicketType:    dto.TicketTypeRoundTrip,
			FlightType:    dto.FlightTypeBusiness,
			Passengers: dto.Passengers{
				dto.PassengerAdult:      2,
				dto.PassengerChildren:   0,
				dto.PassengerInfantSeat: 0,
				dto.PassengerInfantLap:  1,
			},
		}

		if diff := cmp.Diff(want, flags.request()); diff != "" {
			t.Fatalf("request() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		got := searchFlags{adults: 1}.request()

		assert.Equal(t, dto.TicketTypeOneWay, got.TicketType)
		assert.Equal(t, dto.FlightTypeEconomy, got.FlightType)
		assert.Nil(t, got.ReturnDate)
	})
}
