//go:build unit

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/exception"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockField struct {
	scraper   *MockFlightScraper
	extractor *MockSearchExtractor
}

func newMocks(t *testing.T) (mockField, *FlightSearchService) {
	m := mockField{
		scraper:   NewMockFlightScraper(t),
		extractor: NewMockSearchExtractor(t),
	}

	return m, NewFlightSearchService(m.scraper, m.extractor)
}

var (
	oneWay = dto.SearchRequest{
		Departure:     dto.StringList{"JFK"},
		Destination:   dto.StringList{"LHR"},
		DepartureDate: dto.StringList{"2026-03-15"},
		TicketType:    dto.TicketTypeOneWay,
		FlightType:    dto.FlightTypeEconomy,
		Passengers:    dto.Passengers{dto.PassengerAdult: 1},
	}

	flights = []dto.FlightRecord{
		{Airline: "Delta", DepartureTime: "7:00 AM", ArrivalTime: "7:15 PM", Duration: "7 hr 15 min", Stops: "Nonstop", Price: "$612"},
	}

	noFlights = exception.ApplicationError{
		Kind:       exception.KindNoFlightsFound,
		Message:    "No flights found for these dates",
		StatusCode: http.StatusNotFound,
	}
)

func TestFlightSearchService_SearchFlights(t *testing.T) {
	_ = dto.InitValidator()

	searchFlights := func(
		setupMock func(m mockField),
		want []dto.FlightRecord,
		wantErr error,
	) func(t *testing.T) {
		return func(t *testing.T) {
			m, s := newMocks(t)
			setupMock(m)

			got, err := s.SearchFlights(context.Background(), oneWay)

			if wantErr != nil {
				assert.ErrorIs(t, err, wantErr)
				return
			}

			assert.NoError(t, err)

			diff := cmp.Diff(want, got)
			if diff != "" {
				t.Fatalf("SearchFlights() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("success", searchFlights(
		func(m mockField) {
			m.scraper.On("Search", mock.Anything, oneWay).Return(flights, nil).Once()
		},
		flights,
		nil,
	))

	t.Run("no_flights_found", searchFlights(
		func(m mockField) {
			m.scraper.On("Search", mock.Anything, oneWay).Return(nil, noFlights).Once()
		},
		nil,
		noFlights,
	))
}

func TestFlightSearchService_TextSearch(t *testing.T) {
	_ = dto.InitValidator()
	ctx := context.Background()

	t.Run("defaults_applied", func(t *testing.T) {
		m, s := newMocks(t)

		extracted := dto.SearchRequest{
			Departure:     dto.StringList{"JFK"},
			Destination:   dto.StringList{"LHR"},
			DepartureDate: dto.StringList{"2026-03-15"},
		}
		m.extractor.On("ExtractFromText", ctx, "JFK to London March 15").Return(extracted, nil).Once()
		m.scraper.On("Search", ctx, oneWay).Return(flights, nil).Once()

		got, err := s.TextSearch(ctx, "JFK to London March 15")
		assert.NoError(t, err)
		assert.Equal(t, flights, got)
	})

	t.Run("extraction_error", func(t *testing.T) {
		m, s := newMocks(t)

		empty := exception.ApplicationError{
			Kind:       exception.KindEmptyTextInput,
			Message:    "Text input is empty or contains only whitespace",
			StatusCode: http.StatusBadRequest,
		}
		m.extractor.On("ExtractFromText", ctx, "").Return(dto.SearchRequest{}, empty).Once()

		_, err := s.TextSearch(ctx, "")
		assert.ErrorIs(t, err, empty)
	})

	t.Run("incomplete_request_is_rejected", func(t *testing.T) {
		m, s := newMocks(t)

		extracted := dto.SearchRequest{
			Departure:     dto.StringList{"JFK", "LHR"},
			Destination:   dto.StringList{"LHR", "CDG"},
			DepartureDate: dto.StringList{"2026-03-15"},
			TicketType:    dto.TicketTypeMultiCity,
		}
		m.extractor.On("ExtractFromText", ctx, "multi city").Return(extracted, nil).Once()

		_, err := s.TextSearch(ctx, "multi city")

		var appErr exception.ApplicationError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, exception.KindRequestValidation, appErr.Kind)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
		assert.Equal(t, "departure_date must contain at least 2 values for multi-city tickets", appErr.Message)
	})
}

func TestFlightSearchService_Voice(t *testing.T) {
	_ = dto.InitValidator()
	ctx := context.Background()
	upload := dto.AudioUpload{Filename: "trip.mp3", Size: 3, Data: []byte("abc")}

	recognized := dto.VoiceSearchResponse{
		Transcription: "one way from JFK to London on March 15",
		Summary:       "One way JFK to LHR",
		ExtractedData: dto.SearchRequest{
			Departure:     dto.StringList{"JFK"},
			Destination:   dto.StringList{"LHR"},
			DepartureDate: dto.StringList{"2026-03-15"},
			TicketType:    dto.TicketTypeOneWay,
		},
		Confidence:    "high",
		MissingFields: []string{},
	}

	t.Run("recognition", func(t *testing.T) {
		m, s := newMocks(t)
		m.extractor.On("RecognizeVoice", ctx, upload).Return(recognized, nil).Once()

		got, err := s.VoiceRecognition(ctx, upload)
		assert.NoError(t, err)

		diff := cmp.Diff(recognized, got)
		if diff != "" {
			t.Fatalf("VoiceRecognition() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("search", func(t *testing.T) {
		m, s := newMocks(t)
		m.extractor.On("RecognizeVoice", ctx, upload).Return(recognized, nil).Once()
		m.scraper.On("Search", ctx, oneWay).Return(flights, nil).Once()

		got, err := s.VoiceSearch(ctx, upload)
		assert.NoError(t, err)
		assert.Equal(t, flights, got)
	})

	t.Run("search_recognition_error", func(t *testing.T) {
		m, s := newMocks(t)

		tooLarge := exception.ApplicationError{
			Kind:       exception.KindAudioFileTooLarge,
			Message:    "Audio file size (30.00MB) exceeds maximum allowed size (25MB)",
			StatusCode: http.StatusBadRequest,
		}
		m.extractor.On("RecognizeVoice", ctx, upload).Return(dto.VoiceSearchResponse{}, tooLarge).Once()

		_, err := s.VoiceSearch(ctx, upload)
		assert.ErrorIs(t, err, tooLarge)
	})

	t.Run("search_round_trip_without_return_date", func(t *testing.T) {
		m, s := newMocks(t)

		roundTrip := recognized
		roundTrip.ExtractedData.TicketType = dto.TicketTypeRoundTrip
		m.extractor.On("RecognizeVoice", ctx, upload).Return(roundTrip, nil).Once()

		_, err := s.VoiceSearch(ctx, upload)
		assert.Equal(t, exception.KindRequestValidation, exception.KindOf(err))
	})
}
