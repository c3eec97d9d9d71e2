//go:build unit

package endpoints

import (
	"context"
	"errors"
	"testing"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	flights []dto.FlightRecord
	voice   dto.VoiceSearchResponse
	err     error
	text    string
}

func (s *stubService) SearchFlights(context.Context, dto.SearchRequest) ([]dto.FlightRecord, error) {
	return s.flights, s.err
}

func (s *stubService) TextSearch(_ context.Context, text string) ([]dto.FlightRecord, error) {
	s.text = text
	return s.flights, s.err
}

func (s *stubService) VoiceRecognition(context.Context, dto.AudioUpload) (dto.VoiceSearchResponse, error) {
	return s.voice, s.err
}

func (s *stubService) VoiceSearch(context.Context, dto.AudioUpload) ([]dto.FlightRecord, error) {
	return s.flights, s.err
}

func TestFlightEndpoint(t *testing.T) {
	ctx := context.Background()
	flights := []dto.FlightRecord{{Airline: "Delta", Price: "$612"}}

	t.Run("invalid_type", func(t *testing.T) {
		e := MakeFlightEndpoint(&stubService{})

		for _, ep := range []func(context.Context, interface{}) (interface{}, error){
			e.SearchFlights, e.TextSearch, e.VoiceRecognition, e.VoiceSearch,
		} {
			_, err := ep(ctx, "not a request")
			assert.ErrorIs(t, err, ErrInvalidRequestType)
		}
	})

	t.Run("search", func(t *testing.T) {
		e := MakeFlightEndpoint(&stubService{flights: flights})

		got, err := e.SearchFlights(ctx, &dto.SearchRequest{})
		require.NoError(t, err)
		assert.Equal(t, flights, got)
	})

	t.Run("text_search_passes_text", func(t *testing.T) {
		svc := &stubService{flights: flights}
		e := MakeFlightEndpoint(svc)

		_, err := e.TextSearch(ctx, &dto.TextSearchRequest{Text: "JFK to LHR"})
		require.NoError(t, err)
		assert.Equal(t, "JFK to LHR", svc.text)
	})

	t.Run("voice_recognition", func(t *testing.T) {
		want := dto.VoiceSearchResponse{Transcription: "to Paris", Confidence: "low"}
		e := MakeFlightEndpoint(&stubService{voice: want})

		got, err := e.VoiceRecognition(ctx, &dto.AudioUpload{Filename: "a.mp3"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("service_error_wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		e := MakeFlightEndpoint(&stubService{err: boom})

		_, err := e.VoiceSearch(ctx, &dto.AudioUpload{Filename: "a.mp3"})
		assert.ErrorIs(t, err, boom)
		assert.EqualError(t, err, "flight search service: boom")
	})
}
