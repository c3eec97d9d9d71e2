package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
)

type FlightScraper interface {
	Search(ctx context.Context, req dto.SearchRequest) ([]dto.FlightRecord, error)
}

type SearchExtractor interface {
	ExtractFromText(ctx context.Context, text string) (dto.SearchRequest, error)
	RecognizeVoice(ctx context.Context, upload dto.AudioUpload) (dto.VoiceSearchResponse, error)
}

type FlightSearchService struct {
	Scraper   FlightScraper
	Extractor SearchExtractor
}

func NewFlightSearchService(scraper FlightScraper, extractor SearchExtractor) *FlightSearchService {
	return &FlightSearchService{
		Scraper:   scraper,
		Extractor: extractor,
	}
}

// SearchFlights scrapes the flights matching a structured request.
// SearchFlights godoc
// @Summary      Search flights
// @Tags         Flights
// @Param        request  body      dto.SearchRequest  true  "Search Request"
// @Success      200      {array}   dto.FlightRecord
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/flights/search [post]
func (s *FlightSearchService) SearchFlights(ctx context.Context, req dto.SearchRequest) ([]dto.FlightRecord, error) {
	flights, err := s.Scraper.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}

	slog.InfoContext(ctx, "flights found", slog.Int("count", len(flights)))

	return flights, nil
}

// TextSearch extracts a request from free text and searches it.
// @Router       /api/v1/flights/text/search [post]
func (s *FlightSearchService) TextSearch(ctx context.Context, text string) ([]dto.FlightRecord, error) {
	req, err := s.Extractor.ExtractFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract search from text: %w", err)
	}

	return s.searchExtracted(ctx, req)
}

// VoiceRecognition returns the structured reading of a recording without searching.
// @Router       /api/v1/flights/voice/recognition [post]
func (s *FlightSearchService) VoiceRecognition(ctx context.Context, upload dto.AudioUpload) (dto.VoiceSearchResponse, error) {
	result, err := s.Extractor.RecognizeVoice(ctx, upload)
	if err != nil {
		return dto.VoiceSearchResponse{}, fmt.Errorf("failed to recognize voice: %w", err)
	}

	return result, nil
}

// VoiceSearch recognizes a recording and searches the extracted request.
// @Router       /api/v1/flights/voice/search [post]
func (s *FlightSearchService) VoiceSearch(ctx context.Context, upload dto.AudioUpload) ([]dto.FlightRecord, error) {
	result, err := s.VoiceRecognition(ctx, upload)
	if err != nil {
		return nil, err
	}

	return s.searchExtracted(ctx, result.ExtractedData)
}

// searchExtracted fills the defaults a model may leave out and rejects
// requests it could not complete before any browser work starts.
func (s *FlightSearchService) searchExtracted(ctx context.Context, req dto.SearchRequest) ([]dto.FlightRecord, error) {
	req.ApplyDefaults()

	if err := req.Validate(); err != nil {
		slog.WarnContext(ctx, "extracted search request is invalid", slog.String("error", err.Error()))
		return nil, fmt.Errorf("extracted search request: %w", err)
	}

	return s.SearchFlights(ctx, req)
}
