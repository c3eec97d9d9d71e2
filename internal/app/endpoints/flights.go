package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
)

var ErrInvalidRequestType = errors.New("invalid type")

type FlightSearchService interface {
	SearchFlights(ctx context.Context, req dto.SearchRequest) ([]dto.FlightRecord, error)
	TextSearch(ctx context.Context, text string) ([]dto.FlightRecord, error)
	VoiceRecognition(ctx context.Context, upload dto.AudioUpload) (dto.VoiceSearchResponse, error)
	VoiceSearch(ctx context.Context, upload dto.AudioUpload) ([]dto.FlightRecord, error)
}

type FlightEndpoint struct {
	SearchFlights    endpoint.Endpoint
	TextSearch       endpoint.Endpoint
	VoiceRecognition endpoint.Endpoint
	VoiceSearch      endpoint.Endpoint
}

func MakeFlightEndpoint(service FlightSearchService) FlightEndpoint {
	return FlightEndpoint{
		SearchFlights:    makeSearchFlightsEndpoint(service),
		TextSearch:       makeTextSearchEndpoint(service),
		VoiceRecognition: makeVoiceRecognitionEndpoint(service),
		VoiceSearch:      makeVoiceSearchEndpoint(service),
	}
}

func makeSearchFlightsEndpoint(service FlightSearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchRequest)
		if !ok || request == nil {
			return nil, ErrInvalidRequestType
		}

		flights, err := service.SearchFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("flight search service: %w", err)
		}

		return flights, nil
	}
}

func makeTextSearchEndpoint(service FlightSearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.TextSearchRequest)
		if !ok || request == nil {
			return nil, ErrInvalidRequestType
		}

		flights, err := service.TextSearch(ctx, request.Text)
		if err != nil {
			return nil, fmt.Errorf("flight search service: %w", err)
		}

		return flights, nil
	}
}

func makeVoiceRecognitionEndpoint(service FlightSearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		upload, ok := req.(*dto.AudioUpload)
		if !ok || upload == nil {
			return nil, ErrInvalidRequestType
		}

		result, err := service.VoiceRecognition(ctx, *upload)
		if err != nil {
			return nil, fmt.Errorf("flight search service: %w", err)
		}

		return result, nil
	}
}

func makeVoiceSearchEndpoint(service FlightSearchService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		upload, ok := req.(*dto.AudioUpload)
		if !ok || upload == nil {
			return nil, ErrInvalidRequestType
		}

		flights, err := service.VoiceSearch(ctx, *upload)
		if err != nil {
			return nil, fmt.Errorf("flight search service: %w", err)
		}

		return flights, nil
	}
}
