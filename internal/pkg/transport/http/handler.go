package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/exception"
)

// AudioField is the multipart field carrying the recording.
const AudioField = "audio"

type DecodeRequestFunc func(r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc runs decode, endpoint and encode for one route. Any error
// is written with ErrorResponse.
func MakeHandlerFunc(ep endpoint.Endpoint, decode DecodeRequestFunc, encode EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := decode(r)
		if err != nil {
			ErrorResponse(ctx, err, w)
			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)
			return
		}

		if err := encode(ctx, w, response); err != nil {
			slog.ErrorContext(ctx, "failed to encode response", slog.String("error", err.Error()))
		}
	}
}

// DecodeRequest decodes a JSON body into T and runs its Bind.
func DecodeRequest[T any, PT interface {
	*T
	render.Binder
}](r *http.Request) (interface{}, error) {
	request := PT(new(T))

	if err := render.Bind(r, request); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, invalidRequest(fmt.Sprintf("invalid request body: %s", err))
	}

	return request, nil
}

// DecodeAudioUpload reads the audio file of a multipart form. Files bigger
// than maxMemory are spooled to disk by the standard library.
func DecodeAudioUpload(maxMemory int64) DecodeRequestFunc {
	return func(r *http.Request) (interface{}, error) {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, invalidRequest(fmt.Sprintf("invalid multipart form: %s", err))
		}

		file, header, err := r.FormFile(AudioField)
		if err != nil {
			return nil, invalidRequest(fmt.Sprintf("%s file is required", AudioField))
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read audio upload: %w", err)
		}

		return &dto.AudioUpload{
			Filename: header.Filename,
			Size:     header.Size,
			Data:     data,
		}, nil
	}
}

func invalidRequest(message string) error {
	return exception.ApplicationError{
		Kind:       exception.KindRequestValidation,
		StatusCode: http.StatusUnprocessableEntity,
		Message:    message,
	}
}
