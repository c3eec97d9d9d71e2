package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/exception"
)

const internalErrorDetail = "An unexpected error occurred. Please try again later."

// ResponseWithBody is the common method to encode all response types to the client.
func ResponseWithBody(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}

	return nil
}

// ErrorResponse encodes the error envelope. Application errors keep their
// kind, status and message; anything else is logged and answered with a
// generic 500.
func ErrorResponse(ctx context.Context, err error, respWriter http.ResponseWriter) {
	var (
		appErr exception.ApplicationError
		status = http.StatusInternalServerError
		body   = internalError()
	)

	if errors.As(err, &appErr) && appErr.Kind != "" {
		status = appErr.StatusCode
		body = dto.ErrorResponse{
			Error:  string(appErr.Kind),
			Detail: appErr.Message,
		}

		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, appErr.Message, slog.Any("error", err))
		}
	} else {
		slog.ErrorContext(ctx, err.Error(), slog.Any("error", err))
	}

	writeEnvelope(respWriter, status, body)
}

func internalError() dto.ErrorResponse {
	return dto.ErrorResponse{
		Error:  string(exception.KindInternal),
		Detail: internalErrorDetail,
	}
}

func writeEnvelope(w http.ResponseWriter, status int, body dto.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(body)
}
