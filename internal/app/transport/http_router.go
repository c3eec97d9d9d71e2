package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/config"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/endpoints"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/metrics"
	httptransport "github.com/ijalalfrz/flight-scraper-service/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
	m *metrics.Metrics,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if cfg.Metrics.Enabled {
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	decodeAudio := httptransport.DecodeAudioUpload(cfg.Audio.MaxFileSizeBytes)

	router.Route("/api/v1/flights", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Metrics(m),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/search", httptransport.MakeHandlerFunc(
			endpts.FlightEndpoint.SearchFlights,
			httptransport.DecodeRequest[dto.SearchRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/text/search", httptransport.MakeHandlerFunc(
			endpts.FlightEndpoint.TextSearch,
			httptransport.DecodeRequest[dto.TextSearchRequest],
			httptransport.ResponseWithBody,
		))

		router.Post("/voice/recognition", httptransport.MakeHandlerFunc(
			endpts.FlightEndpoint.VoiceRecognition,
			decodeAudio,
			httptransport.ResponseWithBody,
		))

		router.Post("/voice/search", httptransport.MakeHandlerFunc(
			endpts.FlightEndpoint.VoiceSearch,
			decodeAudio,
			httptransport.ResponseWithBody,
		))
	})

	return router
}
