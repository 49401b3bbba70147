// Package rest exposes the back-office HTTP API: trip and passenger CRUD,
// the send-details dispatch endpoint, and the calendar views.
package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"traveldesk-service/internal/domain/repository"
	"traveldesk-service/internal/usecase"
	"traveldesk-service/pkg/logger"
)

// Server holds the handler dependencies.
type Server struct {
	trips    repository.TripRepository
	receipts repository.ReceiptRepository
	composer *usecase.NotificationComposer
	validate *validator.Validate
	logger   logger.Logger
}

// NewServer creates a new REST server
func NewServer(
	trips repository.TripRepository,
	receipts repository.ReceiptRepository,
	composer *usecase.NotificationComposer,
	logger logger.Logger,
) *Server {
	return &Server{
		trips:    trips,
		receipts: receipts,
		composer: composer,
		validate: validator.New(),
		logger:   logger,
	}
}

// Routes builds the chi router with all API endpoints, plus /health and
// /metrics.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.createTrip)
			r.Get("/", s.listTrips)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.getTrip)
				r.Patch("/", s.updateTrip)
				r.Delete("/", s.deleteTrip)

				r.Post("/send-details", s.sendDetails)
				r.Get("/receipts", s.listReceipts)

				r.Route("/passengers", func(r chi.Router) {
					r.Post("/", s.addPassenger)
					r.Patch("/{passengerID}", s.updatePassenger)
					r.Delete("/{passengerID}", s.removePassenger)
				})
			})
		})

		r.Get("/calendar", s.calendar)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	return r
}

// requestLogger logs one line per request with method, path, status and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"durationMs", time.Since(started).Milliseconds())
	})
}
