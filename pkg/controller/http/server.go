package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

// CatalogReloader re-materializes and publishes the survey catalog
type CatalogReloader interface {
	Reload(ctx context.Context)
}

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	reloader CatalogReloader
	gatherer prometheus.Gatherer
}

type Options func(*Server)

// WithCatalogReloader enables POST /api/survey/reload
func WithCatalogReloader(reloader CatalogReloader) Options {
	return func(s *Server) {
		s.reloader = reloader
	}
}

// WithGatherer sets the registry served on /metrics. The default registry
// is used otherwise.
func WithGatherer(g prometheus.Gatherer) Options {
	return func(s *Server) {
		s.gatherer = g
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		uc:       uc,
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/survey", s.getSurvey)
		if s.reloader != nil {
			r.Post("/survey/reload", s.reloadSurvey)
		}

		r.Get("/assessments/{assessId}/results", s.getAssessmentResults)

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", s.createCustomer)
			r.Get("/", s.listCustomers)

			r.Route("/{custId}", func(r chi.Router) {
				r.Get("/", s.getCustomer)
				r.Get("/report", s.getReport)
				r.Get("/application-assessment-summary", s.getApplicationAssessmentSummary)
				r.Get("/application-assessment-progress", s.getProgress)
				r.Get("/dependency-tree", s.getDependencyTree)

				r.Route("/applications", func(r chi.Router) {
					r.Post("/", s.createApplication)
					r.Get("/", s.listApplications)

					r.Route("/{appId}", func(r chi.Router) {
						r.Get("/", s.getApplication)
						r.Post("/review", s.setReview)
						r.Post("/assessments", s.createAssessment)
						r.Get("/assessments/{assessId}/summary", s.getAssessmentSummary)
						r.Get("/assessments/{assessId}/process", s.getAssessmentProcess)
					})
				})
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger attaches a logger carrying the request ID to the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logging.With(r.Context(), logger)))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
