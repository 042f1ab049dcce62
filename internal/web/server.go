// Package web serves the exammail upload, preview and send pages.
package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/exammail/middlewares"
	"github.com/dmitrymomot/exammail/pkg/dispatch"
	"github.com/dmitrymomot/exammail/pkg/health"
	"github.com/dmitrymomot/exammail/pkg/logger"
	"github.com/dmitrymomot/exammail/pkg/schedule"
	"github.com/dmitrymomot/exammail/pkg/workspace"
)

// DefaultMaxUploadSize bounds the multipart body of an upload.
const DefaultMaxUploadSize int64 = 10 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	store      workspace.Store
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	checks     health.Checks
	columns    schedule.Columns
	sheetName  string
	maxUpload  int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithColumns replaces the default column aliases.
func WithColumns(cols schedule.Columns) Option {
	return func(s *Server) { s.columns = cols }
}

// WithSheetName selects the workbook sheet to read.
func WithSheetName(name string) Option {
	return func(s *Server) { s.sheetName = name }
}

// WithMaxUploadSize bounds the upload body in bytes.
func WithMaxUploadSize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithHealthChecks adds readiness checks.
func WithHealthChecks(checks health.Checks) Option {
	return func(s *Server) { s.checks = checks }
}

// New creates a Server.
func New(store workspace.Store, dispatcher *dispatch.Dispatcher, opts ...Option) *Server {
	s := &Server{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger.NewNope(),
		columns:    schedule.DefaultColumns(),
		maxUpload:  DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.AccessLog(s.logger),
		middlewares.Recover(s.logger),
	)

	r.Get("/", s.index)
	r.Post("/uploads", s.upload)
	r.Route("/uploads/{id}", func(r chi.Router) {
		r.Get("/", s.show)
		r.Get("/preview", s.preview)
		r.Post("/send", s.send)
		r.Post("/delete", s.discard)
	})

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(s.checks, health.WithLogger(s.logger)))

	return r
}
