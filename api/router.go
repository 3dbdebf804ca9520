// Package api wires the HTTP routes of the spectrum server.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aria-lang/logan-kmers/api/handlers"
	"github.com/aria-lang/logan-kmers/api/middleware"
)

// Options configures NewRouter.
type Options struct {
	// MaxBodyBytes caps the size of a request body. Zero means no cap.
	MaxBodyBytes int64
	// Timeout bounds the handling of a single request. Zero means no
	// timeout.
	Timeout time.Duration
}

// NewRouter builds the server's handler tree.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if opts.Timeout > 0 {
		r.Use(chimiddleware.Timeout(opts.Timeout))
	}

	r.Get("/health", handlers.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", handlers.VersionHandler)

		r.Group(func(r chi.Router) {
			if opts.MaxBodyBytes > 0 {
				r.Use(chimiddleware.RequestSize(opts.MaxBodyBytes))
			}
			r.Post("/spectrum", handlers.SpectrumHandler)
		})
	})

	return r
}
