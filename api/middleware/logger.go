// Package middleware holds HTTP middleware for the spectrum server.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aria-lang/logan-kmers/internal/logging"
)

// Logger logs one line per request with status, size and latency.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			logging.Log.Infof("%s %s %d %dB %s reqid=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
				time.Since(start), chimiddleware.GetReqID(r.Context()))
		}()

		next.ServeHTTP(ww, r)
	})
}
