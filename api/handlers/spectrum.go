package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/aria-lang/logan-kmers/internal/kmer"
	"github.com/aria-lang/logan-kmers/internal/logging"
	"github.com/aria-lang/logan-kmers/internal/sequence"
	"github.com/aria-lang/logan-kmers/pkg/logan"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// ConfigFromQuery builds a run configuration from query parameters k,
// canonical, optimized, limit and limit_policy. Missing parameters keep
// their defaults.
func ConfigFromQuery(q url.Values) (logan.Config, error) {
	cfg := logan.DefaultConfig()

	if v := q.Get("k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Errorf("invalid k %q", v)
		}
		cfg.K = k
	}
	for name, dst := range map[string]*bool{
		"canonical": &cfg.Canonical,
		"optimized": &cfg.OptimizedK31,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return cfg, errors.Errorf("invalid %s %q", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, errors.Errorf("invalid limit %q", v)
		}
		cfg.Limit = &limit
	}
	if v := q.Get("limit_policy"); v != "" {
		cfg.LimitPolicy = v
	}

	return cfg, cfg.Validate()
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var (
		kErr      *kmer.InvalidKError
		headerErr *sequence.MalformedHeaderError
		decErr    *sequence.DecompressionError
		sizeErr   *http.MaxBytesError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &sizeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &kErr), errors.As(err, &headerErr), errors.As(err, &decErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SpectrumHandler computes the spectrum of a FASTA request body, which may
// be gzip or zstd compressed. Counting stops when the request context is
// done.
func SpectrumHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := ConfigFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reader, err := sequence.NewReader(r.Body)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	defer reader.Close()

	result, err := logan.Run(cfg, sequence.WithContext(r.Context(), reader))
	if err != nil {
		logging.Log.Warningf("spectrum request failed: %v", err)
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// VersionHandler reports the server version.
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": logan.Version()})
}
