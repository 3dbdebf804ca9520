// Command logan-kmers-server serves k-mer spectra over HTTP.
//
// Usage:
//
//	logan-kmers-server [flags]
//
// Endpoints:
//
//	GET  /health
//	GET  /api/version
//	POST /api/spectrum?k=&canonical=&optimized=&limit=&limit_policy=
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aria-lang/logan-kmers/api"
	"github.com/aria-lang/logan-kmers/internal/logging"
	"github.com/aria-lang/logan-kmers/pkg/logan"
)

type options struct {
	host    string
	port    int
	maxBody int64
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "logan-kmers-server",
		Short:         "HTTP service for weighted k-mer spectra",
		Version:       logan.Version(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(cmd.ErrOrStderr(), logging.Level(opts.verbose, false))
			return serve(opts)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.StringVar(&opts.host, "host", "localhost", "host to bind to")
	f.IntVar(&opts.port, "port", 8080, "port to listen on")
	f.Int64Var(&opts.maxBody, "max-body", 1<<30, "maximum request body size in bytes")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Minute, "maximum time to handle a request")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func serve(opts options) error {
	log := logging.Log

	router := api.NewRouter(api.Options{
		MaxBodyBytes: opts.maxBody,
		Timeout:      opts.timeout,
	})

	addr := fmt.Sprintf("%s:%d", opts.host, opts.port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		done <- server.Shutdown(ctx)
	}()

	log.Infof("logan-kmers %s listening on http://%s", logan.Version(), addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	if err := <-done; err != nil {
		return fmt.Errorf("could not gracefully shut down: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
