// Package logging configures the process-wide leveled logger.
package logging

import (
	"io"

	"github.com/shenwei356/go-logging"
)

// Log is shared by the commands and the HTTP middleware.
var Log = logging.MustGetLogger("logan-kmers")

var format = logging.MustStringFormatter(`%{time:15:04:05.000} [%{level:.4s}] %{message}`)

// Level picks INFO by default, DEBUG when verbose and WARNING when quiet.
func Level(verbose, quiet bool) logging.Level {
	switch {
	case quiet:
		return logging.WARNING
	case verbose:
		return logging.DEBUG
	default:
		return logging.INFO
	}
}

// Setup sends log output at or above level to w.
func Setup(w io.Writer, level logging.Level) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}
