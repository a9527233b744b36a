package tempearly

import (
	"fmt"
	"log/slog"
	"os"
)

// logger is the package-level diagnostic sink, a single logf shim
// backed by log/slog so callers can attach structured fields
// (component, template, line) instead of parsing a formatted string.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetLogger lets a host (e.g. cmd/tempearly) install its own slog
// handler, for example to route diagnostics to JSON or to a file.
func SetLogger(l *slog.Logger) { logger = l }

func logf(component, format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...), "component", component)
}
