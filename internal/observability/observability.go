package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the logger, metrics registry, and tracer handed to
// every module.
type Observability struct {
	Logger   *slog.Logger
	Metrics  *Metrics
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// New builds the observability bundle. Logs are structured JSON on stdout.
func New(level string) *Observability {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Metrics:  NewMetrics(registry),
		Tracer:   otel.Tracer("stake-reservations"),
		Registry: registry,
	}
}

// NewNoOp returns a bundle safe for tests: discarded logs, throwaway registry.
func NewNoOp() *Observability {
	registry := prometheus.NewRegistry()
	return &Observability{
		Logger:   slog.New(slog.DiscardHandler),
		Metrics:  NewMetrics(registry),
		Tracer:   otel.Tracer("test"),
		Registry: registry,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
