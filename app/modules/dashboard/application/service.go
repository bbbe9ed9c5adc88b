package dashboardservice

import (
	"context"
	"fmt"
	"log/slog"

	dashboarddb "github.com/apvc-club/stake-reservations/app/modules/dashboard/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
)

// Service defines the dashboard read operations.
type Service interface {
	Stats(ctx context.Context) (*dashboarddb.Stats, error)
	StatusChart(ctx context.Context) ([]byte, error)
}

// DashboardServiceImpl serves the admin dashboard aggregates.
type DashboardServiceImpl struct {
	DashboardDB dashboarddb.DashboardDB
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(db dashboarddb.DashboardDB, logger *slog.Logger, tracer trace.Tracer) Service {
	return &DashboardServiceImpl{
		DashboardDB: db,
		logger:      logger,
		tracer:      tracer,
	}
}

// Stats returns the active tournament's aggregate figures.
func (s *DashboardServiceImpl) Stats(ctx context.Context) (*dashboarddb.Stats, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.stats")
	defer span.End()

	stats, err := s.DashboardDB.Stats(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to aggregate dashboard stats", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	if got := stats.Available + stats.Reserved + stats.Confirmed; got != stats.TotalStakes {
		// Should be impossible with a single-statement aggregate.
		return nil, fmt.Errorf("dashboard counts inconsistent: %d+%d+%d != %d",
			stats.Available, stats.Reserved, stats.Confirmed, stats.TotalStakes)
	}

	return stats, nil
}
