package stakeservice

import (
	"context"
	"fmt"
	"log/slog"

	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/config"
	"github.com/apvc-club/stake-reservations/internal/eventbus"
	"github.com/apvc-club/stake-reservations/internal/observability"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// StakeServiceImpl handles stake reservation logic.
type StakeServiceImpl struct {
	StakeDB  stakedb.StakeDB
	eventBus eventbus.EventBus
	payment  config.PaymentConfig
	logger   *slog.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer
}

// NewStakeService creates a new stake service.
func NewStakeService(
	db stakedb.StakeDB,
	eventBus eventbus.EventBus,
	payment config.PaymentConfig,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) Service {
	return &StakeServiceImpl{
		StakeDB:  db,
		eventBus: eventBus,
		payment:  payment,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// ListByBirdType returns the bird type's stakes ordered by number.
func (s *StakeServiceImpl) ListByBirdType(ctx context.Context, birdTypeID uuid.UUID) ([]stakedb.Stake, error) {
	ctx, span := s.tracer.Start(ctx, "stake.list_by_bird_type")
	defer span.End()

	stakes, err := s.StakeDB.ListByBirdType(ctx, birdTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes for bird type %s: %w", birdTypeID, err)
	}
	return stakes, nil
}
