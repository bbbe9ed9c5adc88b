package birdtypeservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	birdtypedb "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/repositories"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// CreateInput adds a category to an existing tournament and provisions its
// numbered stakes.
type CreateInput struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	StakeCount   int       `json:"stake_count"`
}

// Service defines the bird-type operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*birdtypedb.BirdType, error)
	Get(ctx context.Context, id uuid.UUID) (*birdtypedb.BirdType, error)
	ListWithCounts(ctx context.Context, tournamentID uuid.UUID) ([]birdtypedb.BirdTypeWithCounts, error)
}

// BirdTypeServiceImpl handles bird-type category logic.
type BirdTypeServiceImpl struct {
	BirdTypeDB birdtypedb.BirdTypeDB
	StakeDB    stakedb.StakeDB
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewBirdTypeService creates a new bird-type service.
func NewBirdTypeService(
	db birdtypedb.BirdTypeDB,
	stakeDB stakedb.StakeDB,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	return &BirdTypeServiceImpl{
		BirdTypeDB: db,
		StakeDB:    stakeDB,
		logger:     logger,
		tracer:     tracer,
	}
}

// Create adds the category and seeds its stakes 1..StakeCount, all available.
func (s *BirdTypeServiceImpl) Create(ctx context.Context, input CreateInput) (*birdtypedb.BirdType, error) {
	ctx, span := s.tracer.Start(ctx, "birdtype.create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("bird type name is required")
	}
	if input.TournamentID == uuid.Nil {
		return nil, fmt.Errorf("tournament ID is required")
	}
	if input.StakeCount <= 0 {
		return nil, fmt.Errorf("stake count must be positive")
	}

	birdType := &birdtypedb.BirdType{
		ID:           uuid.New(),
		TournamentID: input.TournamentID,
		Name:         input.Name,
		Color:        input.Color,
	}
	if err := s.BirdTypeDB.Create(ctx, birdType); err != nil {
		return nil, err
	}
	if err := s.StakeDB.SeedForBirdType(ctx, birdType.ID, input.StakeCount); err != nil {
		return nil, fmt.Errorf("failed to seed stakes: %w", err)
	}

	s.logger.InfoContext(ctx, "Bird type created",
		slog.String("bird_type_id", birdType.ID.String()),
		slog.String("name", birdType.Name),
		slog.Int("stake_count", input.StakeCount),
	)
	return birdType, nil
}

// Get retrieves a bird type with its tournament loaded.
func (s *BirdTypeServiceImpl) Get(ctx context.Context, id uuid.UUID) (*birdtypedb.BirdType, error) {
	return s.BirdTypeDB.GetByID(ctx, id)
}

// ListWithCounts returns the tournament's categories with stake counts from a
// single query.
func (s *BirdTypeServiceImpl) ListWithCounts(ctx context.Context, tournamentID uuid.UUID) ([]birdtypedb.BirdTypeWithCounts, error) {
	ctx, span := s.tracer.Start(ctx, "birdtype.list_with_counts")
	defer span.End()

	return s.BirdTypeDB.ListWithCounts(ctx, tournamentID)
}
