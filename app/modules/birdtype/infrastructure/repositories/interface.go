package birdtypedb

import (
	"context"

	"github.com/google/uuid"
)

// BirdTypeDB is the repository interface for bird-type data operations.
type BirdTypeDB interface {
	Create(ctx context.Context, birdType *BirdType) error
	GetByID(ctx context.Context, id uuid.UUID) (*BirdType, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]BirdType, error)
	ListWithCounts(ctx context.Context, tournamentID uuid.UUID) ([]BirdTypeWithCounts, error)
}
