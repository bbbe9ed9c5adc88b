package tournamentdb

import (
	"context"

	"github.com/google/uuid"
)

// TournamentDB is the repository interface for tournament data operations.
type TournamentDB interface {
	Create(ctx context.Context, tournament *Tournament) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tournament, error)
	GetActive(ctx context.Context) (*Tournament, error)
	List(ctx context.Context) ([]Tournament, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
