package stakedb

import (
	"context"

	"github.com/google/uuid"
)

// StakeDB is the repository interface for stake and reservation operations.
type StakeDB interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Stake, error)
	ListByBirdType(ctx context.Context, birdTypeID uuid.UUID) ([]Stake, error)
	Reserve(ctx context.Context, stakeID uuid.UUID, customerName, customerPhone string) (*Stake, error)
	ConfirmPayment(ctx context.Context, stakeID uuid.UUID, amountCents int64) (*Stake, error)
	Cancel(ctx context.Context, stakeID uuid.UUID) (*Stake, error)
	TournamentInfoForStake(ctx context.Context, stakeID uuid.UUID) (*TournamentInfo, error)
	ListForExport(ctx context.Context, tournamentID uuid.UUID) ([]ExportRow, error)
	SeedForBirdType(ctx context.Context, birdTypeID uuid.UUID, count int) error
}
