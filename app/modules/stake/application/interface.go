package stakeservice

import (
	"context"

	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Service defines the stake reservation operations.
type Service interface {
	Reserve(ctx context.Context, stakeID uuid.UUID, customerName, customerPhone string) (*ReserveResult, error)
	ConfirmPayment(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error)
	CancelReservation(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error)
	ListByBirdType(ctx context.Context, birdTypeID uuid.UUID) ([]stakedb.Stake, error)
	ExportWorkbook(ctx context.Context, tournamentID uuid.UUID) (*excelize.File, error)
}
