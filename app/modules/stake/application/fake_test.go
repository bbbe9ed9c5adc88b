package stakeservice

import (
	"context"

	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// FakeStakeRepository implements stakedb.StakeDB with per-method hooks.
type FakeStakeRepository struct {
	GetByIDFn                func(ctx context.Context, id uuid.UUID) (*stakedb.Stake, error)
	ListByBirdTypeFn         func(ctx context.Context, birdTypeID uuid.UUID) ([]stakedb.Stake, error)
	ReserveFn                func(ctx context.Context, stakeID uuid.UUID, customerName, customerPhone string) (*stakedb.Stake, error)
	ConfirmPaymentFn         func(ctx context.Context, stakeID uuid.UUID, amountCents int64) (*stakedb.Stake, error)
	CancelFn                 func(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error)
	TournamentInfoForStakeFn func(ctx context.Context, stakeID uuid.UUID) (*stakedb.TournamentInfo, error)
	ListForExportFn          func(ctx context.Context, tournamentID uuid.UUID) ([]stakedb.ExportRow, error)
	SeedForBirdTypeFn        func(ctx context.Context, birdTypeID uuid.UUID, count int) error
}

func (f *FakeStakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*stakedb.Stake, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *FakeStakeRepository) ListByBirdType(ctx context.Context, birdTypeID uuid.UUID) ([]stakedb.Stake, error) {
	return f.ListByBirdTypeFn(ctx, birdTypeID)
}

func (f *FakeStakeRepository) Reserve(ctx context.Context, stakeID uuid.UUID, customerName, customerPhone string) (*stakedb.Stake, error) {
	return f.ReserveFn(ctx, stakeID, customerName, customerPhone)
}

func (f *FakeStakeRepository) ConfirmPayment(ctx context.Context, stakeID uuid.UUID, amountCents int64) (*stakedb.Stake, error) {
	return f.ConfirmPaymentFn(ctx, stakeID, amountCents)
}

func (f *FakeStakeRepository) Cancel(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error) {
	return f.CancelFn(ctx, stakeID)
}

func (f *FakeStakeRepository) TournamentInfoForStake(ctx context.Context, stakeID uuid.UUID) (*stakedb.TournamentInfo, error) {
	return f.TournamentInfoForStakeFn(ctx, stakeID)
}

func (f *FakeStakeRepository) ListForExport(ctx context.Context, tournamentID uuid.UUID) ([]stakedb.ExportRow, error) {
	return f.ListForExportFn(ctx, tournamentID)
}

func (f *FakeStakeRepository) SeedForBirdType(ctx context.Context, birdTypeID uuid.UUID, count int) error {
	return f.SeedForBirdTypeFn(ctx, birdTypeID, count)
}

type publishedEvent struct {
	topic   string
	payload interface{}
}

// FakeEventBus records published events.
type FakeEventBus struct {
	published []publishedEvent
	err       error
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedEvent{topic: topic, payload: payload})
	return nil
}

func (f *FakeEventBus) Subscriber() message.Subscriber { return nil }

func (f *FakeEventBus) Close() error { return nil }
