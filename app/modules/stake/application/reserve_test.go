package stakeservice

import (
	"context"
	"errors"
	"testing"

	stakedomain "github.com/apvc-club/stake-reservations/app/modules/stake/domain"
	stakeevents "github.com/apvc-club/stake-reservations/app/modules/stake/domain/events"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/config"
	"github.com/apvc-club/stake-reservations/internal/eventbus"
	"github.com/apvc-club/stake-reservations/internal/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *FakeStakeRepository, bus *FakeEventBus) Service {
	obs := observability.NewNoOp()
	payment := config.PaymentConfig{
		PixKey:         "chave-pix@apvc.club",
		WhatsAppNumber: "+5511999990000",
	}
	return NewStakeService(repo, bus, payment, obs.Logger, obs.Metrics, obs.Tracer)
}

func TestReserveSuccess(t *testing.T) {
	stakeID := uuid.New()
	tournamentID := uuid.New()
	birdTypeID := uuid.New()

	repo := &FakeStakeRepository{
		TournamentInfoForStakeFn: func(_ context.Context, id uuid.UUID) (*stakedb.TournamentInfo, error) {
			assert.Equal(t, stakeID, id)
			return &stakedb.TournamentInfo{ID: tournamentID, Name: "Copa Coleiro", PriceCents: 5000}, nil
		},
		ReserveFn: func(_ context.Context, id uuid.UUID, name, phone string) (*stakedb.Stake, error) {
			assert.Equal(t, "Maria Silva", name)
			assert.Equal(t, "+5511988887777", phone)
			return &stakedb.Stake{
				ID:             id,
				BirdTypeID:     birdTypeID,
				Number:         7,
				Status:         stakedomain.StatusPending,
				ReservantName:  name,
				ReservantPhone: phone,
			}, nil
		},
	}
	bus := &FakeEventBus{}

	result, err := newTestService(repo, bus).Reserve(context.Background(), stakeID, "  Maria Silva  ", "+5511988887777")
	require.NoError(t, err)

	assert.Equal(t, stakedomain.StatusPending, result.Stake.Status)
	assert.Equal(t, int64(5000), result.Payment.AmountCents)
	assert.Equal(t, "R$ 50.00", result.Payment.AmountDisplay)
	assert.Equal(t, "chave-pix@apvc.club", result.Payment.PixKey)
	assert.Contains(t, result.Payment.WhatsAppMessage, "estaca 7")
	assert.Contains(t, result.Payment.WhatsAppMessage, "Copa Coleiro")

	require.Len(t, bus.published, 1)
	assert.Equal(t, eventbus.TopicStakeReserved, bus.published[0].topic)
	payload, ok := bus.published[0].payload.(*stakeevents.StakeReservedPayload)
	require.True(t, ok)
	assert.Equal(t, 7, payload.Number)
	assert.Equal(t, tournamentID, payload.TournamentID)
	assert.Equal(t, "Maria Silva", payload.CustomerName)
}

func TestReserveValidation(t *testing.T) {
	tests := []struct {
		name          string
		customerName  string
		customerPhone string
		wantField     string
	}{
		{"missing name", "", "+5511988887777", "customer_name"},
		{"blank name", "   ", "+5511988887777", "customer_name"},
		{"missing phone", "Maria", "", "customer_phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repository hooks set: a storage call would panic the test.
			repo := &FakeStakeRepository{}
			bus := &FakeEventBus{}

			_, err := newTestService(repo, bus).Reserve(context.Background(), uuid.New(), tt.customerName, tt.customerPhone)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Empty(t, bus.published)
		})
	}
}

func TestReserveConflict(t *testing.T) {
	repo := &FakeStakeRepository{
		TournamentInfoForStakeFn: func(context.Context, uuid.UUID) (*stakedb.TournamentInfo, error) {
			return &stakedb.TournamentInfo{ID: uuid.New(), Name: "Copa", PriceCents: 5000}, nil
		},
		ReserveFn: func(context.Context, uuid.UUID, string, string) (*stakedb.Stake, error) {
			return nil, stakedb.ErrStakeNotAvailable
		},
	}
	bus := &FakeEventBus{}

	_, err := newTestService(repo, bus).Reserve(context.Background(), uuid.New(), "Maria", "+5511988887777")
	require.ErrorIs(t, err, stakedb.ErrStakeNotAvailable)
	assert.Empty(t, bus.published)
}

func TestReserveStakeNotFound(t *testing.T) {
	repo := &FakeStakeRepository{
		TournamentInfoForStakeFn: func(context.Context, uuid.UUID) (*stakedb.TournamentInfo, error) {
			return nil, stakedb.ErrStakeNotFound
		},
	}
	bus := &FakeEventBus{}

	_, err := newTestService(repo, bus).Reserve(context.Background(), uuid.New(), "Maria", "+5511988887777")
	require.ErrorIs(t, err, stakedb.ErrStakeNotFound)
}

func TestReserveEventFailureDoesNotFailReservation(t *testing.T) {
	repo := &FakeStakeRepository{
		TournamentInfoForStakeFn: func(context.Context, uuid.UUID) (*stakedb.TournamentInfo, error) {
			return &stakedb.TournamentInfo{ID: uuid.New(), Name: "Copa", PriceCents: 5000}, nil
		},
		ReserveFn: func(_ context.Context, id uuid.UUID, name, phone string) (*stakedb.Stake, error) {
			return &stakedb.Stake{ID: id, Number: 1, Status: stakedomain.StatusPending}, nil
		},
	}
	bus := &FakeEventBus{err: errors.New("bus down")}

	result, err := newTestService(repo, bus).Reserve(context.Background(), uuid.New(), "Maria", "+5511988887777")
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "50.00", FormatAmount(5000))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "123.45", FormatAmount(12345))
	assert.Equal(t, "0.00", FormatAmount(0))
}
