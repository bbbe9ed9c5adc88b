package integrationtests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	stakedomain "github.com/apvc-club/stake-reservations/app/modules/stake/domain"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentReserveSingleWinner(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, birdTypeID := createTournamentFixture(t, ctx, 5)

	stakes, err := testDB.StakeDB.ListByBirdType(ctx, birdTypeID)
	require.NoError(t, err)
	target := stakes[0]

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := testDB.StakeDB.Reserve(ctx, target.ID, gofakeit.Name(), gofakeit.Phone())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, stakedb.ErrStakeNotAvailable):
				conflicts++
			default:
				t.Errorf("unexpected reserve error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one attempt must win")
	assert.Equal(t, attempts-1, conflicts)

	got, err := testDB.StakeDB.GetByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, stakedomain.StatusPending, got.Status)
	assert.NotEmpty(t, got.ReservantName)
}

func TestReservationLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, birdTypeID := createTournamentFixture(t, ctx, 3)
	stakes, err := testDB.StakeDB.ListByBirdType(ctx, birdTypeID)
	require.NoError(t, err)
	target := stakes[0]

	// Reserve.
	reserved, err := testDB.StakeDB.Reserve(ctx, target.ID, "Maria Silva", "+5511988887777")
	require.NoError(t, err)
	assert.Equal(t, stakedomain.StatusPending, reserved.Status)
	assert.Equal(t, "Maria Silva", reserved.ReservantName)

	// Confirming records the amount and moves to confirmed.
	confirmed, err := testDB.StakeDB.ConfirmPayment(ctx, target.ID, 5000)
	require.NoError(t, err)
	assert.Equal(t, stakedomain.StatusConfirmed, confirmed.Status)

	// Confirming again is an invalid transition, not a silent no-op.
	_, err = testDB.StakeDB.ConfirmPayment(ctx, target.ID, 5000)
	require.ErrorIs(t, err, stakedb.ErrInvalidTransition)

	// Cancelling returns the stake to the pool with reservant fields cleared.
	cancelled, err := testDB.StakeDB.Cancel(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, stakedomain.StatusAvailable, cancelled.Status)
	assert.Empty(t, cancelled.ReservantName)
	assert.Empty(t, cancelled.ReservantPhone)

	// And it can be reserved again by someone else.
	again, err := testDB.StakeDB.Reserve(ctx, target.ID, "João Souza", "+5511977776666")
	require.NoError(t, err)
	assert.Equal(t, "João Souza", again.ReservantName)
}

func TestReserveUnknownStake(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err := testDB.StakeDB.Reserve(ctx, uuid.New(), "Maria", "+5511988887777")
	require.ErrorIs(t, err, stakedb.ErrStakeNotFound)
}

func TestCancelAvailableStakeRejected(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, birdTypeID := createTournamentFixture(t, ctx, 1)
	stakes, err := testDB.StakeDB.ListByBirdType(ctx, birdTypeID)
	require.NoError(t, err)

	_, err = testDB.StakeDB.Cancel(ctx, stakes[0].ID)
	require.ErrorIs(t, err, stakedb.ErrInvalidTransition)
}
