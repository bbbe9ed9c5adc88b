package integrationtests

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, birdTypeID := createTournamentFixture(t, ctx, 10)
	stakes, err := testDB.StakeDB.ListByBirdType(ctx, birdTypeID)
	require.NoError(t, err)

	// Reserve four, confirm two of them.
	for i := 0; i < 4; i++ {
		_, err := testDB.StakeDB.Reserve(ctx, stakes[i].ID, gofakeit.Name(), gofakeit.Phone())
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := testDB.StakeDB.ConfirmPayment(ctx, stakes[i].ID, 5000)
		require.NoError(t, err)
	}

	stats, err := testDB.DashboardDB.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalStakes)
	assert.Equal(t, 6, stats.Available)
	assert.Equal(t, 2, stats.Reserved)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, int64(10000), stats.TotalRevenueCents)
	assert.Equal(t, stats.TotalStakes, stats.Available+stats.Reserved+stats.Confirmed)
}

func TestDashboardStatsOnlyCoversActiveTournament(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// The older tournament loses its active flag to the newer one.
	createTournamentFixture(t, ctx, 7)
	createTournamentFixture(t, ctx, 3)

	stats, err := testDB.DashboardDB.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalStakes)
}

func TestBirdTypeCounts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tournamentID, birdTypeID := createTournamentFixture(t, ctx, 5)
	stakes, err := testDB.StakeDB.ListByBirdType(ctx, birdTypeID)
	require.NoError(t, err)

	_, err = testDB.StakeDB.Reserve(ctx, stakes[0].ID, gofakeit.Name(), gofakeit.Phone())
	require.NoError(t, err)

	rows, err := testDB.BirdTypeDB.ListWithCounts(ctx, tournamentID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].StakeCount)
	assert.Equal(t, 4, rows[0].AvailableCount)
}

func TestSingleActiveTournament(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	firstID, _ := createTournamentFixture(t, ctx, 1)
	secondID, _ := createTournamentFixture(t, ctx, 1)

	active, err := testDB.TournamentDB.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, secondID, active.ID)

	first, err := testDB.TournamentDB.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.False(t, first.Active)
}
