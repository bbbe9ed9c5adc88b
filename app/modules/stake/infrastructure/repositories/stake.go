package stakedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	stakedomain "github.com/apvc-club/stake-reservations/app/modules/stake/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StakeDBImpl is the bun-backed repository for stakes and their reservations.
type StakeDBImpl struct {
	DB *bun.DB
}

// GetByID retrieves a stake by its ID.
func (db *StakeDBImpl) GetByID(ctx context.Context, id uuid.UUID) (*Stake, error) {
	stake := &Stake{}
	err := db.DB.NewSelect().Model(stake).Where("s.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStakeNotFound
		}
		return nil, fmt.Errorf("failed to get stake: %w", err)
	}
	return stake, nil
}

// ListByBirdType returns the bird type's stakes ordered by number, which is
// the order the grid renders them in.
func (db *StakeDBImpl) ListByBirdType(ctx context.Context, birdTypeID uuid.UUID) ([]Stake, error) {
	var stakes []Stake
	err := db.DB.NewSelect().
		Model(&stakes).
		Where("s.bird_type_id = ?", birdTypeID).
		Order("number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}
	return stakes, nil
}

// Reserve performs the available -> pending transition atomically. The status
// check and the write are a single conditional UPDATE, so of N concurrent
// attempts on one stake exactly one succeeds; the rest see
// ErrStakeNotAvailable. The reservation record is created in the same
// transaction.
func (db *StakeDBImpl) Reserve(ctx context.Context, stakeID uuid.UUID, customerName, customerPhone string) (*Stake, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stake := &Stake{}
	result, err := tx.NewUpdate().
		Model(stake).
		Set("status = ?", stakedomain.StatusPending).
		Set("reservant_name = ?", customerName).
		Set("reservant_phone = ?", customerPhone).
		Set("updated_at = now()").
		Where("id = ?", stakeID).
		Where("status = ?", stakedomain.StatusAvailable).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve stake: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected after reserve: %w", err)
	}
	if rowsAffected == 0 {
		// Distinguish a lost race from a bad ID.
		exists, err := tx.NewSelect().
			Model((*Stake)(nil)).
			Where("id = ?", stakeID).
			Exists(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to check stake existence: %w", err)
		}
		if !exists {
			return nil, ErrStakeNotFound
		}
		return nil, ErrStakeNotAvailable
	}

	reservation := &Reservation{
		ID:            uuid.New(),
		StakeID:       stakeID,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		PaymentStatus: PaymentAwaiting,
		ReservedAt:    time.Now().UTC(),
	}
	if _, err := tx.NewInsert().Model(reservation).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return stake, nil
}

// ConfirmPayment performs the pending -> confirmed transition and marks the
// live reservation paid for the given amount.
func (db *StakeDBImpl) ConfirmPayment(ctx context.Context, stakeID uuid.UUID, amountCents int64) (*Stake, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stake := &Stake{}
	result, err := tx.NewUpdate().
		Model(stake).
		Set("status = ?", stakedomain.StatusConfirmed).
		Set("updated_at = now()").
		Where("id = ?", stakeID).
		Where("status = ?", stakedomain.StatusPending).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm stake: %w", err)
	}

	if err := db.requireTransition(ctx, tx, result, stakeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.NewUpdate().
		Model((*Reservation)(nil)).
		Set("payment_status = ?", PaymentPaid).
		Set("amount_paid_cents = ?", amountCents).
		Set("paid_at = ?", now).
		Where("stake_id = ?", stakeID).
		Where("payment_status = ?", PaymentAwaiting).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to mark reservation paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return stake, nil
}

// Cancel returns a pending or confirmed stake to the pool, clearing the
// reservant fields and closing out the live reservation.
func (db *StakeDBImpl) Cancel(ctx context.Context, stakeID uuid.UUID) (*Stake, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stake := &Stake{}
	result, err := tx.NewUpdate().
		Model(stake).
		Set("status = ?", stakedomain.StatusAvailable).
		Set("reservant_name = NULL").
		Set("reservant_phone = NULL").
		Set("updated_at = now()").
		Where("id = ?", stakeID).
		Where("status IN (?)", bun.In([]stakedomain.Status{stakedomain.StatusPending, stakedomain.StatusConfirmed})).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel stake: %w", err)
	}

	if err := db.requireTransition(ctx, tx, result, stakeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.NewUpdate().
		Model((*Reservation)(nil)).
		Set("payment_status = ?", PaymentCancelled).
		Set("cancelled_at = ?", now).
		Where("stake_id = ?", stakeID).
		Where("payment_status IN (?)", bun.In([]PaymentStatus{PaymentAwaiting, PaymentPaid})).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return stake, nil
}

// requireTransition maps a zero-row conditional update to the right sentinel:
// missing stake vs. guard not met.
func (db *StakeDBImpl) requireTransition(ctx context.Context, tx bun.Tx, result sql.Result, stakeID uuid.UUID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	exists, err := tx.NewSelect().
		Model((*Stake)(nil)).
		Where("id = ?", stakeID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check stake existence: %w", err)
	}
	if !exists {
		return ErrStakeNotFound
	}
	return ErrInvalidTransition
}

// TournamentInfoForStake resolves the stake's tournament name and price for
// the payment instructions, through the bird-type relation.
func (db *StakeDBImpl) TournamentInfoForStake(ctx context.Context, stakeID uuid.UUID) (*TournamentInfo, error) {
	info := &TournamentInfo{}
	err := db.DB.NewSelect().
		ColumnExpr("t.id AS id").
		ColumnExpr("t.name AS name").
		ColumnExpr("t.price_cents AS price_cents").
		TableExpr("stakes AS s").
		Join("JOIN bird_types AS bt ON bt.id = s.bird_type_id").
		Join("JOIN tournaments AS t ON t.id = bt.tournament_id").
		Where("s.id = ?", stakeID).
		Scan(ctx, info)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStakeNotFound
		}
		return nil, fmt.Errorf("failed to resolve tournament for stake: %w", err)
	}
	return info, nil
}

// ListForExport flattens a tournament's stakes with their bird type and paid
// amount, ordered for the admin workbook.
func (db *StakeDBImpl) ListForExport(ctx context.Context, tournamentID uuid.UUID) ([]ExportRow, error) {
	var rows []ExportRow
	err := db.DB.NewSelect().
		ColumnExpr("bt.name AS bird_type_name").
		ColumnExpr("s.number AS number").
		ColumnExpr("s.status AS status").
		ColumnExpr("coalesce(s.reservant_name, '') AS reservant_name").
		ColumnExpr("coalesce(s.reservant_phone, '') AS reservant_phone").
		ColumnExpr(`coalesce((
			SELECT r.amount_paid_cents FROM reservations AS r
			WHERE r.stake_id = s.id AND r.payment_status = ?
			ORDER BY r.reserved_at DESC LIMIT 1
		), 0) AS amount_paid_cents`, PaymentPaid).
		TableExpr("stakes AS s").
		Join("JOIN bird_types AS bt ON bt.id = s.bird_type_id").
		Where("bt.tournament_id = ?", tournamentID).
		OrderExpr("bt.name ASC, s.number ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes for export: %w", err)
	}
	return rows, nil
}

// SeedForBirdType bulk-inserts available stakes numbered 1..count for a newly
// created bird type.
func (db *StakeDBImpl) SeedForBirdType(ctx context.Context, birdTypeID uuid.UUID, count int) error {
	if count <= 0 {
		return fmt.Errorf("stake count must be positive, got %d", count)
	}

	stakes := make([]Stake, 0, count)
	for number := 1; number <= count; number++ {
		stakes = append(stakes, Stake{
			ID:         uuid.New(),
			BirdTypeID: birdTypeID,
			Number:     number,
			Status:     stakedomain.StatusAvailable,
		})
	}

	if _, err := db.DB.NewInsert().Model(&stakes).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed stakes: %w", err)
	}
	return nil
}
