package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrNoActiveTournament = errors.New("no active tournament")
)

// TournamentDBImpl is the bun-backed repository for tournaments.
type TournamentDBImpl struct {
	DB *bun.DB
}

// Create inserts a new tournament. The caller decides whether it starts active.
func (db *TournamentDBImpl) Create(ctx context.Context, tournament *Tournament) error {
	if tournament.ID == uuid.Nil {
		tournament.ID = uuid.New()
	}

	_, err := db.DB.NewInsert().Model(tournament).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

// GetByID retrieves a tournament by its ID.
func (db *TournamentDBImpl) GetByID(ctx context.Context, id uuid.UUID) (*Tournament, error) {
	tournament := &Tournament{}
	err := db.DB.NewSelect().Model(tournament).Where("t.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return tournament, nil
}

// GetActive retrieves the single active tournament.
func (db *TournamentDBImpl) GetActive(ctx context.Context) (*Tournament, error) {
	tournament := &Tournament{}
	err := db.DB.NewSelect().Model(tournament).Where("t.active").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveTournament
		}
		return nil, fmt.Errorf("failed to get active tournament: %w", err)
	}
	return tournament, nil
}

// List returns all tournaments, newest event first.
func (db *TournamentDBImpl) List(ctx context.Context) ([]Tournament, error) {
	var tournaments []Tournament
	err := db.DB.NewSelect().Model(&tournaments).Order("event_date DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// Activate marks the given tournament active and deactivates every other one
// in the same transaction, so there is never more than one active tournament.
func (db *TournamentDBImpl) Activate(ctx context.Context, id uuid.UUID) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NewUpdate().
		Model((*Tournament)(nil)).
		Set("active = false").
		Set("updated_at = now()").
		Where("active").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to deactivate tournaments: %w", err)
	}

	result, err := tx.NewUpdate().
		Model((*Tournament)(nil)).
		Set("active = true").
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to activate tournament: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after activate: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Deactivate clears the active flag on the given tournament.
func (db *TournamentDBImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := db.DB.NewUpdate().
		Model((*Tournament)(nil)).
		Set("active = false").
		Set("updated_at = now()").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to deactivate tournament: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deactivate: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTournamentNotFound
	}
	return nil
}
