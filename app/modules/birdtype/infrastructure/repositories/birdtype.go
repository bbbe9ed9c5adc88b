package birdtypedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	stakedomain "github.com/apvc-club/stake-reservations/app/modules/stake/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrBirdTypeNotFound = errors.New("bird type not found")

// BirdTypeDBImpl is the bun-backed repository for bird-type categories.
type BirdTypeDBImpl struct {
	DB *bun.DB
}

// Create inserts a new bird type.
func (db *BirdTypeDBImpl) Create(ctx context.Context, birdType *BirdType) error {
	if birdType.ID == uuid.Nil {
		birdType.ID = uuid.New()
	}

	_, err := db.DB.NewInsert().Model(birdType).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create bird type: %w", err)
	}
	return nil
}

// GetByID retrieves a bird type together with its tournament, which the
// stakes page needs for the header and the per-stake price.
func (db *BirdTypeDBImpl) GetByID(ctx context.Context, id uuid.UUID) (*BirdType, error) {
	birdType := &BirdType{}
	err := db.DB.NewSelect().
		Model(birdType).
		Relation("Tournament").
		Where("bt.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBirdTypeNotFound
		}
		return nil, fmt.Errorf("failed to get bird type: %w", err)
	}
	return birdType, nil
}

// ListByTournament returns the tournament's bird types without counts.
func (db *BirdTypeDBImpl) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]BirdType, error) {
	var birdTypes []BirdType
	err := db.DB.NewSelect().
		Model(&birdTypes).
		Where("bt.tournament_id = ?", tournamentID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bird types: %w", err)
	}
	return birdTypes, nil
}

// ListWithCounts returns the tournament's bird types with total and available
// stake counts resolved in a single grouped query, so the counts come from one
// consistent snapshot instead of one round trip per category.
func (db *BirdTypeDBImpl) ListWithCounts(ctx context.Context, tournamentID uuid.UUID) ([]BirdTypeWithCounts, error) {
	var rows []BirdTypeWithCounts
	err := db.DB.NewSelect().
		Model(&rows).
		ColumnExpr("bt.*").
		ColumnExpr("count(s.id) AS stake_count").
		ColumnExpr("count(s.id) FILTER (WHERE s.status = ?) AS available_count", stakedomain.StatusAvailable).
		Join("LEFT JOIN stakes AS s ON s.bird_type_id = bt.id").
		Where("bt.tournament_id = ?", tournamentID).
		GroupExpr("bt.id").
		OrderExpr("bt.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bird types with counts: %w", err)
	}
	return rows, nil
}
