package birdtypedb

import (
	"time"

	tournamentdb "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BirdType groups a contiguous set of numbered stakes within one tournament.
type BirdType struct {
	bun.BaseModel `bun:"table:bird_types,alias:bt"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	TournamentID uuid.UUID `bun:"tournament_id,notnull,type:uuid" json:"tournament_id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Color        string    `bun:"color,notnull" json:"color"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:now()" json:"updated_at"`

	Tournament *tournamentdb.Tournament `bun:"rel:belongs-to,join:tournament_id=id" json:"tournament,omitempty"`
}

// BirdTypeWithCounts carries the per-type stake counts resolved in the same
// query as the bird types themselves.
type BirdTypeWithCounts struct {
	BirdType `bun:",extend"`

	StakeCount     int `bun:"stake_count,scanonly" json:"stake_count"`
	AvailableCount int `bun:"available_count,scanonly" json:"available_count"`
}
