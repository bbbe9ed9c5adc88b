package tournamentdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Tournament represents a time-boxed event with one fixed per-stake price.
// At most one tournament is active at a time; Activate enforces this.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	EventDate   time.Time `bun:"event_date,notnull" json:"event_date"`
	Location    string    `bun:"location" json:"location,omitempty"`
	Description string    `bun:"description" json:"description,omitempty"`
	PriceCents  int64     `bun:"price_cents,notnull" json:"price_cents"`
	Active      bool      `bun:"active,notnull,default:false" json:"active"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:now()" json:"updated_at"`
}
