package stakedb

import (
	"time"

	stakedomain "github.com/apvc-club/stake-reservations/app/modules/stake/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PaymentStatus is the lifecycle of a reservation's payment.
type PaymentStatus string

const (
	PaymentAwaiting  PaymentStatus = "awaiting"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Stake is a numbered, reservable slot within a bird-type category.
// Number is unique within its bird type.
type Stake struct {
	bun.BaseModel `bun:"table:stakes,alias:s"`

	ID             uuid.UUID          `bun:"id,pk,type:uuid" json:"id"`
	BirdTypeID     uuid.UUID          `bun:"bird_type_id,notnull,type:uuid" json:"bird_type_id"`
	Number         int                `bun:"number,notnull" json:"number"`
	Status         stakedomain.Status `bun:"status,notnull" json:"status"`
	ReservantName  string             `bun:"reservant_name,nullzero" json:"reservant_name,omitempty"`
	ReservantPhone string             `bun:"reservant_phone,nullzero" json:"reservant_phone,omitempty"`
	CreatedAt      time.Time          `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
	UpdatedAt      time.Time          `bun:"updated_at,nullzero,notnull,default:now()" json:"updated_at"`
}

// Reservation links a reservant's contact details and payment state to a
// stake. A stake has at most one live (non-cancelled) reservation.
type Reservation struct {
	bun.BaseModel `bun:"table:reservations,alias:r"`

	ID              uuid.UUID     `bun:"id,pk,type:uuid" json:"id"`
	StakeID         uuid.UUID     `bun:"stake_id,notnull,type:uuid" json:"stake_id"`
	CustomerName    string        `bun:"customer_name,notnull" json:"customer_name"`
	CustomerPhone   string        `bun:"customer_phone,notnull" json:"customer_phone"`
	PaymentStatus   PaymentStatus `bun:"payment_status,notnull" json:"payment_status"`
	AmountPaidCents int64         `bun:"amount_paid_cents,notnull,default:0" json:"amount_paid_cents"`
	Notes           string        `bun:"notes,nullzero" json:"notes,omitempty"`
	ReservedAt      time.Time     `bun:"reserved_at,nullzero,notnull,default:now()" json:"reserved_at"`
	PaidAt          *time.Time    `bun:"paid_at" json:"paid_at,omitempty"`
	CancelledAt     *time.Time    `bun:"cancelled_at" json:"cancelled_at,omitempty"`
}

// TournamentInfo is the slice of tournament data the reservation flow needs:
// the name and price that go into the payment instructions.
type TournamentInfo struct {
	ID         uuid.UUID `bun:"id"`
	Name       string    `bun:"name"`
	PriceCents int64     `bun:"price_cents"`
}

// ExportRow is one stake flattened with its bird type for the admin export.
type ExportRow struct {
	BirdTypeName    string             `bun:"bird_type_name"`
	Number          int                `bun:"number"`
	Status          stakedomain.Status `bun:"status"`
	ReservantName   string             `bun:"reservant_name"`
	ReservantPhone  string             `bun:"reservant_phone"`
	AmountPaidCents int64              `bun:"amount_paid_cents"`
}
