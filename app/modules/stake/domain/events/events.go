package stakeevents

import (
	"time"

	"github.com/google/uuid"
)

// StakeReservedPayload is published when a reservant wins the
// available -> pending transition.
type StakeReservedPayload struct {
	StakeID       uuid.UUID `json:"stake_id"`
	BirdTypeID    uuid.UUID `json:"bird_type_id"`
	TournamentID  uuid.UUID `json:"tournament_id"`
	Number        int       `json:"number"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	AmountCents   int64     `json:"amount_cents"`
	ReservedAt    time.Time `json:"reserved_at"`
}

// PaymentConfirmedPayload is published when an administrator records payment.
type PaymentConfirmedPayload struct {
	StakeID      uuid.UUID `json:"stake_id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	Number       int       `json:"number"`
	AmountCents  int64     `json:"amount_cents"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
}

// ReservationCancelledPayload is published when an administrator returns a
// stake to the pool.
type ReservationCancelledPayload struct {
	StakeID      uuid.UUID `json:"stake_id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	Number       int       `json:"number"`
	CancelledAt  time.Time `json:"cancelled_at"`
}
