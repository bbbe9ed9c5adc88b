package stakeservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	stakeevents "github.com/apvc-club/stake-reservations/app/modules/stake/domain/events"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/internal/eventbus"
	"github.com/google/uuid"
)

// ConfirmPayment records a payment against a pending stake and moves it to
// confirmed. The amount recorded is the tournament's fixed per-stake price.
func (s *StakeServiceImpl) ConfirmPayment(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error) {
	ctx, span := s.tracer.Start(ctx, "stake.confirm_payment")
	defer span.End()

	info, err := s.StakeDB.TournamentInfoForStake(ctx, stakeID)
	if err != nil {
		s.metrics.AdminActions.WithLabelValues("confirm", outcomeLabel(err)).Inc()
		return nil, err
	}

	stake, err := s.StakeDB.ConfirmPayment(ctx, stakeID, info.PriceCents)
	if err != nil {
		s.metrics.AdminActions.WithLabelValues("confirm", outcomeLabel(err)).Inc()
		if errors.Is(err, stakedb.ErrStakeNotFound) || errors.Is(err, stakedb.ErrInvalidTransition) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to confirm payment",
			slog.String("stake_id", stakeID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to confirm payment for stake %s: %w", stakeID, err)
	}

	s.metrics.AdminActions.WithLabelValues("confirm", "success").Inc()
	s.logger.InfoContext(ctx, "Payment confirmed",
		slog.String("stake_id", stake.ID.String()),
		slog.Int("number", stake.Number),
		slog.Int64("amount_cents", info.PriceCents),
	)

	s.publish(ctx, eventbus.TopicStakeConfirmed, &stakeevents.PaymentConfirmedPayload{
		StakeID:      stake.ID,
		TournamentID: info.ID,
		Number:       stake.Number,
		AmountCents:  info.PriceCents,
		ConfirmedAt:  time.Now().UTC(),
	})

	return stake, nil
}

// CancelReservation returns a pending or confirmed stake to the pool. The
// repository clears the reservant fields as part of the transition.
func (s *StakeServiceImpl) CancelReservation(ctx context.Context, stakeID uuid.UUID) (*stakedb.Stake, error) {
	ctx, span := s.tracer.Start(ctx, "stake.cancel_reservation")
	defer span.End()

	info, err := s.StakeDB.TournamentInfoForStake(ctx, stakeID)
	if err != nil {
		s.metrics.AdminActions.WithLabelValues("cancel", outcomeLabel(err)).Inc()
		return nil, err
	}

	stake, err := s.StakeDB.Cancel(ctx, stakeID)
	if err != nil {
		s.metrics.AdminActions.WithLabelValues("cancel", outcomeLabel(err)).Inc()
		if errors.Is(err, stakedb.ErrStakeNotFound) || errors.Is(err, stakedb.ErrInvalidTransition) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to cancel reservation",
			slog.String("stake_id", stakeID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to cancel reservation for stake %s: %w", stakeID, err)
	}

	s.metrics.AdminActions.WithLabelValues("cancel", "success").Inc()
	s.logger.InfoContext(ctx, "Reservation cancelled",
		slog.String("stake_id", stake.ID.String()),
		slog.Int("number", stake.Number),
	)

	s.publish(ctx, eventbus.TopicStakeCancelled, &stakeevents.ReservationCancelledPayload{
		StakeID:      stake.ID,
		TournamentID: info.ID,
		Number:       stake.Number,
		CancelledAt:  time.Now().UTC(),
	})

	return stake, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, stakedb.ErrStakeNotFound):
		return "not_found"
	case errors.Is(err, stakedb.ErrInvalidTransition):
		return "invalid_transition"
	default:
		return "error"
	}
}
