package stakeservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	stakeevents "github.com/apvc-club/stake-reservations/app/modules/stake/domain/events"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/internal/eventbus"
	"github.com/google/uuid"
)

// PaymentInstructions tells a successful reservant how to complete payment:
// transfer via the fixed PIX key and send proof to the WhatsApp contact with
// a pre-filled message.
type PaymentInstructions struct {
	AmountCents     int64  `json:"amount_cents"`
	AmountDisplay   string `json:"amount_display"`
	PixKey          string `json:"pix_key"`
	WhatsAppNumber  string `json:"whatsapp_number"`
	WhatsAppMessage string `json:"whatsapp_message"`
}

// ReserveResult is the successful outcome of a reservation attempt.
type ReserveResult struct {
	Stake      *stakedb.Stake          `json:"stake"`
	Tournament *stakedb.TournamentInfo `json:"tournament"`
	Payment    PaymentInstructions     `json:"payment"`
}

// Reserve validates the reservant's details and attempts the atomic
// available -> pending transition. Validation failures never reach storage.
// A lost race surfaces as stakedb.ErrStakeNotAvailable so callers can tell
// conflict apart from validation and transport failures.
func (s *StakeServiceImpl) Reserve(ctx context.Context, stakeID uuid.UUID, customerName, customerPhone string) (*ReserveResult, error) {
	ctx, span := s.tracer.Start(ctx, "stake.reserve")
	defer span.End()

	customerName = strings.TrimSpace(customerName)
	customerPhone = strings.TrimSpace(customerPhone)
	if customerName == "" {
		s.metrics.ReservationAttempts.WithLabelValues("validation_error").Inc()
		return nil, &ValidationError{Field: "customer_name"}
	}
	if customerPhone == "" {
		s.metrics.ReservationAttempts.WithLabelValues("validation_error").Inc()
		return nil, &ValidationError{Field: "customer_phone"}
	}

	info, err := s.StakeDB.TournamentInfoForStake(ctx, stakeID)
	if err != nil {
		if errors.Is(err, stakedb.ErrStakeNotFound) {
			s.metrics.ReservationAttempts.WithLabelValues("not_found").Inc()
			return nil, err
		}
		s.metrics.ReservationAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to resolve tournament for stake %s: %w", stakeID, err)
	}

	stake, err := s.StakeDB.Reserve(ctx, stakeID, customerName, customerPhone)
	if err != nil {
		switch {
		case errors.Is(err, stakedb.ErrStakeNotAvailable):
			s.metrics.ReservationAttempts.WithLabelValues("conflict").Inc()
			s.logger.InfoContext(ctx, "Reservation lost the race",
				slog.String("stake_id", stakeID.String()),
			)
			return nil, err
		case errors.Is(err, stakedb.ErrStakeNotFound):
			s.metrics.ReservationAttempts.WithLabelValues("not_found").Inc()
			return nil, err
		default:
			s.metrics.ReservationAttempts.WithLabelValues("error").Inc()
			s.logger.ErrorContext(ctx, "Failed to reserve stake",
				slog.String("stake_id", stakeID.String()),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("failed to reserve stake %s: %w", stakeID, err)
		}
	}

	s.metrics.ReservationAttempts.WithLabelValues("success").Inc()
	s.logger.InfoContext(ctx, "Stake reserved",
		slog.String("stake_id", stake.ID.String()),
		slog.Int("number", stake.Number),
		slog.String("tournament", info.Name),
	)

	s.publish(ctx, eventbus.TopicStakeReserved, &stakeevents.StakeReservedPayload{
		StakeID:       stake.ID,
		BirdTypeID:    stake.BirdTypeID,
		TournamentID:  info.ID,
		Number:        stake.Number,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		AmountCents:   info.PriceCents,
		ReservedAt:    time.Now().UTC(),
	})

	return &ReserveResult{
		Stake:      stake,
		Tournament: info,
		Payment:    s.paymentInstructions(stake.Number, info),
	}, nil
}

func (s *StakeServiceImpl) paymentInstructions(number int, info *stakedb.TournamentInfo) PaymentInstructions {
	amount := FormatAmount(info.PriceCents)
	return PaymentInstructions{
		AmountCents:    info.PriceCents,
		AmountDisplay:  "R$ " + amount,
		PixKey:         s.payment.PixKey,
		WhatsAppNumber: s.payment.WhatsAppNumber,
		WhatsAppMessage: fmt.Sprintf(
			"Olá! Gostaria de enviar o comprovante de pagamento para a reserva da estaca %d do torneio %s. Valor: R$ %s",
			number, info.Name, amount,
		),
	}
}

// publish sends a domain event; delivery problems are logged, not returned,
// since the state transition has already committed.
func (s *StakeServiceImpl) publish(ctx context.Context, topic string, payload interface{}) {
	if err := s.eventBus.Publish(ctx, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return
	}
	s.metrics.EventsPublished.WithLabelValues(topic).Inc()
}

// FormatAmount renders cents as a two-decimal currency string.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
