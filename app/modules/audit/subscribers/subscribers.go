package auditsubscribers

import (
	"fmt"
	"log/slog"

	auditdb "github.com/apvc-club/stake-reservations/app/modules/audit/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/internal/eventbus"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// AuditSubscriber persists every stake lifecycle event to the audit log.
type AuditSubscriber struct {
	AuditDB auditdb.AuditDB
	logger  *slog.Logger
}

// NewAuditSubscriber creates a new audit subscriber.
func NewAuditSubscriber(db auditdb.AuditDB, logger *slog.Logger) *AuditSubscriber {
	return &AuditSubscriber{AuditDB: db, logger: logger}
}

// Register attaches one handler per stake topic to the watermill router.
func (s *AuditSubscriber) Register(router *message.Router, subscriber message.Subscriber) {
	topics := []string{
		eventbus.TopicStakeReserved,
		eventbus.TopicStakeConfirmed,
		eventbus.TopicStakeCancelled,
	}

	for _, topic := range topics {
		router.AddNoPublisherHandler(
			"audit_"+topic,
			topic,
			subscriber,
			s.handle(topic),
		)
	}
}

func (s *AuditSubscriber) handle(topic string) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := msg.Context()
		correlationID := middleware.MessageCorrelationID(msg)

		entry := &auditdb.AuditEntry{
			Topic:         topic,
			CorrelationID: correlationID,
			Payload:       append([]byte(nil), msg.Payload...),
		}
		if err := s.AuditDB.Insert(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry for %s: %w", topic, err)
		}

		s.logger.DebugContext(ctx, "Audit entry recorded",
			slog.String("topic", topic),
			slog.String("correlation_id", correlationID),
		)
		return nil
	}
}

// NewRouter builds the watermill router the audit subscriber runs on.
func NewRouter(logger *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}
	router.AddMiddleware(middleware.CorrelationID, middleware.Recoverer)
	return router, nil
}
