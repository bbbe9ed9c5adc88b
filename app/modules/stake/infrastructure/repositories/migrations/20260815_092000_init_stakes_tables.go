package stakemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS stakes (
				id UUID PRIMARY KEY,
				bird_type_id UUID NOT NULL REFERENCES bird_types (id) ON DELETE CASCADE,
				number INTEGER NOT NULL CHECK (number > 0),
				status TEXT NOT NULL DEFAULT 'available'
					CHECK (status IN ('available', 'pending', 'confirmed')),
				reservant_name TEXT,
				reservant_phone TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (bird_type_id, number)
			);

			CREATE INDEX IF NOT EXISTS stakes_bird_type_status_idx
				ON stakes (bird_type_id, status);

			CREATE TABLE IF NOT EXISTS reservations (
				id UUID PRIMARY KEY,
				stake_id UUID NOT NULL REFERENCES stakes (id) ON DELETE CASCADE,
				customer_name TEXT NOT NULL,
				customer_phone TEXT NOT NULL,
				payment_status TEXT NOT NULL DEFAULT 'awaiting'
					CHECK (payment_status IN ('awaiting', 'paid', 'cancelled')),
				amount_paid_cents BIGINT NOT NULL DEFAULT 0,
				notes TEXT,
				reserved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				paid_at TIMESTAMPTZ,
				cancelled_at TIMESTAMPTZ
			);

			CREATE UNIQUE INDEX IF NOT EXISTS reservations_live_stake_idx
				ON reservations (stake_id) WHERE payment_status != 'cancelled';
		`)
		if err != nil {
			return fmt.Errorf("failed to create stakes tables: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS reservations;
			DROP TABLE IF EXISTS stakes;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop stakes tables: %w", err)
		}
		return nil
	})
}
