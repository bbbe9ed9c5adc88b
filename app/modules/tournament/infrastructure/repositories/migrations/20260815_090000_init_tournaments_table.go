package tournamentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS tournaments (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				event_date TIMESTAMPTZ NOT NULL,
				location TEXT,
				description TEXT,
				price_cents BIGINT NOT NULL CHECK (price_cents >= 0),
				active BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE UNIQUE INDEX IF NOT EXISTS tournaments_single_active_idx
				ON tournaments (active) WHERE active;
		`)
		if err != nil {
			return fmt.Errorf("failed to create tournaments table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS tournaments;`)
		if err != nil {
			return fmt.Errorf("failed to drop tournaments table: %w", err)
		}
		return nil
	})
}
