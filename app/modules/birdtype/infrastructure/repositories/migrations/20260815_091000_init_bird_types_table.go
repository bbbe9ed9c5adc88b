package birdtypemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS bird_types (
				id UUID PRIMARY KEY,
				tournament_id UUID NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				color TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (tournament_id, name)
			);

			CREATE INDEX IF NOT EXISTS bird_types_tournament_idx
				ON bird_types (tournament_id);
		`)
		if err != nil {
			return fmt.Errorf("failed to create bird_types table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS bird_types;`)
		if err != nil {
			return fmt.Errorf("failed to drop bird_types table: %w", err)
		}
		return nil
	})
}
