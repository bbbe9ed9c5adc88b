package auditmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS audit_log (
				id UUID PRIMARY KEY,
				topic TEXT NOT NULL,
				correlation_id TEXT,
				payload JSONB,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS audit_log_topic_idx ON audit_log (topic, created_at);
		`)
		if err != nil {
			return fmt.Errorf("failed to create audit_log table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS audit_log;`)
		if err != nil {
			return fmt.Errorf("failed to drop audit_log table: %w", err)
		}
		return nil
	})
}
