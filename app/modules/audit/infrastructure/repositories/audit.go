package auditdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AuditDB is the repository interface for the event audit trail.
type AuditDB interface {
	Insert(ctx context.Context, entry *AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]AuditEntry, error)
}

// AuditDBImpl is the bun-backed audit log repository.
type AuditDBImpl struct {
	DB *bun.DB
}

// Insert appends an entry to the audit log.
func (db *AuditDBImpl) Insert(ctx context.Context, entry *AuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	_, err := db.DB.NewInsert().Model(entry).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (db *AuditDBImpl) ListRecent(ctx context.Context, limit int) ([]AuditEntry, error) {
	var entries []AuditEntry
	err := db.DB.NewSelect().
		Model(&entries).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
