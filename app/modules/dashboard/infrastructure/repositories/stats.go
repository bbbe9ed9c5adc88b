package dashboarddb

import (
	"context"
	"fmt"

	stakedomain "github.com/apvc-club/stake-reservations/app/modules/stake/domain"
	"github.com/uptrace/bun"
)

// Stats is the aggregate the admin dashboard renders. Because it comes out of
// a single statement, the per-status counts always sum to TotalStakes even
// under concurrent writers.
type Stats struct {
	TotalStakes       int   `bun:"total_stakes" json:"total_stakes"`
	Available         int   `bun:"available" json:"available"`
	Reserved          int   `bun:"reserved" json:"reserved"`
	Confirmed         int   `bun:"confirmed" json:"confirmed"`
	TotalRevenueCents int64 `bun:"total_revenue_cents" json:"total_revenue_cents"`
}

// DashboardDB is the read-side repository for dashboard aggregation.
type DashboardDB interface {
	Stats(ctx context.Context) (*Stats, error)
}

// DashboardDBImpl aggregates over the active tournament's stakes.
type DashboardDBImpl struct {
	DB *bun.DB
}

// Stats computes the dashboard aggregate in one statement: total count,
// per-status counts, and revenue as confirmed count times the tournament's
// fixed price. With no active tournament every figure is zero.
func (db *DashboardDBImpl) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := db.DB.NewSelect().
		ColumnExpr("count(s.id) AS total_stakes").
		ColumnExpr("count(s.id) FILTER (WHERE s.status = ?) AS available", stakedomain.StatusAvailable).
		ColumnExpr("count(s.id) FILTER (WHERE s.status = ?) AS reserved", stakedomain.StatusPending).
		ColumnExpr("count(s.id) FILTER (WHERE s.status = ?) AS confirmed", stakedomain.StatusConfirmed).
		ColumnExpr("coalesce(sum(t.price_cents) FILTER (WHERE s.status = ?), 0) AS total_revenue_cents", stakedomain.StatusConfirmed).
		TableExpr("stakes AS s").
		Join("JOIN bird_types AS bt ON bt.id = s.bird_type_id").
		Join("JOIN tournaments AS t ON t.id = bt.tournament_id").
		Where("t.active").
		Scan(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
	}
	return stats, nil
}
