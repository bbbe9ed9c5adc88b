package bundb

import (
	"context"
	"database/sql"
	"fmt"

	auditdb "github.com/apvc-club/stake-reservations/app/modules/audit/infrastructure/repositories"
	birdtypedb "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/repositories"
	dashboarddb "github.com/apvc-club/stake-reservations/app/modules/dashboard/infrastructure/repositories"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	tournamentdb "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DBService bundles the per-module repositories over one connection pool.
type DBService struct {
	TournamentDB *tournamentdb.TournamentDBImpl
	BirdTypeDB   *birdtypedb.BirdTypeDBImpl
	StakeDB      *stakedb.StakeDBImpl
	DashboardDB  *dashboarddb.DashboardDBImpl
	AuditDB      *auditdb.AuditDBImpl
	db           *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// Close releases the connection pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&tournamentdb.Tournament{})
	db.RegisterModel(&birdtypedb.BirdType{})
	db.RegisterModel(&stakedb.Stake{})
	db.RegisterModel(&stakedb.Reservation{})
	db.RegisterModel(&auditdb.AuditEntry{})

	return &DBService{
		TournamentDB: &tournamentdb.TournamentDBImpl{DB: db},
		BirdTypeDB:   &birdtypedb.BirdTypeDBImpl{DB: db},
		StakeDB:      &stakedb.StakeDBImpl{DB: db},
		DashboardDB:  &dashboarddb.DashboardDBImpl{DB: db},
		AuditDB:      &auditdb.AuditDBImpl{DB: db},
		db:           db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
