package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	auditmigrations "github.com/apvc-club/stake-reservations/app/modules/audit/infrastructure/repositories/migrations"
	birdtypedb "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/repositories"
	birdtypemigrations "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/repositories/migrations"
	stakemigrations "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories/migrations"
	tournamentdb "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/repositories"
	tournamentmigrations "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/apvc-club/stake-reservations/config"
	"github.com/apvc-club/stake-reservations/db/bundb"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

// moduleMigrator pairs a module name with its migrator. Order matters: stakes
// reference bird types, which reference tournaments.
type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	_ = godotenv.Load()

	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := []moduleMigrator{
		{"tournament", migrate.NewMigrator(db, tournamentmigrations.Migrations)},
		{"birdtype", migrate.NewMigrator(db, birdtypemigrations.Migrations)},
		{"stake", migrate.NewMigrator(db, stakemigrations.Migrations)},
		{"audit", migrate.NewMigrator(db, auditmigrations.Migrations)},
	}

	cliApp := &cli.App{
		Name: "bun",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(migrators),
			newSeedCommand(cfg),
		},
	}

	argv := append([]string{os.Args[0]}, flag.Args()...)
	if err := cliApp.Run(argv); err != nil {
		log.Fatal(err)
	}
}

func newMultiModuleDBCommand(migrators []moduleMigrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", m.name)
						if err := m.migrator.Init(c.Context); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						group, err := m.migrator.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					// Reverse order so dependents drop before their targets.
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						group, err := m.migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					var target *moduleMigrator
					for i := range migrators {
						if migrators[i].name == moduleName {
							target = &migrators[i]
							break
						}
					}
					if target == nil {
						return fmt.Errorf("invalid module name: %s", moduleName)
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := target.migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators {
						ms, err := m.migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", m.name)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}

// newSeedCommand provisions a demo tournament with realistic reservations for
// local development.
func newSeedCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "seed a demo tournament with fake reservations",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
			if err != nil {
				return err
			}
			defer dbService.Close()

			// Deterministic fake data keeps reseeded environments comparable.
			gofakeit.Seed(0)

			return seedDemoTournament(ctx, dbService)
		},
	}
}

func seedDemoTournament(ctx context.Context, dbService *bundb.DBService) error {
	tournament := &tournamentdb.Tournament{
		Name:        "Torneio APVC " + time.Now().Format("2006"),
		EventDate:   time.Now().AddDate(0, 0, 14),
		Location:    gofakeit.City(),
		Description: "Torneio de canto de pássaros",
		PriceCents:  5000,
	}
	if err := dbService.TournamentDB.Create(ctx, tournament); err != nil {
		return err
	}
	if err := dbService.TournamentDB.Activate(ctx, tournament.ID); err != nil {
		return err
	}

	categories := []struct {
		name  string
		color string
		count int
	}{
		{"Coleiro", "#22c55e", 40},
		{"Azulão", "#3b82f6", 30},
		{"Canário", "#eab308", 30},
		{"Trinca-Ferro", "#ef4444", 20},
	}

	for _, cat := range categories {
		birdType := &birdtypedb.BirdType{
			ID:           uuid.New(),
			TournamentID: tournament.ID,
			Name:         cat.name,
			Color:        cat.color,
		}
		if err := dbService.BirdTypeDB.Create(ctx, birdType); err != nil {
			return err
		}
		if err := dbService.StakeDB.SeedForBirdType(ctx, birdType.ID, cat.count); err != nil {
			return err
		}

		stakes, err := dbService.StakeDB.ListByBirdType(ctx, birdType.ID)
		if err != nil {
			return err
		}
		for _, stake := range stakes {
			if gofakeit.Number(0, 9) >= 3 {
				continue
			}
			reserved, err := dbService.StakeDB.Reserve(ctx, stake.ID, gofakeit.Name(), gofakeit.Phone())
			if err != nil {
				return err
			}
			if gofakeit.Bool() {
				if _, err := dbService.StakeDB.ConfirmPayment(ctx, reserved.ID, tournament.PriceCents); err != nil {
					return err
				}
			}
		}
		fmt.Printf("Seeded %s with %d stakes\n", cat.name, cat.count)
	}

	fmt.Printf("Seeded tournament %s (%s)\n", tournament.Name, tournament.ID)
	return nil
}
