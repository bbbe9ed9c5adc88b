package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	auditsubscribers "github.com/apvc-club/stake-reservations/app/modules/audit/subscribers"
	authservice "github.com/apvc-club/stake-reservations/app/modules/auth/application"
	authhandlers "github.com/apvc-club/stake-reservations/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/apvc-club/stake-reservations/app/modules/auth/infrastructure/jwt"
	birdtypeservice "github.com/apvc-club/stake-reservations/app/modules/birdtype/application"
	birdtypehandlers "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/handlers"
	dashboardservice "github.com/apvc-club/stake-reservations/app/modules/dashboard/application"
	dashboardhandlers "github.com/apvc-club/stake-reservations/app/modules/dashboard/infrastructure/handlers"
	stakeservice "github.com/apvc-club/stake-reservations/app/modules/stake/application"
	stakehandlers "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/handlers"
	tournamentservice "github.com/apvc-club/stake-reservations/app/modules/tournament/application"
	tournamenthandlers "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/handlers"
	"github.com/apvc-club/stake-reservations/config"
	"github.com/apvc-club/stake-reservations/db/bundb"
	"github.com/apvc-club/stake-reservations/internal/eventbus"
	"github.com/apvc-club/stake-reservations/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
)

// App wires the modules together and owns their lifecycles.
type App struct {
	Cfg *config.Config
	Obs *observability.Observability

	db       *bundb.DBService
	eventBus eventbus.EventBus
	router   *message.Router
	server   *http.Server

	TournamentService tournamentservice.Service
	BirdTypeService   birdtypeservice.Service
	StakeService      stakeservice.Service
	DashboardService  dashboardservice.Service
	AuthService       authservice.Service
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus, err := eventbus.New(cfg.NATS.URL, obs.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.DefaultTTL)

	tournamentSvc := tournamentservice.NewTournamentService(
		dbService.TournamentDB, dbService.BirdTypeDB, dbService.StakeDB, obs.Logger, obs.Tracer)
	birdTypeSvc := birdtypeservice.NewBirdTypeService(
		dbService.BirdTypeDB, dbService.StakeDB, obs.Logger, obs.Tracer)
	stakeSvc := stakeservice.NewStakeService(
		dbService.StakeDB, bus, cfg.Payment, obs.Logger, obs.Metrics, obs.Tracer)
	dashboardSvc := dashboardservice.NewDashboardService(dbService.DashboardDB, obs.Logger, obs.Tracer)
	authSvc := authservice.NewAuthService(cfg.Admin, jwtProvider, obs.Logger)

	router, err := auditsubscribers.NewRouter(obs.Logger)
	if err != nil {
		return nil, err
	}
	auditSub := auditsubscribers.NewAuditSubscriber(dbService.AuditDB, obs.Logger)
	auditSub.Register(router, bus.Subscriber())

	a := &App{
		Cfg:               cfg,
		Obs:               obs,
		db:                dbService,
		eventBus:          bus,
		router:            router,
		TournamentService: tournamentSvc,
		BirdTypeService:   birdTypeSvc,
		StakeService:      stakeSvc,
		DashboardService:  dashboardSvc,
		AuthService:       authSvc,
	}

	mux := a.newHTTPRouter(handlers{
		auth:       authhandlers.NewAuthHandlers(authSvc),
		tournament: tournamenthandlers.NewTournamentHandlers(tournamentSvc),
		birdType:   birdtypehandlers.NewBirdTypeHandlers(birdTypeSvc),
		stake:      stakehandlers.NewStakeHandlers(stakeSvc, tournamentSvc),
		dashboard:  dashboardhandlers.NewDashboardHandlers(dashboardSvc),
	}, jwtProvider)

	a.server = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// DB returns the database service.
func (a *App) DB() *bundb.DBService {
	return a.db
}

// Run starts the watermill router and the HTTP server and blocks until the
// context is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		if err := a.router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router stopped: %w", err)
		}
	}()

	go func() {
		a.Obs.Logger.Info("HTTP server listening", slog.String("addr", a.Cfg.HTTP.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server stopped: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close shuts the app down in reverse dependency order.
func (a *App) Close(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.Obs.Logger.Error("Failed to shut down HTTP server", slog.Any("error", err))
	}
	if err := a.router.Close(); err != nil {
		a.Obs.Logger.Error("Failed to close message router", slog.Any("error", err))
	}
	if err := a.eventBus.Close(); err != nil {
		a.Obs.Logger.Error("Failed to close event bus", slog.Any("error", err))
	}
	if err := a.db.Close(); err != nil {
		a.Obs.Logger.Error("Failed to close database", slog.Any("error", err))
	}
}
