package tournamentservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	birdtypedb "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/repositories"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	tournamentdb "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/repositories"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// BirdTypeInput describes one category to provision with a new tournament.
type BirdTypeInput struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	StakeCount int    `json:"stake_count"`
}

// CreateInput is the admin's tournament creation request. EventDate accepts
// RFC 3339, plain dates, or natural language ("next saturday at 9am").
type CreateInput struct {
	Name        string          `json:"name"`
	EventDate   string          `json:"event_date"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	PriceCents  int64           `json:"price_cents"`
	Active      bool            `json:"active"`
	BirdTypes   []BirdTypeInput `json:"bird_types"`
}

// Service defines the tournament operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*tournamentdb.Tournament, error)
	Get(ctx context.Context, id uuid.UUID) (*tournamentdb.Tournament, error)
	GetActive(ctx context.Context) (*tournamentdb.Tournament, error)
	List(ctx context.Context) ([]tournamentdb.Tournament, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// TournamentServiceImpl handles tournament management.
type TournamentServiceImpl struct {
	TournamentDB tournamentdb.TournamentDB
	BirdTypeDB   birdtypedb.BirdTypeDB
	StakeDB      stakedb.StakeDB
	logger       *slog.Logger
	tracer       trace.Tracer
}

// NewTournamentService creates a new tournament service.
func NewTournamentService(
	db tournamentdb.TournamentDB,
	birdTypeDB birdtypedb.BirdTypeDB,
	stakeDB stakedb.StakeDB,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	return &TournamentServiceImpl{
		TournamentDB: db,
		BirdTypeDB:   birdTypeDB,
		StakeDB:      stakeDB,
		logger:       logger,
		tracer:       tracer,
	}
}

// Create provisions a tournament together with its bird types and their
// numbered stakes, all starting available.
func (s *TournamentServiceImpl) Create(ctx context.Context, input CreateInput) (*tournamentdb.Tournament, error) {
	ctx, span := s.tracer.Start(ctx, "tournament.create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("tournament name is required")
	}
	if input.PriceCents < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}

	eventDate, err := ParseEventDate(input.EventDate)
	if err != nil {
		return nil, err
	}

	for _, bt := range input.BirdTypes {
		if strings.TrimSpace(bt.Name) == "" {
			return nil, fmt.Errorf("bird type name is required")
		}
		if bt.StakeCount <= 0 {
			return nil, fmt.Errorf("bird type %q needs a positive stake count", bt.Name)
		}
	}

	tournament := &tournamentdb.Tournament{
		ID:          uuid.New(),
		Name:        input.Name,
		EventDate:   eventDate,
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
	}
	if err := s.TournamentDB.Create(ctx, tournament); err != nil {
		return nil, err
	}

	for _, bt := range input.BirdTypes {
		birdType := &birdtypedb.BirdType{
			ID:           uuid.New(),
			TournamentID: tournament.ID,
			Name:         strings.TrimSpace(bt.Name),
			Color:        bt.Color,
		}
		if err := s.BirdTypeDB.Create(ctx, birdType); err != nil {
			return nil, fmt.Errorf("failed to create bird type %q: %w", bt.Name, err)
		}
		if err := s.StakeDB.SeedForBirdType(ctx, birdType.ID, bt.StakeCount); err != nil {
			return nil, fmt.Errorf("failed to seed stakes for %q: %w", bt.Name, err)
		}
	}

	if input.Active {
		if err := s.TournamentDB.Activate(ctx, tournament.ID); err != nil {
			return nil, err
		}
		tournament.Active = true
	}

	s.logger.InfoContext(ctx, "Tournament created",
		slog.String("tournament_id", tournament.ID.String()),
		slog.String("name", tournament.Name),
		slog.Int("bird_types", len(input.BirdTypes)),
	)
	return tournament, nil
}

// Get retrieves a tournament by ID.
func (s *TournamentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*tournamentdb.Tournament, error) {
	return s.TournamentDB.GetByID(ctx, id)
}

// GetActive retrieves the single active tournament.
func (s *TournamentServiceImpl) GetActive(ctx context.Context) (*tournamentdb.Tournament, error) {
	return s.TournamentDB.GetActive(ctx)
}

// List returns all tournaments.
func (s *TournamentServiceImpl) List(ctx context.Context) ([]tournamentdb.Tournament, error) {
	return s.TournamentDB.List(ctx)
}

// Activate makes the given tournament the single active one.
func (s *TournamentServiceImpl) Activate(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "tournament.activate")
	defer span.End()

	if err := s.TournamentDB.Activate(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Tournament activated", slog.String("tournament_id", id.String()))
	return nil
}

// Deactivate clears the active flag.
func (s *TournamentServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "tournament.deactivate")
	defer span.End()

	if err := s.TournamentDB.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Tournament deactivated", slog.String("tournament_id", id.String()))
	return nil
}
