package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"grantflow/contexts/grant-governance/round-service/adapters/memory"
	"grantflow/contexts/grant-governance/round-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/round-service/domain/errors"

	"github.com/shopspring/decimal"
)

func seedRound(t *testing.T, store *memory.Store) entities.FundingRound {
	t.Helper()
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	round := entities.FundingRound{
		RoundID:       "round-1",
		MEFID:         12,
		Name:          "Ecosystem Round 1",
		TotalBudget:   decimal.RequireFromString("100000"),
		StartsAt:      start,
		EndsAt:        start.AddDate(0, 0, 40),
		Submission:    &entities.PhaseWindow{StartsAt: start, EndsAt: start.AddDate(0, 0, 10)},
		Consideration: &entities.PhaseWindow{StartsAt: start.AddDate(0, 0, 10), EndsAt: start.AddDate(0, 0, 20)},
		Voting:        &entities.PhaseWindow{StartsAt: start.AddDate(0, 0, 30), EndsAt: start.AddDate(0, 0, 40)},
	}
	if err := store.CreateRound(context.Background(), round); err != nil {
		t.Fatalf("seed round: %v", err)
	}
	return round
}

func TestGetPhaseResolvesFromClock(t *testing.T) {
	store := memory.NewStore()
	round := seedRound(t, store)
	store.SetNow(round.StartsAt.AddDate(0, 0, 15))

	useCase := PhaseUseCase{Rounds: store, Clock: store}
	phase, err := useCase.GetPhase(context.Background(), round.RoundID)
	if err != nil {
		t.Fatalf("get phase returned error: %v", err)
	}
	if phase.Phase != entities.PhaseConsideration {
		t.Fatalf("expected consideration, got %s", phase.Phase)
	}
}

func TestGetPhaseReportsGapNeighbors(t *testing.T) {
	store := memory.NewStore()
	round := seedRound(t, store)
	// Day 25 falls in the gap left by the missing deliberation window.
	store.SetNow(round.StartsAt.AddDate(0, 0, 25))

	useCase := PhaseUseCase{Rounds: store, Clock: store}
	phase, err := useCase.GetPhase(context.Background(), round.RoundID)
	if err != nil {
		t.Fatalf("get phase returned error: %v", err)
	}
	if phase.Phase != entities.PhaseBetweenPhases {
		t.Fatalf("expected between_phases, got %s", phase.Phase)
	}
	if phase.Previous == nil || phase.Previous.Kind != entities.WindowConsideration {
		t.Fatalf("expected previous consideration window, got %+v", phase.Previous)
	}
	if phase.Next == nil || phase.Next.Kind != entities.WindowVoting {
		t.Fatalf("expected next voting window, got %+v", phase.Next)
	}
}

func TestGetPhaseUnknownRound(t *testing.T) {
	store := memory.NewStore()
	useCase := PhaseUseCase{Rounds: store, Clock: store}
	_, err := useCase.GetPhase(context.Background(), "missing")
	if !errors.Is(err, domainerrors.ErrRoundNotFound) {
		t.Fatalf("expected ErrRoundNotFound, got %v", err)
	}
}
