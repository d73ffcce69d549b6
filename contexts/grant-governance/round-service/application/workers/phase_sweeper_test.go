package workers

import (
	"context"
	"testing"
	"time"

	"grantflow/contexts/grant-governance/round-service/adapters/memory"
	"grantflow/contexts/grant-governance/round-service/domain/entities"

	"github.com/shopspring/decimal"
)

func TestPhaseSweeperAdvancesDeliberationProposals(t *testing.T) {
	store := memory.NewStore()
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	round := entities.FundingRound{
		RoundID:     "round-1",
		TotalBudget: decimal.RequireFromString("1000"),
		StartsAt:    start,
		EndsAt:      start.AddDate(0, 0, 40),
		Voting:      &entities.PhaseWindow{StartsAt: start.AddDate(0, 0, 30), EndsAt: start.AddDate(0, 0, 40)},
	}
	if err := store.CreateRound(context.Background(), round); err != nil {
		t.Fatalf("seed round: %v", err)
	}
	store.SeedProposal("p-1", "round-1", proposalStatusDeliberation)
	store.SeedProposal("p-2", "round-1", "rejected")
	store.SetNow(start.AddDate(0, 0, 31))

	sweeper := PhaseSweeper{Rounds: store, Proposals: store, Clock: store}
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}
	if got := store.ProposalStatus("p-1"); got != proposalStatusVoting {
		t.Fatalf("expected p-1 in voting, got %s", got)
	}
	if got := store.ProposalStatus("p-2"); got != "rejected" {
		t.Fatalf("expected rejected proposal untouched, got %s", got)
	}
}

func TestPhaseSweeperIgnoresRoundsOutsideVotingWindow(t *testing.T) {
	store := memory.NewStore()
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	round := entities.FundingRound{
		RoundID:     "round-1",
		TotalBudget: decimal.RequireFromString("1000"),
		StartsAt:    start,
		EndsAt:      start.AddDate(0, 0, 40),
		Voting:      &entities.PhaseWindow{StartsAt: start.AddDate(0, 0, 30), EndsAt: start.AddDate(0, 0, 40)},
	}
	if err := store.CreateRound(context.Background(), round); err != nil {
		t.Fatalf("seed round: %v", err)
	}
	store.SeedProposal("p-1", "round-1", proposalStatusDeliberation)
	store.SetNow(start.AddDate(0, 0, 20))

	sweeper := PhaseSweeper{Rounds: store, Proposals: store, Clock: store}
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}
	if got := store.ProposalStatus("p-1"); got != proposalStatusDeliberation {
		t.Fatalf("expected proposal untouched before voting window, got %s", got)
	}
}
