package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"grantflow/contexts/grant-governance/allocation-service/adapters/memory"
	"grantflow/contexts/grant-governance/allocation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/allocation-service/domain/errors"
	"grantflow/contexts/grant-governance/allocation-service/ports"

	"github.com/shopspring/decimal"
)

func seedVotingRound(store *memory.Store, now time.Time) {
	start := now.Add(-48 * time.Hour)
	end := now.Add(24 * time.Hour)
	store.SetRound(ports.RoundProjection{
		RoundID:     "round-1",
		MEFID:       7,
		TotalBudget: decimal.RequireFromString("700"),
		VotingStart: &start,
		VotingEnd:   &end,
		EndsAt:      end,
	})
	store.SetNow(now)
	store.SetProposal("round-1", entities.VotingProposal{
		ProposalID:      "a",
		OCVID:           1,
		RequestedAmount: decimal.RequireFromString("400"),
	}, entities.ProposalStatusVoting)
	store.SetProposal("round-1", entities.VotingProposal{
		ProposalID:      "b",
		OCVID:           2,
		RequestedAmount: decimal.RequireFromString("300"),
	}, entities.ProposalStatusVoting)
	store.SetProposal("round-1", entities.VotingProposal{
		ProposalID:      "c",
		OCVID:           3,
		RequestedAmount: decimal.RequireFromString("200"),
	}, entities.ProposalStatusVoting)
}

func newAllocateUseCase(store *memory.Store) AllocateUseCase {
	return AllocateUseCase{
		Rounds:    store,
		Proposals: store,
		Oracle:    store,
		Winners:   store,
		Clock:     store,
	}
}

func TestAllocateUsesLiveOracleRanking(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	seedVotingRound(store, now)
	store.SetOracleWinners(7, []int64{2, 1, 3})
	useCase := newAllocateUseCase(store)

	allocation, err := useCase.Allocate(context.Background(), "round-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(allocation.Funded) != 2 || allocation.Funded[0].ProposalID != "b" || allocation.Funded[1].ProposalID != "a" {
		t.Fatalf("funded %+v", allocation.Funded)
	}
	if allocation.IsFinal {
		t.Fatal("round still open must not be final")
	}
	if !allocation.ComputedAt.Equal(now) {
		t.Fatalf("computed at %v", allocation.ComputedAt)
	}
	if !allocation.WinnersKnown {
		t.Fatal("live ranking must mark the ordering as known")
	}
}

func TestAllocateFallsBackToCachedWinners(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	seedVotingRound(store, now)
	store.SetOracleWinners(7, []int64{1, 2})
	useCase := newAllocateUseCase(store)
	ctx := context.Background()

	// First read succeeds and primes the cache.
	if _, err := useCase.Allocate(ctx, "round-1"); err != nil {
		t.Fatalf("first allocate: %v", err)
	}

	store.SetOracleErr(errors.New("oracle timeout"))
	allocation, err := useCase.Allocate(ctx, "round-1")
	if err != nil {
		t.Fatalf("allocate with dead oracle: %v", err)
	}
	if len(allocation.Funded) != 2 || allocation.Funded[0].ProposalID != "a" {
		t.Fatalf("cached winners not used: %+v", allocation.Funded)
	}
}

func TestAllocateWithNoWinnersFundsNothing(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	seedVotingRound(store, now)
	store.SetOracleErr(errors.New("oracle down"))
	useCase := newAllocateUseCase(store)

	allocation, err := useCase.Allocate(context.Background(), "round-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(allocation.Funded) != 0 {
		t.Fatalf("funded %+v", allocation.Funded)
	}
	if len(allocation.Unfunded) != 3 {
		t.Fatalf("unfunded %+v", allocation.Unfunded)
	}
	if !allocation.RemainingBudget.Equal(decimal.RequireFromString("700")) {
		t.Fatalf("remaining %s", allocation.RemainingBudget)
	}
	if allocation.WinnersKnown {
		t.Fatal("dead oracle with an empty cache must flag the ordering as unknown")
	}
}

func TestAllocateMarksFinalAfterRoundEnd(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	seedVotingRound(store, now)
	store.SetOracleWinners(7, []int64{1})
	store.SetNow(now.Add(72 * time.Hour))
	useCase := newAllocateUseCase(store)

	allocation, err := useCase.Allocate(context.Background(), "round-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if !allocation.IsFinal {
		t.Fatal("ended round must report a final allocation")
	}
}

func TestAllocateUnknownRound(t *testing.T) {
	store := memory.NewStore()
	useCase := newAllocateUseCase(store)

	if _, err := useCase.Allocate(context.Background(), "round-x"); !errors.Is(err, domainerrors.ErrRoundNotFound) {
		t.Fatalf("got %v", err)
	}
}
