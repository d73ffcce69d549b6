package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"grantflow/contexts/grant-governance/allocation-service/adapters/memory"
	"grantflow/contexts/grant-governance/allocation-service/application/queries"
	"grantflow/contexts/grant-governance/allocation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/allocation-service/domain/errors"
	"grantflow/contexts/grant-governance/allocation-service/ports"

	"github.com/shopspring/decimal"
)

func newFinalizeUseCase(store *memory.Store) FinalizeRoundUseCase {
	allocate := queries.AllocateUseCase{
		Rounds:    store,
		Proposals: store,
		Oracle:    store,
		Winners:   store,
		Clock:     store,
	}
	return FinalizeRoundUseCase{
		Rounds:    store,
		Proposals: store,
		Allocate:  allocate,
		Clock:     store,
	}
}

func seedEndedRound(store *memory.Store) {
	end := time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)
	start := end.Add(-72 * time.Hour)
	store.SetRound(ports.RoundProjection{
		RoundID:     "round-1",
		MEFID:       7,
		TotalBudget: decimal.RequireFromString("500"),
		VotingStart: &start,
		VotingEnd:   &end,
		EndsAt:      end,
	})
	store.SetNow(end.Add(time.Hour))
	store.SetProposal("round-1", entities.VotingProposal{
		ProposalID:      "a",
		OCVID:           1,
		RequestedAmount: decimal.RequireFromString("300"),
	}, entities.ProposalStatusVoting)
	store.SetProposal("round-1", entities.VotingProposal{
		ProposalID:      "b",
		OCVID:           2,
		RequestedAmount: decimal.RequireFromString("300"),
	}, entities.ProposalStatusVoting)
}

func TestFinalizeSettlesStatuses(t *testing.T) {
	store := memory.NewStore()
	seedEndedRound(store)
	store.SetOracleWinners(7, []int64{1, 2})
	useCase := newFinalizeUseCase(store)

	result, err := useCase.Execute(context.Background(), "round-1")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if result.Approved != 1 || result.Rejected != 1 {
		t.Fatalf("settlement %+v", result)
	}
	if store.ProposalStatus("a") != entities.ProposalStatusApproved {
		t.Fatalf("a: %s", store.ProposalStatus("a"))
	}
	if store.ProposalStatus("b") != entities.ProposalStatusRejected {
		t.Fatalf("b: %s", store.ProposalStatus("b"))
	}
}

func TestFinalizeDefersWhileOrderingUnavailable(t *testing.T) {
	store := memory.NewStore()
	seedEndedRound(store)
	store.SetOracleErr(errors.New("oracle down"))
	useCase := newFinalizeUseCase(store)

	if _, err := useCase.Execute(context.Background(), "round-1"); !errors.Is(err, domainerrors.ErrOracleUnavailable) {
		t.Fatalf("got %v", err)
	}
	// Nothing may settle until a ranking is known; the worker retries later.
	if store.ProposalStatus("a") != entities.ProposalStatusVoting {
		t.Fatalf("a moved to %s", store.ProposalStatus("a"))
	}
	if store.ProposalStatus("b") != entities.ProposalStatusVoting {
		t.Fatalf("b moved to %s", store.ProposalStatus("b"))
	}
}

func TestFinalizeBeforeRoundEndFails(t *testing.T) {
	store := memory.NewStore()
	seedEndedRound(store)
	store.SetNow(time.Date(2026, time.April, 18, 0, 0, 0, 0, time.UTC))
	useCase := newFinalizeUseCase(store)

	if _, err := useCase.Execute(context.Background(), "round-1"); !errors.Is(err, domainerrors.ErrRoundNotEnded) {
		t.Fatalf("got %v", err)
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	seedEndedRound(store)
	store.SetOracleWinners(7, []int64{1, 2})
	useCase := newFinalizeUseCase(store)
	ctx := context.Background()

	if _, err := useCase.Execute(ctx, "round-1"); err != nil {
		t.Fatalf("first finalize: %v", err)
	}
	second, err := useCase.Execute(ctx, "round-1")
	if err != nil {
		t.Fatalf("second finalize: %v", err)
	}
	// Every proposal already settled, so the conditional updates all miss.
	if second.Approved != 0 || second.Rejected != 0 {
		t.Fatalf("second run moved proposals: %+v", second)
	}
	if store.ProposalStatus("a") != entities.ProposalStatusApproved {
		t.Fatalf("a regressed to %s", store.ProposalStatus("a"))
	}
}
