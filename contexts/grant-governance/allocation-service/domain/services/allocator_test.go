package services

import (
	"testing"

	"grantflow/contexts/grant-governance/allocation-service/domain/entities"

	"github.com/shopspring/decimal"
)

func proposal(id string, ocvID int64, amount string) entities.VotingProposal {
	return entities.VotingProposal{
		ProposalID:      id,
		OCVID:           ocvID,
		RequestedAmount: decimal.RequireFromString(amount),
	}
}

func fundedIDs(allocation entities.Allocation) []string {
	ids := make([]string, 0, len(allocation.Funded))
	for _, item := range allocation.Funded {
		ids = append(ids, item.ProposalID)
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDistributeFundsInRankOrder(t *testing.T) {
	proposals := []entities.VotingProposal{
		proposal("a", 1, "400"),
		proposal("b", 2, "300"),
		proposal("c", 3, "200"),
	}
	allocation := Distribute("round-1", decimal.RequireFromString("700"), proposals, []int64{2, 1, 3})

	if !equalIDs(fundedIDs(allocation), []string{"b", "a"}) {
		t.Fatalf("funded %v", fundedIDs(allocation))
	}
	if !allocation.RemainingBudget.IsZero() {
		t.Fatalf("remaining %s", allocation.RemainingBudget)
	}
	if len(allocation.Unfunded) != 1 || allocation.Unfunded[0].ProposalID != "c" {
		t.Fatalf("unfunded %+v", allocation.Unfunded)
	}
	if !allocation.Unfunded[0].MissingAmount.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("missing %s", allocation.Unfunded[0].MissingAmount)
	}
}

func TestDistributeSkipsOversizedWinnerWithoutBacktracking(t *testing.T) {
	proposals := []entities.VotingProposal{
		proposal("big", 1, "800"),
		proposal("mid", 2, "100"),
		proposal("small", 3, "50"),
	}

	// A top-ranked winner that fits takes the budget even when skipping it
	// would have funded more proposals overall.
	allocation := Distribute("round-1", decimal.RequireFromString("900"), proposals, []int64{1, 2, 3})
	if !equalIDs(fundedIDs(allocation), []string{"big", "mid"}) {
		t.Fatalf("funded %v", fundedIDs(allocation))
	}
	if !allocation.RemainingBudget.IsZero() {
		t.Fatalf("remaining %s", allocation.RemainingBudget)
	}
	if len(allocation.Unfunded) != 1 || allocation.Unfunded[0].ProposalID != "small" {
		t.Fatalf("unfunded %+v", allocation.Unfunded)
	}
	if !allocation.Unfunded[0].MissingAmount.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("missing %s", allocation.Unfunded[0].MissingAmount)
	}

	// When the top winner does not fit it is skipped once and never revisited,
	// even though the budget left at the end could not have covered it anyway.
	allocation = Distribute("round-1", decimal.RequireFromString("700"), proposals, []int64{1, 2, 3})
	if !equalIDs(fundedIDs(allocation), []string{"mid", "small"}) {
		t.Fatalf("funded %v", fundedIDs(allocation))
	}
	if !allocation.RemainingBudget.Equal(decimal.RequireFromString("550")) {
		t.Fatalf("remaining %s", allocation.RemainingBudget)
	}
	skipped := allocation.Unfunded[0]
	if skipped.ProposalID != "big" || !skipped.Ranked {
		t.Fatalf("skipped %+v", skipped)
	}
	if !skipped.MissingAmount.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("missing %s", skipped.MissingAmount)
	}
}

func TestDistributeMissingAmountUsesRemainingAtEvaluation(t *testing.T) {
	proposals := []entities.VotingProposal{
		proposal("a", 1, "60"),
		proposal("b", 2, "70"),
	}
	allocation := Distribute("round-1", decimal.RequireFromString("100"), proposals, []int64{1, 2})

	if !equalIDs(fundedIDs(allocation), []string{"a"}) {
		t.Fatalf("funded %v", fundedIDs(allocation))
	}
	if len(allocation.Unfunded) != 1 {
		t.Fatalf("unfunded %+v", allocation.Unfunded)
	}
	// b is evaluated with 40 left, so it is short exactly 30.
	if !allocation.Unfunded[0].MissingAmount.Equal(decimal.RequireFromString("30")) {
		t.Fatalf("missing %s", allocation.Unfunded[0].MissingAmount)
	}
}

func TestDistributeIgnoresUnknownAndDuplicateWinners(t *testing.T) {
	proposals := []entities.VotingProposal{
		proposal("a", 1, "10"),
		proposal("b", 2, "10"),
	}
	allocation := Distribute("round-1", decimal.RequireFromString("15"), proposals, []int64{99, 1, 1, 2})

	if !equalIDs(fundedIDs(allocation), []string{"a"}) {
		t.Fatalf("funded %v", fundedIDs(allocation))
	}
	if len(allocation.Unfunded) != 1 || allocation.Unfunded[0].ProposalID != "b" {
		t.Fatalf("unfunded %+v", allocation.Unfunded)
	}
}

func TestDistributeNoWinnersLeavesEveryoneUnfunded(t *testing.T) {
	proposals := []entities.VotingProposal{
		proposal("b", 2, "10"),
		proposal("a", 1, "20"),
	}
	allocation := Distribute("round-1", decimal.RequireFromString("100"), proposals, nil)

	if len(allocation.Funded) != 0 {
		t.Fatalf("funded %+v", allocation.Funded)
	}
	if !allocation.RemainingBudget.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("remaining %s", allocation.RemainingBudget)
	}
	// Unranked proposals come out in id order with full requests missing.
	if len(allocation.Unfunded) != 2 || allocation.Unfunded[0].ProposalID != "a" || allocation.Unfunded[1].ProposalID != "b" {
		t.Fatalf("unfunded %+v", allocation.Unfunded)
	}
	if !allocation.Unfunded[0].MissingAmount.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("missing %s", allocation.Unfunded[0].MissingAmount)
	}
}
