package queries

import (
	"context"
	"testing"
	"time"

	"grantflow/contexts/grant-governance/consideration-service/adapters/memory"
	"grantflow/contexts/grant-governance/consideration-service/domain/entities"

	"github.com/shopspring/decimal"
)

func TestEvaluateDefaultsWhenNothingRecorded(t *testing.T) {
	store := memory.NewStore()
	useCase := EvaluateUseCase{Votes: store, Snapshots: store}

	verdict, err := useCase.Evaluate(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Verdict != entities.VerdictPending {
		t.Fatalf("expected pending, got %s", verdict.Verdict)
	}
	if verdict.ApprovedCount != 0 || verdict.RejectedCount != 0 {
		t.Fatalf("expected zero reviewer counts, got %+v", verdict)
	}
	if verdict.OracleEligible {
		t.Fatal("missing snapshot must read as not eligible")
	}
	if !verdict.PositiveStakeWeight.IsZero() {
		t.Fatalf("expected zero stake weight, got %s", verdict.PositiveStakeWeight)
	}
}

func TestEvaluateReviewerApprovalThreshold(t *testing.T) {
	store := memory.NewStore()
	useCase := EvaluateUseCase{Votes: store, Snapshots: store}
	ctx := context.Background()

	for _, voter := range []string{"rev-a", "rev-b"} {
		seedVote(t, store, "prop-1", voter, entities.DecisionApproved, true)
	}
	verdict, err := useCase.Evaluate(ctx, "prop-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Verdict != entities.VerdictPending {
		t.Fatalf("two approvals must stay pending, got %s", verdict.Verdict)
	}

	seedVote(t, store, "prop-1", "rev-c", entities.DecisionApproved, true)
	verdict, err = useCase.Evaluate(ctx, "prop-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Verdict != entities.VerdictApproved {
		t.Fatalf("three approvals must approve, got %s", verdict.Verdict)
	}
	if verdict.ApprovedCount != 3 {
		t.Fatalf("expected 3 approvals, got %d", verdict.ApprovedCount)
	}
}

func TestEvaluateRevisedVoteCountsOnce(t *testing.T) {
	store := memory.NewStore()
	useCase := EvaluateUseCase{Votes: store, Snapshots: store}

	seedVote(t, store, "prop-1", "rev-a", entities.DecisionApproved, true)
	seedVote(t, store, "prop-1", "rev-a", entities.DecisionRejected, true)

	verdict, err := useCase.Evaluate(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.ApprovedCount != 0 || verdict.RejectedCount != 1 {
		t.Fatalf("revised vote double-counted: %+v", verdict)
	}
}

func TestEvaluateCommunityVotesNeverCount(t *testing.T) {
	store := memory.NewStore()
	useCase := EvaluateUseCase{Votes: store, Snapshots: store}

	for _, voter := range []string{"usr-a", "usr-b", "usr-c", "usr-d"} {
		seedVote(t, store, "prop-1", voter, entities.DecisionApproved, false)
	}
	verdict, err := useCase.Evaluate(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Verdict != entities.VerdictPending {
		t.Fatalf("community votes moved the verdict: %s", verdict.Verdict)
	}
}

func TestEvaluateOracleEligibilityOverridesReviewers(t *testing.T) {
	store := memory.NewStore()
	useCase := EvaluateUseCase{Votes: store, Snapshots: store}
	ctx := context.Background()

	for _, voter := range []string{"rev-a", "rev-b", "rev-c"} {
		seedVote(t, store, "prop-1", voter, entities.DecisionRejected, true)
	}
	snapshot := entities.OCVSnapshot{
		ProposalID:          "prop-1",
		TotalCommunityVotes: 40,
		TotalPositiveVotes:  31,
		PositiveStakeWeight: decimal.RequireFromString("125000.5"),
		Eligible:            true,
		RefreshedAt:         time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := store.SaveSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	verdict, err := useCase.Evaluate(ctx, "prop-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Verdict != entities.VerdictApproved {
		t.Fatalf("community eligibility must beat reviewer rejections, got %s", verdict.Verdict)
	}
	if verdict.RejectedCount != 3 {
		t.Fatalf("expected 3 rejections reported, got %d", verdict.RejectedCount)
	}
	if !verdict.PositiveStakeWeight.Equal(snapshot.PositiveStakeWeight) {
		t.Fatalf("stake weight mismatch: %s", verdict.PositiveStakeWeight)
	}
}

func TestEvaluateCustomThreshold(t *testing.T) {
	store := memory.NewStore()
	useCase := EvaluateUseCase{Votes: store, Snapshots: store, MinReviewerApprovals: 1}

	seedVote(t, store, "prop-1", "rev-a", entities.DecisionApproved, true)
	verdict, err := useCase.Evaluate(context.Background(), "prop-1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Verdict != entities.VerdictApproved {
		t.Fatalf("threshold of one must approve on first vote, got %s", verdict.Verdict)
	}
}

func seedVote(t *testing.T, store *memory.Store, proposalID, voterID string, decision entities.Decision, isReviewer bool) {
	t.Helper()
	err := store.UpsertVote(context.Background(), entities.ConsiderationVote{
		ProposalID: proposalID,
		VoterID:    voterID,
		Decision:   decision,
		Feedback:   "detailed written assessment",
		IsReviewer: isReviewer,
	})
	if err != nil {
		t.Fatalf("seed vote: %v", err)
	}
}
