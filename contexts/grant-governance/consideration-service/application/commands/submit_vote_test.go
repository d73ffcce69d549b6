package commands

import (
	"context"
	"errors"
	"testing"

	"grantflow/contexts/grant-governance/consideration-service/adapters/memory"
	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/consideration-service/domain/errors"
	"grantflow/contexts/grant-governance/consideration-service/ports"
)

func newSubmitUseCase(store *memory.Store) SubmitVoteUseCase {
	return SubmitVoteUseCase{
		Votes:     store,
		Proposals: store,
		Reviewers: store,
		Machine:   newMachine(store),
		Clock:     store,
	}
}

func TestSubmitVoteValidation(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusConsideration,
	})
	useCase := newSubmitUseCase(store)
	ctx := context.Background()

	cases := []struct {
		name    string
		cmd     SubmitVoteCommand
		wantErr error
	}{
		{
			name:    "missing voter",
			cmd:     SubmitVoteCommand{ProposalID: "prop-1", Decision: entities.DecisionApproved, Feedback: "ok"},
			wantErr: domainerrors.ErrInvalidVoteInput,
		},
		{
			name:    "unknown decision",
			cmd:     SubmitVoteCommand{ProposalID: "prop-1", VoterID: "rev-a", Decision: "maybe", Feedback: "ok"},
			wantErr: domainerrors.ErrInvalidVoteInput,
		},
		{
			name:    "blank feedback",
			cmd:     SubmitVoteCommand{ProposalID: "prop-1", VoterID: "rev-a", Decision: entities.DecisionApproved, Feedback: "   "},
			wantErr: domainerrors.ErrFeedbackRequired,
		},
		{
			name:    "unknown proposal",
			cmd:     SubmitVoteCommand{ProposalID: "prop-x", VoterID: "rev-a", Decision: entities.DecisionApproved, Feedback: "ok"},
			wantErr: domainerrors.ErrProposalNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := useCase.Execute(ctx, tc.cmd); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSubmitVoteRejectsProposalOutsideConsideration(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusDeliberation,
	})
	useCase := newSubmitUseCase(store)

	_, err := useCase.Execute(context.Background(), SubmitVoteCommand{
		ProposalID: "prop-1",
		VoterID:    "rev-a",
		Decision:   entities.DecisionApproved,
		Feedback:   "late vote",
	})
	if !errors.Is(err, domainerrors.ErrProposalNotInConsideration) {
		t.Fatalf("got %v", err)
	}
}

func TestSubmitVoteRoutesByReviewerMembership(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusConsideration,
	})
	store.SetReviewer("rev-a", "round-1", true)
	useCase := newSubmitUseCase(store)
	ctx := context.Background()

	reviewer, err := useCase.Execute(ctx, SubmitVoteCommand{
		ProposalID: "prop-1",
		VoterID:    "rev-a",
		Decision:   entities.DecisionApproved,
		Feedback:   "solid plan",
	})
	if err != nil {
		t.Fatalf("reviewer vote: %v", err)
	}
	if !reviewer.Vote.IsReviewer {
		t.Fatal("reviewer-group member recorded as community voter")
	}

	community, err := useCase.Execute(ctx, SubmitVoteCommand{
		ProposalID: "prop-1",
		VoterID:    "usr-z",
		Decision:   entities.DecisionApproved,
		Feedback:   "love it",
	})
	if err != nil {
		t.Fatalf("community vote: %v", err)
	}
	if community.Vote.IsReviewer {
		t.Fatal("community voter recorded as reviewer")
	}

	counts, err := store.CountReviewerDecisions(ctx, "prop-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts.Approved != 1 {
		t.Fatalf("expected one reviewer approval, got %d", counts.Approved)
	}
}

func TestSubmitVoteThirdApprovalPromotes(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusConsideration,
	})
	for _, voter := range []string{"rev-a", "rev-b", "rev-c"} {
		store.SetReviewer(voter, "round-1", true)
	}
	useCase := newSubmitUseCase(store)
	ctx := context.Background()

	var last SubmitVoteResult
	for _, voter := range []string{"rev-a", "rev-b", "rev-c"} {
		var err error
		last, err = useCase.Execute(ctx, SubmitVoteCommand{
			ProposalID: "prop-1",
			VoterID:    voter,
			Decision:   entities.DecisionApproved,
			Feedback:   "approve",
		})
		if err != nil {
			t.Fatalf("vote by %s: %v", voter, err)
		}
	}
	if !last.Transition.Moved || last.Transition.To != entities.ProposalStatusDeliberation {
		t.Fatalf("third approval did not promote: %+v", last.Transition)
	}
	if mustStatus(t, store, "prop-1") != entities.ProposalStatusDeliberation {
		t.Fatal("stored status did not advance")
	}
}

func TestSubmitVoteRevisionKeepsSingleRow(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusConsideration,
	})
	store.SetReviewer("rev-a", "round-1", true)
	useCase := newSubmitUseCase(store)
	ctx := context.Background()

	for _, decision := range []entities.Decision{entities.DecisionApproved, entities.DecisionRejected} {
		if _, err := useCase.Execute(ctx, SubmitVoteCommand{
			ProposalID: "prop-1",
			VoterID:    "rev-a",
			Decision:   decision,
			Feedback:   "changed my mind",
		}); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}

	votes, err := store.ListVotesByProposal(ctx, "prop-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected one row after revision, got %d", len(votes))
	}
	if votes[0].Decision != entities.DecisionRejected {
		t.Fatalf("last write did not win: %s", votes[0].Decision)
	}
}
