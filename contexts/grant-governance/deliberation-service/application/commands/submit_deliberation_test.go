package commands

import (
	"context"
	"errors"
	"testing"

	"grantflow/contexts/grant-governance/deliberation-service/adapters/memory"
	"grantflow/contexts/grant-governance/deliberation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/deliberation-service/domain/errors"
	"grantflow/contexts/grant-governance/deliberation-service/ports"
)

func newUseCase(store *memory.Store) SubmitDeliberationUseCase {
	return SubmitDeliberationUseCase{
		ReviewerVotes: store,
		Feedback:      store,
		Proposals:     store,
		Reviewers:     store,
		Clock:         store,
	}
}

func TestSubmitDeliberationValidation(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusDeliberation,
	})
	useCase := newUseCase(store)
	ctx := context.Background()

	if _, err := useCase.Execute(ctx, SubmitDeliberationCommand{ProposalID: "prop-1", Memo: "x"}); !errors.Is(err, domainerrors.ErrInvalidDeliberationInput) {
		t.Fatalf("missing voter: got %v", err)
	}
	if _, err := useCase.Execute(ctx, SubmitDeliberationCommand{ProposalID: "prop-1", VoterID: "rev-a", Memo: "  "}); !errors.Is(err, domainerrors.ErrMemoRequired) {
		t.Fatalf("blank memo: got %v", err)
	}
	if _, err := useCase.Execute(ctx, SubmitDeliberationCommand{ProposalID: "prop-x", VoterID: "rev-a", Memo: "x"}); !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("unknown proposal: got %v", err)
	}
}

func TestSubmitDeliberationRequiresDeliberationStage(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusVoting,
	})
	useCase := newUseCase(store)

	_, err := useCase.Execute(context.Background(), SubmitDeliberationCommand{
		ProposalID: "prop-1",
		VoterID:    "rev-a",
		Memo:       "too late",
	})
	if !errors.Is(err, domainerrors.ErrProposalNotInDeliberation) {
		t.Fatalf("got %v", err)
	}
}

func TestSubmitDeliberationRoutesByMembership(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusDeliberation,
	})
	store.SetReviewer("rev-a", "round-1", true)
	useCase := newUseCase(store)
	ctx := context.Background()

	reviewer, err := useCase.Execute(ctx, SubmitDeliberationCommand{
		ProposalID:  "prop-1",
		VoterID:     "rev-a",
		Recommended: true,
		Memo:        "strong team",
	})
	if err != nil {
		t.Fatalf("reviewer submission: %v", err)
	}
	if !reviewer.IsReviewer || reviewer.Recorded != recordedReviewerVote {
		t.Fatalf("reviewer misrouted: %+v", reviewer)
	}

	community, err := useCase.Execute(ctx, SubmitDeliberationCommand{
		ProposalID:  "prop-1",
		VoterID:     "usr-z",
		Recommended: true,
		Memo:        "looks promising",
	})
	if err != nil {
		t.Fatalf("community submission: %v", err)
	}
	if community.IsReviewer || community.Recorded != recordedCommunityFeedback {
		t.Fatalf("community misrouted: %+v", community)
	}

	// The community stance must never reach the counted tally.
	tally, err := store.CountRecommendations(ctx, "prop-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if tally.Yes != 1 || tally.No != 0 {
		t.Fatalf("unexpected tally %+v", tally)
	}
	feedback, err := store.ListCommunityFeedback(ctx, "prop-1")
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if len(feedback) != 1 || feedback[0].AuthorID != "usr-z" {
		t.Fatalf("community feedback not stored: %+v", feedback)
	}
}

func TestSubmitDeliberationRevisionReplacesStance(t *testing.T) {
	store := memory.NewStore()
	store.SetProposal(ports.ProposalProjection{
		ProposalID: "prop-1",
		RoundID:    "round-1",
		Status:     entities.ProposalStatusDeliberation,
	})
	store.SetReviewer("rev-a", "round-1", true)
	useCase := newUseCase(store)
	ctx := context.Background()

	for _, stance := range []bool{true, false} {
		if _, err := useCase.Execute(ctx, SubmitDeliberationCommand{
			ProposalID:  "prop-1",
			VoterID:     "rev-a",
			Recommended: stance,
			Memo:        "revised position",
		}); err != nil {
			t.Fatalf("submission: %v", err)
		}
	}

	tally, err := store.CountRecommendations(ctx, "prop-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if tally.Yes != 0 || tally.No != 1 {
		t.Fatalf("revision double-counted: %+v", tally)
	}
}
