package queries

import (
	"context"
	"strings"

	"grantflow/contexts/grant-governance/deliberation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/deliberation-service/domain/errors"
	"grantflow/contexts/grant-governance/deliberation-service/domain/services"
	"grantflow/contexts/grant-governance/deliberation-service/ports"
)

// DeliberationSummary is the read model shown alongside a proposal during
// and after deliberation.
type DeliberationSummary struct {
	ProposalID     string
	Recommendation entities.Recommendation
	YesCount       int
	NoCount        int
	ReviewerVotes  []entities.ReviewerVote
	Feedback       []entities.CommunityFeedback
}

// RecommendationUseCase recomputes the recommendation from stored votes on
// every read; nothing is cached, so a revised reviewer stance shows up
// immediately.
type RecommendationUseCase struct {
	ReviewerVotes ports.ReviewerVoteRepository
	Feedback      ports.CommunityFeedbackRepository
}

func (uc RecommendationUseCase) Summarize(ctx context.Context, proposalID string) (DeliberationSummary, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return DeliberationSummary{}, domainerrors.ErrInvalidDeliberationInput
	}

	tally, err := uc.ReviewerVotes.CountRecommendations(ctx, proposalID)
	if err != nil {
		return DeliberationSummary{}, err
	}
	votes, err := uc.ReviewerVotes.ListReviewerVotes(ctx, proposalID)
	if err != nil {
		return DeliberationSummary{}, err
	}
	feedback, err := uc.Feedback.ListCommunityFeedback(ctx, proposalID)
	if err != nil {
		return DeliberationSummary{}, err
	}

	return DeliberationSummary{
		ProposalID:     proposalID,
		Recommendation: services.DeriveRecommendation(tally),
		YesCount:       tally.Yes,
		NoCount:        tally.No,
		ReviewerVotes:  votes,
		Feedback:       feedback,
	}, nil
}
