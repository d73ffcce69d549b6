package ports

import (
	"context"
	"time"

	"grantflow/contexts/grant-governance/deliberation-service/domain/entities"
	"grantflow/contexts/grant-governance/deliberation-service/domain/services"
)

type ReviewerVoteRepository interface {
	// UpsertReviewerVote writes the reviewer's current stance keyed by
	// (proposalID, reviewerID); revising a vote replaces the row.
	UpsertReviewerVote(ctx context.Context, vote entities.ReviewerVote) error
	CountRecommendations(ctx context.Context, proposalID string) (services.Tally, error)
	ListReviewerVotes(ctx context.Context, proposalID string) ([]entities.ReviewerVote, error)
}

type CommunityFeedbackRepository interface {
	UpsertCommunityFeedback(ctx context.Context, feedback entities.CommunityFeedback) error
	ListCommunityFeedback(ctx context.Context, proposalID string) ([]entities.CommunityFeedback, error)
}

// ProposalProjection is the proposal state slice the deliberation stage
// needs.
type ProposalProjection struct {
	ProposalID string
	RoundID    string
	Status     entities.ProposalStatus
}

type ProposalRepository interface {
	GetProposal(ctx context.Context, proposalID string) (ProposalProjection, error)
}

type ReviewerEligibility struct {
	IsReviewer bool
}

type ReviewerDirectory interface {
	EligibilityFor(ctx context.Context, userID string, roundID string) (ReviewerEligibility, error)
}

type Clock interface {
	Now() time.Time
}
