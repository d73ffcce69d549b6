package commands

import (
	"context"
	"log/slog"
	"strings"

	application "grantflow/contexts/grant-governance/deliberation-service/application"
	"grantflow/contexts/grant-governance/deliberation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/deliberation-service/domain/errors"
	"grantflow/contexts/grant-governance/deliberation-service/ports"
)

type SubmitDeliberationCommand struct {
	ProposalID string
	VoterID    string
	// Recommended is honored for reviewers only; community submissions are
	// stored as feedback regardless of the stance sent.
	Recommended bool
	Memo        string
}

type SubmitDeliberationResult struct {
	ProposalID string
	VoterID    string
	IsReviewer bool
	Recorded   string
}

const (
	recordedReviewerVote      = "reviewer_vote"
	recordedCommunityFeedback = "community_feedback"
)

// SubmitDeliberationUseCase routes a deliberation submission by the voter's
// reviewer-group membership: reviewers cast a counted yes/no stance, everyone
// else contributes written feedback that is kept but never tallied.
type SubmitDeliberationUseCase struct {
	ReviewerVotes ports.ReviewerVoteRepository
	Feedback      ports.CommunityFeedbackRepository
	Proposals     ports.ProposalRepository
	Reviewers     ports.ReviewerDirectory
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (uc SubmitDeliberationUseCase) Execute(ctx context.Context, cmd SubmitDeliberationCommand) (SubmitDeliberationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID := strings.TrimSpace(cmd.ProposalID)
	voterID := strings.TrimSpace(cmd.VoterID)
	memo := strings.TrimSpace(cmd.Memo)

	if proposalID == "" || voterID == "" {
		return SubmitDeliberationResult{}, domainerrors.ErrInvalidDeliberationInput
	}
	if memo == "" {
		return SubmitDeliberationResult{}, domainerrors.ErrMemoRequired
	}

	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return SubmitDeliberationResult{}, err
	}
	if proposal.Status != entities.ProposalStatusDeliberation {
		return SubmitDeliberationResult{}, domainerrors.ErrProposalNotInDeliberation
	}

	eligibility, err := uc.Reviewers.EligibilityFor(ctx, voterID, proposal.RoundID)
	if err != nil {
		return SubmitDeliberationResult{}, err
	}

	now := uc.Clock.Now().UTC()
	recorded := recordedCommunityFeedback
	if eligibility.IsReviewer {
		recorded = recordedReviewerVote
		err = uc.ReviewerVotes.UpsertReviewerVote(ctx, entities.ReviewerVote{
			ProposalID:  proposalID,
			ReviewerID:  voterID,
			Recommended: cmd.Recommended,
			Memo:        memo,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	} else {
		err = uc.Feedback.UpsertCommunityFeedback(ctx, entities.CommunityFeedback{
			ProposalID: proposalID,
			AuthorID:   voterID,
			Feedback:   memo,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err != nil {
		logger.Error("deliberation submission write failed",
			"event", "deliberation_submission_write_failed",
			"module", "grant-governance/deliberation-service",
			"layer", "application",
			"proposal_id", proposalID,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return SubmitDeliberationResult{}, err
	}

	logger.Info("deliberation submission recorded",
		"event", "deliberation_submission_recorded",
		"module", "grant-governance/deliberation-service",
		"layer", "application",
		"proposal_id", proposalID,
		"voter_id", voterID,
		"recorded", recorded,
	)
	return SubmitDeliberationResult{
		ProposalID: proposalID,
		VoterID:    voterID,
		IsReviewer: eligibility.IsReviewer,
		Recorded:   recorded,
	}, nil
}
