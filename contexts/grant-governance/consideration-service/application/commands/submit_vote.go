package commands

import (
	"context"
	"log/slog"
	"strings"

	application "grantflow/contexts/grant-governance/consideration-service/application"
	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/consideration-service/domain/errors"
	"grantflow/contexts/grant-governance/consideration-service/ports"
)

type SubmitVoteCommand struct {
	ProposalID string
	VoterID    string
	Decision   entities.Decision
	Feedback   string
}

type SubmitVoteResult struct {
	Vote       entities.ConsiderationVote
	Transition Transition
}

// SubmitVoteUseCase records a consideration vote and then runs the status
// machine. The vote write is what the caller gets an immediate answer for;
// the transition is a side effect other readers may observe slightly later,
// but every successful write is followed by exactly one evaluation.
type SubmitVoteUseCase struct {
	Votes     ports.VoteRepository
	Proposals ports.ProposalRepository
	Reviewers ports.ReviewerDirectory
	Machine   CheckAndMoveUseCase
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc SubmitVoteUseCase) Execute(ctx context.Context, cmd SubmitVoteCommand) (SubmitVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID := strings.TrimSpace(cmd.ProposalID)
	voterID := strings.TrimSpace(cmd.VoterID)
	feedback := strings.TrimSpace(cmd.Feedback)

	if proposalID == "" || voterID == "" {
		return SubmitVoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	if !entities.IsSupportedDecision(cmd.Decision) {
		return SubmitVoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	if feedback == "" {
		return SubmitVoteResult{}, domainerrors.ErrFeedbackRequired
	}

	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	if proposal.Status != entities.ProposalStatusConsideration {
		return SubmitVoteResult{}, domainerrors.ErrProposalNotInConsideration
	}

	eligibility, err := uc.Reviewers.EligibilityFor(ctx, voterID, proposal.RoundID)
	if err != nil {
		return SubmitVoteResult{}, err
	}

	now := uc.Clock.Now().UTC()
	vote := entities.ConsiderationVote{
		ProposalID: proposalID,
		VoterID:    voterID,
		Decision:   cmd.Decision,
		Feedback:   feedback,
		IsReviewer: eligibility.IsReviewer,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Votes.UpsertVote(ctx, vote); err != nil {
		logger.Error("consideration vote write failed",
			"event", "consideration_vote_write_failed",
			"module", "grant-governance/consideration-service",
			"layer", "application",
			"proposal_id", proposalID,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return SubmitVoteResult{}, err
	}
	if !eligibility.IsReviewer {
		// Community signal only: recorded, never counted toward reviewer
		// thresholds. The weighted tally for such voters arrives through the
		// on-chain snapshot instead.
		logger.Info("community consideration signal recorded",
			"event", "consideration_community_signal_recorded",
			"module", "grant-governance/consideration-service",
			"layer", "application",
			"proposal_id", proposalID,
			"voter_id", voterID,
		)
	}

	transition, err := uc.Machine.Execute(ctx, proposalID)
	if err != nil {
		return SubmitVoteResult{}, err
	}

	logger.Info("consideration vote recorded",
		"event", "consideration_vote_recorded",
		"module", "grant-governance/consideration-service",
		"layer", "application",
		"proposal_id", proposalID,
		"voter_id", voterID,
		"decision", string(cmd.Decision),
		"is_reviewer", eligibility.IsReviewer,
		"moved", transition.Moved,
	)
	return SubmitVoteResult{Vote: vote, Transition: transition}, nil
}
