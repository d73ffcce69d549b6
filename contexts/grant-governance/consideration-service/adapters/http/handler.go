package httpadapter

import (
	"context"
	"log/slog"

	"grantflow/contexts/grant-governance/consideration-service/application/commands"
	"grantflow/contexts/grant-governance/consideration-service/application/queries"
	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	httptransport "grantflow/contexts/grant-governance/consideration-service/transport/http"
)

type Handler struct {
	Votes      commands.SubmitVoteUseCase
	Evaluation queries.EvaluateUseCase
	Logger     *slog.Logger
}

// SubmitVoteHandler godoc
// @Summary Cast or revise a consideration vote
// @Description Upserts the voter's decision and re-evaluates the proposal's status.
// @Tags consideration-service
// @Accept json
// @Produce json
// @Param proposal_id path string true "Proposal id"
// @Param request body httptransport.SubmitVoteRequest true "Vote"
// @Success 200 {object} httptransport.SubmitVoteResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/proposals/{proposal_id}/consideration/votes [post]
func (h Handler) SubmitVoteHandler(ctx context.Context, proposalID string, req httptransport.SubmitVoteRequest) (httptransport.SubmitVoteResponse, error) {
	outcome, err := h.Votes.Execute(ctx, commands.SubmitVoteCommand{
		ProposalID: proposalID,
		VoterID:    req.VoterID,
		Decision:   entities.Decision(req.Decision),
		Feedback:   req.Feedback,
	})
	if err != nil {
		return httptransport.SubmitVoteResponse{}, err
	}
	return httptransport.SubmitVoteResponse{
		ProposalID: outcome.Vote.ProposalID,
		VoterID:    outcome.Vote.VoterID,
		Decision:   string(outcome.Vote.Decision),
		IsReviewer: outcome.Vote.IsReviewer,
		UpdatedAt:  outcome.Vote.UpdatedAt,
		Verdict:    string(outcome.Transition.Verdict),
		Moved:      outcome.Transition.Moved,
		Status:     string(outcome.Transition.To),
	}, nil
}

// EvaluationHandler godoc
// @Summary Current consideration verdict
// @Description Merges reviewer tallies with the cached on-chain snapshot.
// @Tags consideration-service
// @Produce json
// @Param proposal_id path string true "Proposal id"
// @Success 200 {object} httptransport.EvaluationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/proposals/{proposal_id}/consideration [get]
func (h Handler) EvaluationHandler(ctx context.Context, proposalID string) (httptransport.EvaluationResponse, error) {
	verdict, err := h.Evaluation.Evaluate(ctx, proposalID)
	if err != nil {
		return httptransport.EvaluationResponse{}, err
	}
	return httptransport.EvaluationResponse{
		ProposalID:         verdict.ProposalID,
		Verdict:            string(verdict.Verdict),
		ReviewerApprovals:  verdict.ApprovedCount,
		ReviewerRejections: verdict.RejectedCount,
		Snapshot: httptransport.OCVSnapshotResponse{
			TotalCommunityVotes: verdict.TotalCommunityVotes,
			TotalPositiveVotes:  verdict.TotalPositiveVotes,
			PositiveStakeWeight: verdict.PositiveStakeWeight.String(),
			Eligible:            verdict.OracleEligible,
			RefreshedAt:         verdict.SnapshotRefreshedAt,
		},
	}, nil
}

// VoteListHandler godoc
// @Summary List consideration votes for a proposal
// @Tags consideration-service
// @Produce json
// @Param proposal_id path string true "Proposal id"
// @Success 200 {object} httptransport.VoteListResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/proposals/{proposal_id}/consideration/votes [get]
func (h Handler) VoteListHandler(ctx context.Context, proposalID string) (httptransport.VoteListResponse, error) {
	votes, err := h.Evaluation.ListVotes(ctx, proposalID)
	if err != nil {
		return httptransport.VoteListResponse{}, err
	}
	payloads := make([]httptransport.VoteResponse, 0, len(votes))
	for _, vote := range votes {
		payloads = append(payloads, httptransport.VoteResponse{
			VoterID:    vote.VoterID,
			Decision:   string(vote.Decision),
			Feedback:   vote.Feedback,
			IsReviewer: vote.IsReviewer,
			CreatedAt:  vote.CreatedAt,
			UpdatedAt:  vote.UpdatedAt,
		})
	}
	return httptransport.VoteListResponse{
		ProposalID: proposalID,
		Votes:      payloads,
	}, nil
}
