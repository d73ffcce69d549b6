package httpadapter

import (
	"context"
	"log/slog"

	"grantflow/contexts/grant-governance/deliberation-service/application/commands"
	"grantflow/contexts/grant-governance/deliberation-service/application/queries"
	httptransport "grantflow/contexts/grant-governance/deliberation-service/transport/http"
)

type Handler struct {
	Submissions commands.SubmitDeliberationUseCase
	Summaries   queries.RecommendationUseCase
	Logger      *slog.Logger
}

// SubmitHandler godoc
// @Summary Submit a deliberation stance or comment
// @Description Reviewers cast a counted yes/no stance; community members leave feedback.
// @Tags deliberation-service
// @Accept json
// @Produce json
// @Param proposal_id path string true "Proposal id"
// @Param request body httptransport.SubmitDeliberationRequest true "Submission"
// @Success 200 {object} httptransport.SubmitDeliberationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/proposals/{proposal_id}/deliberation [post]
func (h Handler) SubmitHandler(ctx context.Context, proposalID string, req httptransport.SubmitDeliberationRequest) (httptransport.SubmitDeliberationResponse, error) {
	result, err := h.Submissions.Execute(ctx, commands.SubmitDeliberationCommand{
		ProposalID:  proposalID,
		VoterID:     req.VoterID,
		Recommended: req.Recommended,
		Memo:        req.Memo,
	})
	if err != nil {
		return httptransport.SubmitDeliberationResponse{}, err
	}
	return httptransport.SubmitDeliberationResponse{
		ProposalID: result.ProposalID,
		VoterID:    result.VoterID,
		IsReviewer: result.IsReviewer,
		Recorded:   result.Recorded,
	}, nil
}

// SummaryHandler godoc
// @Summary Deliberation summary for a proposal
// @Description Derived recommendation, reviewer tally and community feedback.
// @Tags deliberation-service
// @Produce json
// @Param proposal_id path string true "Proposal id"
// @Success 200 {object} httptransport.DeliberationSummaryResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/proposals/{proposal_id}/deliberation [get]
func (h Handler) SummaryHandler(ctx context.Context, proposalID string) (httptransport.DeliberationSummaryResponse, error) {
	summary, err := h.Summaries.Summarize(ctx, proposalID)
	if err != nil {
		return httptransport.DeliberationSummaryResponse{}, err
	}
	votes := make([]httptransport.ReviewerVotePayload, 0, len(summary.ReviewerVotes))
	for _, vote := range summary.ReviewerVotes {
		votes = append(votes, httptransport.ReviewerVotePayload{
			ReviewerID:  vote.ReviewerID,
			Recommended: vote.Recommended,
			Memo:        vote.Memo,
			UpdatedAt:   vote.UpdatedAt,
		})
	}
	feedback := make([]httptransport.CommunityFeedbackPayload, 0, len(summary.Feedback))
	for _, item := range summary.Feedback {
		feedback = append(feedback, httptransport.CommunityFeedbackPayload{
			AuthorID:  item.AuthorID,
			Feedback:  item.Feedback,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return httptransport.DeliberationSummaryResponse{
		ProposalID:     summary.ProposalID,
		Recommendation: string(summary.Recommendation),
		YesCount:       summary.YesCount,
		NoCount:        summary.NoCount,
		ReviewerVotes:  votes,
		Feedback:       feedback,
	}, nil
}
