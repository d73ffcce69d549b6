package httpadapter

import (
	"context"
	"log/slog"

	"grantflow/contexts/grant-governance/allocation-service/application/commands"
	"grantflow/contexts/grant-governance/allocation-service/application/queries"
	httptransport "grantflow/contexts/grant-governance/allocation-service/transport/http"
)

type Handler struct {
	Allocations queries.AllocateUseCase
	Finalizer   commands.FinalizeRoundUseCase
	Logger      *slog.Logger
}

// AllocationHandler godoc
// @Summary Budget distribution for a round
// @Description Recomputes the greedy ranked-choice allocation from the latest winner ordering.
// @Tags allocation-service
// @Produce json
// @Param round_id path string true "Round id"
// @Success 200 {object} httptransport.AllocationResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/rounds/{round_id}/allocation [get]
func (h Handler) AllocationHandler(ctx context.Context, roundID string) (httptransport.AllocationResponse, error) {
	allocation, err := h.Allocations.Allocate(ctx, roundID)
	if err != nil {
		return httptransport.AllocationResponse{}, err
	}
	funded := make([]httptransport.FundedProposalPayload, 0, len(allocation.Funded))
	for _, item := range allocation.Funded {
		funded = append(funded, httptransport.FundedProposalPayload{
			ProposalID:      item.ProposalID,
			Name:            item.Name,
			RequestedAmount: item.RequestedAmount.String(),
			Rank:            item.Rank,
		})
	}
	unfunded := make([]httptransport.UnfundedProposalPayload, 0, len(allocation.Unfunded))
	for _, item := range allocation.Unfunded {
		unfunded = append(unfunded, httptransport.UnfundedProposalPayload{
			ProposalID:      item.ProposalID,
			Name:            item.Name,
			RequestedAmount: item.RequestedAmount.String(),
			MissingAmount:   item.MissingAmount.String(),
			Ranked:          item.Ranked,
		})
	}
	return httptransport.AllocationResponse{
		RoundID:         allocation.RoundID,
		TotalBudget:     allocation.TotalBudget.String(),
		RemainingBudget: allocation.RemainingBudget.String(),
		Funded:          funded,
		Unfunded:        unfunded,
		IsFinal:         allocation.IsFinal,
		ComputedAt:      allocation.ComputedAt,
	}, nil
}

// FinalizeHandler godoc
// @Summary Finalize an ended round
// @Description Settles the voting slate into approved and rejected statuses.
// @Tags allocation-service
// @Produce json
// @Param round_id path string true "Round id"
// @Success 200 {object} httptransport.FinalizeResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/rounds/{round_id}/finalize [post]
func (h Handler) FinalizeHandler(ctx context.Context, roundID string) (httptransport.FinalizeResponse, error) {
	result, err := h.Finalizer.Execute(ctx, roundID)
	if err != nil {
		return httptransport.FinalizeResponse{}, err
	}
	return httptransport.FinalizeResponse{
		RoundID:  result.RoundID,
		Approved: result.Approved,
		Rejected: result.Rejected,
	}, nil
}
