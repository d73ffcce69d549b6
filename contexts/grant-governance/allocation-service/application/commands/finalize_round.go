package commands

import (
	"context"
	"log/slog"
	"strings"

	application "grantflow/contexts/grant-governance/allocation-service/application"
	"grantflow/contexts/grant-governance/allocation-service/application/queries"
	"grantflow/contexts/grant-governance/allocation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/allocation-service/domain/errors"
	"grantflow/contexts/grant-governance/allocation-service/ports"
)

type FinalizeResult struct {
	RoundID    string
	Approved   int
	Rejected   int
	Allocation entities.Allocation
}

// FinalizeRoundUseCase turns the advisory allocation into terminal proposal
// statuses once the round has ended: funded proposals become approved,
// everything else on the voting slate becomes rejected. Transitions are
// conditional on the proposal still being in voting, so re-running a
// finalization is harmless.
type FinalizeRoundUseCase struct {
	Rounds    ports.RoundReader
	Proposals ports.ProposalReader
	Allocate  queries.AllocateUseCase
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc FinalizeRoundUseCase) Execute(ctx context.Context, roundID string) (FinalizeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return FinalizeResult{}, domainerrors.ErrInvalidAllocationInput
	}

	round, err := uc.Rounds.GetRound(ctx, roundID)
	if err != nil {
		return FinalizeResult{}, err
	}
	now := uc.Clock.Now().UTC()
	if now.Before(round.EndsAt) {
		return FinalizeResult{}, domainerrors.ErrRoundNotEnded
	}

	allocation, err := uc.Allocate.Allocate(ctx, roundID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if !allocation.WinnersKnown {
		// Oracle outage with no cached ordering: settling now would reject
		// the whole slate for good. Leave the round open and retry later.
		logger.Warn("finalization deferred; winner ordering unavailable",
			"event", "allocation_finalize_deferred",
			"module", "grant-governance/allocation-service",
			"layer", "application",
			"round_id", roundID,
		)
		return FinalizeResult{}, domainerrors.ErrOracleUnavailable
	}

	result := FinalizeResult{RoundID: roundID, Allocation: allocation}
	for _, funded := range allocation.Funded {
		moved, err := uc.Proposals.TransitionStatus(ctx, funded.ProposalID, entities.ProposalStatusVoting, entities.ProposalStatusApproved, now)
		if err != nil {
			return FinalizeResult{}, err
		}
		if moved {
			result.Approved++
		}
	}
	for _, unfunded := range allocation.Unfunded {
		moved, err := uc.Proposals.TransitionStatus(ctx, unfunded.ProposalID, entities.ProposalStatusVoting, entities.ProposalStatusRejected, now)
		if err != nil {
			return FinalizeResult{}, err
		}
		if moved {
			result.Rejected++
		}
	}

	logger.Info("funding round finalized",
		"event", "allocation_round_finalized",
		"module", "grant-governance/allocation-service",
		"layer", "application",
		"round_id", roundID,
		"approved", result.Approved,
		"rejected", result.Rejected,
		"remaining_budget", allocation.RemainingBudget.String(),
	)
	return result, nil
}
