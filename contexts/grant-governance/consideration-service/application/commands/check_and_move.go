package commands

import (
	"context"
	"log/slog"
	"strings"

	application "grantflow/contexts/grant-governance/consideration-service/application"
	"grantflow/contexts/grant-governance/consideration-service/application/queries"
	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	"grantflow/contexts/grant-governance/consideration-service/ports"
)

// Transition reports what the status machine did for one evaluation.
type Transition struct {
	ProposalID string
	Verdict    entities.Verdict
	From       entities.ProposalStatus
	To         entities.ProposalStatus
	Moved      bool
}

// CheckAndMoveUseCase is the proposal status machine for the consideration
// stage. It is invoked after every vote write and by the snapshot refresher.
// Transitions are one-way and idempotent: re-evaluating an already-moved
// proposal is a no-op, and a conditional update that affects zero rows means
// a concurrent caller already transitioned the proposal — that is success,
// not an error.
type CheckAndMoveUseCase struct {
	Proposals ports.ProposalRepository
	Evaluate  queries.EvaluateUseCase
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc CheckAndMoveUseCase) Execute(ctx context.Context, proposalID string) (Transition, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID = strings.TrimSpace(proposalID)

	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return Transition{}, err
	}
	if proposal.Status != entities.ProposalStatusConsideration {
		return Transition{
			ProposalID: proposalID,
			From:       proposal.Status,
			To:         proposal.Status,
		}, nil
	}

	verdict, err := uc.Evaluate.Evaluate(ctx, proposalID)
	if err != nil {
		return Transition{}, err
	}

	target := entities.ProposalStatusConsideration
	switch verdict.Verdict {
	case entities.VerdictApproved:
		target = entities.ProposalStatusDeliberation
	case entities.VerdictRejected:
		target = entities.ProposalStatusRejected
	default:
		return Transition{
			ProposalID: proposalID,
			Verdict:    verdict.Verdict,
			From:       proposal.Status,
			To:         proposal.Status,
		}, nil
	}

	moved, err := uc.Proposals.TransitionStatus(ctx, proposalID, entities.ProposalStatusConsideration, target, uc.Clock.Now().UTC())
	if err != nil {
		return Transition{}, err
	}
	if !moved {
		// Lost the race to a concurrent evaluation; the proposal is already
		// out of consideration.
		logger.Info("proposal transition skipped",
			"event", "consideration_transition_skipped",
			"module", "grant-governance/consideration-service",
			"layer", "application",
			"proposal_id", proposalID,
			"target_status", string(target),
		)
		return Transition{
			ProposalID: proposalID,
			Verdict:    verdict.Verdict,
			From:       entities.ProposalStatusConsideration,
			To:         entities.ProposalStatusConsideration,
		}, nil
	}

	logger.Info("proposal transitioned",
		"event", "consideration_proposal_transitioned",
		"module", "grant-governance/consideration-service",
		"layer", "application",
		"proposal_id", proposalID,
		"verdict", string(verdict.Verdict),
		"to_status", string(target),
	)
	return Transition{
		ProposalID: proposalID,
		Verdict:    verdict.Verdict,
		From:       entities.ProposalStatusConsideration,
		To:         target,
		Moved:      true,
	}, nil
}
