package workers

import (
	"context"
	"log/slog"
	"time"

	application "grantflow/contexts/grant-governance/round-service/application"
	"grantflow/contexts/grant-governance/round-service/domain/entities"
	"grantflow/contexts/grant-governance/round-service/domain/services"
	"grantflow/contexts/grant-governance/round-service/ports"
)

const (
	proposalStatusDeliberation = "deliberation"
	proposalStatusVoting       = "voting"
)

// PhaseSweeper advances proposals when the phase clock crosses into the
// voting window. The move is time-triggered: no reviewer gating applies
// between deliberation and voting.
type PhaseSweeper struct {
	Rounds    ports.RoundRepository
	Proposals ports.SweepRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (j PhaseSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	rounds, err := j.Rounds.ListActiveRounds(ctx, now)
	if err != nil {
		logger.Error("phase sweep round listing failed",
			"event", "round_phase_sweep_list_failed",
			"module", "grant-governance/round-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, round := range rounds {
		resolution := services.ResolvePhase(now, round)
		if resolution.Phase != entities.PhaseVoting {
			continue
		}
		moved, err := j.Proposals.TransitionProposalsByRound(ctx, round.RoundID, proposalStatusDeliberation, proposalStatusVoting, now)
		if err != nil {
			logger.Error("phase sweep transition failed",
				"event", "round_phase_sweep_transition_failed",
				"module", "grant-governance/round-service",
				"layer", "worker",
				"round_id", round.RoundID,
				"error", err.Error(),
			)
			return err
		}
		if moved > 0 {
			logger.Info("proposals advanced to voting",
				"event", "round_phase_sweep_advanced",
				"module", "grant-governance/round-service",
				"layer", "worker",
				"round_id", round.RoundID,
				"moved_count", moved,
			)
		}
	}
	return nil
}
