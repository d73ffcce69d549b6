package workers

import (
	"context"
	"log/slog"
	"time"

	application "grantflow/contexts/grant-governance/allocation-service/application"
	"grantflow/contexts/grant-governance/allocation-service/application/commands"
	"grantflow/contexts/grant-governance/allocation-service/ports"
)

// RoundFinalizer is the periodic job that settles ended rounds. One failing
// round does not stop the sweep over the others.
type RoundFinalizer struct {
	Rounds   ports.RoundReader
	Finalize commands.FinalizeRoundUseCase
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (j RoundFinalizer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	rounds, err := j.Rounds.ListEndedRounds(ctx, now)
	if err != nil {
		logger.Error("finalizer round listing failed",
			"event", "allocation_finalizer_list_failed",
			"module", "grant-governance/allocation-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, round := range rounds {
		result, err := j.Finalize.Execute(ctx, round.RoundID)
		if err != nil {
			logger.Error("round finalization failed",
				"event", "allocation_finalizer_round_failed",
				"module", "grant-governance/allocation-service",
				"layer", "worker",
				"round_id", round.RoundID,
				"error", err.Error(),
			)
			continue
		}
		if result.Approved > 0 || result.Rejected > 0 {
			logger.Info("round settled",
				"event", "allocation_finalizer_round_settled",
				"module", "grant-governance/allocation-service",
				"layer", "worker",
				"round_id", round.RoundID,
				"approved", result.Approved,
				"rejected", result.Rejected,
			)
		}
	}
	return nil
}
