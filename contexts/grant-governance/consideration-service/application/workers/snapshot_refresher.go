package workers

import (
	"context"
	"log/slog"
	"time"

	application "grantflow/contexts/grant-governance/consideration-service/application"
	"grantflow/contexts/grant-governance/consideration-service/application/commands"
	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	"grantflow/contexts/grant-governance/consideration-service/ports"
)

// SnapshotRefresher is the periodic vote-processing job. For every proposal
// still in consideration it pulls the oracle tally, replaces the cached
// snapshot row, and re-runs the status machine. Oracle failures are recovered
// by keeping the last cached snapshot; they never abort the sweep.
type SnapshotRefresher struct {
	Rounds    ports.RoundReader
	Proposals ports.ProposalRepository
	Snapshots ports.SnapshotStore
	Oracle    ports.VoteOracle
	Machine   commands.CheckAndMoveUseCase
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (j SnapshotRefresher) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	rounds, err := j.Rounds.ListActiveRounds(ctx, now)
	if err != nil {
		logger.Error("snapshot refresh round listing failed",
			"event", "ocv_refresh_list_rounds_failed",
			"module", "grant-governance/consideration-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, round := range rounds {
		if round.ConsiderationStart == nil || round.ConsiderationEnd == nil {
			continue
		}
		proposals, err := j.Proposals.ListByRoundAndStatus(ctx, round.RoundID, entities.ProposalStatusConsideration)
		if err != nil {
			logger.Error("snapshot refresh proposal listing failed",
				"event", "ocv_refresh_list_proposals_failed",
				"module", "grant-governance/consideration-service",
				"layer", "worker",
				"round_id", round.RoundID,
				"error", err.Error(),
			)
			return err
		}
		for _, proposal := range proposals {
			j.refreshOne(ctx, logger, round, proposal, now)
		}
	}
	return nil
}

func (j SnapshotRefresher) refreshOne(
	ctx context.Context,
	logger *slog.Logger,
	round ports.RoundProjection,
	proposal ports.ProposalProjection,
	now time.Time,
) {
	snapshot, err := j.Oracle.GetConsiderationVotes(ctx, round.MEFID, proposal.ProposalID, *round.ConsiderationStart, *round.ConsiderationEnd)
	if err != nil {
		// Fail closed: keep whatever snapshot is cached and move on.
		logger.Warn("oracle fetch failed; keeping cached snapshot",
			"event", "ocv_refresh_fetch_failed",
			"module", "grant-governance/consideration-service",
			"layer", "worker",
			"proposal_id", proposal.ProposalID,
			"mef_id", round.MEFID,
			"error", err.Error(),
		)
	} else {
		snapshot.ProposalID = proposal.ProposalID
		snapshot.RefreshedAt = now
		if err := j.Snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			logger.Error("snapshot save failed",
				"event", "ocv_refresh_save_failed",
				"module", "grant-governance/consideration-service",
				"layer", "worker",
				"proposal_id", proposal.ProposalID,
				"error", err.Error(),
			)
			return
		}
	}

	if _, err := j.Machine.Execute(ctx, proposal.ProposalID); err != nil {
		logger.Error("post-refresh evaluation failed",
			"event", "ocv_refresh_check_and_move_failed",
			"module", "grant-governance/consideration-service",
			"layer", "worker",
			"proposal_id", proposal.ProposalID,
			"error", err.Error(),
		)
	}
}
