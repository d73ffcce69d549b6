package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "grantflow/contexts/grant-governance/allocation-service/application"
	"grantflow/contexts/grant-governance/allocation-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/allocation-service/domain/errors"
	"grantflow/contexts/grant-governance/allocation-service/domain/services"
	"grantflow/contexts/grant-governance/allocation-service/ports"
)

// AllocateUseCase computes the round's budget distribution on demand. The
// result is never cached: stored winner lists only serve as a fallback when
// the oracle cannot be reached, so two reads may disagree while voting is
// still open and that is expected.
type AllocateUseCase struct {
	Rounds    ports.RoundReader
	Proposals ports.ProposalReader
	Oracle    ports.RankedVoteOracle
	Winners   ports.WinnersCache
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc AllocateUseCase) Allocate(ctx context.Context, roundID string) (entities.Allocation, error) {
	logger := application.ResolveLogger(uc.Logger)
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return entities.Allocation{}, domainerrors.ErrInvalidAllocationInput
	}

	round, err := uc.Rounds.GetRound(ctx, roundID)
	if err != nil {
		return entities.Allocation{}, err
	}
	proposals, err := uc.Proposals.ListVotingSlate(ctx, roundID)
	if err != nil {
		return entities.Allocation{}, err
	}

	now := uc.Clock.Now().UTC()
	winners, known := uc.resolveWinners(ctx, logger, round, now)

	allocation := services.Distribute(roundID, round.TotalBudget, proposals, winners)
	allocation.WinnersKnown = known
	allocation.IsFinal = now.After(round.EndsAt) || now.Equal(round.EndsAt)
	allocation.ComputedAt = now

	logger.Debug("allocation computed",
		"event", "allocation_computed",
		"module", "grant-governance/allocation-service",
		"layer", "application",
		"round_id", roundID,
		"funded_count", len(allocation.Funded),
		"unfunded_count", len(allocation.Unfunded),
		"remaining_budget", allocation.RemainingBudget.String(),
		"is_final", allocation.IsFinal,
	)
	return allocation, nil
}

// resolveWinners prefers a live oracle read and refreshes the cached list on
// success. On failure the last cached list is used. The second return is
// false only when neither source produced an ordering; callers on read paths
// degrade to an empty distribution, while finalization must refuse to settle.
// A round with no voting window never had a ranked vote, so its empty
// ordering is known, not missing.
func (uc AllocateUseCase) resolveWinners(
	ctx context.Context,
	logger *slog.Logger,
	round ports.RoundProjection,
	now time.Time,
) ([]int64, bool) {
	if round.VotingStart == nil || round.VotingEnd == nil {
		return nil, true
	}
	winners, err := uc.Oracle.GetRankedVotes(ctx, round.MEFID, *round.VotingStart, *round.VotingEnd)
	if err == nil {
		if saveErr := uc.Winners.SaveWinners(ctx, round.RoundID, winners, now); saveErr != nil {
			logger.Warn("winner cache write failed",
				"event", "allocation_winner_cache_write_failed",
				"module", "grant-governance/allocation-service",
				"layer", "application",
				"round_id", round.RoundID,
				"error", saveErr.Error(),
			)
		}
		return winners, true
	}

	logger.Warn("ranked vote fetch failed; falling back to cached winners",
		"event", "allocation_ranked_fetch_failed",
		"module", "grant-governance/allocation-service",
		"layer", "application",
		"round_id", round.RoundID,
		"mef_id", round.MEFID,
		"error", err.Error(),
	)
	cached, found, cacheErr := uc.Winners.GetWinners(ctx, round.RoundID)
	if cacheErr != nil || !found {
		return nil, false
	}
	return cached, true
}
