package ports

import (
	"context"
	"time"

	"grantflow/contexts/grant-governance/round-service/domain/entities"
)

type RoundRepository interface {
	CreateRound(ctx context.Context, round entities.FundingRound) error
	GetRound(ctx context.Context, roundID string) (entities.FundingRound, error)
	ListActiveRounds(ctx context.Context, now time.Time) ([]entities.FundingRound, error)
}

// SweepRepository moves proposals between statuses during phase-clock sweeps.
// Transitions are conditional on the expected current status so a sweep racing
// another writer can never double-apply.
type SweepRepository interface {
	TransitionProposalsByRound(ctx context.Context, roundID string, fromStatus string, toStatus string, updatedAt time.Time) (int64, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
