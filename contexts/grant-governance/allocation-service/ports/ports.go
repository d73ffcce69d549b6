package ports

import (
	"context"
	"time"

	"grantflow/contexts/grant-governance/allocation-service/domain/entities"

	"github.com/shopspring/decimal"
)

// RoundProjection is the round state the allocator needs: the budget, the
// oracle key, and the voting window to query it with.
type RoundProjection struct {
	RoundID     string
	MEFID       int64
	TotalBudget decimal.Decimal
	VotingStart *time.Time
	VotingEnd   *time.Time
	EndsAt      time.Time
}

type RoundReader interface {
	GetRound(ctx context.Context, roundID string) (RoundProjection, error)
	// ListEndedRounds returns rounds whose overall window has closed by now.
	ListEndedRounds(ctx context.Context, now time.Time) ([]RoundProjection, error)
}

type ProposalReader interface {
	// ListVotingSlate returns every proposal that reached the community vote
	// for the round, regardless of whether it has since been finalized.
	ListVotingSlate(ctx context.Context, roundID string) ([]entities.VotingProposal, error)
	// TransitionStatus performs a conditional update equivalent to
	// UPDATE .. WHERE status = from; zero rows affected is not an error.
	TransitionStatus(ctx context.Context, proposalID string, from entities.ProposalStatus, to entities.ProposalStatus, updatedAt time.Time) (bool, error)
}

// RankedVoteOracle fetches the ordered ranked-choice winners from the
// external on-chain voting system. Winners are the oracle's numeric proposal
// ids, matched to the slate through VotingProposal.OCVID.
type RankedVoteOracle interface {
	GetRankedVotes(ctx context.Context, mefID int64, start time.Time, end time.Time) ([]int64, error)
}

// WinnersCache keeps the last winner list the oracle returned so reads keep
// working through oracle outages.
type WinnersCache interface {
	GetWinners(ctx context.Context, roundID string) ([]int64, bool, error)
	SaveWinners(ctx context.Context, roundID string, winners []int64, fetchedAt time.Time) error
}

type Clock interface {
	Now() time.Time
}
