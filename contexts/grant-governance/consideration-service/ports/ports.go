package ports

import (
	"context"
	"time"

	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
)

type VoteRepository interface {
	// UpsertVote writes the voter's current decision keyed by
	// (proposalID, voterID); last write wins, never a duplicate row.
	UpsertVote(ctx context.Context, vote entities.ConsiderationVote) error
	CountReviewerDecisions(ctx context.Context, proposalID string) (DecisionCounts, error)
	ListVotesByProposal(ctx context.Context, proposalID string) ([]entities.ConsiderationVote, error)
}

// DecisionCounts holds reviewer tallies only; community-signal votes are
// excluded at the query level.
type DecisionCounts struct {
	Approved int
	Rejected int
}

type SnapshotStore interface {
	GetSnapshot(ctx context.Context, proposalID string) (entities.OCVSnapshot, bool, error)
	SaveSnapshot(ctx context.Context, snapshot entities.OCVSnapshot) error
}

// ProposalProjection is the flat slice of proposal state this service needs.
type ProposalProjection struct {
	ProposalID string
	RoundID    string
	OwnerID    string
	Status     entities.ProposalStatus
}

type ProposalRepository interface {
	GetProposal(ctx context.Context, proposalID string) (ProposalProjection, error)
	ListByRoundAndStatus(ctx context.Context, roundID string, status entities.ProposalStatus) ([]ProposalProjection, error)
	// TransitionStatus performs a conditional update equivalent to
	// UPDATE .. WHERE status = from. It reports whether a row moved; zero
	// rows means another transition already happened.
	TransitionStatus(ctx context.Context, proposalID string, from entities.ProposalStatus, to entities.ProposalStatus, updatedAt time.Time) (bool, error)
}

// ReviewerEligibility is resolved once at the repository boundary from
// reviewer-group membership on the round's topic.
type ReviewerEligibility struct {
	IsReviewer bool
}

type ReviewerDirectory interface {
	EligibilityFor(ctx context.Context, userID string, roundID string) (ReviewerEligibility, error)
}

// RoundProjection carries the round fields the snapshot refresher needs to
// query the oracle.
type RoundProjection struct {
	RoundID            string
	MEFID              int64
	ConsiderationStart *time.Time
	ConsiderationEnd   *time.Time
}

type RoundReader interface {
	ListActiveRounds(ctx context.Context, now time.Time) ([]RoundProjection, error)
}

// VoteOracle fetches consideration tallies from the external on-chain voting
// system. Implementations fail with a typed error instead of blocking.
type VoteOracle interface {
	GetConsiderationVotes(ctx context.Context, mefID int64, proposalID string, start time.Time, end time.Time) (entities.OCVSnapshot, error)
}

type Clock interface {
	Now() time.Time
}
