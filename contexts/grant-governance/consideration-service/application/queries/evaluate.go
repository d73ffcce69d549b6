package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "grantflow/contexts/grant-governance/consideration-service/application"
	"grantflow/contexts/grant-governance/consideration-service/domain/entities"
	domainerrors "grantflow/contexts/grant-governance/consideration-service/domain/errors"
	"grantflow/contexts/grant-governance/consideration-service/ports"

	"github.com/shopspring/decimal"
)

const defaultMinReviewerApprovals = 3

// ConsiderationVerdict is the merged eligibility read model: reviewer tallies
// plus the cached on-chain snapshot, collapsed into one tri-state verdict.
type ConsiderationVerdict struct {
	ProposalID          string
	Verdict             entities.Verdict
	ApprovedCount       int
	RejectedCount       int
	TotalCommunityVotes int
	TotalPositiveVotes  int
	PositiveStakeWeight decimal.Decimal
	OracleEligible      bool
	SnapshotRefreshedAt time.Time
}

// EvaluateUseCase is the consideration eligibility engine. It is read-only:
// status transitions belong to the status machine, never to this query.
type EvaluateUseCase struct {
	Votes                ports.VoteRepository
	Snapshots            ports.SnapshotStore
	MinReviewerApprovals int
	Logger               *slog.Logger
}

func (uc EvaluateUseCase) Evaluate(ctx context.Context, proposalID string) (ConsiderationVerdict, error) {
	logger := application.ResolveLogger(uc.Logger)
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return ConsiderationVerdict{}, domainerrors.ErrInvalidVoteInput
	}

	counts, err := uc.Votes.CountReviewerDecisions(ctx, proposalID)
	if err != nil {
		return ConsiderationVerdict{}, err
	}

	snapshot, found, err := uc.Snapshots.GetSnapshot(ctx, proposalID)
	if err != nil {
		return ConsiderationVerdict{}, err
	}
	if !found {
		// Proposal not synced yet: not eligible, zero votes.
		snapshot = entities.EmptySnapshot(proposalID)
	}

	threshold := uc.minApprovals()
	verdict := entities.VerdictPending
	switch {
	case counts.Approved >= threshold || snapshot.Eligible:
		verdict = entities.VerdictApproved
	case counts.Rejected >= threshold:
		verdict = entities.VerdictRejected
	}

	logger.Debug("consideration verdict evaluated",
		"event", "consideration_verdict_evaluated",
		"module", "grant-governance/consideration-service",
		"layer", "application",
		"proposal_id", proposalID,
		"verdict", string(verdict),
		"approved_count", counts.Approved,
		"rejected_count", counts.Rejected,
		"oracle_eligible", snapshot.Eligible,
	)
	return ConsiderationVerdict{
		ProposalID:          proposalID,
		Verdict:             verdict,
		ApprovedCount:       counts.Approved,
		RejectedCount:       counts.Rejected,
		TotalCommunityVotes: snapshot.TotalCommunityVotes,
		TotalPositiveVotes:  snapshot.TotalPositiveVotes,
		PositiveStakeWeight: snapshot.PositiveStakeWeight,
		OracleEligible:      snapshot.Eligible,
		SnapshotRefreshedAt: snapshot.RefreshedAt,
	}, nil
}

// ListVotes returns every recorded consideration vote for a proposal,
// reviewer and community alike.
func (uc EvaluateUseCase) ListVotes(ctx context.Context, proposalID string) ([]entities.ConsiderationVote, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return nil, domainerrors.ErrInvalidVoteInput
	}
	return uc.Votes.ListVotesByProposal(ctx, proposalID)
}

func (uc EvaluateUseCase) minApprovals() int {
	if uc.MinReviewerApprovals <= 0 {
		return defaultMinReviewerApprovals
	}
	return uc.MinReviewerApprovals
}
